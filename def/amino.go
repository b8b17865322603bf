/*
 * amino.go, part of pqr.
 *
 * Copyright 2024 The apbs-pdb2pqr developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package def

import pqr "github.com/armeria-program/apbs-pdb2pqr"

func newTemplate(name string, class pqr.Class) *Template {
	return &Template{Name: name, Class: class}
}

func (t *Template) heavy(name, dref, aref, bref string, d, a, tor float64) *Template {
	t.Heavy = append(t.Heavy, AtomRef{Name: name, DihedRef: dref, AngleRef: aref,
		BondRef: bref, Dist: d, Angle: a, Torsion: tor})
	return t
}

func (t *Template) heavyOpt(name, dref, aref, bref string, d, a, tor float64) *Template {
	t.Heavy = append(t.Heavy, AtomRef{Name: name, DihedRef: dref, AngleRef: aref,
		BondRef: bref, Dist: d, Angle: a, Torsion: tor, Optional: true})
	return t
}

//tetrahedral hydrogen
func (t *Template) hyd(name, parent string) *Template {
	t.Hydrogens = append(t.Hydrogens, HDef{Name: name, Parent: parent})
	return t
}

//planar (sp2) hydrogen
func (t *Template) hydP(name, parent string) *Template {
	t.Hydrogens = append(t.Hydrogens, HDef{Name: name, Parent: parent, Planar: true})
	return t
}

//rotatable hydrogen: position is a degree of freedom for the optimizer
func (t *Template) hydO(name, parent string) *Template {
	t.Hydrogens = append(t.Hydrogens, HDef{Name: name, Parent: parent, Optimizable: true})
	return t
}

func (t *Template) ring(a, b string) *Template {
	t.Extra = append(t.Extra, [2]string{a, b})
	return t
}

//aminoBackbone returns a template seeded with the peptide backbone. The
//amide hydrogen and HA are added by the callers that carry them (GLY and
//PRO deviate).
func aminoBackbone(name string) *Template {
	t := newTemplate(name, pqr.Amino)
	t.heavy("N", "", "", "", 1.458, 0, 0)
	t.heavy("CA", "", "", "N", 1.458, 0, 0)
	t.heavy("C", "", "N", "CA", 1.525, 111.2, 0)
	t.heavy("O", "N", "CA", "C", 1.231, 120.5, 0)
	t.heavyOpt("OXT", "N", "CA", "C", 1.250, 117.0, 180)
	return t
}

func stdBackbone(name string) *Template {
	t := aminoBackbone(name)
	t.hydP("H", "N")
	t.hyd("HA", "CA")
	return t
}

//cb adds the beta carbon with standard geometry.
func (t *Template) cb() *Template {
	return t.heavy("CB", "C", "N", "CA", 1.530, 110.4, -122.0)
}

func builtinTemplates() []*Template {
	ret := aminoTemplates()
	ret = append(ret, otherTemplates()...)
	return ret
}

func aminoTemplates() []*Template {
	var ts []*Template
	add := func(t *Template) { ts = append(ts, t) }

	ala := stdBackbone("ALA").cb()
	ala.hyd("HB1", "CB").hyd("HB2", "CB").hyd("HB3", "CB")
	add(ala)

	arg := stdBackbone("ARG").cb()
	arg.heavy("CG", "N", "CA", "CB", 1.520, 114.1, 180)
	arg.heavy("CD", "CA", "CB", "CG", 1.520, 111.3, 180)
	arg.heavy("NE", "CB", "CG", "CD", 1.461, 112.0, 180)
	arg.heavy("CZ", "CG", "CD", "NE", 1.329, 124.2, 180)
	arg.heavy("NH1", "CD", "NE", "CZ", 1.326, 120.0, 0)
	arg.heavy("NH2", "CD", "NE", "CZ", 1.326, 120.0, 180)
	arg.hyd("HB2", "CB").hyd("HB3", "CB")
	arg.hyd("HG2", "CG").hyd("HG3", "CG")
	arg.hyd("HD2", "CD").hyd("HD3", "CD")
	arg.hydP("HE", "NE")
	arg.hydP("HH11", "NH1").hydP("HH12", "NH1")
	arg.hydP("HH21", "NH2").hydP("HH22", "NH2")
	add(arg)

	asn := stdBackbone("ASN").cb()
	asn.heavy("CG", "N", "CA", "CB", 1.516, 112.6, 180)
	asn.heavy("OD1", "CA", "CB", "CG", 1.231, 120.8, 0)
	asn.heavy("ND2", "CA", "CB", "CG", 1.328, 116.4, 180)
	asn.hyd("HB2", "CB").hyd("HB3", "CB")
	asn.hydP("HD21", "ND2").hydP("HD22", "ND2")
	add(asn)

	asp := stdBackbone("ASP").cb()
	asp.heavy("CG", "N", "CA", "CB", 1.516, 112.6, 180)
	asp.heavy("OD1", "CA", "CB", "CG", 1.249, 118.4, 0)
	asp.heavy("OD2", "CA", "CB", "CG", 1.249, 118.4, 180)
	asp.hyd("HB2", "CB").hyd("HB3", "CB")
	add(asp)

	cys := stdBackbone("CYS").cb()
	cys.heavy("SG", "N", "CA", "CB", 1.808, 113.8, 180)
	cys.hyd("HB2", "CB").hyd("HB3", "CB")
	cys.hydO("HG", "SG")
	add(cys)

	gln := stdBackbone("GLN").cb()
	gln.heavy("CG", "N", "CA", "CB", 1.520, 114.1, 180)
	gln.heavy("CD", "CA", "CB", "CG", 1.516, 112.6, 180)
	gln.heavy("OE1", "CB", "CG", "CD", 1.231, 120.8, 0)
	gln.heavy("NE2", "CB", "CG", "CD", 1.328, 116.4, 180)
	gln.hyd("HB2", "CB").hyd("HB3", "CB")
	gln.hyd("HG2", "CG").hyd("HG3", "CG")
	gln.hydP("HE21", "NE2").hydP("HE22", "NE2")
	add(gln)

	glu := stdBackbone("GLU").cb()
	glu.heavy("CG", "N", "CA", "CB", 1.520, 114.1, 180)
	glu.heavy("CD", "CA", "CB", "CG", 1.516, 112.6, 180)
	glu.heavy("OE1", "CB", "CG", "CD", 1.249, 118.4, 0)
	glu.heavy("OE2", "CB", "CG", "CD", 1.249, 118.4, 180)
	glu.hyd("HB2", "CB").hyd("HB3", "CB")
	glu.hyd("HG2", "CG").hyd("HG3", "CG")
	add(glu)

	gly := aminoBackbone("GLY")
	gly.hydP("H", "N")
	gly.hyd("HA2", "CA").hyd("HA3", "CA")
	add(gly)

	his := stdBackbone("HIS").cb()
	his.heavy("CG", "N", "CA", "CB", 1.494, 114.0, 180)
	his.heavy("ND1", "CA", "CB", "CG", 1.378, 122.7, 90)
	his.heavy("CD2", "CA", "CB", "CG", 1.356, 131.0, -90)
	his.heavy("CE1", "CB", "CG", "ND1", 1.321, 109.0, 180)
	his.heavy("NE2", "CB", "CG", "CD2", 1.374, 107.2, 180)
	his.ring("CE1", "NE2")
	his.hyd("HB2", "CB").hyd("HB3", "CB")
	his.hydP("HD2", "CD2").hydP("HE1", "CE1")
	add(his)

	ile := stdBackbone("ILE").cb()
	ile.heavy("CG1", "N", "CA", "CB", 1.530, 110.4, 180)
	ile.heavy("CG2", "N", "CA", "CB", 1.521, 110.5, 60)
	ile.heavy("CD1", "CA", "CB", "CG1", 1.513, 113.8, 180)
	ile.hyd("HB", "CB")
	ile.hyd("HG12", "CG1").hyd("HG13", "CG1")
	ile.hyd("HG21", "CG2").hyd("HG22", "CG2").hyd("HG23", "CG2")
	ile.hyd("HD11", "CD1").hyd("HD12", "CD1").hyd("HD13", "CD1")
	add(ile)

	leu := stdBackbone("LEU").cb()
	leu.heavy("CG", "N", "CA", "CB", 1.530, 116.3, 180)
	leu.heavy("CD1", "CA", "CB", "CG", 1.521, 110.7, 180)
	leu.heavy("CD2", "CA", "CB", "CG", 1.521, 110.7, 60)
	leu.hyd("HB2", "CB").hyd("HB3", "CB")
	leu.hyd("HG", "CG")
	leu.hyd("HD11", "CD1").hyd("HD12", "CD1").hyd("HD13", "CD1")
	leu.hyd("HD21", "CD2").hyd("HD22", "CD2").hyd("HD23", "CD2")
	add(leu)

	lys := stdBackbone("LYS").cb()
	lys.heavy("CG", "N", "CA", "CB", 1.520, 114.1, 180)
	lys.heavy("CD", "CA", "CB", "CG", 1.520, 111.3, 180)
	lys.heavy("CE", "CB", "CG", "CD", 1.520, 111.3, 180)
	lys.heavy("NZ", "CG", "CD", "CE", 1.469, 112.0, 180)
	lys.hyd("HB2", "CB").hyd("HB3", "CB")
	lys.hyd("HG2", "CG").hyd("HG3", "CG")
	lys.hyd("HD2", "CD").hyd("HD3", "CD")
	lys.hyd("HE2", "CE").hyd("HE3", "CE")
	lys.hyd("HZ1", "NZ").hyd("HZ2", "NZ").hyd("HZ3", "NZ")
	add(lys)

	met := stdBackbone("MET").cb()
	met.heavy("CG", "N", "CA", "CB", 1.520, 114.1, 180)
	met.heavy("SD", "CA", "CB", "CG", 1.807, 112.7, 180)
	met.heavy("CE", "CB", "CG", "SD", 1.789, 100.8, 180)
	met.hyd("HB2", "CB").hyd("HB3", "CB")
	met.hyd("HG2", "CG").hyd("HG3", "CG")
	met.hyd("HE1", "CE").hyd("HE2", "CE").hyd("HE3", "CE")
	add(met)

	phe := stdBackbone("PHE").cb()
	phe.heavy("CG", "N", "CA", "CB", 1.502, 113.8, 180)
	phe.heavy("CD1", "CA", "CB", "CG", 1.391, 120.8, 90)
	phe.heavy("CD2", "CA", "CB", "CG", 1.391, 120.8, -90)
	phe.heavy("CE1", "CB", "CG", "CD1", 1.391, 120.0, 180)
	phe.heavy("CE2", "CB", "CG", "CD2", 1.391, 120.0, 180)
	phe.heavy("CZ", "CG", "CD1", "CE1", 1.391, 120.0, 0)
	phe.ring("CE2", "CZ")
	phe.hyd("HB2", "CB").hyd("HB3", "CB")
	phe.hydP("HD1", "CD1").hydP("HD2", "CD2")
	phe.hydP("HE1", "CE1").hydP("HE2", "CE2")
	phe.hydP("HZ", "CZ")
	add(phe)

	pro := aminoBackbone("PRO").cb()
	pro.heavy("CG", "N", "CA", "CB", 1.492, 104.5, 30)
	pro.heavy("CD", "CA", "CB", "CG", 1.503, 106.1, -30)
	pro.ring("CD", "N")
	pro.hyd("HA", "CA")
	pro.hyd("HB2", "CB").hyd("HB3", "CB")
	pro.hyd("HG2", "CG").hyd("HG3", "CG")
	pro.hyd("HD2", "CD").hyd("HD3", "CD")
	add(pro)

	ser := stdBackbone("SER").cb()
	ser.heavy("OG", "N", "CA", "CB", 1.417, 111.1, 180)
	ser.hyd("HB2", "CB").hyd("HB3", "CB")
	ser.hydO("HG", "OG")
	add(ser)

	thr := stdBackbone("THR").cb()
	thr.heavy("OG1", "N", "CA", "CB", 1.433, 109.6, 180)
	thr.heavy("CG2", "N", "CA", "CB", 1.521, 110.5, -60)
	thr.hyd("HB", "CB")
	thr.hydO("HG1", "OG1")
	thr.hyd("HG21", "CG2").hyd("HG22", "CG2").hyd("HG23", "CG2")
	add(thr)

	trp := stdBackbone("TRP").cb()
	trp.heavy("CG", "N", "CA", "CB", 1.498, 114.1, 180)
	trp.heavy("CD1", "CA", "CB", "CG", 1.365, 127.0, 90)
	trp.heavy("CD2", "CA", "CB", "CG", 1.433, 126.6, -90)
	trp.heavy("NE1", "CB", "CG", "CD1", 1.374, 110.1, 180)
	trp.heavy("CE2", "CB", "CG", "CD2", 1.409, 107.3, 180)
	trp.heavy("CE3", "CB", "CG", "CD2", 1.398, 133.9, 0)
	trp.heavy("CZ2", "CG", "CD2", "CE2", 1.394, 130.4, 180)
	trp.heavy("CZ3", "CG", "CD2", "CE3", 1.382, 118.8, 180)
	trp.heavy("CH2", "CD2", "CE2", "CZ2", 1.368, 117.5, 180)
	trp.ring("NE1", "CE2")
	trp.ring("CH2", "CZ3")
	trp.hyd("HB2", "CB").hyd("HB3", "CB")
	trp.hydP("HD1", "CD1")
	trp.hydP("HE1", "NE1")
	trp.hydP("HE3", "CE3")
	trp.hydP("HZ2", "CZ2").hydP("HZ3", "CZ3")
	trp.hydP("HH2", "CH2")
	add(trp)

	tyr := stdBackbone("TYR").cb()
	tyr.heavy("CG", "N", "CA", "CB", 1.512, 113.9, 180)
	tyr.heavy("CD1", "CA", "CB", "CG", 1.389, 120.8, 90)
	tyr.heavy("CD2", "CA", "CB", "CG", 1.389, 120.8, -90)
	tyr.heavy("CE1", "CB", "CG", "CD1", 1.382, 121.2, 180)
	tyr.heavy("CE2", "CB", "CG", "CD2", 1.382, 121.2, 180)
	tyr.heavy("CZ", "CG", "CD1", "CE1", 1.378, 119.6, 0)
	tyr.heavy("OH", "CD1", "CE1", "CZ", 1.376, 119.9, 180)
	tyr.ring("CE2", "CZ")
	tyr.hyd("HB2", "CB").hyd("HB3", "CB")
	tyr.hydP("HD1", "CD1").hydP("HD2", "CD2")
	tyr.hydP("HE1", "CE1").hydP("HE2", "CE2")
	tyr.hydO("HH", "OH")
	add(tyr)

	val := stdBackbone("VAL").cb()
	val.heavy("CG1", "N", "CA", "CB", 1.521, 110.5, 180)
	val.heavy("CG2", "N", "CA", "CB", 1.521, 110.5, -60)
	val.hyd("HB", "CB")
	val.hyd("HG11", "CG1").hyd("HG12", "CG1").hyd("HG13", "CG1")
	val.hyd("HG21", "CG2").hyd("HG22", "CG2").hyd("HG23", "CG2")
	add(val)

	return ts
}
