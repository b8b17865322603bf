/*
 * other.go, part of pqr.
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

//present registers an expected heavy atom with connectivity but no
//reference geometry, so it can be checked for and bonded but not rebuilt.
func (t *Template) present(name, bref string) *Template {
	t.Heavy = append(t.Heavy, AtomRef{Name: name, BondRef: bref})
	return t
}

func (t *Template) presentOpt(name, bref string) *Template {
	t.Heavy = append(t.Heavy, AtomRef{Name: name, BondRef: bref, Optional: true})
	return t
}

//sugarPhosphate adds the nucleotide backbone. The 5'-terminal residue has
//no phosphate, so the P group is optional.
func (t *Template) sugarPhosphate(ribo bool) *Template {
	t.presentOpt("P", "")
	t.presentOpt("OP1", "P").presentOpt("OP2", "P")
	t.present("O5'", "P").present("C5'", "O5'")
	t.present("C4'", "C5'").present("O4'", "C4'")
	t.present("C3'", "C4'").present("O3'", "C3'")
	t.present("C2'", "C3'")
	if ribo {
		t.present("O2'", "C2'")
	}
	t.present("C1'", "C2'")
	t.ring("C1'", "O4'")
	t.hyd("H5'", "C5'").hyd("H5''", "C5'")
	t.hyd("H4'", "C4'").hyd("H3'", "C3'")
	if ribo {
		t.hyd("H2'", "C2'")
		t.hydO("HO2'", "O2'")
	} else {
		t.hyd("H2'", "C2'").hyd("H2''", "C2'")
	}
	t.hyd("H1'", "C1'")
	return t
}

func (t *Template) purine() *Template {
	t.present("N9", "C1'").present("C8", "N9").present("N7", "C8")
	t.present("C5", "N7").present("C6", "C5").present("N1", "C6")
	t.present("C2", "N1").present("N3", "C2").present("C4", "N3")
	t.ring("C4", "N9").ring("C4", "C5")
	t.hydP("H8", "C8")
	return t
}

func (t *Template) pyrimidine() *Template {
	t.present("N1", "C1'").present("C2", "N1").present("O2", "C2")
	t.present("N3", "C2").present("C4", "N3").present("C5", "C4")
	t.present("C6", "C5")
	t.ring("C6", "N1")
	t.hydP("H6", "C6")
	return t
}

func nucleicTemplates() []*Template {
	var ts []*Template

	adenine := func(name string, ribo bool) *Template {
		t := newTemplate(name, pqr.Nucleic).sugarPhosphate(ribo).purine()
		t.present("N6", "C6")
		t.hydP("H61", "N6").hydP("H62", "N6").hydP("H2", "C2")
		return t
	}
	guanine := func(name string, ribo bool) *Template {
		t := newTemplate(name, pqr.Nucleic).sugarPhosphate(ribo).purine()
		t.present("O6", "C6").present("N2", "C2")
		t.hydP("H1", "N1").hydP("H21", "N2").hydP("H22", "N2")
		return t
	}
	cytosine := func(name string, ribo bool) *Template {
		t := newTemplate(name, pqr.Nucleic).sugarPhosphate(ribo).pyrimidine()
		t.present("N4", "C4")
		t.hydP("H41", "N4").hydP("H42", "N4").hydP("H5", "C5")
		return t
	}

	ts = append(ts, adenine("DA", false), adenine("A", true))
	ts = append(ts, guanine("DG", false), guanine("G", true))
	ts = append(ts, cytosine("DC", false), cytosine("C", true))

	dt := newTemplate("DT", pqr.Nucleic).sugarPhosphate(false).pyrimidine()
	dt.present("O4", "C4").present("C7", "C5")
	dt.hydP("H3", "N3")
	dt.hyd("H71", "C7").hyd("H72", "C7").hyd("H73", "C7")
	ts = append(ts, dt)

	u := newTemplate("U", pqr.Nucleic).sugarPhosphate(true).pyrimidine()
	u.present("O4", "C4")
	u.hydP("H3", "N3").hydP("H5", "C5")
	ts = append(ts, u)

	return ts
}

func otherTemplates() []*Template {
	var ts []*Template

	hoh := newTemplate("HOH", pqr.Water)
	hoh.heavy("O", "", "", "", 1.0, 0, 0)
	hoh.hydO("H1", "O").hydO("H2", "O")
	ts = append(ts, hoh)

	for _, ion := range []string{"NA", "CL", "K", "MG", "ZN", "CA"} {
		t := newTemplate(ion, pqr.Ligand)
		t.heavy(ion, "", "", "", 1.0, 0, 0)
		ts = append(ts, t)
	}

	ts = append(ts, nucleicTemplates()...)
	return ts
}

//waterAliases are alternative residue names that resolve to the water
//template.
var waterAliases = []string{"WAT", "SOL", "H2O"}

func builtinVariants() []*Variant {
	return []*Variant{
		{Name: "ASH", Base: "ASP",
			AddH: []HDef{{Name: "HD2", Parent: "OD2", Optimizable: true}}},
		{Name: "GLH", Base: "GLU",
			AddH: []HDef{{Name: "HE2", Parent: "OE2", Optimizable: true}}},
		{Name: "HID", Base: "HIS",
			AddH: []HDef{{Name: "HD1", Parent: "ND1", Planar: true}}},
		{Name: "HIE", Base: "HIS",
			AddH: []HDef{{Name: "HE2", Parent: "NE2", Planar: true}}},
		{Name: "HIP", Base: "HIS",
			AddH: []HDef{
				{Name: "HD1", Parent: "ND1", Planar: true},
				{Name: "HE2", Parent: "NE2", Planar: true}}},
		{Name: "LYN", Base: "LYS", Remove: []string{"HZ3"}},
		{Name: "CYM", Base: "CYS", Remove: []string{"HG"}},
		{Name: "CYX", Base: "CYS", Remove: []string{"HG"}},
		{Name: "TYM", Base: "TYR", Remove: []string{"HH"}},
	}
}
