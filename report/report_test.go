/*
 * report_test.go, part of pqr.
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

package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//a minimal backbone-only residue
func backboneResidue(name string, num int, n, ca, c geo.Vec) *pqr.Residue {
	r := &pqr.Residue{Name: name, Number: num, Class: pqr.Amino}
	for _, a := range []*pqr.Atom{
		{Name: "N", Symbol: "N", Coord: n, Occupancy: 1},
		{Name: "CA", Symbol: "C", Coord: ca, Occupancy: 1},
		{Name: "C", Symbol: "C", Coord: c, Occupancy: 1},
	} {
		if err := r.AddAtom(a); err != nil {
			panic(err)
		}
	}
	return r
}

func tripeptide() *pqr.Protein {
	ch := &pqr.Chain{ID: "A"}
	ch.AddResidue(backboneResidue("ALA", 1, geo.Vec{0, 0, 0}, geo.Vec{1.5, 0, 0}, geo.Vec{2.2, 1.3, 0}))
	ch.AddResidue(backboneResidue("GLY", 2, geo.Vec{3.5, 1.4, 0}, geo.Vec{4.4, 2.5, 0.3}, geo.Vec{5.8, 2.1, 0.6}))
	ch.AddResidue(backboneResidue("SER", 3, geo.Vec{6.7, 3.0, 1.0}, geo.Vec{8.1, 2.8, 1.4}, geo.Vec{8.9, 4.1, 1.6}))
	return &pqr.Protein{Chains: []*pqr.Chain{ch}}
}

func TestPhiPsis(Te *testing.T) {
	p := tripeptide()
	data := PhiPsis(p)
	if len(data) != 1 {
		Te.Fatalf("%d dihedral pairs, want 1 (the middle residue)", len(data))
	}
	d := data[0]
	if d.Residue.Name != "GLY" {
		Te.Errorf("dihedrals computed for %s, want the middle residue", d.Residue.Name)
	}
	ch := p.Chains[0]
	wantPhi := geo.Dihedral(ch.Residues[0].Atom("C").Coord, ch.Residues[1].Atom("N").Coord,
		ch.Residues[1].Atom("CA").Coord, ch.Residues[1].Atom("C").Coord) * geo.Rad2Deg
	wantPsi := geo.Dihedral(ch.Residues[1].Atom("N").Coord, ch.Residues[1].Atom("CA").Coord,
		ch.Residues[1].Atom("C").Coord, ch.Residues[2].Atom("N").Coord) * geo.Rad2Deg
	if math.Abs(d.Phi-wantPhi) > 1e-9 || math.Abs(d.Psi-wantPsi) > 1e-9 {
		Te.Errorf("phi/psi %.2f/%.2f, want %.2f/%.2f", d.Phi, d.Psi, wantPhi, wantPsi)
	}
}

func TestPhiPsisSkipsIncomplete(Te *testing.T) {
	p := tripeptide()
	p.Chains[0].Residues[1].RemoveAtom("CA")
	if data := PhiPsis(p); len(data) != 0 {
		Te.Errorf("%d dihedral pairs from a broken backbone, want none", len(data))
	}
}

func TestRamaPlot(Te *testing.T) {
	p := tripeptide()
	data := PhiPsis(p)
	out := filepath.Join(Te.TempDir(), "rama.png")
	if err := RamaPlot(data, "test", out); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(out)
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Error("empty plot file")
	}
}

func TestRamaPlotEmpty(Te *testing.T) {
	if err := RamaPlot(nil, "test", "never.png"); err == nil {
		Te.Error("plotting nothing should fail")
	}
}
