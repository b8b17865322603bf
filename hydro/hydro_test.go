/*
 * hydro_test.go, part of pqr.
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

package hydro

import (
	"math"
	"testing"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//residueFromTemplate builds a residue with every placeable heavy atom at
//its idealized template position, shifted by offset.
func residueFromTemplate(cat *def.Catalog, name string, num int, offset geo.Vec) *pqr.Residue {
	t := cat.Template(name)
	r := &pqr.Residue{Name: name, Number: num, Class: t.Class}
	for _, a := range t.Heavy {
		if a.Optional {
			continue
		}
		c, ok := t.Coords[a.Name]
		if !ok {
			continue
		}
		sym, err := pqr.SymbolFromName(a.Name)
		if err != nil {
			panic(err)
		}
		at := &pqr.Atom{Name: a.Name, Symbol: sym, Coord: geo.Add(c, offset), Occupancy: 1}
		if err := r.AddAtom(at); err != nil {
			panic(err)
		}
	}
	return r
}

func singleResidue(cat *def.Catalog, name string) (*pqr.Protein, *pqr.Residue) {
	ch := &pqr.Chain{ID: "A"}
	r := residueFromTemplate(cat, name, 1, geo.Vec{})
	ch.AddResidue(r)
	p := &pqr.Protein{Chains: []*pqr.Chain{ch}}
	if err := pqr.AssignBonds(p); err != nil {
		panic(err)
	}
	return p, r
}

func countHydrogens(r *pqr.Residue) int {
	n := 0
	for _, a := range r.Atoms {
		if a.IsHydrogen() {
			n++
		}
	}
	return n
}

func TestFreeAlanine(Te *testing.T) {
	cat := def.NewCatalog()
	p, ala := singleResidue(cat, "ALA")
	res, err := Run(p, cat, Options{})
	if err != nil {
		Te.Fatal(err)
	}
	//HA, HB1-HB3, and the charged terminus H1-H3; the amide H is replaced
	if res.Added != 7 || countHydrogens(ala) != 7 {
		Te.Fatalf("added %d, residue carries %d hydrogens, want 7", res.Added, countHydrogens(ala))
	}
	if ala.HasAtom("H") {
		Te.Error("backbone amide H present on an N-terminal residue")
	}
	for _, name := range []string{"H1", "H2", "H3"} {
		h := ala.Atom(name)
		if h == nil {
			Te.Fatalf("terminus hydrogen %s missing", name)
		}
		if d := geo.Dist(h.Coord, ala.Atom("N").Coord); math.Abs(d-1.01) > 1e-6 {
			Te.Errorf("%s: N-H distance %.4f, want 1.01", name, d)
		}
		if !h.Bonded(ala.Atom("N")) {
			Te.Errorf("%s not bonded to N", name)
		}
	}
	if d := geo.Dist(ala.Atom("HB1").Coord, ala.Atom("CB").Coord); math.Abs(d-1.09) > 1e-6 {
		Te.Errorf("C-H distance %.4f, want 1.09", d)
	}
}

func TestMethylGeometry(Te *testing.T) {
	cat := def.NewCatalog()
	p, ala := singleResidue(cat, "ALA")
	if _, err := Run(p, cat, Options{}); err != nil {
		Te.Fatal(err)
	}
	cb := ala.Atom("CB")
	hs := []*pqr.Atom{ala.Atom("HB1"), ala.Atom("HB2"), ala.Atom("HB3")}
	for i := 0; i < len(hs); i++ {
		for j := i + 1; j < len(hs); j++ {
			ang := geo.Angle(hs[i].Coord, cb.Coord, hs[j].Coord) * geo.Rad2Deg
			if math.Abs(ang-109.47) > 2 {
				Te.Errorf("H-C-H angle %.1f, want near tetrahedral", ang)
			}
		}
	}
}

func TestNeutralNTerm(Te *testing.T) {
	cat := def.NewCatalog()
	p, ala := singleResidue(cat, "ALA")
	opt := Options{NeutralNTerm: map[*pqr.Residue]bool{ala: true}}
	if _, err := Run(p, cat, opt); err != nil {
		Te.Fatal(err)
	}
	if !ala.HasAtom("H1") || !ala.HasAtom("H2") || ala.HasAtom("H3") {
		Te.Errorf("neutral N-terminus should carry H1 and H2 only")
	}
}

func TestNeutralCTerm(Te *testing.T) {
	cat := def.NewCatalog()
	p, ala := singleResidue(cat, "ALA")
	t := cat.Template("ALA")
	oxt := &pqr.Atom{Name: "OXT", Symbol: "O", Coord: t.Coords["OXT"], Occupancy: 1}
	if err := ala.AddAtom(oxt); err != nil {
		Te.Fatal(err)
	}
	if err := pqr.AssignBonds(p); err != nil {
		Te.Fatal(err)
	}
	opt := Options{NeutralCTerm: map[*pqr.Residue]bool{ala: true}}
	if _, err := Run(p, cat, opt); err != nil {
		Te.Fatal(err)
	}
	ho := ala.Atom("HO")
	if ho == nil {
		Te.Fatal("HO missing on a neutral C-terminus")
	}
	if d := geo.Dist(ho.Coord, oxt.Coord); math.Abs(d-0.96) > 1e-6 {
		Te.Errorf("OXT-HO distance %.4f, want 0.96", d)
	}
}

func TestProtonatedAspartate(Te *testing.T) {
	cat := def.NewCatalog()
	p, asp := singleResidue(cat, "ASP")
	asp.State = "ASH"
	if _, err := Run(p, cat, Options{}); err != nil {
		Te.Fatal(err)
	}
	hd2 := asp.Atom("HD2")
	if hd2 == nil {
		Te.Fatal("HD2 missing on protonated aspartate")
	}
	if d := geo.Dist(hd2.Coord, asp.Atom("OD2").Coord); math.Abs(d-0.96) > 1e-6 {
		Te.Errorf("OD2-HD2 distance %.4f, want 0.96", d)
	}
}

func TestHistidineDefaultTautomer(Te *testing.T) {
	cat := def.NewCatalog()
	p, his := singleResidue(cat, "HIS")
	his.StateCandidates = []string{"HID", "HIE"}
	if _, err := Run(p, cat, Options{}); err != nil {
		Te.Fatal(err)
	}
	if his.State != "HIE" || len(his.StateCandidates) != 0 {
		Te.Errorf("state %q candidates %v, want the epsilon default", his.State, his.StateCandidates)
	}
	if his.HasAtom("HD1") || !his.HasAtom("HE2") {
		Te.Errorf("hydrogens do not match the epsilon tautomer")
	}
}

func TestHistidineOptimizedTautomer(Te *testing.T) {
	cat := def.NewCatalog()
	p, his := singleResidue(cat, "HIS")
	his.StateCandidates = []string{"HID", "HIE"}
	//park an acceptor where only a delta proton can donate to it
	t := cat.Template("HIS")
	nd1 := t.Coords["ND1"]
	v1 := geo.Unit(geo.Sub(t.Coords["CG"], nd1))
	v2 := geo.Unit(geo.Sub(t.Coords["CE1"], nd1))
	bis := geo.Unit(geo.Scale(geo.Add(v1, v2), -1))
	lig := &pqr.Residue{Name: "ACP", Number: 2, Class: pqr.Ligand}
	acc := &pqr.Atom{Name: "O1", Symbol: "O", Coord: geo.Add(nd1, geo.Scale(bis, 3.0)), Occupancy: 1, Het: true}
	if err := lig.AddAtom(acc); err != nil {
		Te.Fatal(err)
	}
	p.Chains[0].AddResidue(lig)
	if _, err := Run(p, cat, Options{Optimize: true}); err != nil {
		Te.Fatal(err)
	}
	if his.State != "HID" {
		Te.Errorf("state %q, want the delta tautomer facing the acceptor", his.State)
	}
	if !his.HasAtom("HD1") || his.HasAtom("HE2") {
		Te.Errorf("hydrogens do not match the delta tautomer")
	}
}

func TestHydroxylTurnsTowardAcceptor(Te *testing.T) {
	cat := def.NewCatalog()
	p, ser := singleResidue(cat, "SER")
	//place the acceptor along one of the trial torsions of the hydroxyl
	t := cat.Template("SER")
	trial := geo.PlaceInternal(t.Coords["CA"], t.Coords["CB"], t.Coords["OG"],
		0.96, 109.47*geo.Deg2Rad, 90*geo.Deg2Rad)
	og := t.Coords["OG"]
	accPos := geo.Add(og, geo.Scale(geo.Unit(geo.Sub(trial, og)), 2.9))
	lig := &pqr.Residue{Name: "ACP", Number: 2, Class: pqr.Ligand}
	acc := &pqr.Atom{Name: "O1", Symbol: "O", Coord: accPos, Occupancy: 1, Het: true}
	if err := lig.AddAtom(acc); err != nil {
		Te.Fatal(err)
	}
	p.Chains[0].AddResidue(lig)
	res, err := Run(p, cat, Options{Optimize: true})
	if err != nil {
		Te.Fatal(err)
	}
	if res.Optimized == 0 {
		Te.Fatal("nothing was optimized")
	}
	hg := ser.Atom("HG")
	if hg == nil {
		Te.Fatal("HG missing")
	}
	dd := geo.Dist(ser.Atom("OG").Coord, acc.Coord)
	ang := geo.Angle(ser.Atom("OG").Coord, hg.Coord, acc.Coord) * geo.Rad2Deg
	if dd < 2.5 || dd > 3.3 || ang < 110 {
		Te.Errorf("no hydrogen bond after optimization: donor-acceptor %.2f, angle %.0f", dd, ang)
	}
}

func TestWaterTurnsTowardCarbonyl(Te *testing.T) {
	cat := def.NewCatalog()
	p, ala := singleResidue(cat, "ALA")
	//a water 2.9 A beyond the carbonyl oxygen, on the C=O axis: its
	//aimed hydrogen sits 1.94 A from the acceptor, well inside a normal
	//hydrogen bond
	t := cat.Template("ALA")
	dir := geo.Unit(geo.Sub(t.Coords["O"], t.Coords["C"]))
	wch := &pqr.Chain{ID: "W"}
	wat := &pqr.Residue{Name: "HOH", Number: 100, Class: pqr.Water}
	ow := &pqr.Atom{Name: "O", Symbol: "O", Coord: geo.Add(t.Coords["O"], geo.Scale(dir, 2.9)), Occupancy: 1, Het: true}
	if err := wat.AddAtom(ow); err != nil {
		Te.Fatal(err)
	}
	wch.AddResidue(wat)
	p.Chains = append(p.Chains, wch)
	if _, err := Run(p, cat, Options{Optimize: true}); err != nil {
		Te.Fatal(err)
	}
	carbO := ala.Atom("O")
	h1, h2 := wat.Atom("H1"), wat.Atom("H2")
	if h1 == nil || h2 == nil {
		Te.Fatal("water hydrogens missing")
	}
	a1 := geo.Angle(ow.Coord, h1.Coord, carbO.Coord) * geo.Rad2Deg
	a2 := geo.Angle(ow.Coord, h2.Coord, carbO.Coord) * geo.Rad2Deg
	if a1 < 110 && a2 < 110 {
		Te.Errorf("no water hydrogen donates to the carbonyl: angles %.0f and %.0f", a1, a2)
	}
}

func TestWaterOnly(Te *testing.T) {
	cat := def.NewCatalog()
	//a serine with an acceptor parked on a hydroxyl trial torsion, and a
	//far-away water with its own acceptor: in water-only mode the water
	//must turn and the hydroxyl must not
	t := cat.Template("SER")
	trial := geo.PlaceInternal(t.Coords["CA"], t.Coords["CB"], t.Coords["OG"],
		0.96, 109.47*geo.Deg2Rad, 90*geo.Deg2Rad)
	og := t.Coords["OG"]
	serAcc := geo.Add(og, geo.Scale(geo.Unit(geo.Sub(trial, og)), 2.9))
	build := func() (*pqr.Protein, *pqr.Residue, *pqr.Residue, *pqr.Atom) {
		ch := &pqr.Chain{ID: "A"}
		ser := residueFromTemplate(cat, "SER", 1, geo.Vec{})
		ch.AddResidue(ser)
		lig := &pqr.Residue{Name: "ACP", Number: 2, Class: pqr.Ligand}
		if err := lig.AddAtom(&pqr.Atom{Name: "O1", Symbol: "O", Coord: serAcc, Occupancy: 1, Het: true}); err != nil {
			Te.Fatal(err)
		}
		ch.AddResidue(lig)
		wch := &pqr.Chain{ID: "W"}
		wat := &pqr.Residue{Name: "HOH", Number: 100, Class: pqr.Water}
		if err := wat.AddAtom(&pqr.Atom{Name: "O", Symbol: "O", Coord: geo.Vec{20, 0, 0}, Occupancy: 1, Het: true}); err != nil {
			Te.Fatal(err)
		}
		wch.AddResidue(wat)
		wlig := &pqr.Residue{Name: "ACP", Number: 101, Class: pqr.Ligand}
		acc := &pqr.Atom{Name: "O1", Symbol: "O", Coord: geo.Vec{20, 0, 2.9}, Occupancy: 1, Het: true}
		if err := wlig.AddAtom(acc); err != nil {
			Te.Fatal(err)
		}
		wch.AddResidue(wlig)
		p := &pqr.Protein{Chains: []*pqr.Chain{ch, wch}}
		if err := pqr.AssignBonds(p); err != nil {
			Te.Fatal(err)
		}
		return p, ser, wat, acc
	}
	//reference run with no optimization at all
	p0, ser0, _, _ := build()
	if _, err := Run(p0, cat, Options{}); err != nil {
		Te.Fatal(err)
	}
	p, ser, wat, acc := build()
	res, err := Run(p, cat, Options{WaterOnly: true})
	if err != nil {
		Te.Fatal(err)
	}
	//hydrogen addition still covers the protein
	hg := ser.Atom("HG")
	if hg == nil {
		Te.Fatal("serine got no hydroxyl hydrogen")
	}
	if hg.Coord != ser0.Atom("HG").Coord {
		Te.Error("a non-water hydrogen moved in water-only mode")
	}
	h1, h2 := wat.Atom("H1"), wat.Atom("H2")
	if h1 == nil || h2 == nil {
		Te.Fatal("water hydrogens missing")
	}
	ow := wat.Atom("O")
	ang := geo.Angle(h1.Coord, ow.Coord, h2.Coord) * geo.Rad2Deg
	if math.Abs(ang-104.5) > 1 {
		Te.Errorf("H-O-H angle %.1f, want 104.5", ang)
	}
	if res.Optimized == 0 {
		Te.Fatal("the water was not optimized")
	}
	//the water turned toward its acceptor
	best := geo.Dist(h1.Coord, acc.Coord)
	if d := geo.Dist(h2.Coord, acc.Coord); d < best {
		best = d
	}
	if best > 2.1 {
		Te.Errorf("nearest water hydrogen %.2f from the acceptor, want it aimed there", best)
	}
}

func TestRunDeterminism(Te *testing.T) {
	build := func() (*pqr.Protein, *pqr.Residue) {
		cat := def.NewCatalog()
		p, ser := singleResidue(cat, "SER")
		if _, err := Run(p, cat, Options{Optimize: true}); err != nil {
			Te.Fatal(err)
		}
		return p, ser
	}
	_, a := build()
	_, b := build()
	if len(a.Atoms) != len(b.Atoms) {
		Te.Fatalf("atom counts differ: %d vs %d", len(a.Atoms), len(b.Atoms))
	}
	for i := range a.Atoms {
		if a.Atoms[i].Name != b.Atoms[i].Name || a.Atoms[i].Coord != b.Atoms[i].Coord {
			Te.Errorf("atom %s differs between identical runs", a.Atoms[i].Name)
		}
	}
}

func TestAmideFlip(Te *testing.T) {
	cat := def.NewCatalog()
	p, r := singleResidue(cat, "ASN")
	if _, err := Run(p, cat, Options{}); err != nil {
		Te.Fatal(err)
	}
	cand := amideCandidate(r, "OD1", "ND2", "HD21", "HD22", "CB", "CG")
	if cand == nil {
		Te.Fatal("no amide candidate for asparagine")
	}
	if len(cand.alts) != 2 {
		Te.Fatalf("want 2 amide orientations, got %d", len(cand.alts))
	}
	cg := r.Atom("CG")
	ox := r.Atom("OD1")
	n := r.Atom("ND2")
	h1 := r.Atom("HD21")
	//the flip is rigid, bonded distances survive it
	if math.Abs(geo.Dist(cand.heavyAlt[1], cg.Coord)-geo.Dist(n.Coord, cg.Coord)) > 1e-9 {
		Te.Error("flip distorted the N-CG bond")
	}
	if math.Abs(geo.Dist(cand.alts[1][0], cand.heavyAlt[1])-geo.Dist(h1.Coord, n.Coord)) > 1e-9 {
		Te.Error("flip distorted the H-N bond")
	}
	oldO, oldN := ox.Coord, n.Coord
	cand.best = 1
	o := &optimizer{p: p, opt: Options{Optimize: true}, res: new(Result),
		phase: scored, cands: []*candidate{cand}}
	o.selectBest()
	if geo.Dist(ox.Coord, oldO) < 0.5 || geo.Dist(n.Coord, oldN) < 0.5 {
		Te.Error("winning flip did not move the amide heavies")
	}
	if geo.Dist(h1.Coord, n.Coord) > 1.2 {
		Te.Errorf("flipped hydrogen left its nitrogen: %.2f", geo.Dist(h1.Coord, n.Coord))
	}
	if ox.Name != "OD1" || n.Name != "ND2" {
		Te.Error("a flip moves coordinates, it never renames atoms")
	}
	if o.res.Optimized != 1 {
		Te.Errorf("want 1 optimized group, got %d", o.res.Optimized)
	}
}
