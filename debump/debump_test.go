/*
 * debump_test.go, part of pqr.
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

package debump

import (
	"testing"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

func residueFromTemplate(cat *def.Catalog, name string, num int) *pqr.Residue {
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
		if err := r.AddAtom(&pqr.Atom{Name: a.Name, Symbol: sym, Coord: c, Occupancy: 1}); err != nil {
			panic(err)
		}
	}
	return r
}

func waterAt(coord geo.Vec, num int) *pqr.Residue {
	r := &pqr.Residue{Name: "HOH", Number: num, Class: pqr.Water}
	r.AddAtom(&pqr.Atom{Name: "O", Symbol: "O", Coord: coord, Occupancy: 1})
	return r
}

func TestCleanStructureIsFixedPoint(Te *testing.T) {
	cat := def.NewCatalog()
	ch := &pqr.Chain{ID: "A"}
	lys := residueFromTemplate(cat, "LYS", 1)
	ch.AddResidue(lys)
	p := &pqr.Protein{Chains: []*pqr.Chain{ch}}
	if err := pqr.AssignBonds(p); err != nil {
		Te.Fatal(err)
	}
	before := make([]geo.Vec, 0)
	for _, a := range p.Atoms() {
		before = append(before, a.Coord)
	}
	res, err := Run(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res.Moved) != 0 {
		Te.Errorf("clean structure moved %d residues", len(res.Moved))
	}
	if len(res.Remaining) != 0 {
		Te.Errorf("clean structure reports %d clashes", len(res.Remaining))
	}
	for i, a := range p.Atoms() {
		if geo.Dist(a.Coord, before[i]) > 0 {
			Te.Fatalf("atom %v moved in a clean structure", a)
		}
	}
}

func clashSetup(cat *def.Catalog) (*pqr.Protein, *pqr.Residue) {
	ch := &pqr.Chain{ID: "A"}
	lys := residueFromTemplate(cat, "LYS", 1)
	ch.AddResidue(lys)
	//park a water just off the amine nitrogen; rotating the side chain
	//away relieves it
	nz := lys.Atom("NZ").Coord
	w := &pqr.Chain{ID: "W"}
	w.AddResidue(waterAt(geo.Add(nz, geo.Vec{0.5, 0, 0}), 101))
	p := &pqr.Protein{Chains: []*pqr.Chain{ch, w}}
	if err := pqr.AssignBonds(p); err != nil {
		panic(err)
	}
	return p, lys
}

func TestRelieveClash(Te *testing.T) {
	cat := def.NewCatalog()
	p, lys := clashSetup(cat)
	if len(Clashes(p)) == 0 {
		Te.Fatal("setup produced no clash")
	}
	res, err := Run(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res.Remaining) != 0 {
		Te.Fatalf("clash not relieved: %v", res.Remaining)
	}
	if res.Moved[lys] == 0 {
		Te.Error("the lysine side chain did not move")
	}
	//the backbone must never move
	t := cat.Template("LYS")
	for _, name := range []string{"N", "CA", "C", "O", "CB"} {
		if geo.Dist(lys.Atom(name).Coord, t.Coords[name]) > 0 {
			Te.Errorf("backbone atom %s moved", name)
		}
	}
}

func TestDeterminism(Te *testing.T) {
	cat := def.NewCatalog()
	p1, _ := clashSetup(cat)
	p2, _ := clashSetup(cat)
	if _, err := Run(p1); err != nil {
		Te.Fatal(err)
	}
	if _, err := Run(p2); err != nil {
		Te.Fatal(err)
	}
	a1 := p1.Atoms()
	a2 := p2.Atoms()
	for i := range a1 {
		if geo.Dist(a1[i].Coord, a2[i].Coord) > 0 {
			Te.Fatalf("runs diverged at atom %v", a1[i])
		}
	}
}

func TestRunIsIdempotent(Te *testing.T) {
	cat := def.NewCatalog()
	p, _ := clashSetup(cat)
	if _, err := Run(p); err != nil {
		Te.Fatal(err)
	}
	before := make([]geo.Vec, 0)
	for _, a := range p.Atoms() {
		before = append(before, a.Coord)
	}
	res, err := Run(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res.Moved) != 0 {
		Te.Error("second run moved residues again")
	}
	for i, a := range p.Atoms() {
		if geo.Dist(a.Coord, before[i]) > 0 {
			Te.Fatal("second run changed coordinates")
		}
	}
}

func TestWorstClashReportedFirst(Te *testing.T) {
	//waters have no side chain to rotate, so both clashes stay
	w := &pqr.Chain{ID: "W"}
	w.AddResidue(waterAt(geo.Vec{0, 0, 0}, 101))
	w.AddResidue(waterAt(geo.Vec{2.2, 0, 0}, 102))
	w.AddResidue(waterAt(geo.Vec{50, 0, 0}, 103))
	w.AddResidue(waterAt(geo.Vec{51, 0, 0}, 104))
	p := &pqr.Protein{Chains: []*pqr.Chain{w}}
	if err := pqr.AssignBonds(p); err != nil {
		Te.Fatal(err)
	}
	res, err := Run(p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res.Remaining) != 2 {
		Te.Fatalf("%d clashes remain, want 2", len(res.Remaining))
	}
	if res.Remaining[0].A1.Residue.Number != 103 {
		Te.Errorf("first reported clash is %v, want the deeper pair", res.Remaining[0])
	}
	if res.Remaining[0].Depth() < res.Remaining[1].Depth() {
		Te.Error("warnings not ordered by penetration depth")
	}
}

func TestBondedPairsAreNotClashes(Te *testing.T) {
	a1 := &pqr.Atom{Name: "C1", Symbol: "C", Coord: geo.Vec{0, 0, 0}}
	a2 := &pqr.Atom{Name: "C2", Symbol: "C", Coord: geo.Vec{1.5, 0, 0}}
	if !TooClose(a1, a2) {
		Te.Fatal("unbonded atoms 1.5 apart should clash")
	}
	pqr.Connect(a1, a2)
	if TooClose(a1, a2) {
		Te.Error("bonded atoms reported as a clash")
	}
}
