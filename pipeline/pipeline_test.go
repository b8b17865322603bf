/*
 * pipeline_test.go, part of pqr.
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

package pipeline

import (
	"math"
	"strings"
	"testing"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

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

func alanine(cat *def.Catalog) *pqr.Protein {
	ch := &pqr.Chain{ID: "A"}
	ch.AddResidue(residueFromTemplate(cat, "ALA", 1, geo.Vec{}))
	return &pqr.Protein{Chains: []*pqr.Chain{ch}}
}

func TestValidate(Te *testing.T) {
	good := Default()
	if err := good.Validate(); err != nil {
		Te.Errorf("default configuration rejected: %v", err)
	}
	for _, bad := range []Config{
		{Forcefield: "charmm36", PH: 7},
		{Forcefield: "parse", PH: -1},
		{Forcefield: "parse", PH: 15},
		{Forcefield: "parse", PH: 7, NamingScheme: "gromos"},
		{Forcefield: "amber", PH: 7, NeutralN: true},
		{Forcefield: "amber", PH: 7, NeutralC: true},
	} {
		if err := bad.Validate(); err == nil {
			Te.Errorf("configuration %+v should not validate", bad)
		}
	}
	clean := Config{Clean: true}
	if err := clean.Validate(); err != nil {
		Te.Errorf("a clean run needs no valid stage setup: %v", err)
	}
}

func TestEmptyStructure(Te *testing.T) {
	cat := def.NewCatalog()
	p := &pqr.Protein{Chains: []*pqr.Chain{{ID: "A"}}}
	if _, err := Run(p, cat, Default()); err == nil {
		Te.Error("an empty structure must abort the run")
	}
}

func TestCleanBypass(Te *testing.T) {
	cat := def.NewCatalog()
	p := alanine(cat)
	before := p.NumAtoms()
	res, err := Run(p, cat, Config{Clean: true})
	if err != nil {
		Te.Fatal(err)
	}
	if p.NumAtoms() != before {
		Te.Error("a clean run must not touch the structure")
	}
	for _, a := range p.Atoms() {
		if a.Assigned {
			Te.Error("a clean run must not assign parameters")
		}
	}
	if res.Header(Config{Clean: true}) != "" {
		Te.Error("a clean run writes no diagnostics header")
	}
}

func TestFullRunAlanine(Te *testing.T) {
	cat := def.NewCatalog()
	p := alanine(cat)
	res, err := Run(p, cat, Default())
	if err != nil {
		Te.Fatal(err)
	}
	ala := p.Chains[0].Residues[0]
	if !ala.HasAtom("OXT") {
		Te.Error("the carboxy terminus was not completed")
	}
	for _, name := range []string{"H1", "H2", "H3", "HA", "HB1", "HB2", "HB3"} {
		if !ala.HasAtom(name) {
			Te.Errorf("hydrogen %s missing after the full run", name)
		}
	}
	for _, a := range p.Atoms() {
		if !a.Assigned {
			Te.Errorf("atom %s left without parameters", a.Name)
		}
	}
	//charged amino terminus and charged carboxy terminus cancel
	if math.Abs(res.TotalCharge) > 1e-3 {
		Te.Errorf("total charge %.4f, want 0", res.TotalCharge)
	}
	if len(res.MissedAtoms) != 0 || len(res.NonIntegral) != 0 {
		Te.Errorf("misses %d, non-integral %d, want none", len(res.MissedAtoms), len(res.NonIntegral))
	}
}

func TestNeutralTermini(Te *testing.T) {
	cat := def.NewCatalog()
	p := alanine(cat)
	cfg := Default()
	cfg.NeutralN = true
	cfg.NeutralC = true
	res, err := Run(p, cat, cfg)
	if err != nil {
		Te.Fatal(err)
	}
	ala := p.Chains[0].Residues[0]
	if ala.HasAtom("H3") {
		Te.Error("H3 present on a neutral amino terminus")
	}
	if !ala.HasAtom("HO") {
		Te.Error("HO missing on a neutral carboxy terminus")
	}
	if math.Abs(res.TotalCharge) > 1e-3 {
		Te.Errorf("total charge %.4f, want 0", res.TotalCharge)
	}
}

func TestAssignOnly(Te *testing.T) {
	cat := def.NewCatalog()
	ch := &pqr.Chain{ID: "A"}
	ch.AddResidue(residueFromTemplate(cat, "ALA", 1, geo.Vec{}))
	ch.AddResidue(residueFromTemplate(cat, "HIS", 2, geo.Vec{8, 0, 0}))
	p := &pqr.Protein{Chains: []*pqr.Chain{ch}}
	before := p.NumAtoms()
	cfg := Default()
	cfg.AssignOnly = true
	if _, err := Run(p, cat, cfg); err != nil {
		Te.Fatal(err)
	}
	if p.NumAtoms() != before {
		Te.Error("assign-only must not add or remove atoms")
	}
	if his := ch.Residues[1]; his.StateName() != "HIP" {
		Te.Errorf("HIS state %q in assign-only mode, want HIP", his.StateName())
	}
	if n := ch.Residues[0].Atom("N"); n == nil || !n.Assigned {
		Te.Error("backbone atoms should still be parameterized")
	}
}

func TestDropWater(Te *testing.T) {
	cat := def.NewCatalog()
	p := alanine(cat)
	wch := &pqr.Chain{ID: "W"}
	wat := &pqr.Residue{Name: "HOH", Number: 50, Class: pqr.Water}
	if err := wat.AddAtom(&pqr.Atom{Name: "O", Symbol: "O", Coord: geo.Vec{15, 0, 0}, Occupancy: 1, Het: true}); err != nil {
		Te.Fatal(err)
	}
	wch.AddResidue(wat)
	p.Chains = append(p.Chains, wch)
	cfg := Default()
	cfg.DropWater = true
	if _, err := Run(p, cat, cfg); err != nil {
		Te.Fatal(err)
	}
	if len(p.Chains) != 1 {
		Te.Fatalf("%d chains left, want the protein chain only", len(p.Chains))
	}
	for _, r := range p.Residues() {
		if r.Class == pqr.Water {
			Te.Error("water residue survived a drop-water run")
		}
	}
}

func TestHeader(Te *testing.T) {
	cat := def.NewCatalog()
	p := alanine(cat)
	cfg := Default()
	res, err := Run(p, cat, cfg)
	if err != nil {
		Te.Fatal(err)
	}
	h := res.Header(cfg)
	if !strings.Contains(h, "Forcefield used: PARSE") {
		Te.Error("header does not name the force field")
	}
	if !strings.Contains(h, "Total charge") {
		Te.Error("header does not report the total charge")
	}
}
