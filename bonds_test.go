/*
 * bonds_test.go, part of pqr.
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

package pqr

import (
	"testing"

	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

func bondCount(p *Protein) int {
	n := 0
	for _, a := range p.Atoms() {
		n += len(a.Bonds)
	}
	return n / 2
}

func TestAssignBondsTripeptide(Te *testing.T) {
	p, err := PDBFileRead("test/tripep.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if err := AssignBonds(p); err != nil {
		Te.Fatal(err)
	}
	//15 covalent pairs: the residue-internal ones plus the two peptide links
	if got := bondCount(p); got != 15 {
		Te.Errorf("%d bonds, want 15", got)
	}
	ala := p.Chains[0].Residues[0]
	gly := p.Chains[0].Residues[1]
	if !ala.Atom("C").Bonded(gly.Atom("N")) {
		Te.Error("peptide bond missing between residues 1 and 2")
	}
	if ala.Atom("N").Bonded(gly.Atom("N")) {
		Te.Error("non-bonded atoms connected")
	}
	if !ala.Atom("N").OneThree(ala.Atom("C")) {
		Te.Error("N and C of one residue should be a 1-3 pair through CA")
	}
	//waters are isolated single atoms
	for _, r := range p.Chain("A'").Residues {
		if len(r.Atoms[0].Bonds) != 0 {
			Te.Error("lone water oxygen should have no bonds")
		}
	}
}

func TestAssignBondsIsIdempotent(Te *testing.T) {
	p, err := PDBFileRead("test/tripep.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if err := AssignBonds(p); err != nil {
		Te.Fatal(err)
	}
	first := bondCount(p)
	if err := AssignBonds(p); err != nil {
		Te.Fatal(err)
	}
	if got := bondCount(p); got != first {
		Te.Errorf("bond count changed from %d to %d on reassignment", first, got)
	}
}

func TestConnect(Te *testing.T) {
	a1 := &Atom{Name: "SG", Symbol: "S"}
	a2 := &Atom{Name: "SG", Symbol: "S", Coord: geo.Vec{2, 0, 0}}
	b := Connect(a1, a2)
	if b.Index != -1 {
		Te.Error("explicit bonds carry index -1")
	}
	if !a1.Bonded(a2) {
		Te.Error("atoms not bonded after Connect")
	}
	if again := Connect(a1, a2); again != b {
		Te.Error("connecting twice must reuse the existing bond")
	}
	if b.Cross(a1) != a2 || b.Cross(a2) != a1 {
		Te.Error("bond does not cross to the other atom")
	}
}
