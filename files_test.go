/*
 * files_test.go, part of pqr.
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
	"bytes"
	"strings"
	"testing"

	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

func TestPDBFileRead(Te *testing.T) {
	p, err := PDBFileRead("test/tripep.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if p.NumAtoms() != 18 || p.NumResidues() != 5 {
		Te.Fatalf("%d atoms in %d residues, want 18 in 5", p.NumAtoms(), p.NumResidues())
	}
	if len(p.Chains) != 2 {
		Te.Fatalf("%d chains, want the peptide chain and the post-TER water chain", len(p.Chains))
	}
	pep := p.Chain("A")
	if pep == nil || len(pep.Residues) != 3 {
		Te.Fatal("peptide chain not read as three residues")
	}
	if pep.NTerm().Name != "ALA" || pep.CTerm().Name != "SER" {
		Te.Errorf("termini %s/%s, want ALA/SER", pep.NTerm().Name, pep.CTerm().Name)
	}
	wat := p.Chain("A'")
	if wat == nil || len(wat.Residues) != 2 {
		Te.Fatal("post-TER waters not split into their own chain")
	}
	for _, r := range wat.Residues {
		if r.Class != Water || !r.Atoms[0].Het {
			Te.Errorf("%v read as class %v het %v, want a water heteroatom", r, r.Class, r.Atoms[0].Het)
		}
	}
	cb := pep.Residues[0].Atom("CB")
	if cb == nil || cb.Symbol != "C" {
		Te.Error("ALA CB not read with its element")
	}
	if cb.Coord != (geo.Vec{1.991, 1.433, -0.050}) {
		Te.Errorf("CB at %v, coordinates were not parsed exactly", cb.Coord)
	}
}

func TestChainSequence(Te *testing.T) {
	p, err := PDBFileRead("test/tripep.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if seq := p.Chain("A").Sequence(); seq != "AGS" {
		Te.Errorf("peptide sequence %q, want AGS", seq)
	}
	if seq := p.Chain("A'").Sequence(); seq != "" {
		Te.Errorf("water chain got the sequence %q", seq)
	}
}

func TestPDBFileReadGzip(Te *testing.T) {
	plain, err := PDBFileRead("test/tripep.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	gz, err := PDBFileRead("test/tripep.pdb.gz")
	if err != nil {
		Te.Fatal(err)
	}
	if gz.NumAtoms() != plain.NumAtoms() || gz.NumResidues() != plain.NumResidues() {
		Te.Error("compressed and plain reads disagree")
	}
}

func TestPDBReadAltLoc(Te *testing.T) {
	in := `ATOM      1  N   ALA A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA AALA A   1       1.458   0.000   0.000  0.60  0.00           C
ATOM      3  CA BALA A   1       1.500   0.100   0.000  0.40  0.00           C
END
`
	p, err := PDBRead(strings.NewReader(in))
	if err != nil {
		Te.Fatal(err)
	}
	r := p.Chains[0].Residues[0]
	if len(r.Atoms) != 2 {
		Te.Fatalf("%d atoms, want 2 (the duplicate location dropped)", len(r.Atoms))
	}
	ca := r.Atom("CA")
	if ca.Coord[0] != 1.458 {
		Te.Error("the first location must win")
	}
	if ca.AltLoc != "B" {
		Te.Error("the kept atom should remember the conflicting location")
	}
}

func TestPDBReadEmpty(Te *testing.T) {
	if _, err := PDBRead(strings.NewReader("HEADER  NOTHING\n")); err == nil {
		Te.Error("an input without coordinates must fail")
	}
}

func assignedResidue() (*Protein, *Residue) {
	r := &Residue{Name: "GLY", Number: 1, Class: Amino}
	for i, spec := range []struct {
		name, sym string
		q, rad    float64
	}{
		{"N", "N", -0.40, 1.5},
		{"CA", "C", 0.25, 1.7},
	} {
		r.AddAtom(&Atom{
			Serial: i + 1, Name: spec.name, Symbol: spec.sym,
			Coord: geo.Vec{float64(i), 0, 0}, Occupancy: 1,
			Charge: spec.q, Radius: spec.rad, Assigned: true,
		})
	}
	ch := &Chain{ID: "A"}
	ch.AddResidue(r)
	return &Protein{Chains: []*Chain{ch}}, r
}

func TestPQRWrite(Te *testing.T) {
	p, _ := assignedResidue()
	var b bytes.Buffer
	header := "REMARK   1 PQR file generated by apbs-pdb2pqr\n"
	if err := PQRWrite(&b, p, header, PQROptions{AssignedOnly: true}); err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if lines[0] != strings.TrimRight(header, "\n") {
		Te.Error("header not written first")
	}
	if lines[len(lines)-1] != "END" || lines[len(lines)-2] != "TER" {
		Te.Error("records not closed with TER and END")
	}
	atom := lines[1]
	fields := strings.Fields(atom)
	if len(fields) != 10 {
		Te.Fatalf("%d fields in %q, want 10", len(fields), atom)
	}
	if fields[0] != "ATOM" || fields[2] != "N" || fields[3] != "GLY" {
		Te.Errorf("unexpected record %q", atom)
	}
	if fields[8] != "-0.4000" || fields[9] != "1.5000" {
		Te.Errorf("charge/radius fields %s/%s, want -0.4000/1.5000", fields[8], fields[9])
	}
}

func TestPQRWriteSkipsUnassigned(Te *testing.T) {
	p, r := assignedResidue()
	r.AddAtom(&Atom{Serial: 3, Name: "C", Symbol: "C", Coord: geo.Vec{2, 0, 0}, Occupancy: 1})
	var b bytes.Buffer
	if err := PQRWrite(&b, p, "", PQROptions{AssignedOnly: true}); err != nil {
		Te.Fatal(err)
	}
	if strings.Contains(b.String(), " C  ") {
		Te.Error("unassigned atom written despite AssignedOnly")
	}
}

func TestPQRWriteChainAndWhitespace(Te *testing.T) {
	p, _ := assignedResidue()
	var b bytes.Buffer
	if err := PQRWrite(&b, p, "", PQROptions{KeepChain: true, Whitespace: true, AssignedOnly: true}); err != nil {
		Te.Fatal(err)
	}
	fields := strings.Fields(strings.Split(b.String(), "\n")[0])
	//the chain ID becomes its own field: ATOM serial name res chain num x y z q r
	if len(fields) != 11 || fields[4] != "A" {
		Te.Errorf("chain column missing in %q", b.String())
	}
}

func TestPDBWriteRoundTrip(Te *testing.T) {
	p, err := PDBFileRead("test/tripep.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	var b bytes.Buffer
	if err := PDBWrite(&b, p); err != nil {
		Te.Fatal(err)
	}
	back, err := PDBRead(bytes.NewReader(b.Bytes()))
	if err != nil {
		Te.Fatal(err)
	}
	if back.NumAtoms() != p.NumAtoms() || back.NumResidues() != p.NumResidues() {
		Te.Fatalf("round trip changed the model: %d/%d atoms, %d/%d residues",
			back.NumAtoms(), p.NumAtoms(), back.NumResidues(), p.NumResidues())
	}
	orig := p.Atoms()
	for i, a := range back.Atoms() {
		if a.Name != orig[i].Name || a.Coord != orig[i].Coord {
			Te.Errorf("atom %d differs after the round trip", i)
		}
	}
}
