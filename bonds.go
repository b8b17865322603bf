/*
 * bonds.go, part of pqr.
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
	"sort"

	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Bond joins two atoms. Order is not tracked; the pipeline only needs
//connectivity.
type Bond struct {
	Index int
	At1   *Atom
	At2   *Atom
	Dist  float64
}

//Cross returns the atom of the bond that is not origin. Asking with an atom
//that is not part of the bond is a programming error and panics.
func (b *Bond) Cross(origin *Atom) *Atom {
	if origin == b.At1 {
		return b.At2
	}
	if origin == b.At2 {
		return b.At1
	}
	panic("pqr: trying to cross a bond from an atom not present in it")
}

func newBond(index int, a1, a2 *Atom, dist float64) *Bond {
	b := &Bond{Index: index, At1: a1, At2: a2, Dist: dist}
	a1.Bonds = append(a1.Bonds, b)
	a2.Bonds = append(a2.Bonds, b)
	return b
}

//AssignBonds infers the bonds of the whole structure from a covalent-radius
//distance criterion similar to DOI:10.1186/1758-2946-3-33, restricted to
//atoms of the same residue plus the backbone links between consecutive
//residues of a chain (peptide C-N, nucleic O3'-P). Bonds found earlier are
//discarded first. Atoms with an element missing from the covalent radius
//table are skipped and reported in the returned error; bonding proceeds for
//everyone else.
func AssignBonds(p *Protein) error {
	for _, a := range p.Atoms() {
		a.Bonds = nil
	}
	var unknown []*Atom
	nextIndex := 0
	for _, c := range p.Chains {
		var prev *Residue
		for _, r := range c.Residues {
			nextIndex = bondResidue(r, nextIndex, &unknown)
			if prev != nil {
				nextIndex = bondBackbone(prev, r, nextIndex)
			}
			prev = r
		}
	}
	pruneOverbonded(p)
	if len(unknown) > 0 {
		err := errorf("no covalent radius for %d atoms, first: %v", len(unknown), unknown[0])
		err.Decorate("AssignBonds")
		return err
	}
	return nil
}

func bondResidue(r *Residue, nextIndex int, unknown *[]*Atom) int {
	for i := 0; i < len(r.Atoms); i++ {
		at1 := r.Atoms[i]
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			*unknown = appendOnce(*unknown, at1)
			continue
		}
		for j := i + 1; j < len(r.Atoms); j++ {
			at2 := r.Atoms[j]
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				*unknown = appendOnce(*unknown, at2)
				continue
			}
			d := geo.Dist(at1.Coord, at2.Coord)
			if d < cov1+cov2+bondtol && d > tooclose {
				newBond(nextIndex, at1, at2, d)
				nextIndex++
			}
		}
	}
	return nextIndex
}

//bondBackbone links two consecutive residues of a chain through their
//backbone, if the geometry supports it.
func bondBackbone(prev, cur *Residue, nextIndex int) int {
	var a1, a2 *Atom
	switch {
	case prev.Class == Amino && cur.Class == Amino:
		a1, a2 = prev.Atom("C"), cur.Atom("N")
	case prev.Class == Nucleic && cur.Class == Nucleic:
		a1, a2 = prev.Atom("O3'"), cur.Atom("P")
	}
	if a1 == nil || a2 == nil {
		return nextIndex
	}
	cov := symbolCovrad[a1.Symbol] + symbolCovrad[a2.Symbol] + bondtol
	d := geo.Dist(a1.Coord, a2.Coord)
	if d < cov && d > tooclose && !a1.Bonded(a2) {
		newBond(nextIndex, a1, a2, d)
		nextIndex++
	}
	return nextIndex
}

//Connect adds an explicit bond between two atoms, unless one already
//exists. Explicit bonds carry index -1; they come from template
//connectivity or disulfide detection rather than the distance criterion.
func Connect(a1, a2 *Atom) *Bond {
	if a1.Bonded(a2) {
		for _, b := range a1.Bonds {
			if b.Cross(a1) == a2 {
				return b
			}
		}
	}
	return newBond(-1, a1, a2, geo.Dist(a1.Coord, a2.Coord))
}

//pruneOverbonded removes the longest bonds of any atom exceeding the
//maximum bond count for its element.
func pruneOverbonded(p *Protein) {
	for _, at := range p.Atoms() {
		max := symbolMaxBonds[at.Symbol]
		if max == 0 {
			continue
		}
		sort.Slice(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		for len(at.Bonds) > max {
			b := at.Bonds[len(at.Bonds)-1]
			other := b.Cross(at)
			at.Bonds = at.Bonds[:len(at.Bonds)-1]
			other.Bonds = dropBond(other.Bonds, b)
		}
	}
}

func appendOnce(list []*Atom, a *Atom) []*Atom {
	for _, v := range list {
		if v == a {
			return list
		}
	}
	return append(list, a)
}
