/*
 * debump.go, part of pqr.
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

//Package debump relieves steric clashes by rotating amino-acid side chains
//about the CA-CB axis. Candidate rotations are searched on a fixed 30
//degree grid, so a given input always produces the same output. Clashes the
//grid cannot relieve are reported, never silently kept.
package debump

import (
	"fmt"
	"sort"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

const (
	//fraction of the van der Waals contact distance below which two
	//non-bonded atoms are a clash
	clashFactor = 0.75
	//hydrogen positions are soft; don't let their small radii hide real
	//contacts
	hFloorRad = 1.0
	//the rotation grid: steps of 360/torsionSteps degrees
	torsionSteps = 12
	//give up after this many passes over the structure
	maxPasses = 10
)

//Clash is one pair of non-bonded atoms closer than their clash limit.
type Clash struct {
	A1, A2 *pqr.Atom
	Dist   float64
	Limit  float64
}

func (c Clash) String() string {
	return fmt.Sprintf("%v too close to %v (%.2f, limit %.2f)", c.A1, c.A2, c.Dist, c.Limit)
}

//Depth is how far the pair sits inside the clash limit.
func (c Clash) Depth() float64 { return c.Limit - c.Dist }

//TooClose reports whether two atoms clash: closer than clashFactor times
//the sum of their van der Waals radii, unless they are bonded or share a
//bonded neighbor.
func TooClose(a1, a2 *pqr.Atom) bool {
	d, limit := contact(a1, a2)
	if d >= limit {
		return false
	}
	return !a1.Bonded(a2) && !a1.OneThree(a2)
}

func contact(a1, a2 *pqr.Atom) (dist, limit float64) {
	r1 := vdw(a1)
	r2 := vdw(a2)
	return geo.Dist(a1.Coord, a2.Coord), clashFactor * (r1 + r2)
}

func vdw(a *pqr.Atom) float64 {
	r := pqr.VdwRad(a.Symbol)
	if a.IsHydrogen() && r < hFloorRad {
		r = hFloorRad
	}
	return r
}

//Clashes runs a full clash census over the structure, in canonical atom
//order.
func Clashes(p *pqr.Protein) []Clash {
	atoms := p.Atoms()
	var ret []Clash
	for i := 0; i < len(atoms); i++ {
		for j := i + 1; j < len(atoms); j++ {
			if atoms[i].Residue == atoms[j].Residue {
				continue //intra-residue geometry is template business
			}
			d, limit := contact(atoms[i], atoms[j])
			if d < limit && !atoms[i].Bonded(atoms[j]) && !atoms[i].OneThree(atoms[j]) {
				ret = append(ret, Clash{A1: atoms[i], A2: atoms[j], Dist: d, Limit: limit})
			}
		}
	}
	return ret
}

//Result reports what a debump run did.
type Result struct {
	//residues that were rotated, with the applied angle in degrees
	Moved map[*pqr.Residue]float64
	//clashes left after the final pass
	Remaining []Clash
	Passes    int
	Warnings  []string
}

//Run relieves clashes in place. Side chains of clashing amino-acid residues
//are rotated about their CA-CB axis to the grid angle with the fewest
//clashes, breaking ties by total penetration depth and then in favor of the
//smaller rotation, so an already-clean structure is a fixed point. Passes
//repeat until nothing improves or the pass budget runs out.
func Run(p *pqr.Protein) (*Result, error) {
	res := &Result{Moved: make(map[*pqr.Residue]float64)}
	for pass := 1; pass <= maxPasses; pass++ {
		res.Passes = pass
		clashes := Clashes(p)
		if len(clashes) == 0 {
			break
		}
		improved := false
		for _, r := range clashingResidues(clashes) {
			if rotated, angle := relieve(p, r); rotated {
				res.Moved[r] += angle
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	res.Remaining = Clashes(p)
	//worst offender first
	sort.SliceStable(res.Remaining, func(i, j int) bool {
		return res.Remaining[i].Depth() > res.Remaining[j].Depth()
	})
	for _, c := range res.Remaining {
		res.Warnings = append(res.Warnings, "unresolved: "+c.String())
	}
	return res, nil
}

//clashingResidues lists the residues involved in the clashes, in canonical
//order, each once.
func clashingResidues(clashes []Clash) []*pqr.Residue {
	seen := make(map[*pqr.Residue]int)
	var order []*pqr.Residue
	for _, c := range clashes {
		for _, a := range []*pqr.Atom{c.A1, c.A2} {
			r := a.Residue
			if r == nil || r.Class != pqr.Amino || !r.HasAtom("CB") {
				continue
			}
			if _, ok := seen[r]; !ok {
				seen[r] = len(order)
				order = append(order, r)
			}
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return seen[order[i]] < seen[order[j]] })
	return order
}

//sideChain returns the atoms that move when the residue rotates about
//CA-CB: everything that is neither backbone nor the axis atoms themselves.
func sideChain(r *pqr.Residue) []*pqr.Atom {
	var ret []*pqr.Atom
	for _, a := range r.Atoms {
		if a.IsBackbone() || a.Name == "CB" {
			continue
		}
		ret = append(ret, a)
	}
	return ret
}

//relieve tries the rotation grid on one residue and applies the best
//angle. Returns whether anything moved and by how much.
func relieve(p *pqr.Protein, r *pqr.Residue) (bool, float64) {
	ca := r.Atom("CA")
	cb := r.Atom("CB")
	side := sideChain(r)
	if ca == nil || cb == nil || len(side) == 0 {
		return false, 0
	}
	orig := make([]geo.Vec, len(side))
	for i, a := range side {
		orig[i] = a.Coord
	}
	bestAngle := 0.0
	bestCount, bestDepth := residueScore(p, r)
	for step := 1; step < torsionSteps; step++ {
		angle := float64(step) * 360.0 / torsionSteps
		rotated := geo.RotateAbout(orig, ca.Coord, cb.Coord, angle*geo.Deg2Rad)
		for i, a := range side {
			a.Coord = rotated[i]
		}
		count, depth := residueScore(p, r)
		if count < bestCount || (count == bestCount && depth < bestDepth-1e-9) {
			bestCount, bestDepth, bestAngle = count, depth, angle
		}
	}
	if bestAngle == 0 {
		for i, a := range side {
			a.Coord = orig[i]
		}
		return false, 0
	}
	rotated := geo.RotateAbout(orig, ca.Coord, cb.Coord, bestAngle*geo.Deg2Rad)
	for i, a := range side {
		a.Coord = rotated[i]
	}
	return true, bestAngle
}

//residueScore counts the clashes involving r and sums their depths.
func residueScore(p *pqr.Protein, r *pqr.Residue) (int, float64) {
	count := 0
	depth := 0.0
	for _, a := range r.Atoms {
		for _, b := range p.Atoms() {
			if b.Residue == r {
				continue
			}
			d, limit := contact(a, b)
			if d < limit && !a.Bonded(b) && !a.OneThree(b) {
				count++
				depth += limit - d
			}
		}
	}
	return count, depth
}
