/*
 * optimize.go, part of pqr.
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

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/debump"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//hydrogen bond acceptance window and the clash weight in the score
const (
	hbMinDist  = 2.5
	hbMaxDist  = 3.3
	hbMinAngle = 110.0 //degrees, at the hydrogen
	clashCost  = 2.0
)

//number of trial torsions for a freely rotatable hydrogen
const torsionTrials = 12

//acceptorRange is how far from a water oxygen acceptors are collected when
//enumerating orientations.
const acceptorRange = 3.5

//candidate is one independently optimizable degree of freedom: the
//hydrogens that move together and the alternative placements for them.
//alts[0] is always the current placement, so a candidate that never
//improves is a no-op. For histidine tautomer selection hs holds the two
//ring hydrogens and the choice is which one survives, not where it sits.
type candidate struct {
	r        *pqr.Residue
	hs       []*pqr.Atom
	alts     [][]geo.Vec
	donors   []*pqr.Atom //per alternative; nil means the bonded parent
	heavies  []*pqr.Atom //heavy atoms that move with a winning flip
	heavyAlt []geo.Vec   //their flipped coordinates
	tautomer bool
	best     int
}

//enumerate collects the optimization candidates: water orientations,
//rotatable hydroxyls and thiols, carboxyl protons, terminal amide flips
//and histidine tautomer pairs. Order follows the structure, so repeated
//runs see the same list.
func (o *optimizer) enumerate() {
	o.advance(hydrogensAdded, candidatesEnumerated)
	for _, c := range o.p.Chains {
		for _, r := range c.Residues {
			if r.NoTemplate {
				continue
			}
			if r.Class == pqr.Water {
				if cand := o.waterCandidate(r); cand != nil {
					o.cands = append(o.cands, cand)
				}
				continue
			}
			if o.opt.WaterOnly {
				continue
			}
			if len(r.StateCandidates) == 2 {
				if cand := tautomerCandidate(r); cand != nil {
					o.cands = append(o.cands, cand)
				}
			}
			switch r.StateName() {
			case "ASH":
				if cand := carboxylCandidate(r, "OD1", "OD2", "HD2"); cand != nil {
					o.cands = append(o.cands, cand)
					continue
				}
			case "GLH":
				if cand := carboxylCandidate(r, "OE1", "OE2", "HE2"); cand != nil {
					o.cands = append(o.cands, cand)
					continue
				}
			}
			switch r.Name {
			case "ASN":
				if cand := amideCandidate(r, "OD1", "ND2", "HD21", "HD22", "CB", "CG"); cand != nil {
					o.cands = append(o.cands, cand)
				}
			case "GLN":
				if cand := amideCandidate(r, "OE1", "NE2", "HE21", "HE22", "CG", "CD"); cand != nil {
					o.cands = append(o.cands, cand)
				}
			}
			for _, a := range r.Atoms {
				if !o.optimizable[a] {
					continue
				}
				if cand := rotatableCandidate(r, a); cand != nil {
					o.cands = append(o.cands, cand)
				}
			}
		}
	}
}

//rotatableCandidate builds the torsion grid for a hydrogen with free
//rotation about its parent's single bond.
func rotatableCandidate(r *pqr.Residue, h *pqr.Atom) *candidate {
	parent := heavyParent(h)
	if parent == nil {
		return nil
	}
	gps := bondedHeavies(parent)
	if len(gps) == 0 {
		return nil
	}
	gp := gps[0]
	ref := otherSubstituent(gp, parent)
	if ref == nil {
		return nil
	}
	d := geo.Dist(h.Coord, parent.Coord)
	ang := geo.Angle(gp.Coord, parent.Coord, h.Coord)
	cand := &candidate{r: r, hs: []*pqr.Atom{h}, alts: [][]geo.Vec{{h.Coord}}}
	for i := 0; i < torsionTrials; i++ {
		tor := float64(i) * 2 * math.Pi / torsionTrials
		p := geo.PlaceInternal(ref.Coord, gp.Coord, parent.Coord, d, ang, tor)
		cand.alts = append(cand.alts, []geo.Vec{p})
	}
	return cand
}

//carboxylCandidate builds the alternatives for a protonated carboxyl: syn
//and anti on either oxygen. The donor oxygen is tracked per alternative so
//selection can move the proton to the other oxygen.
func carboxylCandidate(r *pqr.Residue, o1Name, o2Name, hName string) *candidate {
	o1 := r.Atom(o1Name)
	o2 := r.Atom(o2Name)
	h := r.Atom(hName)
	if o1 == nil || o2 == nil || h == nil {
		return nil
	}
	carbons := bondedHeavies(o2)
	if len(carbons) == 0 {
		return nil
	}
	cc := carbons[0]
	d := geo.Dist(h.Coord, o2.Coord)
	ang := geo.Angle(cc.Coord, o2.Coord, h.Coord)
	cand := &candidate{
		r:      r,
		hs:     []*pqr.Atom{h},
		alts:   [][]geo.Vec{{h.Coord}},
		donors: []*pqr.Atom{o2},
	}
	for _, ox := range []*pqr.Atom{o2, o1} {
		other := o1
		if ox == o1 {
			other = o2
		}
		for _, tor := range []float64{math.Pi, 0} {
			p := geo.PlaceInternal(other.Coord, cc.Coord, ox.Coord, d, ang, tor)
			cand.alts = append(cand.alts, []geo.Vec{p})
			cand.donors = append(cand.donors, ox)
		}
	}
	return cand
}

//amideCandidate builds the two orientations of a terminal amide: as
//placed, and flipped 180 degrees about the bond into the side chain.
//Crystal structures cannot tell the amide oxygen from the nitrogen, so
//both assignments are tried. For the flipped alternative the oxygen
//stands in as scoring donor; that is where the nitrogen will sit.
func amideCandidate(r *pqr.Residue, oName, nName, h1Name, h2Name, ax1Name, ax2Name string) *candidate {
	ox := r.Atom(oName)
	n := r.Atom(nName)
	h1 := r.Atom(h1Name)
	h2 := r.Atom(h2Name)
	a1 := r.Atom(ax1Name)
	a2 := r.Atom(ax2Name)
	if ox == nil || n == nil || h1 == nil || h2 == nil || a1 == nil || a2 == nil {
		return nil
	}
	flipped := geo.RotateAbout([]geo.Vec{h1.Coord, h2.Coord, ox.Coord, n.Coord},
		a1.Coord, a2.Coord, math.Pi)
	return &candidate{
		r:        r,
		hs:       []*pqr.Atom{h1, h2},
		alts:     [][]geo.Vec{{h1.Coord, h2.Coord}, {flipped[0], flipped[1]}},
		donors:   []*pqr.Atom{n, ox},
		heavies:  []*pqr.Atom{ox, n},
		heavyAlt: []geo.Vec{flipped[2], flipped[3]},
	}
}

//waterCandidate builds orientation alternatives for a water: the current
//one, plus one orientation per nearby acceptor with the first hydrogen
//pointed straight at it.
func (o *optimizer) waterCandidate(r *pqr.Residue) *candidate {
	ow := r.Atom("O")
	h1 := r.Atom("H1")
	h2 := r.Atom("H2")
	if ow == nil || h1 == nil || h2 == nil {
		return nil
	}
	d := hLength("O")
	cand := &candidate{
		r:      r,
		hs:     []*pqr.Atom{h1, h2},
		alts:   [][]geo.Vec{{h1.Coord, h2.Coord}},
		donors: []*pqr.Atom{ow},
	}
	for _, a := range o.p.Atoms() {
		if a.Residue == r || !acceptor(a) {
			continue
		}
		if geo.Dist(ow.Coord, a.Coord) > acceptorRange {
			continue
		}
		p1 := geo.Add(ow.Coord, geo.Scale(geo.Unit(geo.Sub(a.Coord, ow.Coord)), d))
		cand.alts = append(cand.alts, []geo.Vec{p1, secondWaterH(ow.Coord, p1, d)})
		cand.donors = append(cand.donors, ow)
	}
	return cand
}

//secondWaterH completes a water given the oxygen and the first hydrogen.
func secondWaterH(o, h1 geo.Vec, d float64) geo.Vec {
	v := geo.Unit(geo.Sub(h1, o))
	e := geo.Vec{0, 0, 1}
	if math.Abs(v[2]) > 0.9 {
		e = geo.Vec{0, 1, 0}
	}
	axis := geo.Unit(geo.Cross(v, e))
	rot := geo.RotateAbout([]geo.Vec{geo.Add(o, geo.Scale(v, d))},
		o, geo.Add(o, axis), 104.5*geo.Deg2Rad)
	return rot[0]
}

func tautomerCandidate(r *pqr.Residue) *candidate {
	hd1 := r.Atom("HD1")
	he2 := r.Atom("HE2")
	if hd1 == nil || he2 == nil {
		return nil
	}
	return &candidate{r: r, hs: []*pqr.Atom{hd1, he2}, tautomer: true}
}

//score evaluates every alternative of every candidate and records the best
//one. Candidates are scored independently against the current structure;
//ties keep the earliest alternative, which for positional candidates is
//the current placement and for tautomers is the delta form.
func (o *optimizer) score() {
	o.advance(candidatesEnumerated, scored)
	for _, cand := range o.cands {
		if cand.tautomer {
			s0 := o.atomScore(cand.hs[0])
			s1 := o.atomScore(cand.hs[1])
			cand.best = 0
			if s1 > s0 {
				cand.best = 1
			}
			continue
		}
		best, bestScore := 0, math.Inf(-1)
		for i, alt := range cand.alts {
			s := o.altScore(cand, i, alt)
			if s > bestScore {
				best, bestScore = i, s
			}
		}
		cand.best = best
	}
}

//altScore temporarily moves the candidate's hydrogens and scores the
//placement, restoring the original coordinates before returning.
func (o *optimizer) altScore(cand *candidate, i int, alt []geo.Vec) float64 {
	saved := make([]geo.Vec, len(cand.hs))
	for j, h := range cand.hs {
		saved[j] = h.Coord
		h.Coord = alt[j]
	}
	s := 0.0
	for _, h := range cand.hs {
		donor := heavyParent(h)
		if cand.donors != nil {
			donor = cand.donors[i]
		}
		s += o.scoreOne(h, donor)
	}
	for j, h := range cand.hs {
		h.Coord = saved[j]
	}
	return s
}

func (o *optimizer) atomScore(h *pqr.Atom) float64 {
	return o.scoreOne(h, heavyParent(h))
}

//scoreOne counts hydrogen bonds donated through h minus a clash penalty.
//Everything in the hydrogen's own residue is ignored; intra-residue
//geometry is template business.
func (o *optimizer) scoreOne(h, donor *pqr.Atom) float64 {
	s := 0.0
	for _, a := range o.p.Atoms() {
		if a.Residue == h.Residue {
			continue
		}
		if acceptor(a) && a != donor {
			dd := geo.Dist(donor.Coord, a.Coord)
			if dd >= hbMinDist && dd <= hbMaxDist &&
				geo.Angle(donor.Coord, h.Coord, a.Coord) >= hbMinAngle*geo.Deg2Rad {
				//a hydrogen-bonded partner never counts as a clash
				s++
				continue
			}
		}
		if debump.TooClose(h, a) {
			s -= clashCost
		}
	}
	return s
}

//acceptor reports whether an atom can accept a hydrogen bond: any oxygen
//or sulfur, and nitrogens that carry no hydrogen.
func acceptor(a *pqr.Atom) bool {
	switch a.Symbol {
	case "O", "S":
		return true
	case "N":
		return len(bondedHydrogens(a)) == 0
	}
	return false
}

func heavyParent(h *pqr.Atom) *pqr.Atom {
	if hv := bondedHeavies(h); len(hv) > 0 {
		return hv[0]
	}
	return nil
}

//selectBest applies each candidate's winning alternative: moves the
//hydrogens, resolves tautomers, moves the heavy atoms of a winning amide
//flip, and for carboxyls moved to the other oxygen swaps the oxygen
//names so the proton always sits on the second oxygen of the pair.
func (o *optimizer) selectBest() {
	o.advance(scored, selected)
	for _, cand := range o.cands {
		if cand.tautomer {
			o.applyTautomer(cand)
			continue
		}
		if cand.best == 0 {
			continue
		}
		alt := cand.alts[cand.best]
		for j, h := range cand.hs {
			h.Coord = alt[j]
		}
		if cand.heavies != nil {
			for j, a := range cand.heavies {
				a.Coord = cand.heavyAlt[j]
			}
		} else if cand.donors != nil && cand.donors[cand.best] != cand.donors[0] {
			o.swapCarboxyl(cand)
		}
		o.res.Optimized++
	}
}

//applyTautomer keeps the winning ring hydrogen of a histidine and removes
//the other, fixing the residue state accordingly.
func (o *optimizer) applyTautomer(cand *candidate) {
	drop := cand.hs[1]
	state := "HID"
	if cand.best == 1 {
		drop = cand.hs[0]
		state = "HIE"
	}
	cand.r.RemoveAtom(drop.Name)
	cand.r.State = state
	cand.r.StateCandidates = nil
	o.res.Added--
	o.res.Optimized++
}

//swapCarboxyl exchanges the names of the two carboxyl oxygens and rebonds
//the proton, after the winning placement put it on the first oxygen.
func (o *optimizer) swapCarboxyl(cand *candidate) {
	h := cand.hs[0]
	oldDonor := cand.donors[0]
	newDonor := cand.donors[cand.best]
	oldDonor.Name, newDonor.Name = newDonor.Name, oldDonor.Name
	name, coord := h.Name, h.Coord
	cand.r.RemoveAtom(name)
	at := &pqr.Atom{Name: name, Symbol: "H", Coord: coord, Occupancy: 1.0, Added: true}
	if err := cand.r.AddAtom(at); err != nil {
		//cannot happen, the same name was just removed
		return
	}
	pqr.Connect(newDonor, at)
}

//cleanup closes the run: unresolved tautomer pairs fall back to the
//epsilon form, and no residue leaves with candidates still open.
func (o *optimizer) cleanup() {
	if o.opt.Optimize || o.opt.WaterOnly {
		o.advance(selected, cleaned)
	} else {
		o.advance(hydrogensAdded, cleaned)
	}
	for _, c := range o.p.Chains {
		for _, r := range c.Residues {
			if len(r.StateCandidates) == 0 {
				continue
			}
			if r.RemoveAtom("HD1") {
				o.res.Added--
			}
			r.State = "HIE"
			r.StateCandidates = nil
		}
	}
}
