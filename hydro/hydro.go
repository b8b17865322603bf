/*
 * hydro.go, part of pqr.
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

//Package hydro adds hydrogens to a repaired structure and optimizes the
//ones with rotational freedom. Input hydrogens are discarded and rebuilt
//from the catalog, so the output never depends on whatever the input file
//carried. The work runs through a fixed sequence of phases; the phase
//ordering is enforced, a call out of order is a programming error.
package hydro

import (
	"fmt"
	"math"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//Options controls a hydrogen run.
type Options struct {
	//optimize rotatable hydrogens and pick histidine tautomers after
	//adding; without it the defaults stand
	Optimize bool
	//restricted mode: hydrogens are still added everywhere, but only
	//water orientations enter the optimization
	WaterOnly bool
	//termini to build neutral, from titration and the user's flags
	NeutralNTerm map[*pqr.Residue]bool
	NeutralCTerm map[*pqr.Residue]bool
}

//Result reports what a run did.
type Result struct {
	Added     int
	Optimized int
	Warnings  []string
}

type phase int

const (
	idle phase = iota
	hydrogensAdded
	candidatesEnumerated
	scored
	selected
	cleaned
)

//optimizer carries the run through its phases.
type optimizer struct {
	p           *pqr.Protein
	cat         *def.Catalog
	opt         Options
	phase       phase
	res         *Result
	cands       []*candidate
	optimizable map[*pqr.Atom]bool
}

func (o *optimizer) advance(from, to phase) {
	if o.phase != from {
		panic(fmt.Sprintf("hydro: phase %d reached from %d", to, o.phase))
	}
	o.phase = to
}

//Run adds hydrogens to p and, if asked, optimizes them. The model must
//already be repaired and bonded.
func Run(p *pqr.Protein, cat *def.Catalog, opt Options) (*Result, error) {
	o := &optimizer{p: p, cat: cat, opt: opt, res: new(Result),
		optimizable: make(map[*pqr.Atom]bool)}
	if err := o.addHydrogens(); err != nil {
		return nil, errDecorate(err, "Run")
	}
	if opt.Optimize || opt.WaterOnly {
		o.enumerate()
		o.score()
		o.selectBest()
	}
	o.cleanup()
	p.Reserial()
	return o.res, nil
}

//hydrogen bond lengths by parent element
var hLengths = map[string]float64{
	"N": 1.01,
	"O": 0.96,
	"S": 1.34,
	"C": 1.09,
}

func hLength(symbol string) float64 {
	if d, ok := hLengths[symbol]; ok {
		return d
	}
	return 1.0
}

//addHydrogens strips the input hydrogens and rebuilds the full set each
//residue's state calls for: the template hydrogens, patched by the
//protonation-state variant, the terminus set, and for residues with
//tautomer candidates still open, the union of the candidate variants.
func (o *optimizer) addHydrogens() error {
	o.advance(idle, hydrogensAdded)
	for _, c := range o.p.Chains {
		nt := c.NTerm()
		ct := c.CTerm()
		for _, r := range c.Residues {
			if r.NoTemplate {
				continue
			}
			t := o.cat.Template(r.Name)
			if t == nil {
				continue
			}
			stripHydrogens(r)
			for _, h := range o.hydrogenSet(r, t, r == nt, r == ct) {
				if err := o.addOne(r, h); err != nil {
					o.res.Warnings = append(o.res.Warnings,
						fmt.Sprintf("cannot place %s on %v: %v", h.Name, r, err))
				}
			}
		}
	}
	return nil
}

func stripHydrogens(r *pqr.Residue) {
	var names []string
	for _, a := range r.Atoms {
		if a.IsHydrogen() {
			names = append(names, a.Name)
		}
	}
	for _, n := range names {
		r.RemoveAtom(n)
	}
}

//hydrogenSet computes the hydrogen definitions a residue should carry.
func (o *optimizer) hydrogenSet(r *pqr.Residue, t *def.Template, isNTerm, isCTerm bool) []def.HDef {
	var hs []def.HDef
	removed := make(map[string]bool)
	if v := o.cat.Variant(r.StateName()); v != nil {
		for _, n := range v.Remove {
			removed[n] = true
		}
	}
	for _, h := range t.Hydrogens {
		if removed[h.Name] {
			continue
		}
		if isNTerm && r.Class == pqr.Amino && h.Name == "H" {
			continue //replaced by the terminus set below
		}
		hs = append(hs, h)
	}
	if v := o.cat.Variant(r.StateName()); v != nil {
		hs = append(hs, v.AddH...)
	}
	for _, state := range r.StateCandidates {
		if v := o.cat.Variant(state); v != nil {
			for _, h := range v.AddH {
				if !containsH(hs, h.Name) {
					hs = append(hs, h)
				}
			}
		}
	}
	if isNTerm && r.Class == pqr.Amino {
		n := 3
		if r.Name == "PRO" {
			n = 2
		}
		if o.opt.NeutralNTerm[r] {
			n--
		}
		for i := 1; i <= n; i++ {
			hs = append(hs, def.HDef{Name: fmt.Sprintf("H%d", i), Parent: "N"})
		}
	}
	if isCTerm && r.Class == pqr.Amino && o.opt.NeutralCTerm[r] && r.HasAtom("OXT") {
		hs = append(hs, def.HDef{Name: "HO", Parent: "OXT", Optimizable: true})
	}
	return hs
}

func containsH(hs []def.HDef, name string) bool {
	for _, h := range hs {
		if h.Name == name {
			return true
		}
	}
	return false
}

//addOne places one hydrogen. Hydrogens of the same parent are placed one
//after another; each sees the previously placed ones and fills the next
//open coordination site.
func (o *optimizer) addOne(r *pqr.Residue, h def.HDef) error {
	parent := r.Atom(h.Parent)
	if parent == nil {
		return errorf("no parent atom %s", h.Parent)
	}
	pos, err := placeHydrogen(parent, h.Planar)
	if err != nil {
		return err
	}
	at := &pqr.Atom{
		Name:      h.Name,
		Symbol:    "H",
		Coord:     pos,
		Occupancy: 1.0,
		Added:     true,
	}
	if err := r.AddAtom(at); err != nil {
		return err
	}
	pqr.Connect(parent, at)
	if h.Optimizable {
		o.optimizable[at] = true
	}
	o.res.Added++
	return nil
}

func bondedHeavies(a *pqr.Atom) []*pqr.Atom {
	var ret []*pqr.Atom
	for _, b := range a.Bonds {
		if o := b.Cross(a); !o.IsHydrogen() {
			ret = append(ret, o)
		}
	}
	return ret
}

func bondedHydrogens(a *pqr.Atom) []*pqr.Atom {
	var ret []*pqr.Atom
	for _, b := range a.Bonds {
		if o := b.Cross(a); o.IsHydrogen() {
			ret = append(ret, o)
		}
	}
	return ret
}

//placeHydrogen returns a position for the next hydrogen on parent, given
//the substituents already bonded to it.
func placeHydrogen(parent *pqr.Atom, planar bool) (geo.Vec, error) {
	heavies := bondedHeavies(parent)
	hs := bondedHydrogens(parent)
	d := hLength(parent.Symbol)
	angle := 109.47 * geo.Deg2Rad
	if planar {
		angle = 120 * geo.Deg2Rad
	}
	switch len(heavies) {
	case 0:
		//a free group, water in practice: build in a canonical frame
		switch len(hs) {
		case 0:
			return geo.Add(parent.Coord, geo.Vec{d, 0, 0}), nil
		case 1:
			v := geo.Unit(geo.Sub(hs[0].Coord, parent.Coord))
			e := geo.Vec{0, 0, 1}
			if math.Abs(v[2]) > 0.9 {
				e = geo.Vec{0, 1, 0}
			}
			axis := geo.Unit(geo.Cross(v, e))
			rot := geo.RotateAbout([]geo.Vec{geo.Add(parent.Coord, geo.Scale(v, d))},
				parent.Coord, geo.Add(parent.Coord, axis), 104.5*geo.Deg2Rad)
			return rot[0], nil
		}
		return geo.Vec{}, errorf("free atom already carries %d hydrogens", len(hs))
	case 1:
		gp := heavies[0]
		ref := otherSubstituent(gp, parent)
		if ref == nil {
			//no reference for the torsion, fabricate a perpendicular one
			axis := geo.Vec{1, 0, 0}
			if v := geo.Unit(geo.Sub(parent.Coord, gp.Coord)); math.Abs(v[0]) > 0.9 {
				axis = geo.Vec{0, 1, 0}
			}
			fake := geo.Add(gp.Coord, axis)
			return geo.PlaceInternal(fake, gp.Coord, parent.Coord, d, angle, 180*geo.Deg2Rad), nil
		}
		torsion := nextTorsion(len(hs), planar)
		return geo.PlaceInternal(ref.Coord, gp.Coord, parent.Coord, d, angle, torsion), nil
	case 2:
		v1 := geo.Unit(geo.Sub(heavies[0].Coord, parent.Coord))
		v2 := geo.Unit(geo.Sub(heavies[1].Coord, parent.Coord))
		bis := geo.Unit(geo.Scale(geo.Add(v1, v2), -1))
		if planar {
			return geo.Add(parent.Coord, geo.Scale(bis, d)), nil
		}
		perp := geo.Unit(geo.Cross(v1, v2))
		half := 54.735 * geo.Deg2Rad
		sign := 1.0
		if len(hs) == 1 {
			sign = -1.0
		}
		off := geo.Add(geo.Scale(bis, math.Cos(half)), geo.Scale(perp, sign*math.Sin(half)))
		return geo.Add(parent.Coord, geo.Scale(off, d)), nil
	default:
		var sum geo.Vec
		for _, h := range heavies {
			sum = geo.Add(sum, geo.Unit(geo.Sub(h.Coord, parent.Coord)))
		}
		return geo.Add(parent.Coord, geo.Scale(geo.Unit(geo.Scale(sum, -1)), d)), nil
	}
}

//nextTorsion staggers successive hydrogens on the same parent.
func nextTorsion(placed int, planar bool) float64 {
	if planar {
		//in-plane: trans first, then cis
		return float64(180-placed*180) * geo.Deg2Rad
	}
	switch placed {
	case 0:
		return 180 * geo.Deg2Rad
	case 1:
		return 60 * geo.Deg2Rad
	default:
		return -60 * geo.Deg2Rad
	}
}

//otherSubstituent returns a heavy atom bonded to a that is not exclude, or
//nil.
func otherSubstituent(a, exclude *pqr.Atom) *pqr.Atom {
	for _, b := range a.Bonds {
		if o := b.Cross(a); o != exclude && !o.IsHydrogen() {
			return o
		}
	}
	return nil
}

func errorf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(interface {
		Decorate(string) []string
	})
	if !ok {
		return &Error{message: err.Error(), deco: []string{caller}}
	}
	err2.Decorate(caller)
	return err
}

//Error is the hydro package error.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string { return err.message }

//Decorate adds dec to the error's decoration trail and returns the trail.
//An empty dec only reads the trail back.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
