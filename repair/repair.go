/*
 * repair.go, part of pqr.
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

//Package repair takes a freshly-read structure and makes its heavy-atom
//model whole: it validates the residues against the definition catalog,
//rebuilds missing heavy atoms from idealized template geometry, grows the
//carboxy-terminal OXT, detects disulfide bridges and refreshes the bond
//network. Everything it cannot fix is reported, not silently dropped.
package repair

import (
	"fmt"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//two sulfurs this close are considered a disulfide bridge
const ssBondMax = 2.5

//Result reports what a repair run did and what it had to give up on.
type Result struct {
	//heavy atoms rebuilt from template geometry
	Rebuilt []*pqr.Atom
	//missing atoms that could not be rebuilt, as display strings
	Unplaceable []string
	//residues with no catalog entry, left untouched
	NoTemplate []*pqr.Residue
	//detected disulfide pairs
	SSBridges [][2]*pqr.Residue
	//everything else worth telling the user
	Warnings []string
}

//Run repairs p in place against the catalog. The model afterwards has every
//rebuildable heavy atom present, disulfide cysteines marked and renamed to
//their bridged state, and a refreshed bond network. Atom serials are
//renumbered.
func Run(p *pqr.Protein, cat *def.Catalog) (*Result, error) {
	res := new(Result)
	validate(p, cat, res)
	for _, c := range p.Chains {
		ct := c.CTerm()
		for _, r := range c.Residues {
			if r.NoTemplate {
				continue
			}
			rebuild(r, cat.Template(r.Name), r == ct, res)
		}
	}
	if err := RefreshBonds(p, cat); err != nil {
		//unknown elements make some bonds undecidable; everything else
		//has been bonded, so keep going
		res.Warnings = append(res.Warnings, err.Error())
	}
	//after the refresh: AssignBonds starts from empty bond lists and
	//would wipe the explicit sulfur-sulfur bond
	detectSS(p, res)
	gapCheck(p, res)
	p.Reserial()
	return res, nil
}

//validate marks residues without templates, and warns about duplicate
//residue numbers and alternate locations.
func validate(p *pqr.Protein, cat *def.Catalog, res *Result) {
	for _, c := range p.Chains {
		seen := make(map[string]*pqr.Residue)
		for _, r := range c.Residues {
			key := fmt.Sprintf("%d%s", r.Number, r.Insert)
			if prev, ok := seen[key]; ok && prev.Name != r.Name {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("duplicate residue number: %v and %v", prev, r))
			}
			seen[key] = r
			if cat.Template(r.Name) == nil {
				r.NoTemplate = true
				res.NoTemplate = append(res.NoTemplate, r)
				continue
			}
			for _, a := range r.Atoms {
				if a.AltLoc != "" {
					res.Warnings = append(res.Warnings,
						fmt.Sprintf("%v: alternate locations present, kept the first", a))
				}
			}
		}
	}
}

//rebuild adds the missing heavy atoms of one residue. Each missing atom is
//placed by superposing the template's idealized geometry onto the atoms the
//residue and template share, then mapping the template position through the
//resulting transform. The carboxy-terminal OXT is grown the same way even
//though it is optional everywhere else.
func rebuild(r *pqr.Residue, t *def.Template, isCTerm bool, res *Result) {
	need := make(map[string]bool)
	for _, name := range t.RequiredHeavy() {
		need[name] = true
	}
	if isCTerm {
		need["OXT"] = true
	}
	for _, want := range t.Heavy {
		if !need[want.Name] || r.HasAtom(want.Name) {
			continue
		}
		tc, ok := t.Coords[want.Name]
		if !ok {
			res.Unplaceable = append(res.Unplaceable,
				fmt.Sprintf("%s of %v: no reference geometry", want.Name, r))
			continue
		}
		var mobile, target []geo.Vec
		for _, a := range r.Atoms {
			if a.IsHydrogen() {
				continue
			}
			if c, ok := t.Coords[a.Name]; ok {
				mobile = append(mobile, c)
				target = append(target, a.Coord)
			}
		}
		rot, cm, ct, err := geo.Superpose(mobile, target)
		if err != nil {
			res.Unplaceable = append(res.Unplaceable,
				fmt.Sprintf("%s of %v: only %d reference atoms present", want.Name, r, len(mobile)))
			continue
		}
		sym, err := pqr.SymbolFromName(want.Name)
		if err != nil {
			res.Unplaceable = append(res.Unplaceable,
				fmt.Sprintf("%s of %v: %v", want.Name, r, err))
			continue
		}
		at := &pqr.Atom{
			Name:      want.Name,
			Symbol:    sym,
			Coord:     geo.Transform(tc, rot, cm, ct),
			Occupancy: 1.0,
			Added:     true,
		}
		if err := r.AddAtom(at); err != nil {
			//cannot happen: HasAtom was checked above
			panic(err)
		}
		res.Rebuilt = append(res.Rebuilt, at)
	}
}

//detectSS finds disulfide bridges by the sulfur-sulfur distance, marks both
//partners, renames their state to the bridged cysteine and records the
//explicit bond.
func detectSS(p *pqr.Protein, res *Result) {
	var cys []*pqr.Residue
	for _, r := range p.Residues() {
		if (r.Name == "CYS" || r.Name == "CYX") && r.HasAtom("SG") {
			cys = append(cys, r)
		}
	}
	for i := 0; i < len(cys); i++ {
		for j := i + 1; j < len(cys); j++ {
			sg1 := cys[i].Atom("SG")
			sg2 := cys[j].Atom("SG")
			if geo.Dist(sg1.Coord, sg2.Coord) > ssBondMax {
				continue
			}
			for _, r := range []*pqr.Residue{cys[i], cys[j]} {
				r.SSBonded = true
				r.State = "CYX"
			}
			pqr.Connect(sg1, sg2)
			res.SSBridges = append(res.SSBridges, [2]*pqr.Residue{cys[i], cys[j]})
		}
	}
}

//RefreshBonds rebuilds the bond network: the distance criterion over the
//whole structure first, then the template connectivity on top, so that
//distorted input geometry cannot lose a bond the chemistry requires.
//Disulfide bridges of already-marked residues are re-linked, since
//AssignBonds clears every bond list before it starts.
func RefreshBonds(p *pqr.Protein, cat *def.Catalog) error {
	err := pqr.AssignBonds(p)
	for _, r := range p.Residues() {
		t := cat.Template(r.Name)
		if t == nil {
			continue
		}
		for _, pair := range t.Connectivity() {
			a1 := r.Atom(pair[0])
			a2 := r.Atom(pair[1])
			if a1 != nil && a2 != nil {
				pqr.Connect(a1, a2)
			}
		}
	}
	relinkSS(p)
	return err
}

//relinkSS restores the explicit sulfur-sulfur bonds between residues a
//previous run marked as bridged.
func relinkSS(p *pqr.Protein) {
	var sgs []*pqr.Atom
	for _, r := range p.Residues() {
		if r.SSBonded {
			if sg := r.Atom("SG"); sg != nil {
				sgs = append(sgs, sg)
			}
		}
	}
	for i := 0; i < len(sgs); i++ {
		for j := i + 1; j < len(sgs); j++ {
			if geo.Dist(sgs[i].Coord, sgs[j].Coord) <= ssBondMax {
				pqr.Connect(sgs[i], sgs[j])
			}
		}
	}
}

//gapCheck warns about consecutive amino-acid residues whose backbone did
//not get bonded, i.e. chain breaks.
func gapCheck(p *pqr.Protein, res *Result) {
	for _, c := range p.Chains {
		var prev *pqr.Residue
		for _, r := range c.Residues {
			if prev != nil && prev.Class == pqr.Amino && r.Class == pqr.Amino {
				pc := prev.Atom("C")
				n := r.Atom("N")
				if pc != nil && n != nil && !pc.Bonded(n) {
					res.Warnings = append(res.Warnings,
						fmt.Sprintf("chain break between %v and %v", prev, r))
				}
			}
			prev = r
		}
	}
}
