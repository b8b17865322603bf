/*
 * apply.go, part of pqr.
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

package forcefield

import (
	"math"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
)

//Source provides charge/radius parameters for atoms the force field tables
//do not cover, typically ligands. Lookup returns the parameters and whether
//the source covers the atom. During Apply each source is consulted at most
//once per atom, in the order given.
type Source interface {
	Lookup(res *pqr.Residue, atom *pqr.Atom) (charge, radius float64, ok bool)
}

//how far from an integer a fully-parameterized residue's total charge may
//drift before it is reported
const integralTol = 0.001

//Result collects the diagnostics of an Apply run.
type Result struct {
	//atoms no table or source had parameters for
	Missed []*pqr.Atom
	//fully-parameterized residues whose charge is not integral
	NonIntegral []*pqr.Residue
	//residues only covered by the extra sources
	FromSources []*pqr.Residue
}

//Apply assigns a charge and radius to every atom of p from ff, falling back
//on the extra sources for atoms the tables miss. Atoms that stay without
//parameters are collected in the result and left unassigned. Terminal
//residues are parameterized with patch tables chosen from the hydrogens
//actually present: an H3 on the N marks a charged amino terminus, an HO on
//the OXT a neutral carboxy terminus.
func Apply(p *pqr.Protein, ff *Forcefield, extra ...Source) *Result {
	res := new(Result)
	for _, chain := range p.Chains {
		nt := chain.NTerm()
		ct := chain.CTerm()
		for _, r := range chain.Residues {
			assigned := 0
			sum := 0.0
			fromSource := false
			for _, a := range r.Atoms {
				q, rad, ok := lookupAtom(ff, r, a, r == nt, r == ct)
				if !ok {
					for _, src := range extra {
						if q, rad, ok = src.Lookup(r, a); ok {
							fromSource = true
							break
						}
					}
				}
				if !ok {
					a.Assigned = false
					a.Charge = 0
					a.Radius = 0
					res.Missed = append(res.Missed, a)
					continue
				}
				a.Charge = q
				a.Radius = rad
				a.Assigned = true
				assigned++
				sum += q
			}
			if assigned == len(r.Atoms) && len(r.Atoms) > 0 {
				if math.Abs(sum-math.Round(sum)) > integralTol {
					res.NonIntegral = append(res.NonIntegral, r)
				}
			}
			if fromSource {
				res.FromSources = append(res.FromSources, r)
			}
		}
	}
	return res
}

//lookupAtom resolves one atom against the table, trying the terminus patch
//tables before the residue's own state.
func lookupAtom(ff *Forcefield, r *pqr.Residue, a *pqr.Atom, isNTerm, isCTerm bool) (float64, float64, bool) {
	state := r.StateName()
	if isNTerm && r.Class == pqr.Amino {
		if q, rad, ok := ff.Lookup(ntermPatch(r), a.Name); ok {
			return q, rad, true
		}
	}
	if isCTerm && r.Class == pqr.Amino {
		if q, rad, ok := ff.Lookup(ctermPatch(r), a.Name); ok {
			return q, rad, true
		}
	}
	return ff.Lookup(state, a.Name)
}

func ntermPatch(r *pqr.Residue) string {
	name := "NTR"
	if !r.HasAtom("H3") {
		name = "NEUTRAL-NTR"
	}
	if r.Name == "PRO" {
		//proline's secondary amine holds one hydrogen less
		if r.HasAtom("H2") && !r.HasAtom("H3") {
			return "NTR-PRO"
		}
		return "NEUTRAL-NTR-PRO"
	}
	return name
}

func ctermPatch(r *pqr.Residue) string {
	if r.HasAtom("HO") {
		return "NEUTRAL-CTR"
	}
	return "CTR"
}
