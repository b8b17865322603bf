/*
 * protein.go, part of pqr.
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

//Chain is an ordered sequence of residues. The sequence order is
//significant: it defines backbone connectivity, and the first and last
//amino-acid residues are the termini. Terminus identity is always derived
//from position, never stored, so it cannot drift out of sync.
type Chain struct {
	ID       string
	Residues []*Residue
}

//NTerm returns the first amino-acid residue of the chain, or nil if the
//chain has none.
func (c *Chain) NTerm() *Residue {
	for _, r := range c.Residues {
		if r.Class == Amino {
			return r
		}
	}
	return nil
}

//CTerm returns the last amino-acid residue of the chain, or nil.
func (c *Chain) CTerm() *Residue {
	for i := len(c.Residues) - 1; i >= 0; i-- {
		if c.Residues[i].Class == Amino {
			return c.Residues[i]
		}
	}
	return nil
}

//AddResidue appends a residue, taking ownership.
func (c *Chain) AddResidue(r *Residue) {
	r.Chain = c
	c.Residues = append(c.Residues, r)
}

//Sequence returns the one-letter amino-acid sequence of the chain, with X
//for residues without a one-letter code. Non-amino residues are skipped.
func (c *Chain) Sequence() string {
	var seq []byte
	for _, r := range c.Residues {
		if r.Class != Amino {
			continue
		}
		if b, ok := three2OneLetter[r.Name]; ok {
			seq = append(seq, b)
		} else {
			seq = append(seq, 'X')
		}
	}
	return string(seq)
}

//Protein owns all chains of a structure. The residue and atom views are
//rebuilt from the chains on every call so they can never diverge from the
//hierarchy.
type Protein struct {
	Chains []*Chain
}

//Chain returns the chain with the given ID, or nil.
func (p *Protein) Chain(id string) *Chain {
	for _, c := range p.Chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

//Residues returns all residues in chain order.
func (p *Protein) Residues() []*Residue {
	var ret []*Residue
	for _, c := range p.Chains {
		ret = append(ret, c.Residues...)
	}
	return ret
}

//Atoms returns all atoms in chain, residue and insertion order. This is the
//canonical atom ordering of the model; output and diagnostics follow it.
func (p *Protein) Atoms() []*Atom {
	var ret []*Atom
	for _, c := range p.Chains {
		for _, r := range c.Residues {
			ret = append(ret, r.Atoms...)
		}
	}
	return ret
}

func (p *Protein) NumResidues() int {
	n := 0
	for _, c := range p.Chains {
		n += len(c.Residues)
	}
	return n
}

func (p *Protein) NumAtoms() int {
	n := 0
	for _, c := range p.Chains {
		for _, r := range c.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}

//Reserial renumbers atom serials to match the canonical atom ordering,
//starting at 1. Called after stages that add or remove atoms so that output
//is deterministic.
func (p *Protein) Reserial() {
	i := 1
	for _, a := range p.Atoms() {
		a.Serial = i
		i++
	}
}

//TotalCharge sums the assigned charges over the whole structure.
func (p *Protein) TotalCharge() float64 {
	q := 0.0
	for _, r := range p.Residues() {
		q += r.Charge()
	}
	return q
}
