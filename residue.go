/*
 * residue.go, part of pqr.
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

import "fmt"

//Class tags a residue as amino acid, nucleic acid, ligand, water or unknown.
//Residue-type specific behavior dispatches on this tag; there is no type
//hierarchy behind it.
type Class int

const (
	Unknown Class = iota
	Amino
	Nucleic
	Ligand
	Water
)

func (c Class) String() string {
	switch c {
	case Amino:
		return "amino acid"
	case Nucleic:
		return "nucleic acid"
	case Ligand:
		return "ligand"
	case Water:
		return "water"
	}
	return "unknown"
}

//Residue is an ordered set of atoms. Insertion order is structural order;
//atom names are unique within the residue once the repair and hydrogen
//stages are done (the reader already rejects duplicates). The residue knows
//which protonation state was applied to it (State; empty means the template
//default) and, transiently, which candidate states the hydrogen optimizer
//still has in flight (StateCandidates; always nil outside that stage).
type Residue struct {
	Name   string
	Number int
	Insert string
	Class  Class
	Chain  *Chain //back reference, the chain owns the residue

	Atoms []*Atom

	SSBonded   bool //cysteine in a disulfide bridge
	NoTemplate bool //set by repair when the catalog has no entry

	State           string
	StateCandidates []string
}

//Atom returns the atom with the given name, or nil.
func (r *Residue) Atom(name string) *Atom {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

//HasAtom reports whether an atom with the given name exists.
func (r *Residue) HasAtom(name string) bool { return r.Atom(name) != nil }

//AddAtom appends an atom to the residue, taking ownership. It fails if an
//atom with the same name is already present.
func (r *Residue) AddAtom(a *Atom) error {
	if r.HasAtom(a.Name) {
		return errorf("duplicate atom name %s in %s", a.Name, r)
	}
	a.Residue = r
	r.Atoms = append(r.Atoms, a)
	return nil
}

//RemoveAtom drops the named atom and its bonds. It reports whether the atom
//existed.
func (r *Residue) RemoveAtom(name string) bool {
	for i, a := range r.Atoms {
		if a.Name == name {
			for _, b := range a.Bonds {
				other := b.Cross(a)
				other.Bonds = dropBond(other.Bonds, b)
			}
			a.Bonds = nil
			a.Residue = nil
			r.Atoms = append(r.Atoms[:i], r.Atoms[i+1:]...)
			return true
		}
	}
	return false
}

//RenameAtom changes an atom name in place, keeping name uniqueness.
func (r *Residue) RenameAtom(from, to string) error {
	a := r.Atom(from)
	if a == nil {
		return errorf("no atom %s in %s", from, r)
	}
	if from != to && r.HasAtom(to) {
		return errorf("atom %s already present in %s", to, r)
	}
	a.Name = to
	return nil
}

//Charge sums the force-field charges of the assigned atoms of the residue.
func (r *Residue) Charge() float64 {
	q := 0.0
	for _, a := range r.Atoms {
		if a.Assigned {
			q += a.Charge
		}
	}
	return q
}

//Titratable reports whether the residue is subject to titration-state
//assignment. Disulfide-bonded cysteines are not.
func (r *Residue) Titratable() bool {
	if r.Class != Amino || r.SSBonded {
		return false
	}
	return titratableNames[r.Name]
}

//StateName returns the protonation-state name in effect: the applied state
//if one was chosen, the residue name otherwise.
func (r *Residue) StateName() string {
	if r.State != "" {
		return r.State
	}
	return r.Name
}

func (r *Residue) String() string {
	ch := " "
	if r.Chain != nil {
		ch = r.Chain.ID
	}
	return fmt.Sprintf("%s %s %d%s", r.Name, ch, r.Number, r.Insert)
}

func dropBond(bonds []*Bond, b *Bond) []*Bond {
	for i, v := range bonds {
		if v == b {
			return append(bonds[:i], bonds[i+1:]...)
		}
	}
	return bonds
}
