/*
 * atom.go, part of pqr.
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
	"fmt"

	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//Atom is one atom of the model. Coordinates live on the atom itself, since
//every stage of the pipeline moves atoms individually. The force-field
//charge and radius are zero-valued and meaningless until Assigned is set by
//the force-field stage. Added marks atoms reconstructed by the repair or
//hydrogen stages as opposed to atoms read from the input.
type Atom struct {
	Serial    int
	Name      string
	Symbol    string
	Coord     geo.Vec
	AltLoc    string
	Occupancy float64
	BFactor   float64
	Het       bool
	Added     bool

	Charge   float64
	Radius   float64
	Assigned bool

	Residue *Residue //back reference, the residue owns the atom
	Bonds   []*Bond
}

//Copy returns a copy of the atom with the bond list and the residue back
//reference cleared. Copies are for building new residue variants, which wire
//their own ownership.
func (a *Atom) Copy() *Atom {
	if a == nil {
		panic("pqr: attempted to copy a nil atom")
	}
	na := *a
	na.Bonds = nil
	na.Residue = nil
	return &na
}

//IsHydrogen is true for hydrogen atoms.
func (a *Atom) IsHydrogen() bool { return a.Symbol == "H" }

//IsBackbone is true for protein backbone atoms (hydrogens included).
func (a *Atom) IsBackbone() bool {
	switch a.Name {
	case "N", "CA", "C", "O", "H", "HA", "HA2", "HA3", "H1", "H2", "H3", "OXT", "HO", "HXT":
		return a.Residue != nil && a.Residue.Class == Amino
	}
	return false
}

//Bonded reports whether b is directly bonded to a.
func (a *Atom) Bonded(b *Atom) bool {
	for _, bond := range a.Bonds {
		if bond.Cross(a) == b {
			return true
		}
	}
	return false
}

//OneThree reports whether a and b are in a 1-3 arrangement, i.e. bonded to a
//common atom but not to each other.
func (a *Atom) OneThree(b *Atom) bool {
	if a == b || a.Bonded(b) {
		return false
	}
	for _, bond := range a.Bonds {
		if bond.Cross(a).Bonded(b) {
			return true
		}
	}
	return false
}

func (a *Atom) String() string {
	res := "?"
	if a.Residue != nil {
		res = a.Residue.String()
	}
	return fmt.Sprintf("%s %d of %s", a.Name, a.Serial, res)
}
