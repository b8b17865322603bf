/*
 * def.go, part of pqr.
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

//Package def is the definition catalog: per-residue chemical templates
//listing the expected atoms, their connectivity, the hydrogens each residue
//carries and an idealized reference geometry used to rebuild missing atoms.
//The catalog also knows the protonation-state variants of the titratable
//residues as patches over their base templates.
//
//A catalog is built once per run and is read-only afterwards.
package def

import (
	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//AtomRef describes one expected heavy atom of a template. DihedRef,
//AngleRef and BondRef are earlier atoms of the same template; together with
//the ideal internal coordinates (Dist in Angstrom, Angle and Torsion in
//degrees) they define the atom's position in the template's idealized
//reference geometry. A zero Dist marks an atom that is expected but has no
//reference geometry and therefore cannot be rebuilt. The first placeable
//atom of a template needs no references; its Dist merely has to be nonzero.
type AtomRef struct {
	Name     string
	DihedRef string
	AngleRef string
	BondRef  string
	Dist     float64
	Angle    float64
	Torsion  float64
	Optional bool
}

//HDef describes one hydrogen of a template. Planar hydrogens lie in the
//plane of their parent's substituents (sp2); the rest complete a
//tetrahedron. Optimizable marks hydrogens whose torsion is free, i.e. the
//hydrogen optimizer may rotate them (hydroxyls, thiols, waters).
type HDef struct {
	Name        string
	Parent      string
	Planar      bool
	Optimizable bool
}

//Template is the chemical definition of one residue type.
type Template struct {
	Name  string
	Class pqr.Class

	Heavy     []AtomRef
	Hydrogens []HDef
	//ring-closure and other bonds not covered by the BondRef tree
	Extra [][2]string

	//idealized reference coordinates, keyed by atom name; filled by the
	//catalog builder for every heavy atom with a nonzero Dist
	Coords map[string]geo.Vec
}

//Ref returns the AtomRef with the given name, or nil.
func (t *Template) Ref(name string) *AtomRef {
	for i := range t.Heavy {
		if t.Heavy[i].Name == name {
			return &t.Heavy[i]
		}
	}
	return nil
}

//HDefFor returns the hydrogen definition with the given name, or nil.
func (t *Template) HDefFor(name string) *HDef {
	for i := range t.Hydrogens {
		if t.Hydrogens[i].Name == name {
			return &t.Hydrogens[i]
		}
	}
	return nil
}

//RequiredHeavy lists the non-optional heavy atom names.
func (t *Template) RequiredHeavy() []string {
	var ret []string
	for _, a := range t.Heavy {
		if !a.Optional {
			ret = append(ret, a.Name)
		}
	}
	return ret
}

//Connectivity returns the bonds of the template as atom-name pairs: the
//BondRef tree, the ring closures, and the hydrogen-parent bonds.
func (t *Template) Connectivity() [][2]string {
	var ret [][2]string
	for _, a := range t.Heavy {
		if a.BondRef != "" {
			ret = append(ret, [2]string{a.BondRef, a.Name})
		}
	}
	ret = append(ret, t.Extra...)
	for _, h := range t.Hydrogens {
		ret = append(ret, [2]string{h.Parent, h.Name})
	}
	return ret
}

//Variant is a protonation-state (or bonding-state) patch over a base
//template: hydrogens to add, atoms to remove.
type Variant struct {
	Name   string
	Base   string
	AddH   []HDef
	Remove []string
}

//Catalog holds all templates and variants. Lookups return nil for unknown
//names; a residue type without a template is left unmodified by the
//geometry stages and reported.
type Catalog struct {
	templates map[string]*Template
	variants  map[string]*Variant
}

//NewCatalog builds the built-in catalog and computes the idealized
//reference geometry of every template.
func NewCatalog() *Catalog {
	c := &Catalog{
		templates: make(map[string]*Template),
		variants:  make(map[string]*Variant),
	}
	for _, t := range builtinTemplates() {
		buildCoords(t)
		c.templates[t.Name] = t
	}
	for _, v := range builtinVariants() {
		c.variants[v.Name] = v
	}
	for _, alias := range waterAliases {
		c.templates[alias] = c.templates["HOH"]
	}
	return c
}

//Template returns the template for a residue name. Variant names resolve to
//their base template.
func (c *Catalog) Template(name string) *Template {
	if t, ok := c.templates[name]; ok {
		return t
	}
	if v, ok := c.variants[name]; ok {
		return c.templates[v.Base]
	}
	return nil
}

//Variant returns the named protonation-state variant, or nil.
func (c *Catalog) Variant(name string) *Variant {
	return c.variants[name]
}

//buildCoords constructs the idealized cartesian geometry of a template from
//its internal coordinates. The first three placeable atoms seed the frame:
//first at the origin, second along +x, third in the xy plane. Atoms with a
//zero Dist, or whose references are unplaceable, get no coordinates.
func buildCoords(t *Template) {
	t.Coords = make(map[string]geo.Vec)
	seeded := 0
	var frame [2]string
	for _, a := range t.Heavy {
		if a.Dist == 0 {
			continue
		}
		switch seeded {
		case 0:
			t.Coords[a.Name] = geo.Vec{0, 0, 0}
			frame[0] = a.Name
			seeded++
			continue
		case 1:
			t.Coords[a.Name] = geo.Vec{a.Dist, 0, 0}
			frame[1] = a.Name
			seeded++
			continue
		case 2:
			//third atom in the xy plane, at the ideal angle from the
			//first two
			x := geo.PlaceInternal(geo.Vec{0, 1, 0}, t.Coords[frame[0]], t.Coords[frame[1]],
				a.Dist, a.Angle*geo.Deg2Rad, 90*geo.Deg2Rad)
			t.Coords[a.Name] = x
			seeded++
			continue
		}
		da, okd := t.Coords[a.DihedRef]
		aa, oka := t.Coords[a.AngleRef]
		ba, okb := t.Coords[a.BondRef]
		if !okd || !oka || !okb {
			continue
		}
		t.Coords[a.Name] = geo.PlaceInternal(da, aa, ba,
			a.Dist, a.Angle*geo.Deg2Rad, a.Torsion*geo.Deg2Rad)
	}
}
