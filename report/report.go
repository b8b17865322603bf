/*
 * report.go, part of pqr.
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

//Package report renders backbone-quality diagnostics of a prepared
//structure, currently a Ramachandran scatter.
package report

import (
	"fmt"
	"image/color"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/geo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//PhiPsi is the backbone dihedral pair of one residue, in degrees.
type PhiPsi struct {
	Residue *pqr.Residue
	Phi     float64
	Psi     float64
}

//PhiPsis walks the amino-acid chains and computes the backbone dihedrals of
//every residue with both neighbors present. Chain-terminal residues and
//residues with missing backbone atoms are skipped.
func PhiPsis(p *pqr.Protein) []PhiPsi {
	var ret []PhiPsi
	for _, c := range p.Chains {
		for i := 1; i < len(c.Residues)-1; i++ {
			prev, r, next := c.Residues[i-1], c.Residues[i], c.Residues[i+1]
			if prev.Class != pqr.Amino || r.Class != pqr.Amino || next.Class != pqr.Amino {
				continue
			}
			cprev := prev.Atom("C")
			n := r.Atom("N")
			ca := r.Atom("CA")
			cc := r.Atom("C")
			npost := next.Atom("N")
			if cprev == nil || n == nil || ca == nil || cc == nil || npost == nil {
				continue
			}
			phi := geo.Dihedral(cprev.Coord, n.Coord, ca.Coord, cc.Coord)
			psi := geo.Dihedral(n.Coord, ca.Coord, cc.Coord, npost.Coord)
			ret = append(ret, PhiPsi{Residue: r, Phi: phi * geo.Rad2Deg, Psi: psi * geo.Rad2Deg})
		}
	}
	return ret
}

//RamaPlot renders the dihedral pairs as a Ramachandran scatter and saves it
//as a PNG. Glycines get their own color; their accessible region is nothing
//like the rest.
func RamaPlot(data []PhiPsi, title, filename string) error {
	if len(data) == 0 {
		return errorf("no backbone dihedrals to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Phi"
	p.Y.Label.Text = "Psi"
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -180, 180
	p.Add(plotter.NewGrid())

	var std, gly plotter.XYs
	for _, d := range data {
		pt := plotter.XY{X: d.Phi, Y: d.Psi}
		if d.Residue.Name == "GLY" {
			gly = append(gly, pt)
		} else {
			std = append(std, pt)
		}
	}
	for i, pts := range []plotter.XYs{std, gly} {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errDecorate(err, "RamaPlot")
		}
		if i == 0 {
			s.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		} else {
			s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		}
		p.Add(s)
	}
	if err := p.Save(15*vg.Centimeter, 15*vg.Centimeter, filename); err != nil {
		return errDecorate(err, "RamaPlot")
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

//Error is the report package error.
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
