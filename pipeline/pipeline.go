/*
 * pipeline.go, part of pqr.
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

//Package pipeline runs the preparation stages in order: repair, debump,
//titration, hydrogens, force-field assignment and renaming. Configuration
//problems and an empty structure are the only fatal errors; everything a
//stage gives up on accumulates in Results instead.
package pipeline

import (
	"fmt"
	"strings"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/debump"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/forcefield"
	"github.com/armeria-program/apbs-pdb2pqr/hydro"
	"github.com/armeria-program/apbs-pdb2pqr/repair"
	"github.com/armeria-program/apbs-pdb2pqr/titration"
)

//Config is the run setup. The zero value is not useful; start from Default.
type Config struct {
	//force field for charges and radii
	Forcefield string
	//output naming scheme; empty or "internal" keeps the working names
	NamingScheme string
	//target pH for the titration stage
	PH float64
	//external pKa engine; nil falls back to the model values per residue
	//type, with zero engine calls
	Engine titration.Engine
	//label of the pKa method for the output header; set alongside Engine
	MethodName string

	//optimize hydrogen orientations after adding them
	Optimize bool
	//run the steric debumper, before and after the hydrogen stage
	Debump bool
	//build the backbone termini neutral; PARSE only
	NeutralN bool
	NeutralC bool

	//assign charges and radii on the input as-is: no repair, no added
	//atoms, no debumping
	AssignOnly bool
	//pass the structure through untouched, no assignment at all
	Clean bool
	//drop the crystallographic waters before any stage runs
	DropWater bool

	//PQR output details, carried here so one record describes a whole run
	KeepChain  bool
	Whitespace bool

	//extra parameter sources, consulted for residues the force field does
	//not cover (ligands, in practice)
	Ligands []forcefield.Source
}

//Default returns the configuration of a plain run: PARSE at pH 7, model
//pKas, debumping and hydrogen optimization on.
func Default() Config {
	return Config{Forcefield: "parse", PH: 7.0, Optimize: true, Debump: true}
}

//Validate checks the configuration before any stage runs. A clean run
//bypasses every stage and therefore every check.
func (cfg *Config) Validate() error {
	if cfg.Clean {
		return nil
	}
	if !forcefield.Known(cfg.Forcefield) {
		return errorf("unknown force field %q, have %s", cfg.Forcefield,
			strings.Join(forcefield.Names(), ", "))
	}
	if cfg.NamingScheme != "" && !forcefield.KnownScheme(cfg.NamingScheme) {
		return errorf("unknown naming scheme %q, have %s", cfg.NamingScheme,
			strings.Join(forcefield.Schemes(), ", "))
	}
	if cfg.PH < 0 || cfg.PH > 14 {
		return errorf("pH %.2f out of range, must be within 0 and 14", cfg.PH)
	}
	if (cfg.NeutralN || cfg.NeutralC) && strings.ToLower(cfg.Forcefield) != "parse" {
		return errorf("neutral termini are only parameterized for the PARSE force field")
	}
	return nil
}

//Results accumulates everything the stages could not resolve, plus the
//totals the output header reports.
type Results struct {
	//atoms no parameter table covered, standard residues
	MissedAtoms []*pqr.Atom
	//atoms of ligand residues no extra source covered
	MissedLigands []*pqr.Atom
	//residues with a non-integral net charge after assignment
	NonIntegral []*pqr.Residue
	//estimated pKas, for the header
	PKas map[*pqr.Residue]float64
	//stage warnings, in stage order
	Warnings []string
	//net charge over the assigned atoms
	TotalCharge float64
}

//Header renders the PQR REMARK header for this run.
func (res *Results) Header(cfg Config) string {
	if cfg.Clean {
		return ""
	}
	missed := append([]*pqr.Atom{}, res.MissedAtoms...)
	missed = append(missed, res.MissedLigands...)
	return pqr.PQRHeader(cfg.Forcefield, cfg.NamingScheme, cfg.MethodName, cfg.PH,
		missed, res.NonIntegral, res.Warnings, res.TotalCharge)
}

//PQROptions returns the writer options matching the run configuration.
func (cfg *Config) PQROptions() pqr.PQROptions {
	return pqr.PQROptions{
		KeepChain:    cfg.KeepChain,
		Whitespace:   cfg.Whitespace,
		AssignedOnly: !cfg.Clean,
	}
}

//Run prepares p in place. The stages run in a fixed order; a stage that
//partially fails warns and the run continues. Only a bad configuration or
//an empty structure aborts.
func Run(p *pqr.Protein, cat *def.Catalog, cfg Config) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errDecorate(err, "Run")
	}
	if p == nil || p.NumAtoms() == 0 {
		return nil, errorf("the structure contains no atoms")
	}
	res := new(Results)
	if cfg.Clean {
		return res, nil
	}
	for _, a := range p.Atoms() {
		if a.AltLoc != "" {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%v has alternate locations, kept the first", a))
		}
	}
	if cfg.DropWater {
		dropWater(p)
		if p.NumAtoms() == 0 {
			return nil, errorf("nothing left after dropping the waters")
		}
	}
	if cfg.AssignOnly {
		//no atoms move or appear, but histidines still get the fully
		//protonated form the original toolchain assigns in this mode
		for _, r := range p.Residues() {
			if r.Name == "HIS" {
				r.State = "HIP"
			}
		}
		return res, res.assign(p, cfg)
	}

	rres, err := repair.Run(p, cat)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	res.Warnings = append(res.Warnings, rres.Warnings...)
	for _, u := range rres.Unplaceable {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not rebuild %s", u))
	}
	for _, r := range rres.NoTemplate {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no template for %v, left as found", r))
	}

	if cfg.Debump {
		dres, err := debump.Run(p)
		if err != nil {
			return nil, errDecorate(err, "Run")
		}
		res.Warnings = append(res.Warnings, dres.Warnings...)
	}

	eng := cfg.Engine
	if eng == nil {
		eng = titration.Model{}
	}
	tres, err := titration.Assign(p, cfg.PH, eng)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	res.Warnings = append(res.Warnings, tres.Warnings...)
	res.PKas = tres.PKas

	neutralN := tres.NeutralNTerm
	neutralC := tres.NeutralCTerm
	for _, c := range p.Chains {
		if cfg.NeutralN {
			if nt := c.NTerm(); nt != nil {
				neutralN[nt] = true
			}
		}
		if cfg.NeutralC {
			if ct := c.CTerm(); ct != nil {
				neutralC[ct] = true
			}
		}
	}

	//without full optimization the waters still get oriented
	hres, err := hydro.Run(p, cat, hydro.Options{
		Optimize:     cfg.Optimize,
		WaterOnly:    !cfg.Optimize,
		NeutralNTerm: neutralN,
		NeutralCTerm: neutralC,
	})
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	res.Warnings = append(res.Warnings, hres.Warnings...)

	if cfg.Debump {
		//the new hydrogens may have introduced fresh contacts
		dres, err := debump.Run(p)
		if err != nil {
			return nil, errDecorate(err, "Run")
		}
		res.Warnings = append(res.Warnings, dres.Warnings...)
	}

	return res, res.assign(p, cfg)
}

//assign runs the force-field stage and the output renaming, filling in the
//diagnostic lists.
func (res *Results) assign(p *pqr.Protein, cfg Config) error {
	ff, err := forcefield.Load(cfg.Forcefield)
	if err != nil {
		return errDecorate(err, "assign")
	}
	ares := forcefield.Apply(p, ff, cfg.Ligands...)
	for _, a := range ares.Missed {
		if a.Residue != nil && a.Residue.Class == pqr.Ligand {
			res.MissedLigands = append(res.MissedLigands, a)
		} else {
			res.MissedAtoms = append(res.MissedAtoms, a)
		}
	}
	res.NonIntegral = ares.NonIntegral
	res.TotalCharge = p.TotalCharge()
	if cfg.NamingScheme != "" {
		s, err := forcefield.LoadScheme(cfg.NamingScheme)
		if err != nil {
			return errDecorate(err, "assign")
		}
		s.Rename(p)
	}
	return nil
}

//dropWater removes the water residues, and any chain left empty by that.
func dropWater(p *pqr.Protein) {
	var chains []*pqr.Chain
	for _, c := range p.Chains {
		var keep []*pqr.Residue
		for _, r := range c.Residues {
			if r.Class != pqr.Water {
				keep = append(keep, r)
			}
		}
		c.Residues = keep
		if len(keep) > 0 {
			chains = append(chains, c)
		}
	}
	p.Chains = chains
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

//Error is the pipeline package error.
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
