/*
 * titration.go, part of pqr.
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

//Package titration assigns protonation states to titratable residues at a
//given pH. The pKa estimates come from an exchangeable Engine; the built-in
//Model engine uses intrinsic model values, the Propka engine shells out to
//an external predictor. State assignment itself is shared: acids are
//protonated below their pKa, bases are charged below theirs.
package titration

import (
	"fmt"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
)

//Engine estimates the side-chain pKa of one titratable residue in the
//context of the whole structure. Implementations may run expensive
//whole-structure calculations; they are expected to cache.
type Engine interface {
	EstimatePKa(r *pqr.Residue, p *pqr.Protein) (float64, error)
}

//Result reports what an Assign run decided.
type Result struct {
	//estimated pKa per titratable residue, for the output header
	PKas map[*pqr.Residue]float64
	//terminal residues whose terminus is to be built neutral
	NeutralNTerm map[*pqr.Residue]bool
	NeutralCTerm map[*pqr.Residue]bool
	Warnings     []string
}

//model pKa values of the backbone termini; the termini are always titrated
//against these, independent of the engine, which only covers side chains
const (
	ntermPKa = 8.0
	ctermPKa = 3.1
)

//Assign titrates every titratable residue of p at the given pH, setting
//Residue.State (or StateCandidates where the choice is left to the hydrogen
//optimizer) in place. Histidine below its pKa becomes doubly protonated
//HIP; above it the HID/HIE tautomer pair is left as candidates. Backbone
//termini are titrated against fixed model values. A failing engine costs
//that residue its estimate: the model value steps in and the failure
//becomes a warning.
func Assign(p *pqr.Protein, ph float64, eng Engine) (*Result, error) {
	res := &Result{
		PKas:         make(map[*pqr.Residue]float64),
		NeutralNTerm: make(map[*pqr.Residue]bool),
		NeutralCTerm: make(map[*pqr.Residue]bool),
	}
	for _, r := range p.Residues() {
		if !r.Titratable() {
			continue
		}
		pka, err := eng.EstimatePKa(r, p)
		if err != nil {
			//an engine failure costs the estimate, never the run
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s: pKa engine failed (%v), using the model value", r, err))
			pka, err = Model{}.EstimatePKa(r, p)
			if err != nil {
				return nil, errDecorate(err, "Assign")
			}
		}
		res.PKas[r] = pka
		protonated := ph < pka
		switch r.Name {
		case "ASP":
			if protonated {
				r.State = "ASH"
			}
		case "GLU":
			if protonated {
				r.State = "GLH"
			}
		case "HIS":
			if protonated {
				r.State = "HIP"
			} else {
				r.StateCandidates = []string{"HID", "HIE"}
			}
		case "LYS":
			if !protonated {
				r.State = "LYN"
			}
		case "TYR":
			if !protonated {
				r.State = "TYM"
			}
		case "CYS":
			if !protonated {
				r.State = "CYM"
			}
		case "ARG":
			if !protonated {
				//no neutral arginine parameters; keep it charged and say so
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s: pH %.1f is above the arginine pKa %.1f, leaving it protonated", r, ph, pka))
			}
		}
	}
	for _, c := range p.Chains {
		if nt := c.NTerm(); nt != nil && ph >= ntermPKa {
			res.NeutralNTerm[nt] = true
		}
		if ct := c.CTerm(); ct != nil && ph < ctermPKa {
			res.NeutralCTerm[ct] = true
		}
	}
	return res, nil
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

//Error is the titration package error.
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
