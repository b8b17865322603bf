/*
 * atomicdata.go, part of pqr.
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

import "strings"

//A map for assigning covalent radii to elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present.
var symbolCovrad = map[string]float64{
	"H":  0.4, //0.31; H only ever has one bond, extra bonds from the longer radius get pruned.
	"C":  0.76,
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,
	"Fe": 1.52,
	"Mn": 1.61,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

//A map for assigning van der Waals radii to elements, used for the steric
//clash thresholds. Values from 10.1021/j100785a001 and 10.1021/jp8111556,
//metal radii from 10.1023/A:1011625728803.
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//A map for checking that atoms don't end up with too many bonds after the
//distance criterion. A value of 0 means undefined, i.e. the element is not
//checked.
var symbolMaxBonds = map[string]int{
	"H":  1, //the only one truly important
	"C":  4,
	"O":  2,
	"N":  4,
	"F":  1,
	"Br": 1,
	"I":  1,
}

//VdwRad returns the van der Waals radius for an element symbol, or 1.5 if
//the element is not tabulated.
func VdwRad(symbol string) float64 {
	if r, ok := symbolVdwrad[symbol]; ok {
		return r
	}
	return 1.5
}

//A map between 3-letter names for amino acid residues and the corresponding
//1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S', "THR": 'T', "ASN": 'N', "GLN": 'Q',
	"SEC": 'U', "CYS": 'C', "GLY": 'G', "PRO": 'P',
	"ALA": 'A', "VAL": 'V', "ILE": 'I', "LEU": 'L',
	"MET": 'M', "PHE": 'F', "TYR": 'Y', "TRP": 'W',
	"ARG": 'R', "HIS": 'H', "LYS": 'K', "ASP": 'D',
	"GLU": 'E',
}

//aminoNames covers the canonical amino acids plus the protonation-state and
//disulfide variants the pipeline itself introduces.
var aminoNames = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	"ASH": true, "GLH": true, "HID": true, "HIE": true, "HIP": true,
	"LYN": true, "CYM": true, "CYX": true, "TYM": true,
}

var nucleicNames = map[string]bool{
	"A": true, "C": true, "G": true, "U": true,
	"DA": true, "DC": true, "DG": true, "DT": true,
	"RA": true, "RC": true, "RG": true, "RU": true,
}

var waterNames = map[string]bool{
	"HOH": true, "WAT": true, "SOL": true, "H2O": true,
}

//titratableNames maps each titratable residue type to true. CYS drops out of
//this set when it is part of a disulfide bridge; that is checked on the
//residue, not here.
var titratableNames = map[string]bool{
	"ASP": true, "GLU": true, "HIS": true, "LYS": true,
	"ARG": true, "TYR": true, "CYS": true,
}

//ClassForName returns the residue class tag implied by a residue name.
func ClassForName(name string) Class {
	name = strings.TrimSpace(name)
	switch {
	case aminoNames[name]:
		return Amino
	case nucleicNames[name]:
		return Nucleic
	case waterNames[name]:
		return Water
	default:
		return Ligand
	}
}

//SymbolFromName tries to guess a chemical element symbol from a PDB atom
//name, mostly following AMBER conventions. It only deals with common
//bio-elements.
func SymbolFromName(name string) (string, error) {
	symbol := ""
	if name == "" {
		return "", errorf("empty atom name")
	}
	if len(name) == 4 || name[0] == 'H' || (name[0] >= '1' && name[0] <= '9') {
		symbol = "H" //only hydrogens get 4-character or digit-led names
	} else if name[0] == 'C' {
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		case "CA2":
			symbol = "Ca"
		default:
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" && len(name) == 2 {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if strings.HasPrefix(name, "ZN") {
		symbol = "Zn"
	} else if strings.HasPrefix(name, "MG") {
		symbol = "Mg"
	} else if strings.HasPrefix(name, "FE") {
		symbol = "Fe"
	}
	if symbol == "" {
		return symbol, errorf("couldn't guess an element symbol from the atom name %q", name)
	}
	return symbol, nil
}
