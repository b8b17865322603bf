/*
 * pqrwrite.go, part of pqr.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

//PQROptions controls the PQR writer.
type PQROptions struct {
	KeepChain    bool //write the chain identifier column
	Whitespace   bool //extra whitespace between the name, coordinate and parameter fields
	AssignedOnly bool //skip atoms without charge/radius (the miss list goes to the header instead)
}

//PQRWrite writes the model as PQR records preceded by header (already
//REMARK-formatted, possibly empty). Atom order is the canonical model order.
func PQRWrite(w io.Writer, p *Protein, header string, opt PQROptions) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header); err != nil {
		return err
	}
	for _, c := range p.Chains {
		wrote := false
		for _, r := range c.Residues {
			for _, a := range r.Atoms {
				if opt.AssignedOnly && !a.Assigned {
					continue
				}
				if err := writePQRLine(bw, a, r, c, opt); err != nil {
					return err
				}
				wrote = true
			}
		}
		if wrote && c.CTerm() != nil {
			if _, err := bw.WriteString("TER\n"); err != nil {
				return err
			}
		}
	}
	if _, err := bw.WriteString("END\n"); err != nil {
		return err
	}
	return bw.Flush()
}

//PQRFileWrite is the file-name convenience over PQRWrite.
func PQRFileWrite(name string, p *Protein, header string, opt PQROptions) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return PQRWrite(f, p, header, opt)
}

func writePQRLine(w io.Writer, a *Atom, r *Residue, c *Chain, opt PQROptions) error {
	record := "ATOM  "
	if a.Het {
		record = "HETATM"
	}
	name := a.Name
	if len(name) < 4 {
		name = " " + name //short names start at column 14, PDB style
	}
	chain := " "
	if opt.KeepChain {
		chain = strings.TrimSuffix(c.ID, "'")
		if chain == "" {
			chain = " "
		}
	}
	sep := ""
	if opt.Whitespace {
		sep = " "
	}
	_, err := fmt.Fprintf(w, "%s%5d %s%-4s%s%-4s%s%4d%1s%s   %s%8.3f%s%8.3f%s%8.3f %s%7.4f %6.4f\n",
		record, a.Serial, sep, name, sep, r.StateName(), chain, r.Number, r.Insert, sep,
		sep, a.Coord[0], sep, a.Coord[1], sep, a.Coord[2], sep, a.Charge, a.Radius)
	return err
}

//PQRHeader builds the REMARK header of a PQR file, reporting the run setup
//and the accumulated diagnostics: atoms that could not be parameterized,
//residues with a non-integral net charge and the total charge, the way the
//original toolchain reports them.
func PQRHeader(ff, scheme, method string, ph float64, missed []*Atom, nonintegral []*Residue, warnings []string, total float64) string {
	var b strings.Builder
	field := "user force field"
	if ff != "" {
		field = strings.ToUpper(ff)
	}
	fmt.Fprintf(&b, "REMARK   1 PQR file generated by apbs-pdb2pqr\n")
	fmt.Fprintf(&b, "REMARK   1\n")
	fmt.Fprintf(&b, "REMARK   1 Forcefield used: %s\n", field)
	if scheme != "" {
		fmt.Fprintf(&b, "REMARK   1 Naming scheme used: %s\n", strings.ToUpper(scheme))
	}
	if method != "" {
		fmt.Fprintf(&b, "REMARK   1 pKas calculated by %s and assigned using pH %.2f\n", method, ph)
	}
	fmt.Fprintf(&b, "REMARK   1\n")
	if len(missed) > 0 {
		fmt.Fprintf(&b, "REMARK   5 WARNING: unable to assign charges to the following atoms\n")
		fmt.Fprintf(&b, "REMARK   5          (omitted from the records below):\n")
		for _, a := range missed {
			res := a.Residue
			fmt.Fprintf(&b, "REMARK   5              %d %s in %s %d\n", a.Serial, a.Name, res.StateName(), res.Number)
		}
		fmt.Fprintf(&b, "REMARK   5\n")
	}
	if len(nonintegral) > 0 {
		fmt.Fprintf(&b, "REMARK   5 WARNING: non-integral net charges were found in\n")
		fmt.Fprintf(&b, "REMARK   5          the following residues:\n")
		for _, r := range nonintegral {
			fmt.Fprintf(&b, "REMARK   5              %s - residue charge: %.4f\n", r, r.Charge())
		}
		fmt.Fprintf(&b, "REMARK   5\n")
	}
	for _, w := range warnings {
		fmt.Fprintf(&b, "REMARK   5 WARNING: %s\n", w)
	}
	if len(warnings) > 0 {
		fmt.Fprintf(&b, "REMARK   5\n")
	}
	fmt.Fprintf(&b, "REMARK   6 Total charge on this protein: %.4f e\n", total)
	fmt.Fprintf(&b, "REMARK   6\n")
	return b.String()
}
