/*
 * files.go, part of pqr.
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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/armeria-program/apbs-pdb2pqr/geo"
)

//PDBRead reads ATOM/HETATM/TER records from r and builds the molecular
//model. Other record types are ignored; this is not a general PDB parser.
//Alternate locations other than the first one seen for an atom are dropped
//(the kept atom remembers its altLoc flag so the caller can warn). An input
//with no coordinate records at all yields an error.
func PDBRead(r io.Reader) (*Protein, error) {
	prot := &Protein{}
	var chain *Chain
	var res *Residue
	terminated := map[string]bool{} //chain IDs closed by TER
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.HasPrefix(line, "TER") {
			if chain != nil {
				terminated[chain.ID] = true
				chain, res = nil, nil
			}
			continue
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		at, chainID, resName, resNum, insert, err := readCoordLine(line)
		if err != nil {
			return nil, errDecorate(err, "PDBRead: line "+strconv.Itoa(lineno))
		}
		if terminated[chainID] {
			//After TER the same chain letter restarts as a new chain of
			//heteroatoms (waters, ligands). Suffix it to keep IDs unique.
			chainID = chainID + "'"
		}
		if chain == nil || chain.ID != chainID {
			chain = prot.Chain(chainID)
			if chain == nil {
				chain = &Chain{ID: chainID}
				prot.Chains = append(prot.Chains, chain)
			}
			res = nil
		}
		if res == nil || res.Number != resNum || res.Name != resName || res.Insert != insert {
			res = &Residue{
				Name:   resName,
				Number: resNum,
				Insert: insert,
				Class:  ClassForName(resName),
			}
			chain.AddResidue(res)
		}
		if prev := res.Atom(at.Name); prev != nil {
			//first altLoc wins, the duplicate is dropped
			prev.AltLoc = firstNonEmpty(prev.AltLoc, at.AltLoc)
			continue
		}
		if err := res.AddAtom(at); err != nil {
			return nil, errDecorate(err, "PDBRead")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &CError{msg: err.Error(), deco: []string{"PDBRead"}}
	}
	if prot.NumAtoms() == 0 {
		return nil, errorf("no coordinate records found")
	}
	return prot, nil
}

//PDBFileRead opens and reads a structure file. Files ending in .gz or .zst
//are decompressed transparently.
func PDBFileRead(name string) (*Protein, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return PDBRead(r)
}

//readCoordLine parses one ATOM/HETATM line. Returns the atom plus the
//chain/residue identity fields, which belong to the hierarchy rather than
//the atom.
func readCoordLine(line string) (at *Atom, chainID, resName string, resNum int, insert string, err error) {
	if len(line) < 54 {
		return nil, "", "", 0, "", errorf("truncated coordinate record")
	}
	//pad so the optional columns can be sliced uniformly
	if len(line) < 80 {
		line = line + strings.Repeat(" ", 80-len(line))
	}
	errs := make([]error, 6)
	at = new(Atom)
	at.Het = strings.HasPrefix(line, "HETATM")
	at.Serial, errs[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	at.Name = strings.TrimSpace(line[12:16])
	at.AltLoc = strings.TrimSpace(line[16:17])
	if at.AltLoc == "A" {
		at.AltLoc = "" //the primary location is not a conflict by itself
	}
	resName = strings.TrimSpace(line[17:20])
	chainID = strings.TrimSpace(line[21:22])
	resNum, errs[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	insert = strings.TrimSpace(line[26:27])
	var coord geo.Vec
	coord[0], errs[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coord[1], errs[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coord[2], errs[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	at.Coord = coord
	//occupancy and b-factor are optional, parse failures just leave zeroes
	at.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	at.BFactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	at.Symbol = strings.TrimSpace(line[76:78])
	if len(at.Symbol) == 2 {
		at.Symbol = at.Symbol[:1] + strings.ToLower(at.Symbol[1:])
	}
	if at.Symbol == "" {
		at.Symbol, errs[5] = SymbolFromName(at.Name)
	}
	for _, e := range errs {
		if e != nil {
			if ce, ok := e.(Error); ok {
				return nil, "", "", 0, "", ce
			}
			return nil, "", "", 0, "", &CError{msg: e.Error()}
		}
	}
	return at, chainID, resName, resNum, insert, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

//PDBWrite writes the model as minimal PDB coordinate records: ATOM/HETATM
//lines in canonical order, a TER after each chain that has amino acids, END
//at the end. Residues are written under their original names, not their
//protonation-state names.
func PDBWrite(w io.Writer, p *Protein) error {
	bw := bufio.NewWriter(w)
	serial := 1
	for _, c := range p.Chains {
		chainID := strings.TrimSuffix(c.ID, "'")
		for _, r := range c.Residues {
			for _, a := range r.Atoms {
				name := a.Name
				if len(name) < 4 {
					name = " " + name
				}
				rec := "ATOM  "
				if a.Het {
					rec = "HETATM"
				}
				fmt.Fprintf(bw, "%s%5d %-4s %-3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
					rec, serial, name, r.Name, chainID, r.Number, blankIfEmpty(r.Insert),
					a.Coord[0], a.Coord[1], a.Coord[2], a.Occupancy, a.BFactor,
					strings.ToUpper(a.Symbol))
				serial++
			}
		}
		if c.CTerm() != nil {
			fmt.Fprintln(bw, "TER")
		}
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

func blankIfEmpty(s string) string {
	if s == "" {
		return " "
	}
	return s
}
