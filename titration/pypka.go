/*
 * pypka.go, part of pqr.
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

package titration

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
)

//PypKa estimates pKas by shelling out to the pypka program. Like Propka it
//runs the whole structure once and caches the per-residue results; the two
//engines are interchangeable behind Engine and a run configures at most one
//of them.
type PypKa struct {
	//the executable; "pypka" if empty
	Exe string
	//working directory for the temporary files; a fresh temp dir if empty
	Workdir string

	pkas map[pkaKey]float64
}

func (pk *PypKa) EstimatePKa(r *pqr.Residue, p *pqr.Protein) (float64, error) {
	if pk.pkas == nil {
		if err := pk.run(p); err != nil {
			return 0, errDecorate(err, "PypKa.EstimatePKa")
		}
	}
	pka, ok := pk.pkas[keyFor(r)]
	if !ok {
		return 0, errorf("pypka produced no pKa for %s", r)
	}
	return pka, nil
}

func (pk *PypKa) run(p *pqr.Protein) error {
	exe := pk.Exe
	if exe == "" {
		exe = "pypka"
	}
	dir := pk.Workdir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "pypka")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
	}
	in := filepath.Join(dir, "input.pdb")
	f, err := os.Create(in)
	if err != nil {
		return err
	}
	if err := pqr.PDBWrite(f, p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	settings := filepath.Join(dir, "settings.dat")
	conf := fmt.Sprintf("structure = %s\nsites = all\noutput = output.pka\n", in)
	if err := os.WriteFile(settings, []byte(conf), 0644); err != nil {
		return err
	}
	cmd := exec.Command(exe, settings)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return errorf("running %s: %v: %s", exe, err, firstLine(out))
	}
	out, err := os.Open(filepath.Join(dir, "output.pka"))
	if err != nil {
		return err
	}
	defer out.Close()
	pk.pkas, err = parsePypka(out)
	return err
}

//parsePypka reads a pypka site table. The lines look like:
//
//	A  52  ASP  3.82
//
//chain, residue number, residue type, predicted pKa. Sites the program
//could not converge carry "None" instead of a number and are skipped;
//terminal sites (NTR/CTR) are skipped like propka's.
func parsePypka(r io.Reader) (map[pkaKey]float64, error) {
	ret := make(map[pkaKey]float64)
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if fields[2] == "NTR" || fields[2] == "CTR" {
			continue //termini are titrated against model values
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		if fields[3] == "None" {
			continue
		}
		pka, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errorf("bad pKa value %q in pypka output", fields[3])
		}
		ret[pkaKey{name: fields[2], chain: fields[0], number: num}] = pka
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, errorf("no pKa sites found in pypka output")
	}
	return ret, nil
}
