/*
 * propka.go, part of pqr.
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
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
)

//Propka estimates pKas by shelling out to the propka3 program. The whole
//structure is run once, on the first estimate, and the per-residue results
//are cached for the rest of the run.
type Propka struct {
	//the executable; "propka3" if empty
	Exe string
	//working directory for the temporary files; a fresh temp dir if empty
	Workdir string

	pkas map[pkaKey]float64
}

//insertion codes are not part of the key; propka folds them into the
//residue number in ways that vary between versions
type pkaKey struct {
	name   string
	chain  string
	number int
}

func keyFor(r *pqr.Residue) pkaKey {
	ch := ""
	if r.Chain != nil {
		ch = strings.TrimSuffix(r.Chain.ID, "'")
	}
	return pkaKey{name: r.Name, chain: ch, number: r.Number}
}

func (pk *Propka) EstimatePKa(r *pqr.Residue, p *pqr.Protein) (float64, error) {
	if pk.pkas == nil {
		if err := pk.run(p); err != nil {
			return 0, errDecorate(err, "Propka.EstimatePKa")
		}
	}
	pka, ok := pk.pkas[keyFor(r)]
	if !ok {
		return 0, errorf("propka produced no pKa for %s", r)
	}
	return pka, nil
}

func (pk *Propka) run(p *pqr.Protein) error {
	exe := pk.Exe
	if exe == "" {
		exe = "propka3"
	}
	dir := pk.Workdir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "propka")
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
	cmd := exec.Command(exe, in)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return errorf("running %s: %v: %s", exe, err, firstLine(out))
	}
	out, err := os.Open(filepath.Join(dir, "input.pka"))
	if err != nil {
		return err
	}
	defer out.Close()
	pk.pkas, err = parsePropka(out)
	return err
}

//parsePropka extracts the summary block of a .pka file. The lines look
//like:
//
//	   ASP  52 A     3.82       3.80
//
//residue type, residue number, chain, predicted pKa, model pKa.
func parsePropka(r io.Reader) (map[pkaKey]float64, error) {
	ret := make(map[pkaKey]float64)
	scan := bufio.NewScanner(r)
	inSummary := false
	for scan.Scan() {
		line := scan.Text()
		if strings.Contains(line, "SUMMARY OF THIS PREDICTION") {
			inSummary = true
			continue
		}
		if !inSummary {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			if len(strings.TrimSpace(line)) == 0 && len(ret) > 0 {
				break //end of the block
			}
			continue
		}
		if fields[0] == "Group" { //column header
			continue
		}
		if fields[0] == "N+" || fields[0] == "C-" {
			continue //termini are titrated against model values, not propka
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			continue //footer lines
		}
		pka, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errorf("bad pKa value %q in propka output", fields[3])
		}
		ret[pkaKey{name: fields[0], chain: fields[2], number: num}] = pka
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, errorf("no pKa summary found in propka output")
	}
	return ret, nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
