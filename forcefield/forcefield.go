/*
 * forcefield.go, part of pqr.
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

//Package forcefield assigns per-atom charges and radii from embedded
//parameter tables, keyed by (residue state, atom name). Terminal residues
//are parameterized through patch pseudo-residues selected from the atoms
//actually present, so the caller never has to mark termini. Parameters for
//residues outside the tables (ligands) come from user-supplied Sources,
//each consulted at most once per atom.
package forcefield

import (
	"bufio"
	"compress/gzip"
	"embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

//go:embed data/*.dat.gz
var dataFS embed.FS

type param struct {
	charge float64
	radius float64
}

//Forcefield is one loaded parameter table.
type Forcefield struct {
	name   string
	params map[[2]string]param
}

//Names lists the built-in force fields.
func Names() []string { return []string{"amber", "parse"} }

//Known reports whether name is a built-in force field.
func Known(name string) bool {
	for _, n := range Names() {
		if n == strings.ToLower(name) {
			return true
		}
	}
	return false
}

//Load reads a built-in parameter table.
func Load(name string) (*Forcefield, error) {
	name = strings.ToLower(name)
	if !Known(name) {
		return nil, errorf("unknown force field %q, have %s", name, strings.Join(Names(), ", "))
	}
	f, err := dataFS.Open("data/" + name + ".dat.gz")
	if err != nil {
		return nil, errDecorate(errorf("%v", err), "Load")
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, errDecorate(errorf("%v", err), "Load")
	}
	defer gz.Close()
	return LoadFrom(gz, name)
}

//LoadFrom reads a parameter table from r. The format is one line per atom:
//residue name, atom name, charge, radius, whitespace-separated. Empty lines
//and lines starting with # are skipped.
func LoadFrom(r io.Reader, name string) (*Forcefield, error) {
	ff := &Forcefield{name: name, params: make(map[[2]string]param)}
	scan := bufio.NewScanner(r)
	lineno := 0
	for scan.Scan() {
		lineno++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, errorf("%s line %d: want 4 fields, got %d", name, lineno, len(fields))
		}
		q, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errorf("%s line %d: bad charge %q", name, lineno, fields[2])
		}
		rad, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errorf("%s line %d: bad radius %q", name, lineno, fields[3])
		}
		ff.params[[2]string{fields[0], fields[1]}] = param{q, rad}
	}
	if err := scan.Err(); err != nil {
		return nil, errDecorate(errorf("%v", err), "LoadFrom")
	}
	if len(ff.params) == 0 {
		return nil, errorf("%s: empty parameter table", name)
	}
	return ff, nil
}

//Name returns the force field's name.
func (ff *Forcefield) Name() string { return ff.name }

//Lookup returns the charge and radius for an atom of a residue state, and
//whether the table has an entry for it.
func (ff *Forcefield) Lookup(res, atom string) (float64, float64, bool) {
	p, ok := ff.params[[2]string{res, atom}]
	return p.charge, p.radius, ok
}

//Residues lists the residue states the table parameterizes, sorted.
func (ff *Forcefield) Residues() []string {
	seen := make(map[string]bool)
	for k := range ff.params {
		seen[k[0]] = true
	}
	var ret []string
	for r := range seen {
		ret = append(ret, r)
	}
	sort.Strings(ret)
	return ret
}

func errorf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(interface {
		Decorate(string) []string
	})
	if !ok {
		panic("forcefield: cannot decorate a foreign error: " + err.Error())
	}
	err2.Decorate(caller)
	return err
}

//Error is the forcefield package error.
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
