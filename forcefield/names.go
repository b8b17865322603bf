/*
 * names.go, part of pqr.
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

package forcefield

import (
	"bufio"
	"compress/gzip"
	"strings"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
)

//Scheme maps internal atom and residue names to the naming convention of
//another force field for output. The internal convention (PDB v3) is the
//identity scheme.
type Scheme struct {
	name  string
	exact map[[2]string]string //(residue, atom) -> new name
	wild  map[string]string    //atom -> new name, any residue
	res   map[string]string    //residue -> new name
}

//Schemes lists the supported output naming schemes.
func Schemes() []string { return []string{"amber", "charmm", "internal"} }

//KnownScheme reports whether name is a supported naming scheme.
func KnownScheme(name string) bool {
	for _, n := range Schemes() {
		if n == strings.ToLower(name) {
			return true
		}
	}
	return false
}

//LoadScheme reads the renaming rules for the given scheme from the embedded
//table. The identity scheme "internal" has no rules.
func LoadScheme(name string) (*Scheme, error) {
	name = strings.ToLower(name)
	if !KnownScheme(name) {
		return nil, errorf("unknown naming scheme %q, have %s", name, strings.Join(Schemes(), ", "))
	}
	s := &Scheme{
		name:  name,
		exact: make(map[[2]string]string),
		wild:  make(map[string]string),
		res:   make(map[string]string),
	}
	if name == "internal" {
		return s, nil
	}
	f, err := dataFS.Open("data/names.dat.gz")
	if err != nil {
		return nil, errDecorate(errorf("%v", err), "LoadScheme")
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, errDecorate(errorf("%v", err), "LoadScheme")
	}
	defer gz.Close()
	scan := bufio.NewScanner(gz)
	lineno := 0
	for scan.Scan() {
		lineno++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, errorf("names table line %d: want 4 fields, got %d", lineno, len(fields))
		}
		if fields[0] != name {
			continue
		}
		switch {
		case fields[1] == "*":
			s.wild[fields[2]] = fields[3]
		case fields[2] == "*":
			s.res[fields[1]] = fields[3]
		default:
			s.exact[[2]string{fields[1], fields[2]}] = fields[3]
		}
	}
	if err := scan.Err(); err != nil {
		return nil, errDecorate(errorf("%v", err), "LoadScheme")
	}
	return s, nil
}

//Name returns the scheme's name.
func (s *Scheme) Name() string { return s.name }

//Map returns the output name for an atom of a residue. Exact rules win over
//wildcard rules; atoms without a rule keep their name.
func (s *Scheme) Map(res, atom string) string {
	if n, ok := s.exact[[2]string{res, atom}]; ok {
		return n
	}
	if n, ok := s.wild[atom]; ok {
		return n
	}
	return atom
}

//MapResidue returns the output name for a residue; residues without a rule
//keep their name.
func (s *Scheme) MapResidue(res string) string {
	if n, ok := s.res[res]; ok {
		return n
	}
	return res
}

//Rename rewrites every atom and residue name of p to the scheme's
//convention. It is meant to run after parameter assignment, just before
//writing. Atom rules are keyed on the residue's name before its own rule
//applies.
func (s *Scheme) Rename(p *pqr.Protein) {
	if len(s.exact) == 0 && len(s.wild) == 0 && len(s.res) == 0 {
		return
	}
	for _, r := range p.Residues() {
		old := r.StateName()
		for _, a := range r.Atoms {
			if n := s.Map(old, a.Name); n != a.Name {
				a.Name = n
			}
		}
		if n := s.MapResidue(old); n != old {
			r.Name = n
			r.State = ""
		}
	}
}
