/*
 * model.go, part of pqr.
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

import pqr "github.com/armeria-program/apbs-pdb2pqr"

//modelPKas are intrinsic model-compound values; the Model engine returns
//them as-is, ignoring the structural context.
var modelPKas = map[string]float64{
	"ASP": 3.8,
	"GLU": 4.1,
	"HIS": 6.5,
	"LYS": 10.4,
	"ARG": 12.5,
	"TYR": 10.1,
	"CYS": 8.3,
}

//Model is the zero-cost pKa engine: every residue gets the model-compound
//value of its type. It needs no configuration; the zero value is ready to
//use.
type Model struct{}

func (Model) EstimatePKa(r *pqr.Residue, p *pqr.Protein) (float64, error) {
	pka, ok := modelPKas[r.Name]
	if !ok {
		return 0, errorf("no model pKa for residue type %s", r.Name)
	}
	return pka, nil
}
