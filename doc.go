/*
 * doc.go, part of pqr.
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

//Package pqr holds the in-memory molecular model (atoms, residues, chains
//and the protein that owns them) mutated by the structure-preparation
//pipeline, together with element data, distance-based bond perception and
//the PDB/PQR readers and writers at the module boundary.
//
//The model is built once from a parsed structure and then modified in place
//by the stages under repair, debump, titration, hydro and forcefield, in the
//order fixed by the pipeline package. Aggregate views (all residues, all
//atoms) are always derived from the chain hierarchy, never stored
//separately.
package pqr
