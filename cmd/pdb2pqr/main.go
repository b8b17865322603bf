/*
 * main.go, part of pqr.
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

//pdb2pqr prepares a PDB structure for continuum-electrostatics work: it
//repairs missing heavy atoms, relieves steric clashes, assigns titration
//states at a target pH, adds and optimizes hydrogens, assigns force-field
//charges and radii and writes the result as a PQR file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pqr "github.com/armeria-program/apbs-pdb2pqr"
	"github.com/armeria-program/apbs-pdb2pqr/def"
	"github.com/armeria-program/apbs-pdb2pqr/pipeline"
	"github.com/armeria-program/apbs-pdb2pqr/report"
	"github.com/armeria-program/apbs-pdb2pqr/titration"
)

type flags struct {
	ff         string
	ffout      string
	ph         float64
	phMethod   string
	nodebump   bool
	noopt      bool
	clean      bool
	assignOnly bool
	neutraln   bool
	neutralc   bool
	whitespace bool
	chain      bool
	dropWater  bool
	rama       string
	verbose    bool
}

func main() {
	var fl flags
	root := &cobra.Command{
		Use:   "pdb2pqr [flags] input.pdb output.pqr",
		Short: "prepare a PDB structure and write it as PQR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(fl, args[0], args[1])
		},
	}
	f := root.Flags()
	f.StringVar(&fl.ff, "ff", "parse", "force field for charges and radii")
	f.StringVar(&fl.ffout, "ffout", "", "output naming scheme (amber, charmm)")
	f.Float64Var(&fl.ph, "with-ph", 7.0, "pH for the titration-state assignment")
	f.StringVar(&fl.phMethod, "titration-state-method", "", "external pKa engine (propka, pypka); model values if unset")
	f.BoolVar(&fl.nodebump, "nodebump", false, "skip the steric debumping passes")
	f.BoolVar(&fl.noopt, "noopt", false, "skip the hydrogen-orientation optimization")
	f.BoolVar(&fl.clean, "clean", false, "align and renumber only, touch nothing else")
	f.BoolVar(&fl.assignOnly, "assign-only", false, "assign charges and radii on the input as-is")
	f.BoolVar(&fl.neutraln, "neutraln", false, "build the amino terminus neutral (PARSE only)")
	f.BoolVar(&fl.neutralc, "neutralc", false, "build the carboxy terminus neutral (PARSE only)")
	f.BoolVar(&fl.whitespace, "whitespace", false, "pad the PQR columns with extra whitespace")
	f.BoolVar(&fl.chain, "chain", false, "keep the chain identifier in the PQR output")
	f.BoolVar(&fl.dropWater, "drop-water", false, "remove the crystallographic waters")
	f.StringVar(&fl.rama, "rama", "", "also write a Ramachandran plot to this PNG file")
	f.BoolVar(&fl.verbose, "verbose", false, "debug-level logging")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(fl flags, input, output string) error {
	log, err := newLogger(fl.verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := configFrom(fl)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := pqr.PDBFileRead(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	log.Info("structure read",
		zap.String("file", input),
		zap.Int("atoms", p.NumAtoms()),
		zap.Int("residues", p.NumResidues()))
	for _, c := range p.Chains {
		if seq := c.Sequence(); seq != "" {
			log.Debug("chain", zap.String("id", c.ID), zap.String("sequence", seq))
		}
	}

	cat := def.NewCatalog()
	res, err := pipeline.Run(p, cat, cfg)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}
	log.Info("pipeline done",
		zap.Int("atoms", p.NumAtoms()),
		zap.Float64("charge", res.TotalCharge),
		zap.Int("missed", len(res.MissedAtoms)+len(res.MissedLigands)),
		zap.Int("nonintegral", len(res.NonIntegral)))

	if err := pqr.PQRFileWrite(output, p, res.Header(cfg), cfg.PQROptions()); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	log.Info("PQR written", zap.String("file", output))

	if fl.rama != "" {
		data := report.PhiPsis(p)
		if err := report.RamaPlot(data, input, fl.rama); err != nil {
			return err
		}
		log.Info("Ramachandran plot written",
			zap.String("file", fl.rama), zap.Int("residues", len(data)))
	}
	return nil
}

func configFrom(fl flags) (pipeline.Config, error) {
	cfg := pipeline.Default()
	cfg.Forcefield = fl.ff
	cfg.NamingScheme = fl.ffout
	cfg.PH = fl.ph
	cfg.Optimize = !fl.noopt
	cfg.Debump = !fl.nodebump
	cfg.NeutralN = fl.neutraln
	cfg.NeutralC = fl.neutralc
	cfg.AssignOnly = fl.assignOnly
	cfg.Clean = fl.clean
	cfg.DropWater = fl.dropWater
	cfg.KeepChain = fl.chain
	cfg.Whitespace = fl.whitespace
	switch strings.ToLower(fl.phMethod) {
	case "":
		//model values, no engine calls
	case "propka":
		cfg.Engine = &titration.Propka{}
		cfg.MethodName = "propka"
	case "pypka":
		cfg.Engine = &titration.PypKa{}
		cfg.MethodName = "pypka"
	default:
		return cfg, fmt.Errorf("unknown titration-state method %q, have propka, pypka", fl.phMethod)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.Encoding = "console"
	if verbose {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return c.Build()
}
