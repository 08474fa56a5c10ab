/*
 * run.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	"github.com/grimme-lab/SI-EEQ-BC/qm"
	"github.com/grimme-lab/SI-EEQ-BC/scan"
	"github.com/grimme-lab/SI-EEQ-BC/store"
	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

var runCmd = &cobra.Command{
	Use:   "run [dataset-dir]",
	Short: "Run the charge and energy calculations over a dataset",
	Long: `Run walks the structure directories listed in the dataset manifest
and, for every requested method, builds the program input, runs the
external program and parses charges and total energy from its output.
A failed calculation is logged and skipped so one diverged SCF does
not lose a day of results. The collected rows go to long-format CSV
files and, if requested, to a SQLite results database.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("methods", "", "comma-separated method labels (default: all built-in methods)")
	runCmd.Flags().String("methods-file", "", "YAML file with extra method definitions")
	runCmd.Flags().Int("charge", 0, "total charge of the structures")
	runCmd.Flags().Int("multiplicity", 1, "spin multiplicity of the structures")
	runCmd.Flags().String("charges-out", "charges.csv", "output CSV for atomic charges")
	runCmd.Flags().String("energies-out", "energies.csv", "output CSV for total energies")
	runCmd.Flags().String("db", "", "also upsert the rows into this SQLite database")
	runCmd.Flags().Int("ncpu", 0, "cores per external calculation (0: program default)")
	viper.BindPFlag("ncpu", runCmd.Flags().Lookup("ncpu"))
	rootCmd.AddCommand(runCmd)
}

// configureHandle applies the config keys xtb.command, orca.command,
// eeq.command and ncpu, so non-PATH binaries and core counts can be
// set in eeqbc.yaml, the environment or the --ncpu flag.
func configureHandle(h qm.Handle) {
	ncpu := viper.GetInt("ncpu")
	switch hh := h.(type) {
	case *qm.XTBHandle:
		if c := viper.GetString("xtb.command"); c != "" {
			hh.SetCommand(c)
		}
		if ncpu > 0 {
			hh.SetnCPU(ncpu)
		}
	case *qm.OrcaHandle:
		if c := viper.GetString("orca.command"); c != "" {
			hh.SetCommand(c)
		}
		if ncpu > 0 {
			hh.SetnCPU(ncpu)
		}
	case *qm.EEQHandle:
		if c := viper.GetString("eeq.command"); c != "" {
			hh.SetCommand(c)
		}
	}
}

// selectMethods resolves the methods flags into concrete definitions.
func selectMethods(cmd *cobra.Command) ([]qm.Method, error) {
	file, _ := cmd.Flags().GetString("methods-file")
	labels, _ := cmd.Flags().GetString("methods")

	available := []qm.Method{}
	if file != "" {
		loaded, err := qm.LoadMethods(file)
		if err != nil {
			return nil, err
		}
		available = loaded
	} else {
		for _, l := range qm.KnownMethods() {
			m, err := qm.LookupMethod(l)
			if err != nil {
				return nil, err
			}
			available = append(available, m)
		}
	}
	if labels == "" {
		return available, nil
	}
	var selected []qm.Method
	for _, l := range strings.Split(labels, ",") {
		l = strings.TrimSpace(l)
		found := false
		for _, m := range available {
			if m.Label == l {
				selected = append(selected, m)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown method %q", l)
		}
	}
	return selected, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	dataset := args[0]
	methods, err := selectMethods(cmd)
	if err != nil {
		return err
	}
	charge, _ := cmd.Flags().GetInt("charge")
	multi, _ := cmd.Flags().GetInt("multiplicity")

	dirs, err := scan.ReadManifest(dataset)
	if err != nil {
		return err
	}

	var chargeRows []tables.ChargeRow
	var energyRows []tables.EnergyRow
	failed := 0
	for _, dir := range dirs {
		workdir := filepath.Join(dataset, dir)
		mol, err := chem.XYZRead(filepath.Join(workdir, scan.StrucName))
		if err != nil {
			log.Printf("%s: %v", dir, err)
			failed++
			continue
		}
		mol.SetCharge(charge)
		mol.SetMulti(multi)
		for _, m := range methods {
			cr, er, err := runOne(m, mol, workdir, dir)
			if err != nil {
				log.Printf("%s %s: %v", dir, m.Label, err)
				failed++
				continue
			}
			chargeRows = append(chargeRows, cr...)
			if er != nil {
				energyRows = append(energyRows, *er)
			}
		}
	}

	if err := writeRows(cmd, chargeRows, energyRows); err != nil {
		return err
	}
	fmt.Printf("collected %d charge rows and %d energies from %d directories\n",
		len(chargeRows), len(energyRows), len(dirs))
	if failed > 0 {
		return fmt.Errorf("%d calculation(s) failed", failed)
	}
	return nil
}

// runOne runs one method in one structure directory and parses the
// results. The energy row is nil for charge-only models.
func runOne(m qm.Method, mol *chem.Molecule, workdir, cid string) ([]tables.ChargeRow, *tables.EnergyRow, error) {
	h, Q, err := m.Handle()
	if err != nil {
		return nil, nil, err
	}
	configureHandle(h)
	h.SetName(cid)
	h.SetWorkDir(workdir)
	if err := h.BuildInput(mol.Coords[0], mol, Q); err != nil {
		return nil, nil, err
	}
	if err := h.Run(true); err != nil {
		return nil, nil, err
	}
	charges, err := h.Charges()
	if err != nil {
		return nil, nil, err
	}
	if len(charges) != mol.Len() {
		return nil, nil, fmt.Errorf("got %d charges for %d atoms", len(charges), mol.Len())
	}
	rows := make([]tables.ChargeRow, 0, len(charges))
	for i, q := range charges {
		rows = append(rows, tables.ChargeRow{
			CID:        cid,
			AtomNumber: i + 1,
			AtomType:   mol.Atom(i).Z,
			Method:     m.Label,
			Charge:     q,
		})
	}
	if m.ChargesOnly() {
		return rows, nil, nil
	}
	energy, err := h.Energy()
	if err != nil {
		return nil, nil, err
	}
	return rows, &tables.EnergyRow{CID: cid, Method: m.Label, Energy: energy}, nil
}

func writeRows(cmd *cobra.Command, chargeRows []tables.ChargeRow, energyRows []tables.EnergyRow) error {
	chargesOut, _ := cmd.Flags().GetString("charges-out")
	energiesOut, _ := cmd.Flags().GetString("energies-out")
	dbPath, _ := cmd.Flags().GetString("db")

	if len(chargeRows) > 0 {
		if err := writeCSV(chargesOut, func(f *os.File) error {
			return tables.WriteCharges(f, chargeRows)
		}); err != nil {
			return err
		}
	}
	if len(energyRows) > 0 {
		if err := writeCSV(energiesOut, func(f *os.File) error {
			return tables.WriteEnergies(f, energyRows)
		}); err != nil {
			return err
		}
	}
	if dbPath != "" {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		ctx := context.Background()
		if err := s.PutCharges(ctx, chargeRows); err != nil {
			return err
		}
		if err := s.PutEnergies(ctx, energyRows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
