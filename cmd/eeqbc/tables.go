/*
 * tables.go, part of eeqbc.
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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Pivot the long-format result CSVs into publication tables",
}

var tablesChargesCmd = &cobra.Command{
	Use:   "charges [charges.csv] [out.csv]",
	Short: "Cumulate fragment charges per scan point, one method per column",
	Long: `Charges sums, for every scan point and method, the charges of all
atoms of one element. For the CH4-O2 scan that is the total charge
transferred to the O2 fragment as a function of distance.`,
	Args: cobra.ExactArgs(2),
	RunE: runTablesCharges,
}

var tablesEnergiesCmd = &cobra.Command{
	Use:   "energies [energies.csv] [out.csv]",
	Short: "Pivot total energies, optionally re-zeroed at the last point",
	Long: `Energies pivots the long-format energy table into one column per
method. With --rezero the curves are shifted so the reference method
is zero at the longest distance, converted to kcal/mol, referencing
everything to the dissociation limit.`,
	Args: cobra.ExactArgs(2),
	RunE: runTablesEnergies,
}

func init() {
	tablesChargesCmd.Flags().String("element", "O", "element whose charges are cumulated")
	tablesChargesCmd.Flags().String("phase", "all", "method columns to keep (all, gas or solvated)")
	tablesEnergiesCmd.Flags().String("rezero", "", "reference method for the dissociation-limit shift")
	tablesEnergiesCmd.Flags().String("phase", "all", "method columns to keep (all, gas or solvated)")
	tablesCmd.AddCommand(tablesChargesCmd, tablesEnergiesCmd)
	rootCmd.AddCommand(tablesCmd)
}

func parsePhase(cmd *cobra.Command) (tables.Phase, error) {
	s, _ := cmd.Flags().GetString("phase")
	switch s {
	case "all":
		return tables.AllPhases, nil
	case "gas":
		return tables.GasPhase, nil
	case "solvated":
		return tables.SolvatedPhase, nil
	}
	return tables.AllPhases, fmt.Errorf("unknown phase %q (want all, gas or solvated)", s)
}

func writeWide(curve *tables.Curve, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := curve.WriteWide(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runTablesCharges(cmd *cobra.Command, args []string) error {
	phase, err := parsePhase(cmd)
	if err != nil {
		return err
	}
	element, _ := cmd.Flags().GetString("element")
	z, err := chem.AtomicNumber(element)
	if err != nil {
		return err
	}
	rows, err := tables.ReadChargesFile(args[0])
	if err != nil {
		return err
	}
	curve, err := tables.CumulateCharges(rows, z)
	if err != nil {
		return err
	}
	return writeWide(curve.FilterPhase(phase), args[1])
}

func runTablesEnergies(cmd *cobra.Command, args []string) error {
	phase, err := parsePhase(cmd)
	if err != nil {
		return err
	}
	rows, err := tables.ReadEnergiesFile(args[0])
	if err != nil {
		return err
	}
	curve, err := tables.PivotEnergies(rows)
	if err != nil {
		return err
	}
	if ref, _ := cmd.Flags().GetString("rezero"); ref != "" {
		if err := curve.Rezero(ref); err != nil {
			return err
		}
	}
	return writeWide(curve.FilterPhase(phase), args[1])
}
