/*
 * stats.go, part of eeqbc.
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

	"github.com/spf13/cobra"

	"github.com/grimme-lab/SI-EEQ-BC/stats"
	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

var statsCmd = &cobra.Command{
	Use:   "stats [wide.csv]",
	Short: "Error statistics of each method against a reference column",
	Long: `Stats reads a pivoted table and prints, for every method column,
mean deviation, mean absolute deviation, RMSD, standard deviation,
extrema and the Pearson correlation against the reference column.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("reference", "wB97M-V", "reference method column")
	statsCmd.Flags().String("phase", "all", "method columns to keep (all, gas or solvated)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	phase, err := parsePhase(cmd)
	if err != nil {
		return err
	}
	ref, _ := cmd.Flags().GetString("reference")
	curve, err := tables.ReadWideFile(args[0])
	if err != nil {
		return err
	}
	curve = curve.FilterPhase(phase)
	sums, err := stats.Compare(curve, ref)
	if err != nil {
		return err
	}
	fmt.Print(stats.Format(sums))
	return nil
}
