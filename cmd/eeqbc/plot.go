/*
 * plot.go, part of eeqbc.
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

	"github.com/grimme-lab/SI-EEQ-BC/plots"
	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

var plotCmd = &cobra.Command{
	Use:   "plot [charges|energies] [wide.csv] [out.svg]",
	Short: "Draw the benchmark figures from a pivoted table",
	Long: `Plot draws the cumulated-charge or relative-energy curves of a
pivoted table with the method colors and markers of the publication.
The output format follows the file extension; the published figures
are SVG.`,
	Args: cobra.ExactArgs(3),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().String("phase", "all", "method columns to keep (all, gas or solvated)")
	plotCmd.Flags().Float64("ref-line", 0, "dotted vertical line at this scan coordinate, 0 for none")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	phase, err := parsePhase(cmd)
	if err != nil {
		return err
	}
	curve, err := tables.ReadWideFile(args[1])
	if err != nil {
		return err
	}
	curve = curve.FilterPhase(phase)
	var opts plots.Options
	opts.RefLine, _ = cmd.Flags().GetFloat64("ref-line")

	switch args[0] {
	case "charges":
		return plots.Charges(curve, args[2], opts)
	case "energies":
		return plots.Energies(curve, args[2], opts)
	}
	return fmt.Errorf("unknown figure kind %q (want charges or energies)", args[0])
}
