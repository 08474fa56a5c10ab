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

// Package stats computes the per-method error statistics of the
// result tables against a reference method.
package stats

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

// Summary holds the error statistics of one method column against
// the reference column, over the points of a curve.
type Summary struct {
	Method string
	N      int     //number of points compared
	MD     float64 //mean deviation (signed)
	MAD    float64 //mean absolute deviation
	RMSD   float64 //root mean square deviation
	SD     float64 //standard deviation of the error
	Min    float64 //most negative deviation
	Max    float64 //most positive deviation
	R      float64 //Pearson correlation with the reference
}

// Compare computes error statistics for every method column of the
// curve against the column of refMethod. The reference itself is not
// reported.
func Compare(curve *tables.Curve, refMethod string) ([]Summary, error) {
	ref, err := curve.Column(refMethod)
	if err != nil {
		return nil, err
	}
	var sums []Summary
	for _, method := range curve.Methods {
		if method == refMethod {
			continue
		}
		col, err := curve.Column(method)
		if err != nil {
			return nil, err
		}
		sums = append(sums, summarize(method, col, ref))
	}
	if len(sums) == 0 {
		return nil, fmt.Errorf("no method to compare against %q", refMethod)
	}
	return sums, nil
}

func summarize(method string, col, ref []float64) Summary {
	n := len(col)
	errs := make([]float64, n)
	abs := make([]float64, n)
	sq := 0.0
	min, max := math.Inf(1), math.Inf(-1)
	for i := range col {
		e := col[i] - ref[i]
		errs[i] = e
		abs[i] = math.Abs(e)
		sq += e * e
		if e < min {
			min = e
		}
		if e > max {
			max = e
		}
	}
	return Summary{
		Method: method,
		N:      n,
		MD:     stat.Mean(errs, nil),
		MAD:    stat.Mean(abs, nil),
		RMSD:   math.Sqrt(sq / float64(n)),
		SD:     stat.StdDev(errs, nil),
		Min:    min,
		Max:    max,
		R:      stat.Correlation(col, ref, nil),
	}
}

// Format renders the summaries as a fixed-width text table, one row
// per method.
func Format(sums []Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-22s %5s %10s %10s %10s %10s %10s %10s %8s\n",
		"Method", "N", "MD", "MAD", "RMSD", "SD", "Min", "Max", "r")
	for _, s := range sums {
		fmt.Fprintf(&b, "%-22s %5d %10.5f %10.5f %10.5f %10.5f %10.5f %10.5f %8.4f\n",
			s.Method, s.N, s.MD, s.MAD, s.RMSD, s.SD, s.Min, s.Max, s.R)
	}
	return b.String()
}
