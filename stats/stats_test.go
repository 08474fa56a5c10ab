/*
 * stats_test.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 */

package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimme-lab/SI-EEQ-BC/tables"
)

func testCurve() *tables.Curve {
	return &tables.Curve{
		Methods: []string{"EEQ", "EEQ_BC", "wB97M-V"},
		Points: []tables.CurvePoint{
			{CID: "1.5A", X: 1.5, Values: map[string]float64{"EEQ": -0.40, "EEQ_BC": -0.82, "wB97M-V": -0.80}},
			{CID: "2.0A", X: 2.0, Values: map[string]float64{"EEQ": -0.20, "EEQ_BC": -0.43, "wB97M-V": -0.40}},
			{CID: "3.0A", X: 3.0, Values: map[string]float64{"EEQ": -0.10, "EEQ_BC": -0.09, "wB97M-V": -0.10}},
			{CID: "8.0A", X: 8.0, Values: map[string]float64{"EEQ": -0.05, "EEQ_BC": 0.01, "wB97M-V": 0.00}},
		},
	}
}

func TestCompare(t *testing.T) {
	sums, err := Compare(testCurve(), "wB97M-V")
	require.NoError(t, err)
	require.Len(t, sums, 2)

	eeq, bc := sums[0], sums[1]
	assert.Equal(t, "EEQ", eeq.Method)
	assert.Equal(t, "EEQ_BC", bc.Method)
	assert.Equal(t, 4, eeq.N)

	//EEQ errors: 0.40, 0.20, 0.00, -0.05
	assert.InDelta(t, 0.1375, eeq.MD, 1e-10)
	assert.InDelta(t, 0.1625, eeq.MAD, 1e-10)
	assert.InDelta(t, math.Sqrt((0.16+0.04+0.0+0.0025)/4), eeq.RMSD, 1e-10)
	assert.InDelta(t, -0.05, eeq.Min, 1e-10)
	assert.InDelta(t, 0.40, eeq.Max, 1e-10)

	//EEQ_BC errors: -0.02, -0.03, 0.01, 0.01
	assert.InDelta(t, -0.0075, bc.MD, 1e-10)
	assert.InDelta(t, 0.0175, bc.MAD, 1e-10)
	//EEQ_BC tracks the reference much more closely than EEQ
	assert.Less(t, bc.MAD, eeq.MAD)
	assert.Greater(t, bc.R, 0.99)
}

func TestCompareErrors(t *testing.T) {
	_, err := Compare(testCurve(), "PBE")
	assert.Error(t, err)

	one := &tables.Curve{
		Methods: []string{"wB97M-V"},
		Points:  []tables.CurvePoint{{CID: "1.5A", X: 1.5, Values: map[string]float64{"wB97M-V": -0.8}}},
	}
	_, err = Compare(one, "wB97M-V")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	sums, err := Compare(testCurve(), "wB97M-V")
	require.NoError(t, err)
	out := Format(sums)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "RMSD")
	assert.Contains(t, lines[1], "EEQ")
}
