/*
 * scan_test.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 */

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/grimme-lab/SI-EEQ-BC"
)

const template = `7
CH4 + O2, O2 at y = 2.0 A
C     0.00000000     0.00000000     0.00000000
H     0.62912000     0.62912000     0.62912000
H    -0.62912000    -0.62912000     0.62912000
H    -0.62912000     0.62912000    -0.62912000
H     0.62912000    -0.62912000    -0.62912000
O    -0.60400000     2.00000000     0.00000000
O     0.60400000     2.00000000     0.00000000
`

func writeTemplate(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	name := filepath.Join(tmp, "ch4o2.xyz")
	require.NoError(t, os.WriteFile(name, []byte(template), 0o644))
	return name, tmp
}

func TestRun(t *testing.T) {
	tmpl, tmp := writeTemplate(t)
	outdir := filepath.Join(tmp, "output_xyz")

	dirs, err := Run(tmpl, outdir, Options{
		Start: 1.5, Stop: 2.0, Step: 0.1,
		Axis: Y, Symbol: "O", Coord: 2.0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5A", "1.6A", "1.7A", "1.8A", "1.9A", "2.0A"}, dirs)

	// manifest round trip
	got, err := ReadManifest(outdir)
	require.NoError(t, err)
	assert.Equal(t, dirs, got)

	// both oxygens displaced, everything else untouched
	mol, err := chem.XYZRead(filepath.Join(outdir, "1.5A", StrucName))
	require.NoError(t, err)
	require.Equal(t, 7, mol.Len())
	assert.InDelta(t, 1.5, mol.Coords[0].At(5, 1), 1e-8)
	assert.InDelta(t, 1.5, mol.Coords[0].At(6, 1), 1e-8)
	assert.InDelta(t, -0.604, mol.Coords[0].At(5, 0), 1e-8)
	assert.InDelta(t, 0.62912, mol.Coords[0].At(1, 0), 1e-8)

	// the named copy is present next to struc.xyz
	_, err = os.Stat(filepath.Join(outdir, "1.5A", "1.5A.xyz"))
	assert.NoError(t, err)
}

func TestRunBadOptions(t *testing.T) {
	tmpl, tmp := writeTemplate(t)
	outdir := filepath.Join(tmp, "out")

	_, err := Run(tmpl, outdir, Options{Start: 1.5, Stop: 8.0, Step: 0, Axis: Y, Symbol: "O", Coord: 2.0})
	assert.Error(t, err)

	_, err = Run(tmpl, outdir, Options{Start: 8.0, Stop: 1.5, Step: 0.1, Axis: Y, Symbol: "O", Coord: 2.0})
	assert.Error(t, err)

	// no nitrogen in the template
	_, err = Run(tmpl, outdir, Options{Start: 1.5, Stop: 2.0, Step: 0.1, Axis: Y, Symbol: "N", Coord: 2.0})
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("Y")
	require.NoError(t, err)
	assert.Equal(t, Y, a)
	_, err = ParseAxis("w")
	assert.Error(t, err)
}

func TestPointsAvoidDrift(t *testing.T) {
	// 1.5 to 8.0 in 0.1 steps is the published CH4-O2 scan; float
	// accumulation must not drop the last point.
	pts, err := Options{Start: 1.5, Stop: 8.0, Step: 0.1}.Points()
	require.NoError(t, err)
	assert.Len(t, pts, 66)
	assert.InDelta(t, 8.0, pts[len(pts)-1], 1e-9)
}
