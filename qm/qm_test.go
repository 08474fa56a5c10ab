/*
 * qm_test.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 */

package qm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

func testMolecule(t *testing.T) (*chem.Molecule, *v3.Matrix) {
	t.Helper()
	ats := []*chem.Atom{
		{Symbol: "O", Z: 8, Id: 1},
		{Symbol: "O", Z: 8, Id: 2},
	}
	top, err := chem.NewTopology(ats, 0, 3) //triplet O2
	require.NoError(t, err)
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 1.208, 0, 0})
	require.NoError(t, err)
	mol, err := chem.NewMolecule(top, []*v3.Matrix{coords})
	require.NoError(t, err)
	return mol, coords
}

func TestXTBBuildInput(t *testing.T) {
	mol, coords := testMolecule(t)
	tmp := t.TempDir()

	h := NewXTBHandle()
	h.SetWorkDir(tmp)
	h.SetName("o2")
	Q := &Calc{Method: "gfn2", Solvent: "h2o"}
	require.NoError(t, h.BuildInput(coords, mol, Q))

	_, err := os.Stat(filepath.Join(tmp, "o2.xyz"))
	assert.NoError(t, err)
	opts := strings.Join(h.options, " ")
	assert.Contains(t, opts, "--gfn 2")
	assert.Contains(t, opts, "--uhf 2")
	assert.Contains(t, opts, "--alpb h2o")
}

func TestXTBChargesAndEnergy(t *testing.T) {
	mol, coords := testMolecule(t)
	tmp := t.TempDir()

	h := NewXTBHandle()
	h.SetWorkDir(tmp)
	h.SetName("o2")
	require.NoError(t, h.BuildInput(coords, mol, &Calc{Method: "gfn2"}))

	out := `...
          | TOTAL ENERGY             -10.252401234567 Eh   |
normal termination of xtb
`
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "o2.out"), []byte(out), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "charges"), []byte(" -0.1234\n  0.1234\n"), 0o644))

	e, err := h.Energy()
	require.NoError(t, err)
	assert.InDelta(t, -10.252401234567, e, 1e-12)

	q, err := h.Charges()
	require.NoError(t, err)
	require.Len(t, q, 2)
	assert.InDelta(t, -0.1234, q[0], 1e-8)
}

func TestXTBAbnormalTermination(t *testing.T) {
	mol, coords := testMolecule(t)
	tmp := t.TempDir()

	h := NewXTBHandle()
	h.SetWorkDir(tmp)
	h.SetName("o2")
	require.NoError(t, h.BuildInput(coords, mol, &Calc{Method: "gfn1"}))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "o2.out"),
		[]byte("abnormal termination of xtb\n"), 0o644))

	_, err := h.Energy()
	assert.Error(t, err)
}

func TestOrcaBuildInput(t *testing.T) {
	mol, coords := testMolecule(t)
	tmp := t.TempDir()

	h := NewOrcaHandle()
	h.SetWorkDir(tmp)
	h.SetName("o2")
	Q := &Calc{Method: "wb97m-v"}
	Q.SetDefaults()
	Q.Dielectric = 80
	Q.UKS = true
	require.NoError(t, h.BuildInput(coords, mol, Q))

	data, err := os.ReadFile(filepath.Join(tmp, "o2.inp"))
	require.NoError(t, err)
	inp := string(data)
	assert.Contains(t, inp, "! UKS wB97M-V def2-TZVPPD DEFGRID3")
	assert.Contains(t, inp, "Hirshfeld")
	assert.Contains(t, inp, "epsilon 80.0")
	assert.Contains(t, inp, "* xyzfile 0 3 o2.xyz")
}

func TestOrcaParse(t *testing.T) {
	tmp := t.TempDir()
	h := NewOrcaHandle()
	h.SetWorkDir(tmp)
	h.SetName("o2")

	out := `...
FINAL SINGLE POINT ENERGY      -150.325601987654
------------------
HIRSHFELD ANALYSIS
------------------
Total integrated alpha density
  ATOM     CHARGE      SPIN
   0 O   -0.031159    1.000000
   1 O    0.031159    1.000000

                             ****ORCA TERMINATED NORMALLY****
`
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "o2.out"), []byte(out), 0o644))

	e, err := h.Energy()
	require.NoError(t, err)
	assert.InDelta(t, -150.325601987654, e, 1e-12)

	q, err := h.Charges()
	require.NoError(t, err)
	require.Len(t, q, 2)
	assert.InDelta(t, -0.031159, q[0], 1e-8)
	assert.InDelta(t, 0.031159, q[1], 1e-8)
}

func TestEEQBuildInput(t *testing.T) {
	mol, coords := testMolecule(t)
	tmp := t.TempDir()

	h := NewEEQHandle()
	h.SetWorkDir(tmp)
	h.SetName("o2")
	require.NoError(t, h.BuildInput(coords, mol, &Calc{Method: "eeq_bc", Dielectric: 80}))
	assert.Contains(t, strings.Join(h.options, " "), "--model eeq_bc")
	assert.Contains(t, strings.Join(h.options, " "), "--dielectric 80.0")

	err := h.BuildInput(coords, mol, &Calc{Method: "mulliken"})
	assert.Error(t, err)

	_, err = h.Energy()
	assert.Error(t, err)
}

func TestMethods(t *testing.T) {
	m, err := LookupMethod("EEQ_BC")
	require.NoError(t, err)
	assert.Equal(t, EEQ, m.Program)

	_, err = LookupMethod("B3LYP")
	assert.Error(t, err)

	for _, label := range KnownMethods() {
		m, err := LookupMethod(label)
		require.NoError(t, err)
		h, Q, err := m.Handle()
		require.NoError(t, err)
		assert.NotNil(t, h)
		assert.NotNil(t, Q)
	}
}

func TestChargesOnly(t *testing.T) {
	chargeModels := map[string]bool{
		"EEQ": true, "EEQ_DIELECTRIC": true,
		"EEQ_BC": true, "EEQ_BC_DIELECTRIC": true,
		"CEH-v2": true,
	}
	for _, label := range KnownMethods() {
		m, err := LookupMethod(label)
		require.NoError(t, err)
		assert.Equal(t, chargeModels[label], m.ChargesOnly(), label)
	}
}

func TestLoadMethods(t *testing.T) {
	tmp := t.TempDir()
	def := `- label: EEQ_BC
  program: eeq_bc
  model: eeq_bc
  dielectric: 37
- label: PBE
  program: orca
  model: pbe
`
	path := filepath.Join(tmp, "methods.yaml")
	require.NoError(t, os.WriteFile(path, []byte(def), 0o644))

	methods, err := LoadMethods(path)
	require.NoError(t, err)
	assert.Len(t, methods, len(defaultMethods)+1)
	for _, m := range methods {
		if m.Label == "EEQ_BC" {
			assert.Equal(t, 37.0, m.Dielectric)
		}
	}
}
