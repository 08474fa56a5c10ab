/*
 * eeqbc_test.go, part of eeqbc.
 *
 * Copyright 2025 The eeqbc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 */

package eeqbc

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

// TestXYZIO tests that XYZ files are opened, read and written back
// correctly.
func TestXYZIO(Te *testing.T) {
	mol, err := XYZRead("test/ch4o2.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 7 {
		Te.Errorf("expected 7 atoms, got %d", mol.Len())
	}
	if mol.Atom(0).Symbol != "C" || mol.Atom(5).Symbol != "O" {
		Te.Errorf("wrong symbols read: %s %s", mol.Atom(0).Symbol, mol.Atom(5).Symbol)
	}
	if y := mol.Coords[0].At(5, 1); y != 2.0 {
		Te.Errorf("expected O y-coordinate 2.0, got %f", y)
	}
	var buf bytes.Buffer
	err = XYZWrite(&buf, mol.Coords[0], mol, "roundtrip")
	if err != nil {
		Te.Fatal(err)
	}
	mol2, err := XYZReaderRead(strings.NewReader(buf.String()))
	if err != nil {
		Te.Fatal(err)
	}
	if mol2.Len() != mol.Len() {
		Te.Errorf("roundtrip changed atom count: %d vs %d", mol2.Len(), mol.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(mol.Coords[0].At(i, j)-mol2.Coords[0].At(i, j)) > 1e-7 {
				Te.Errorf("coordinate %d,%d changed on roundtrip", i, j)
			}
		}
	}
}

// TestPSE tests the periodic-table lookups against the element range
// used in the datasets (H to Lr).
func TestPSE(Te *testing.T) {
	if Symbol(8) != "O" || Symbol(89) != "Ac" || Symbol(103) != "Lr" {
		Te.Error("wrong symbols from atomic numbers")
	}
	z, err := AtomicNumber("th")
	if err != nil || z != 90 {
		Te.Errorf("expected Th = 90, got %d (%v)", z, err)
	}
	if _, err := AtomicNumber("Xy"); err == nil {
		Te.Error("expected an error for a bogus symbol")
	}
	for z := 1; z <= 103; z++ {
		if CovalentRadius(Symbol(z)) <= 0 {
			Te.Errorf("missing covalent radius for %s", Symbol(z))
		}
		if Mass(Symbol(z)) <= 0 {
			Te.Errorf("missing mass for %s", Symbol(z))
		}
	}
}

func TestSumFormula(Te *testing.T) {
	mol, err := XYZRead("test/ch4o2.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if f := mol.SumFormula(); f != "CH4O2" {
		Te.Errorf("expected CH4O2, got %s", f)
	}
}
