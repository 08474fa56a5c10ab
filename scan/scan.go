/*
 * scan.go, part of eeqbc.
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

// Package scan generates rigid distance-scan datasets: from a template
// geometry, a selected set of atoms is displaced along one cartesian
// axis over a range of values, and one directory per scan point is
// written, together with a manifest listing the points in order.
package scan

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// ManifestName is the file listing the scan-point directories, one
// per line, in generation order.
const ManifestName = ".list.dirs"

// StrucName is the per-point copy of the geometry under a fixed name,
// as expected by the calculation runners.
const StrucName = "struc.xyz"

// tol is the tolerance used when matching the axis coordinate that
// identifies the atoms to displace.
const tol = 1e-6

// Axis names the cartesian axis along which atoms are displaced.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// ParseAxis converts "x", "y" or "z" (case-insensitive) into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Options defines a distance scan. Atoms with the element Symbol whose
// Axis coordinate equals Coord in the template are displaced to every
// value in [Start,Stop] with the given Step.
type Options struct {
	Start  float64
	Stop   float64
	Step   float64
	Axis   Axis
	Symbol string
	Coord  float64
}

// Points returns the scan distances implied by the options.
func (o Options) Points() ([]float64, error) {
	if o.Step <= 0 {
		return nil, fmt.Errorf("scan step must be positive, got %g", o.Step)
	}
	if o.Stop < o.Start {
		return nil, fmt.Errorf("scan stop (%g) before start (%g)", o.Stop, o.Start)
	}
	var points []float64
	for i := 0; ; i++ {
		d := o.Start + float64(i)*o.Step
		if d > o.Stop+tol {
			break
		}
		points = append(points, d)
	}
	return points, nil
}

// PointName returns the directory name for a scan distance, e.g.
// "3.5A" for 3.5 Angstrom.
func PointName(d float64) string {
	return fmt.Sprintf("%.1fA", d)
}

// Run generates the scan dataset for the template geometry in the
// XYZ file template, under outdir. It returns the names of the scan
// point directories, in order, and writes them to the manifest.
func Run(template, outdir string, opt Options) ([]string, error) {
	points, err := opt.Points()
	if err != nil {
		return nil, err
	}
	mol, err := chem.XYZRead(template)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	var selected []int
	for i := 0; i < mol.Len(); i++ {
		if mol.Atom(i).Symbol != opt.Symbol {
			continue
		}
		if math.Abs(mol.Coords[0].At(i, int(opt.Axis))-opt.Coord) < tol {
			selected = append(selected, i)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no %s atom with %s = %g in template %s", opt.Symbol, [3]string{"x", "y", "z"}[opt.Axis], opt.Coord, template)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	dirs := make([]string, 0, len(points))
	for _, d := range points {
		name := PointName(d)
		pointdir := filepath.Join(outdir, name)
		if err := os.MkdirAll(pointdir, 0o755); err != nil {
			return nil, fmt.Errorf("creating scan point %s: %w", name, err)
		}
		coords := mol.Coords[0].Copy()
		for _, i := range selected {
			coords.Set(i, int(opt.Axis), d)
		}
		comment := fmt.Sprintf("%s %s scan point, %s = %.6f A", mol.SumFormula(), opt.Symbol, [3]string{"x", "y", "z"}[opt.Axis], d)
		if err := writeXYZ(filepath.Join(pointdir, name+".xyz"), coords, mol, comment); err != nil {
			return nil, err
		}
		if err := writeXYZ(filepath.Join(pointdir, StrucName), coords, mol, comment); err != nil {
			return nil, err
		}
		dirs = append(dirs, name)
	}
	if err := WriteManifest(outdir, dirs); err != nil {
		return nil, err
	}
	return dirs, nil
}

func writeXYZ(name string, coords *v3.Matrix, mol *chem.Molecule, comment string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()
	if err := chem.XYZWrite(f, coords, mol, comment); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteManifest writes the scan-point directory names to the manifest
// file under outdir.
func WriteManifest(outdir string, dirs []string) error {
	f, err := os.Create(filepath.Join(outdir, ManifestName))
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	defer f.Close()
	for _, d := range dirs {
		fmt.Fprintln(f, d)
	}
	return nil
}

// ReadManifest returns the scan-point directory names listed in the
// manifest under outdir, in file order.
func ReadManifest(outdir string) ([]string, error) {
	f, err := os.Open(filepath.Join(outdir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()
	var dirs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			dirs = append(dirs, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return dirs, nil
}
