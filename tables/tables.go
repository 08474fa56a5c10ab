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

// Package tables handles the numerical result tables of the
// publication. The tables are stored long-format in CSV files with
// '#' comment lines: one row per (scan point, atom, method) for the
// charges, one row per (scan point, method) for the energies. The
// package pivots them into one column per method, accumulates charges
// per scan point, and re-references energy curves to a dissociation
// limit.
package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	chem "github.com/grimme-lab/SI-EEQ-BC"
)

// ChargeRow is one long-format partial-charge entry.
type ChargeRow struct {
	CID        string //scan point id, e.g. "3.5A"
	AtomNumber int    //1-based atom index within the structure
	AtomType   int    //atomic number
	Method     string
	Charge     float64
}

// EnergyRow is one long-format total-energy entry, in Hartree.
type EnergyRow struct {
	CID    string
	Method string
	Energy float64
}

// ParseCID extracts the numeric scan coordinate from a scan point id:
// "3.5A" and "3.5" both give 3.5.
func ParseCID(cid string) (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(cid), "A")
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("scan point id %q is not numeric: %w", cid, err)
	}
	return x, nil
}

// PointCID is the inverse of ParseCID: it formats a scan coordinate
// as the point id used in the result files.
func PointCID(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + "A"
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	return cr
}

// header maps column names to indexes, so column order in the files
// does not matter.
func header(record []string, want []string) (map[string]int, error) {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range want {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q (have %v)", name, record)
		}
	}
	return idx, nil
}

// ReadCharges reads a long-format charge table from r. The expected
// columns are CID, Atom number, Atom type, Method and Charge.
func ReadCharges(r io.Reader) ([]ChargeRow, error) {
	cr := newCSVReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading charge table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("charge table has no data rows")
	}
	idx, err := header(records[0], []string{"CID", "Atom number", "Atom type", "Method", "Charge"})
	if err != nil {
		return nil, err
	}
	rows := make([]ChargeRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		var row ChargeRow
		row.CID = strings.TrimSpace(rec[idx["CID"]])
		row.Method = strings.TrimSpace(rec[idx["Method"]])
		if row.AtomNumber, err = strconv.Atoi(strings.TrimSpace(rec[idx["Atom number"]])); err != nil {
			return nil, fmt.Errorf("charge table row %d: %w", n+2, err)
		}
		if row.AtomType, err = strconv.Atoi(strings.TrimSpace(rec[idx["Atom type"]])); err != nil {
			return nil, fmt.Errorf("charge table row %d: %w", n+2, err)
		}
		if row.Charge, err = strconv.ParseFloat(strings.TrimSpace(rec[idx["Charge"]]), 64); err != nil {
			return nil, fmt.Errorf("charge table row %d: %w", n+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadChargesFile reads a long-format charge table from a file.
func ReadChargesFile(path string) ([]ChargeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadCharges(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadEnergies reads a long-format energy table from r. The expected
// columns are CID, Method and Energy.
func ReadEnergies(r io.Reader) ([]EnergyRow, error) {
	cr := newCSVReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading energy table: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("energy table has no data rows")
	}
	idx, err := header(records[0], []string{"CID", "Method", "Energy"})
	if err != nil {
		return nil, err
	}
	rows := make([]EnergyRow, 0, len(records)-1)
	for n, rec := range records[1:] {
		var row EnergyRow
		row.CID = strings.TrimSpace(rec[idx["CID"]])
		row.Method = strings.TrimSpace(rec[idx["Method"]])
		if row.Energy, err = strconv.ParseFloat(strings.TrimSpace(rec[idx["Energy"]]), 64); err != nil {
			return nil, fmt.Errorf("energy table row %d: %w", n+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadEnergiesFile reads a long-format energy table from a file.
func ReadEnergiesFile(path string) ([]EnergyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadEnergies(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// WriteCharges writes a long-format charge table to w.
func WriteCharges(w io.Writer, rows []ChargeRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"CID", "Atom number", "Atom type", "Method", "Charge"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.CID,
			strconv.Itoa(row.AtomNumber),
			strconv.Itoa(row.AtomType),
			row.Method,
			strconv.FormatFloat(row.Charge, 'f', 8, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEnergies writes a long-format energy table to w.
func WriteEnergies(w io.Writer, rows []EnergyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"CID", "Method", "Energy"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.CID,
			row.Method,
			strconv.FormatFloat(row.Energy, 'f', 12, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Curve is a pivoted table: one point per scan coordinate, one value
// column per method. It is what the plots and statistics consume.
type Curve struct {
	Methods []string //in order of first appearance in the long table
	Points  []CurvePoint
}

// CurvePoint holds the method values at one scan coordinate.
type CurvePoint struct {
	CID    string
	X      float64
	Values map[string]float64
}

// Column returns the values of one method over the points, in point
// order.
func (c *Curve) Column(method string) ([]float64, error) {
	if !c.HasMethod(method) {
		return nil, fmt.Errorf("method %q not in table (have %v)", method, c.Methods)
	}
	col := make([]float64, len(c.Points))
	for i, p := range c.Points {
		v, ok := p.Values[method]
		if !ok {
			return nil, fmt.Errorf("method %q has no value at scan point %s", method, p.CID)
		}
		col[i] = v
	}
	return col, nil
}

// HasMethod returns whether the curve has a column for method.
func (c *Curve) HasMethod(method string) bool {
	for _, m := range c.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Xs returns the scan coordinates of the points, in point order.
func (c *Curve) Xs() []float64 {
	xs := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = p.X
	}
	return xs
}

// Phase selects table columns by solvation state.
type Phase int

const (
	//AllPhases keeps every method column.
	AllPhases Phase = iota
	//GasPhase drops the _DIELECTRIC and _CPCM columns.
	GasPhase
	//SolvatedPhase keeps only the _DIELECTRIC and _CPCM columns.
	SolvatedPhase
)

func solvated(method string) bool {
	return strings.HasSuffix(method, "_DIELECTRIC") || strings.HasSuffix(method, "_CPCM")
}

// FilterPhase returns a curve restricted to the methods of the given
// phase. The point data is shared with the receiver.
func (c *Curve) FilterPhase(phase Phase) *Curve {
	if phase == AllPhases {
		return c
	}
	var methods []string
	for _, m := range c.Methods {
		if (phase == SolvatedPhase) == solvated(m) {
			methods = append(methods, m)
		}
	}
	return &Curve{Methods: methods, Points: c.Points}
}

// CumulateCharges pivots a long-format charge table and accumulates,
// for each scan point, the charges of all atoms with atomic number z.
// This gives the cumulated charge on a fragment (e.g. the O2 molecule
// of the CH4-O2 scan) as a function of the scan coordinate.
func CumulateCharges(rows []ChargeRow, z int) (*Curve, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty charge table")
	}
	var methods []string
	sums := map[string]map[string]float64{} //CID -> method -> sum
	matched := false
	for _, row := range rows {
		if !isIn(methods, row.Method) {
			methods = append(methods, row.Method)
		}
		if row.AtomType != z {
			continue
		}
		matched = true
		if sums[row.CID] == nil {
			sums[row.CID] = map[string]float64{}
		}
		sums[row.CID][row.Method] += row.Charge
	}
	if !matched {
		return nil, fmt.Errorf("no atom with atomic number %d (%s) in the charge table", z, chem.Symbol(z))
	}
	curve := &Curve{Methods: methods}
	for cid, vals := range sums {
		x, err := ParseCID(cid)
		if err != nil {
			return nil, err
		}
		curve.Points = append(curve.Points, CurvePoint{CID: cid, X: x, Values: vals})
	}
	sortPoints(curve.Points)
	return curve, nil
}

// PivotEnergies pivots a long-format energy table into one energy
// column per method.
func PivotEnergies(rows []EnergyRow) (*Curve, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty energy table")
	}
	var methods []string
	vals := map[string]map[string]float64{}
	for _, row := range rows {
		if !isIn(methods, row.Method) {
			methods = append(methods, row.Method)
		}
		if vals[row.CID] == nil {
			vals[row.CID] = map[string]float64{}
		}
		vals[row.CID][row.Method] = row.Energy
	}
	curve := &Curve{Methods: methods}
	for cid, v := range vals {
		x, err := ParseCID(cid)
		if err != nil {
			return nil, err
		}
		curve.Points = append(curve.Points, CurvePoint{CID: cid, X: x, Values: v})
	}
	sortPoints(curve.Points)
	return curve, nil
}

// Rezero shifts every method column of an energy curve so that the
// value of refMethod at the last (longest-distance) point becomes
// zero, and converts the values from Hartree to kcal/mol. This
// references the curves to the dissociation limit of refMethod.
func (c *Curve) Rezero(refMethod string) error {
	if len(c.Points) == 0 {
		return fmt.Errorf("empty curve")
	}
	ref, ok := c.Points[len(c.Points)-1].Values[refMethod]
	if !ok {
		return fmt.Errorf("reference method %q has no value at the last scan point", refMethod)
	}
	for _, p := range c.Points {
		for m, v := range p.Values {
			p.Values[m] = (v - ref) * chem.H2Kcal
		}
	}
	return nil
}

// WriteWide writes the curve as a wide CSV table, one method per
// column, as the pivoted tables of the supporting information.
func (c *Curve) WriteWide(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"CID"}, c.Methods...)); err != nil {
		return err
	}
	for _, p := range c.Points {
		rec := make([]string, 0, len(c.Methods)+1)
		rec = append(rec, p.CID)
		for _, m := range c.Methods {
			v, ok := p.Values[m]
			if !ok {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'f', 8, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadWide reads back a wide table written by WriteWide. Empty cells
// are left out of the point values.
func ReadWide(r io.Reader) (*Curve, error) {
	records, err := newCSVReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading wide table: %w", err)
	}
	if len(records) < 1 || len(records[0]) < 2 || strings.TrimSpace(records[0][0]) != "CID" {
		return nil, fmt.Errorf("not a wide table: want a CID column plus method columns")
	}
	curve := &Curve{Methods: records[0][1:]}
	for _, rec := range records[1:] {
		cid := strings.TrimSpace(rec[0])
		x, err := ParseCID(cid)
		if err != nil {
			return nil, err
		}
		p := CurvePoint{CID: cid, X: x, Values: map[string]float64{}}
		for i, m := range curve.Methods {
			cell := strings.TrimSpace(rec[i+1])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("scan point %s, method %s: %w", cid, m, err)
			}
			p.Values[m] = v
		}
		curve.Points = append(curve.Points, p)
	}
	sortPoints(curve.Points)
	return curve, nil
}

// ReadWideFile reads a wide table from a file.
func ReadWideFile(path string) (*Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wide table: %w", err)
	}
	defer f.Close()
	return ReadWide(f)
}

func sortPoints(points []CurvePoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
}

func isIn(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
