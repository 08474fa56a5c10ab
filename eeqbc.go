/*
 * eeqbc.go, part of eeqbc.
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

// Package eeqbc provides atom and molecule structures, periodic-table
// data and XYZ file handling for the supporting-information tooling of
// the EEQ-BC charge-equilibration model. The subpackages implement the
// dataset generation, external QM drivers, result tables, statistics
// and figures of the publication.
package eeqbc

import (
	"fmt"

	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// Unit conversion constants.
const (
	//H2Kcal converts Hartree to kcal/mol.
	H2Kcal = 627.50947428
	//A2Bohr converts Angstrom to Bohr.
	A2Bohr = 1.8897261258369282
)

// Atom contains the data for one atom, except for its coordinates,
// which live in a separate matrix.
type Atom struct {
	Name   string
	Id     int
	Z      int //atomic number
	Symbol string
	Mass   float64
	Charge float64 //partial charge, not nuclear charge
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("eeqbc: attempted to copy a nil atom")
	}
	na := *A
	return &na
}

// Atomer is the basic interface for a list of atoms.
type Atomer interface {
	//Atom returns the Atom corresponding to the index i.
	Atom(i int) *Atom
	//Len returns the number of atoms.
	Len() int
}

// AtomMultiCharger is an Atomer with a total charge and multiplicity,
// as needed to set up a QM calculation.
type AtomMultiCharger interface {
	Atomer
	//Charge returns the total charge of the system.
	Charge() int
	//Multi returns the multiplicity (2S+1) of the system.
	Multi() int
}

// Topology contains the information about a molecule which is not
// expected to change between scan points, i.e. everything except for
// the coordinates.
type Topology struct {
	Atoms  []*Atom
	charge int
	multi  int
}

// NewTopology makes a topology from ats atoms with the given total
// charge and multiplicity. It returns an error if ats is nil.
func NewTopology(ats []*Atom, charge, multi int) (*Topology, error) {
	if ats == nil {
		return nil, CError{"eeqbc: nil atom slice", []string{"NewTopology"}}
	}
	if multi < 1 {
		multi = 1
	}
	return &Topology{Atoms: ats, charge: charge, multi: multi}, nil
}

// Charge returns the total charge of the topology.
func (T *Topology) Charge() int { return T.charge }

// Multi returns the multiplicity of the topology.
func (T *Topology) Multi() int { return T.multi }

// SetCharge sets the total charge of the topology to i.
func (T *Topology) SetCharge(i int) { T.charge = i }

// SetMulti sets the multiplicity of the topology to i.
func (T *Topology) SetMulti(i int) { T.multi = i }

// Atom returns the Atom corresponding to the index i.
// Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("eeqbc: requested atom out of bounds")
	}
	return T.Atoms[i]
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int { return len(T.Atoms) }

// SumFormula returns the Hill-order sum formula of the topology
// (C first, then H, then the rest alphabetically).
func (T *Topology) SumFormula() string {
	counts := map[string]int{}
	for _, at := range T.Atoms {
		counts[at.Symbol]++
	}
	formula := ""
	app := func(sym string) {
		n, ok := counts[sym]
		if !ok {
			return
		}
		if n == 1 {
			formula += sym
		} else {
			formula += fmt.Sprintf("%s%d", sym, n)
		}
		delete(counts, sym)
	}
	app("C")
	app("H")
	//the remaining elements, in PSE order for reproducible output
	for _, sym := range pseSymbols {
		app(sym)
	}
	return formula
}

// Molecule contains the full info for a molecule, possibly in several
// geometries (scan points). The coordinates are stored separately from
// the rest of the atomic info.
type Molecule struct {
	*Topology
	Coords []*v3.Matrix
}

// NewMolecule makes a molecule from a topology and one or more
// geometries. It checks that the number of coordinates in each
// geometry matches the number of atoms.
func NewMolecule(top *Topology, coords []*v3.Matrix) (*Molecule, error) {
	if top == nil || coords == nil {
		return nil, CError{"eeqbc: nil topology or coordinates", []string{"NewMolecule"}}
	}
	for i, c := range coords {
		if c.NVecs() != top.Len() {
			return nil, CError{fmt.Sprintf("eeqbc: geometry %d has %d coordinates for %d atoms", i, c.NVecs(), top.Len()), []string{"NewMolecule"}}
		}
	}
	return &Molecule{Topology: top, Coords: coords}, nil
}

// Copy returns a deep copy of the molecule, including coordinates.
func (M *Molecule) Copy() *Molecule {
	ats := make([]*Atom, M.Len())
	for i, at := range M.Atoms {
		ats[i] = at.Copy()
	}
	coords := make([]*v3.Matrix, 0, len(M.Coords))
	for _, c := range M.Coords {
		coords = append(coords, c.Copy())
	}
	return &Molecule{
		Topology: &Topology{Atoms: ats, charge: M.charge, multi: M.multi},
		Coords:   coords,
	}
}

// AddFrame appends a geometry to the molecule. It panics if the number
// of coordinates does not match the number of atoms.
func (M *Molecule) AddFrame(frame *v3.Matrix) {
	if frame == nil {
		panic("eeqbc: attempted to add a nil frame")
	}
	if frame.NVecs() != M.Len() {
		panic(fmt.Sprintf("eeqbc: wrong number of coordinates (%d) for %d atoms", frame.NVecs(), M.Len()))
	}
	M.Coords = append(M.Coords, frame)
}

// Corrupted checks that the coordinates match the number of atoms in
// every frame of the molecule.
func (M *Molecule) Corrupted() error {
	for i, c := range M.Coords {
		if c.NVecs() != M.Len() {
			return CError{fmt.Sprintf("eeqbc: inconsistent coordinates/atoms in frame %d: atoms %d, coords %d", i, M.Len(), c.NVecs()), []string{"Corrupted"}}
		}
	}
	return nil
}

// Error is the interface for errors that can be decorated with the
// call trace that produced them.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type of the root package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of the error,
// and returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate asserts that an error implements Error and decorates it
// with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return CError{err.Error(), []string{caller}}
	}
	err2.Decorate(caller)
	return err2
}
