/*
 * xyz.go, part of eeqbc.
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

package eeqbc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// XYZRead reads an xyz-formatted file and returns a Molecule. Multi-
// geometry files are read into one frame per geometry; the comment
//
//line of the first geometry is discarded.
func XYZRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	defer xyzfile.Close()
	mol, err := XYZReaderRead(xyzfile)
	if err != nil {
		return nil, errDecorate(err, "XYZRead "+xyzname)
	}
	return mol, nil
}

// XYZReaderRead reads an xyz-formatted geometry (or several, back to
// back) from r and returns a Molecule.
func XYZReaderRead(r io.Reader) (*Molecule, error) {
	buf := bufio.NewReader(r)
	var mol *Molecule
	for {
		ats, coords, err := xyzReadFrame(buf, mol == nil)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if mol == nil {
			top, err := NewTopology(ats, 0, 1)
			if err != nil {
				return nil, err
			}
			mol = &Molecule{Topology: top}
		}
		if coords.NVecs() != mol.Len() {
			return nil, CError{fmt.Sprintf("eeqbc: geometry with %d atoms in a file that started with %d", coords.NVecs(), mol.Len()), []string{"XYZReaderRead"}}
		}
		mol.Coords = append(mol.Coords, coords)
	}
	if mol == nil {
		return nil, CError{"eeqbc: no geometry found", []string{"XYZReaderRead"}}
	}
	return mol, nil
}

// xyzReadFrame reads one geometry from buf. The atoms are only built
// if wantAtoms is true, otherwise only coordinates are collected.
func xyzReadFrame(buf *bufio.Reader, wantAtoms bool) ([]*Atom, *v3.Matrix, error) {
	line, err := buf.ReadString('\n')
	if err != nil {
		return nil, nil, io.EOF
	}
	if strings.TrimSpace(line) == "" {
		return nil, nil, io.EOF
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, nil, CError{"eeqbc: ill-formatted XYZ atom count: " + strings.TrimSpace(line), []string{"xyzReadFrame"}}
	}
	if _, err := buf.ReadString('\n'); err != nil {
		return nil, nil, CError{"eeqbc: XYZ file truncated after atom count", []string{"xyzReadFrame"}}
	}
	var ats []*Atom
	if wantAtoms {
		ats = make([]*Atom, natoms)
	}
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, CError{fmt.Sprintf("eeqbc: XYZ file truncated at atom %d", i), []string{"xyzReadFrame"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, CError{fmt.Sprintf("eeqbc: XYZ line %d ill-formed: %q", i, strings.TrimSpace(line)), []string{"xyzReadFrame"}}
		}
		if wantAtoms {
			at := &Atom{Name: fields[0], Id: i + 1, Symbol: fields[0]}
			at.Z = pseNumbers[strings.ToLower(at.Symbol)]
			at.Mass = symbolMass[at.Symbol]
			ats[i] = at
		}
		for j := 1; j <= 3; j++ {
			c, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, nil, CError{fmt.Sprintf("eeqbc: bad coordinate in XYZ line %d: %q", i, fields[j]), []string{"xyzReadFrame"}}
			}
			coords = append(coords, c)
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, nil, errDecorate(err, "xyzReadFrame")
	}
	return ats, mcoords, nil
}

// XYZWrite writes the given coordinates and atoms in XYZ format to w,
// with comment as the comment line. The per-atom format matches the
// scan datasets of the publication: 6 decimal places, fixed width.
func XYZWrite(w io.Writer, coords *v3.Matrix, atoms Atomer, comment string) error {
	if coords == nil || atoms == nil {
		return CError{"eeqbc: nil coordinates or atoms", []string{"XYZWrite"}}
	}
	if coords.NVecs() != atoms.Len() {
		return CError{fmt.Sprintf("eeqbc: %d coordinates for %d atoms", coords.NVecs(), atoms.Len()), []string{"XYZWrite"}}
	}
	if _, err := fmt.Fprintf(w, "%d\n%s\n", atoms.Len(), comment); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	for i := 0; i < atoms.Len(); i++ {
		_, err := fmt.Fprintf(w, "%-2s %14.8f %14.8f %14.8f\n",
			atoms.Atom(i).Symbol, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
		if err != nil {
			return errDecorate(err, "XYZWrite")
		}
	}
	return nil
}

// XYZFileWrite writes the coordinates and atoms to the file xyzname in
// XYZ format. An existing file is overwritten.
func XYZFileWrite(xyzname string, coords *v3.Matrix, atoms Atomer) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return errDecorate(err, "XYZFileWrite")
	}
	defer out.Close()
	if err := XYZWrite(out, coords, atoms, ""); err != nil {
		return errDecorate(err, "XYZFileWrite "+xyzname)
	}
	return nil
}
