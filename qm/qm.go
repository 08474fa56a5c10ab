/*
 * qm.go, part of eeqbc.
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

// Package qm drives the external programs that produced the result
// tables of the publication: xtb (GFN1/GFN2-xTB and CEH charges),
// ORCA (wB97M-V energies and Hirshfeld charges) and the reference
// implementation of the EEQ and EEQ-BC charge models. The calculation
// settings are kept as separate as possible from the choice of
// program performing the calculation.
package qm

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// Handle is the interface for setting up and running a calculation
// with an external program.
type Handle interface {
	//SetName sets the name for the job, used for input and output
	//files. The extensions depend on the program.
	SetName(name string)

	//SetWorkDir sets the directory in which input and output files
	//live, typically one scan-point directory.
	SetWorkDir(dir string)

	//BuildInput builds an input for the program based on the data in
	//atoms, coords and Q.
	BuildInput(coords *v3.Matrix, atoms chem.AtomMultiCharger, Q *Calc) error

	//Run runs the program for a calculation previously set up. It
	//waits or not for the result depending on the value of wait.
	Run(wait bool) error

	//Energy parses the total energy, in Hartree, from the program's
	//output. It returns an error if the calculation did not
	//terminate normally.
	Energy() (float64, error)

	//Charges parses the atomic partial charges, in e, from the
	//program's output, in atom order.
	Charges() ([]float64, error)
}

// Calc holds the settings of one calculation, independently of the
// program that runs it.
type Calc struct {
	Method     string  //gfn1, gfn2, ceh, eeq, eeq_bc, wb97m-v
	Dielectric float64 //relative permittivity; 0 means gas phase
	Solvent    string  //named implicit solvent, where supported
	Basis      string
	Grid       string
	SCFCycles  int
	UKS        bool //spin-unrestricted (the dSCF singlet reference)
	Memory     int  //max memory per core in MB
}

// SetDefaults sets the settings shared by all result tables of the
// publication.
func (Q *Calc) SetDefaults() {
	Q.Basis = "def2-TZVPPD"
	Q.Grid = "DEFGRID3"
	Q.SCFCycles = 150
}

// readChargeFile reads one float per line from a file, the format
// shared by the xtb "charges" file and the EEQ reference tool output.
func readChargeFile(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var charges []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		q, err := strconv.ParseFloat(strings.Fields(line)[0], 64)
		if err != nil {
			return nil, err
		}
		charges = append(charges, q)
	}
	return charges, sc.Err()
}

// lastMatch returns the last line of the file that contains str, or
// an empty string. The final values of a QM output are printed at the
// end, so the last match is the one that counts.
func lastMatch(str, filename string) string {
	f, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer f.Close()
	var last string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		if strings.Contains(sc.Text(), str) {
			last = sc.Text()
		}
	}
	return last
}

// isInString returns true if test is in container.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
