/*
 * orca.go, part of eeqbc.
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

package qm

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// OrcaHandle runs ORCA for the wB97M-V reference entries of the
// result tables. Note that the default method and basis are NOT
// considered part of the API, so they can always change.
type OrcaHandle struct {
	defmethod string
	defbasis  string
	command   string
	inputname string
	workdir   string
	nCPU      int
}

// NewOrcaHandle returns an OrcaHandle with the default settings.
func NewOrcaHandle() *OrcaHandle {
	run := new(OrcaHandle)
	run.SetDefaults()
	return run
}

// SetnCPU sets the number of CPUs to be used.
func (O *OrcaHandle) SetnCPU(cpu int) {
	O.nCPU = cpu
}

// SetName sets the job name, used for input and output files.
func (O *OrcaHandle) SetName(name string) {
	O.inputname = name
}

// SetCommand sets the command used to invoke ORCA.
func (O *OrcaHandle) SetCommand(name string) {
	O.command = name
}

// Command returns the command used to invoke ORCA.
func (O *OrcaHandle) Command() string {
	return O.command
}

// SetWorkDir sets the directory in which the calculation runs.
func (O *OrcaHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

// SetDefaults sets the defaults for an ORCA calculation: a wB97M-V
// single point in the basis used throughout the publication. The ORCA
// command is set to $ORCA_PATH/orca, at least in unix.
func (O *OrcaHandle) SetDefaults() {
	O.defmethod = "wB97M-V"
	O.defbasis = "def2-TZVPPD"
	O.command = os.ExpandEnv("${ORCA_PATH}/orca")
	if O.command == "/orca" { //if ORCA_PATH was not defined
		O.command = "orca"
	}
	O.nCPU = 1
}

func (O *OrcaHandle) path(name string) string {
	if O.workdir == "" {
		return name
	}
	return filepath.Join(O.workdir, name)
}

// BuildInput builds an input for ORCA based on the data in atoms,
// coords and Q.
func (O *OrcaHandle) BuildInput(coords *v3.Matrix, atoms chem.AtomMultiCharger, Q *Calc) error {
	if atoms == nil || coords == nil {
		return Error{ErrMissingCharges, ORCA, O.inputname, "", []string{"BuildInput"}, true}
	}
	if O.inputname == "" {
		O.inputname = "eeqbc"
	}
	method := Q.Method
	if method == "" || method == "wb97m-v" {
		method = O.defmethod
	}
	basis := Q.Basis
	if basis == "" {
		fmt.Fprintf(os.Stderr, "no basis set assigned for ORCA calculation, will use the default %s\n", O.defbasis)
		basis = O.defbasis
	}
	f, err := os.Create(O.path(O.inputname + ".inp"))
	if err != nil {
		return Error{ErrCantInput, ORCA, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	ref := "RKS"
	if Q.UKS {
		ref = "UKS"
	}
	grid := Q.Grid
	if grid == "" {
		grid = "DEFGRID3"
	}
	fmt.Fprintf(w, "! %s %s %s %s TightSCF Hirshfeld\n", ref, method, basis, grid)
	if Q.Dielectric > 0 {
		fmt.Fprintf(w, "%%cpcm\n epsilon %.1f\nend\n", Q.Dielectric)
	}
	if O.nCPU > 1 {
		fmt.Fprintf(w, "%%pal nprocs %d end\n", O.nCPU)
	}
	if Q.Memory > 0 {
		fmt.Fprintf(w, "%%maxcore %d\n", Q.Memory)
	}
	scf := Q.SCFCycles
	if scf > 0 {
		fmt.Fprintf(w, "%%scf\n MaxIter %d\nend\n", scf)
	}
	fmt.Fprintf(w, "* xyzfile %d %d %s.xyz\n", atoms.Charge(), atoms.Multi(), O.inputname)
	if err := w.Flush(); err != nil {
		return Error{ErrCantInput, ORCA, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	if err := chem.XYZFileWrite(O.path(O.inputname+".xyz"), coords, atoms); err != nil {
		return Error{ErrCantInput, ORCA, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	return nil
}

// Run runs the ORCA calculation previously set up. It waits or not
// for the result depending on wait.
func (O *OrcaHandle) Run(wait bool) error {
	var err error
	if wait {
		log.Printf("%s %s.inp", O.command, O.inputname)
		out, err := os.Create(O.path(O.inputname + ".out"))
		if err != nil {
			return Error{ErrNotRunning, ORCA, O.inputname, err.Error(), []string{"Run"}, true}
		}
		defer out.Close()
		command := exec.Command(O.command, O.inputname+".inp")
		command.Stdout = out
		command.Dir = O.workdir
		err = command.Run()
		if err != nil {
			return Error{ErrNotRunning, ORCA, O.inputname, err.Error(), []string{"exec.Run", "Run"}, true}
		}
	} else {
		command := exec.Command("sh", "-c", fmt.Sprintf("nohup %s %s.inp > %s.out 2>&1", O.command, O.inputname, O.inputname))
		command.Dir = O.workdir
		err = command.Start()
		if err != nil {
			return Error{ErrNotRunning, ORCA, O.inputname, err.Error(), []string{"exec.Start", "Run"}, true}
		}
	}
	return nil
}

// normalTermination checks that an ORCA calculation terminated
// normally.
func (O *OrcaHandle) normalTermination() bool {
	return lastMatch("****ORCA TERMINATED NORMALLY****", O.path(O.inputname+".out")) != ""
}

// Energy returns the final single-point energy, in Hartree, of a
// previous ORCA calculation.
func (O *OrcaHandle) Energy() (float64, error) {
	if !O.normalTermination() {
		return 0, Error{ErrProbableProblem, ORCA, O.inputname, "", []string{"Energy"}, false}
	}
	line := lastMatch("FINAL SINGLE POINT ENERGY", O.path(O.inputname+".out"))
	if line == "" {
		return 0, Error{ErrNoEnergy, ORCA, O.inputname, "", []string{"Energy"}, true}
	}
	fields := strings.Fields(line)
	energy, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, Error{ErrNoEnergy, ORCA, O.inputname, err.Error(), []string{"strconv.ParseFloat", "Energy"}, true}
	}
	return energy, nil
}

// Charges returns the Hirshfeld charges of a previous ORCA
// calculation, in atom order.
func (O *OrcaHandle) Charges() ([]float64, error) {
	if !O.normalTermination() {
		return nil, Error{ErrProbableProblem, ORCA, O.inputname, "", []string{"Charges"}, false}
	}
	f, err := os.Open(O.path(O.inputname + ".out"))
	if err != nil {
		return nil, Error{ErrNoCharges, ORCA, O.inputname, err.Error(), []string{"Charges"}, true}
	}
	defer f.Close()
	//The Hirshfeld block looks like:
	//  HIRSHFELD ANALYSIS
	//  ------------------
	//  ...
	//    ATOM     CHARGE      SPIN
	//     0 C    0.031159    0.000000
	var charges []float64
	inblock := false
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, "HIRSHFELD ANALYSIS") {
			inblock = true
			charges = charges[:0] //keep only the last block
			continue
		}
		if !inblock {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				q, err := strconv.ParseFloat(fields[2], 64)
				if err != nil {
					return nil, Error{ErrNoCharges, ORCA, O.inputname, err.Error(), []string{"Charges"}, true}
				}
				charges = append(charges, q)
				continue
			}
		}
		if len(charges) > 0 { //end of the numbered block
			inblock = false
		}
	}
	if len(charges) == 0 {
		return nil, Error{ErrNoCharges, ORCA, O.inputname, "no Hirshfeld block found", []string{"Charges"}, true}
	}
	return charges, nil
}
