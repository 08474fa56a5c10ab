/*
 * xtb.go, part of eeqbc.
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
//In order to use this part of the library you need the xtb program.
//Please cite the xtb references if you used it.

package qm

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// XTBHandle runs the xtb program for the GFN1-xTB, GFN2-xTB and
// CEH entries of the result tables.
type XTBHandle struct {
	command   string
	inputname string
	workdir   string
	nCPU      int
	options   []string
	ceh       bool
}

// NewXTBHandle returns an XTBHandle with the default settings.
func NewXTBHandle() *XTBHandle {
	run := new(XTBHandle)
	run.SetDefaults()
	return run
}

// SetnCPU sets the number of CPUs to be used.
func (O *XTBHandle) SetnCPU(cpu int) {
	O.nCPU = cpu
}

// Command returns the command used to invoke xtb.
func (O *XTBHandle) Command() string {
	return O.command
}

// SetName sets the job name, used for input and output files.
func (O *XTBHandle) SetName(name string) {
	O.inputname = name
}

// SetCommand sets the command used to invoke xtb.
func (O *XTBHandle) SetCommand(name string) {
	O.command = name
}

// SetWorkDir sets the directory in which the calculation runs.
func (O *XTBHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

// SetDefaults sets the command to "xtb" (to be found in the PATH) and
// the number of CPUs to half of the logical cores.
func (O *XTBHandle) SetDefaults() {
	O.command = "xtb"
	O.nCPU = runtime.NumCPU() / 2
	if O.nCPU < 1 {
		O.nCPU = 1
	}
}

func (O *XTBHandle) path(name string) string {
	if O.workdir == "" {
		return name
	}
	return filepath.Join(O.workdir, name)
}

// BuildInput builds an input for xtb. Only single points are needed
// for the scans, so no optimization settings are written.
func (O *XTBHandle) BuildInput(coords *v3.Matrix, atoms chem.AtomMultiCharger, Q *Calc) error {
	if O.inputname == "" {
		O.inputname = "eeqbc"
	}
	if atoms == nil || coords == nil {
		return Error{ErrMissingCharges, XTB, O.inputname, "", []string{"BuildInput"}, true}
	}
	err := chem.XYZFileWrite(O.path(O.inputname+".xyz"), coords, atoms)
	if err != nil {
		return Error{ErrCantInput, XTB, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	O.options = make([]string, 0, 6)
	O.options = append(O.options, O.inputname+".xyz")
	O.options = append(O.options, fmt.Sprintf("--chrg %d", atoms.Charge()))
	O.options = append(O.options, fmt.Sprintf("--uhf %d", atoms.Multi()-1))
	if O.nCPU > 1 {
		O.options = append(O.options, fmt.Sprintf("-P %d", O.nCPU))
	}
	O.ceh = false
	switch Q.Method {
	case "gfn1":
		O.options = append(O.options, "--gfn 1")
	case "gfn0":
		O.options = append(O.options, "--gfn 0")
	case "ceh":
		//CEH is a charge model only, no SCF energy comes out of it.
		O.ceh = true
		O.options = append(O.options, "--ceh")
	default:
		O.options = append(O.options, "--gfn 2")
	}
	if Q.Solvent != "" && Q.Method != "gfn0" {
		O.options = append(O.options, "--alpb "+Q.Solvent)
	} else if Q.Dielectric > 0 && Q.Method != "gfn0" {
		solvent, ok := dielectric2Solvent[int(Q.Dielectric)]
		if ok {
			O.options = append(O.options, "--alpb "+solvent)
		}
	}
	return nil
}

// Run runs xtb on a previously built input. It waits or not for the
// result depending on wait. Not waiting only works on unix-compatible
// systems, as it uses sh and nohup.
func (O *XTBHandle) Run(wait bool) error {
	com := fmt.Sprintf(" %s > %s.out 2>&1", strings.Join(O.options, " "), O.inputname)
	var err error
	if wait {
		log.Printf("%s%s", O.command, com)
		command := exec.Command("sh", "-c", O.command+com)
		command.Dir = O.workdir
		err = command.Run()
	} else {
		command := exec.Command("sh", "-c", "nohup "+O.command+com)
		command.Dir = O.workdir
		err = command.Start()
	}
	if err != nil {
		return Error{ErrNotRunning, XTB, O.inputname, err.Error(), []string{"exec.Run", "Run"}, true}
	}
	os.Remove(O.path("xtbrestart"))
	return nil
}

// normalTermination checks that an xtb calculation terminated
// normally. The abnormal marker is checked first as it contains the
// normal one as a substring.
func (O *XTBHandle) normalTermination() bool {
	out := O.path(O.inputname + ".out")
	if lastMatch("abnormal termination of x", out) != "" {
		return false
	}
	return lastMatch("normal termination of x", out) != ""
}

// Energy returns the total energy, in Hartree, of a previous xtb
// calculation.
func (O *XTBHandle) Energy() (float64, error) {
	if !O.normalTermination() {
		return 0, Error{ErrProbableProblem, XTB, O.inputname, "", []string{"Energy"}, false}
	}
	energyline := lastMatch("TOTAL ENERGY", O.path(O.inputname+".out"))
	if energyline == "" {
		return 0, Error{ErrNoEnergy, XTB, O.inputname, "", []string{"Energy"}, true}
	}
	split := strings.Fields(energyline)
	if len(split) < 4 {
		return 0, Error{ErrNoEnergy, XTB, O.inputname, energyline, []string{"Energy"}, true}
	}
	energy, err := strconv.ParseFloat(split[3], 64)
	if err != nil {
		return 0, Error{ErrNoEnergy, XTB, O.inputname, err.Error(), []string{"strconv.ParseFloat", "Energy"}, true}
	}
	return energy, nil
}

// Charges returns the atomic partial charges of a previous xtb
// calculation: the Mulliken charges for the GFN methods, the CEH
// charges when the CEH model was requested.
func (O *XTBHandle) Charges() ([]float64, error) {
	if !O.normalTermination() {
		return nil, Error{ErrProbableProblem, XTB, O.inputname, "", []string{"Charges"}, false}
	}
	name := "charges"
	if O.ceh {
		name = "ceh.charges"
	}
	charges, err := readChargeFile(O.path(name))
	if err != nil {
		return nil, Error{ErrNoCharges, XTB, O.inputname, err.Error(), []string{"Charges"}, true}
	}
	return charges, nil
}

// xtb names its implicit solvents; the tables of the publication give
// permittivities, so the common ones are mapped here.
var dielectric2Solvent = map[int]string{
	80: "h2o",
	78: "h2o",
	5:  "chcl3",
	9:  "ch2cl2",
	21: "acetone",
	37: "acetonitrile",
	33: "methanol",
	2:  "toluene",
	7:  "thf",
	47: "dmso",
	38: "dmf",
}
