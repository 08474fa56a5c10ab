/*
 * eeq.go, part of eeqbc.
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
	"fmt"
	"log"
	"os/exec"
	"path/filepath"

	chem "github.com/grimme-lab/SI-EEQ-BC"
	v3 "github.com/grimme-lab/SI-EEQ-BC/v3"
)

// EEQHandle runs the standalone reference implementation of the EEQ
// and EEQ-BC charge models. The tool reads an XYZ file, and writes
// one charge per line to <job>.charges; with --dielectric it solves
// the models in an implicit medium of the given permittivity.
type EEQHandle struct {
	command   string
	inputname string
	workdir   string
	options   []string
}

// NewEEQHandle returns an EEQHandle with the default settings.
func NewEEQHandle() *EEQHandle {
	run := new(EEQHandle)
	run.SetDefaults()
	return run
}

// SetName sets the job name, used for input and output files.
func (O *EEQHandle) SetName(name string) {
	O.inputname = name
}

// SetCommand sets the command used to invoke the charge tool.
func (O *EEQHandle) SetCommand(name string) {
	O.command = name
}

// Command returns the command used to invoke the charge tool.
func (O *EEQHandle) Command() string {
	return O.command
}

// SetWorkDir sets the directory in which the calculation runs.
func (O *EEQHandle) SetWorkDir(dir string) {
	O.workdir = dir
}

// SetDefaults sets the command to "eeq_bc" (to be found in the PATH).
func (O *EEQHandle) SetDefaults() {
	O.command = "eeq_bc"
}

func (O *EEQHandle) path(name string) string {
	if O.workdir == "" {
		return name
	}
	return filepath.Join(O.workdir, name)
}

// BuildInput writes the geometry and assembles the command line. The
// method must be "eeq" or "eeq_bc".
func (O *EEQHandle) BuildInput(coords *v3.Matrix, atoms chem.AtomMultiCharger, Q *Calc) error {
	if atoms == nil || coords == nil {
		return Error{ErrMissingCharges, EEQ, O.inputname, "", []string{"BuildInput"}, true}
	}
	if O.inputname == "" {
		O.inputname = "eeqbc"
	}
	if !isInString([]string{"eeq", "eeq_bc"}, Q.Method) {
		return Error{ErrCantInput, EEQ, O.inputname, "unknown charge model " + Q.Method, []string{"BuildInput"}, true}
	}
	if err := chem.XYZFileWrite(O.path(O.inputname+".xyz"), coords, atoms); err != nil {
		return Error{ErrCantInput, EEQ, O.inputname, err.Error(), []string{"BuildInput"}, true}
	}
	O.options = []string{
		O.inputname + ".xyz",
		"--model", Q.Method,
		"--chrg", fmt.Sprintf("%d", atoms.Charge()),
		"--output", O.inputname + ".charges",
	}
	if Q.Dielectric > 0 {
		O.options = append(O.options, "--dielectric", fmt.Sprintf("%.1f", Q.Dielectric))
	}
	return nil
}

// Run runs the charge tool. The tool is fast, so wait=false is
// accepted but runs synchronously anyway.
func (O *EEQHandle) Run(wait bool) error {
	log.Printf("%s %v", O.command, O.options)
	command := exec.Command(O.command, O.options...)
	command.Dir = O.workdir
	if err := command.Run(); err != nil {
		return Error{ErrNotRunning, EEQ, O.inputname, err.Error(), []string{"exec.Run", "Run"}, true}
	}
	return nil
}

// Energy is not provided by the charge models. It always returns an
// error; the energy columns of the tables come from the QM programs.
func (O *EEQHandle) Energy() (float64, error) {
	return 0, Error{ErrNoEnergy, EEQ, O.inputname, "the EEQ models yield charges, not total energies", []string{"Energy"}, false}
}

// Charges returns the model charges of a previous run, in atom order.
func (O *EEQHandle) Charges() ([]float64, error) {
	charges, err := readChargeFile(O.path(O.inputname + ".charges"))
	if err != nil {
		return nil, Error{ErrNoCharges, EEQ, O.inputname, err.Error(), []string{"Charges"}, true}
	}
	return charges, nil
}
