/*
 * errors.go, part of eeqbc.
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

import "fmt"

// Program names, used in errors.
const (
	XTB  = "xtb"
	ORCA = "orca"
	EEQ  = "eeq_bc"
)

// Error messages.
const (
	ErrMissingCharges  = "qm: missing charge or multiplicity information"
	ErrCantInput       = "qm: could not build the input"
	ErrNotRunning      = "qm: could not run the program"
	ErrNoEnergy        = "qm: could not read the energy from the output"
	ErrNoCharges       = "qm: could not read the charges from the output"
	ErrProbableProblem = "qm: calculation did not terminate normally"
)

// Error is the qm error type. It carries the program and job that
// produced it, and can be decorated with the call trace.
type Error struct {
	message   string
	program   string
	inputname string
	extra     string
	deco      []string
	critical  bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	s := fmt.Sprintf("%s (program: %s, job: %s)", err.message, err.program, err.inputname)
	if err.extra != "" {
		s += ": " + err.extra
	}
	return s
}

// Decorate adds the dec string to the decoration slice of the error,
// and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }
