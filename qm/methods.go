/*
 * methods.go, part of eeqbc.
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
	"os"

	"go.yaml.in/yaml/v3"
)

// Method binds a method label of the result tables to the program and
// settings that produce it.
type Method struct {
	Label      string  `yaml:"label"`
	Program    string  `yaml:"program"` //xtb, orca or eeq_bc
	Model      string  `yaml:"model"`   //gfn1, gfn2, ceh, eeq, eeq_bc, wb97m-v
	Dielectric float64 `yaml:"dielectric,omitempty"`
	Solvent    string  `yaml:"solvent,omitempty"`
	UKS        bool    `yaml:"uks,omitempty"`
}

// waterEps is the relative permittivity used for the dielectric and
// CPCM entries of the tables.
const waterEps = 80

// defaultMethods holds the methods appearing in the published tables.
var defaultMethods = []Method{
	{Label: "EEQ", Program: EEQ, Model: "eeq"},
	{Label: "EEQ_DIELECTRIC", Program: EEQ, Model: "eeq", Dielectric: waterEps},
	{Label: "EEQ_BC", Program: EEQ, Model: "eeq_bc"},
	{Label: "EEQ_BC_DIELECTRIC", Program: EEQ, Model: "eeq_bc", Dielectric: waterEps},
	{Label: "CEH-v2", Program: XTB, Model: "ceh"},
	{Label: "GFN1-xTB", Program: XTB, Model: "gfn1"},
	{Label: "GFN1-xTB_CPCM", Program: XTB, Model: "gfn1", Solvent: "h2o"},
	{Label: "GFN2-xTB", Program: XTB, Model: "gfn2"},
	{Label: "GFN2-xTB_CPCM", Program: XTB, Model: "gfn2", Solvent: "h2o"},
	{Label: "wB97M-V", Program: ORCA, Model: "wb97m-v"},
	{Label: "wB97M-V_CPCM", Program: ORCA, Model: "wb97m-v", Dielectric: waterEps},
	{Label: "wB97M-V_dSCF", Program: ORCA, Model: "wb97m-v", UKS: true},
	{Label: "wB97M-V_dSCF_CPCM", Program: ORCA, Model: "wb97m-v", UKS: true, Dielectric: waterEps},
}

// KnownMethods returns the labels of the built-in methods, in table
// order.
func KnownMethods() []string {
	labels := make([]string, 0, len(defaultMethods))
	for _, m := range defaultMethods {
		labels = append(labels, m.Label)
	}
	return labels
}

// LookupMethod returns the built-in method with the given label.
func LookupMethod(label string) (Method, error) {
	for _, m := range defaultMethods {
		if m.Label == label {
			return m, nil
		}
	}
	return Method{}, fmt.Errorf("unknown method %q (known: %v)", label, KnownMethods())
}

// LoadMethods reads additional method definitions from a YAML file.
// Definitions with a label matching a built-in method replace it.
func LoadMethods(path string) ([]Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading method definitions: %w", err)
	}
	var loaded []Method
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing method definitions %s: %w", path, err)
	}
	methods := make([]Method, len(defaultMethods))
	copy(methods, defaultMethods)
	for _, m := range loaded {
		if m.Label == "" {
			return nil, fmt.Errorf("method definition without a label in %s", path)
		}
		replaced := false
		for i := range methods {
			if methods[i].Label == m.Label {
				methods[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			methods = append(methods, m)
		}
	}
	return methods, nil
}

// ChargesOnly reports whether the method yields partial charges but
// no total energy. The EEQ family and CEH are charge models; asking
// their output for an energy is an error, not a failed calculation.
func (m Method) ChargesOnly() bool {
	switch m.Model {
	case "eeq", "eeq_bc", "ceh":
		return true
	}
	return false
}

// Handle returns a Handle and Calc implementing the method.
func (m Method) Handle() (Handle, *Calc, error) {
	Q := new(Calc)
	Q.SetDefaults()
	Q.Method = m.Model
	Q.Dielectric = m.Dielectric
	Q.Solvent = m.Solvent
	Q.UKS = m.UKS
	switch m.Program {
	case XTB:
		return NewXTBHandle(), Q, nil
	case ORCA:
		return NewOrcaHandle(), Q, nil
	case EEQ:
		return NewEEQHandle(), Q, nil
	}
	return nil, nil, fmt.Errorf("method %s: unknown program %q", m.Label, m.Program)
}
