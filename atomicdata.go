/*
 * atomicdata.go, part of eeqbc.
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
	"fmt"
	"strings"
)

// pseSymbols holds the element symbols indexed by atomic number.
// Index 0 is the dummy atom "X".
var pseSymbols = [119]string{
	"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr",
	"Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn",
	"Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// pseNumbers maps lower-cased element symbols back to atomic numbers.
// Filled on package initialization from pseSymbols.
var pseNumbers = make(map[string]int, len(pseSymbols))

func init() {
	for z, sym := range pseSymbols {
		pseNumbers[strings.ToLower(sym)] = z
	}
}

// Symbol returns the element symbol for the atomic number z, or the
// empty string if z is not in the PSE.
func Symbol(z int) string {
	if z < 0 || z >= len(pseSymbols) {
		return ""
	}
	return pseSymbols[z]
}

// AtomicNumber returns the atomic number for an element symbol.
// The lookup is case-insensitive.
func AtomicNumber(symbol string) (int, error) {
	z, ok := pseNumbers[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return 0, CError{fmt.Sprintf("eeqbc: unknown element symbol %q", symbol), []string{"AtomicNumber"}}
	}
	return z, nil
}

// A map for assigning mass to elements, in atomic mass units.
// Standard atomic weights; for elements without one, the mass number
// of the most stable isotope is used.
var symbolMass = map[string]float64{
	"H": 1.008, "He": 4.003,
	"Li": 6.941, "Be": 9.012, "B": 10.811, "C": 12.011, "N": 14.007,
	"O": 15.999, "F": 18.998, "Ne": 20.180,
	"Na": 22.990, "Mg": 24.305, "Al": 26.982, "Si": 28.086, "P": 30.974,
	"S": 32.066, "Cl": 35.453, "Ar": 39.948,
	"K": 39.098, "Ca": 40.078, "Sc": 44.956, "Ti": 47.867, "V": 50.942,
	"Cr": 51.996, "Mn": 54.938, "Fe": 55.845, "Co": 58.933, "Ni": 58.693,
	"Cu": 63.546, "Zn": 65.38, "Ga": 69.723, "Ge": 72.631, "As": 74.922,
	"Se": 78.971, "Br": 79.904, "Kr": 83.798,
	"Rb": 85.468, "Sr": 87.62, "Y": 88.906, "Zr": 91.224, "Nb": 92.906,
	"Mo": 95.95, "Tc": 98.0, "Ru": 101.07, "Rh": 102.906, "Pd": 106.42,
	"Ag": 107.868, "Cd": 112.414, "In": 114.818, "Sn": 118.711,
	"Sb": 121.760, "Te": 127.60, "I": 126.904, "Xe": 131.293,
	"Cs": 132.905, "Ba": 137.328, "La": 138.905, "Ce": 140.116,
	"Pr": 140.908, "Nd": 144.242, "Pm": 145.0, "Sm": 150.36,
	"Eu": 151.964, "Gd": 157.25, "Tb": 158.925, "Dy": 162.500,
	"Ho": 164.930, "Er": 167.259, "Tm": 168.934, "Yb": 173.055,
	"Lu": 174.967, "Hf": 178.49, "Ta": 180.948, "W": 183.84,
	"Re": 186.207, "Os": 190.23, "Ir": 192.217, "Pt": 195.085,
	"Au": 196.967, "Hg": 200.592, "Tl": 204.383, "Pb": 207.2,
	"Bi": 208.980, "Po": 209.0, "At": 210.0, "Rn": 222.0,
	"Fr": 223.0, "Ra": 226.0, "Ac": 227.0, "Th": 232.038,
	"Pa": 231.036, "U": 238.029, "Np": 237.0, "Pu": 244.0,
	"Am": 243.0, "Cm": 247.0, "Bk": 247.0, "Cf": 251.0,
	"Es": 252.0, "Fm": 257.0, "Md": 258.0, "No": 259.0, "Lr": 262.0,
}

// A map for assigning covalent radii to elements, in Angstrom.
// Single-bond radii from Pyykko and Atsumi, 2009 (DOI:10.1002/chem.200800987),
// which cover the whole PSE including the actinides.
var symbolCovrad = map[string]float64{
	"H": 0.32, "He": 0.46,
	"Li": 1.33, "Be": 1.02, "B": 0.85, "C": 0.75, "N": 0.71,
	"O": 0.63, "F": 0.64, "Ne": 0.67,
	"Na": 1.55, "Mg": 1.39, "Al": 1.26, "Si": 1.16, "P": 1.11,
	"S": 1.03, "Cl": 0.99, "Ar": 0.96,
	"K": 1.96, "Ca": 1.71, "Sc": 1.48, "Ti": 1.36, "V": 1.34,
	"Cr": 1.22, "Mn": 1.19, "Fe": 1.16, "Co": 1.11, "Ni": 1.10,
	"Cu": 1.12, "Zn": 1.18, "Ga": 1.24, "Ge": 1.21, "As": 1.21,
	"Se": 1.16, "Br": 1.14, "Kr": 1.17,
	"Rb": 2.10, "Sr": 1.85, "Y": 1.63, "Zr": 1.54, "Nb": 1.47,
	"Mo": 1.38, "Tc": 1.28, "Ru": 1.25, "Rh": 1.25, "Pd": 1.20,
	"Ag": 1.28, "Cd": 1.36, "In": 1.42, "Sn": 1.40, "Sb": 1.40,
	"Te": 1.36, "I": 1.33, "Xe": 1.31,
	"Cs": 2.32, "Ba": 1.96, "La": 1.80, "Ce": 1.63, "Pr": 1.76,
	"Nd": 1.74, "Pm": 1.73, "Sm": 1.72, "Eu": 1.68, "Gd": 1.69,
	"Tb": 1.68, "Dy": 1.67, "Ho": 1.66, "Er": 1.65, "Tm": 1.64,
	"Yb": 1.70, "Lu": 1.62,
	"Hf": 1.52, "Ta": 1.46, "W": 1.37, "Re": 1.31, "Os": 1.29,
	"Ir": 1.22, "Pt": 1.23, "Au": 1.24, "Hg": 1.33,
	"Tl": 1.44, "Pb": 1.44, "Bi": 1.51, "Po": 1.45, "At": 1.47,
	"Rn": 1.42,
	"Fr": 2.23, "Ra": 2.01, "Ac": 1.86, "Th": 1.75, "Pa": 1.69,
	"U": 1.70, "Np": 1.71, "Pu": 1.72, "Am": 1.66, "Cm": 1.66,
	"Bk": 1.68, "Cf": 1.68, "Es": 1.65, "Fm": 1.67, "Md": 1.73,
	"No": 1.76, "Lr": 1.61,
}

// Mass returns the atomic mass for an element symbol, or 0 if the
// symbol is not tabulated.
func Mass(symbol string) float64 {
	return symbolMass[symbol]
}

// CovalentRadius returns the single-bond covalent radius for an
// element symbol, in Angstrom, or 0 if the symbol is not tabulated.
func CovalentRadius(symbol string) float64 {
	return symbolCovrad[symbol]
}
