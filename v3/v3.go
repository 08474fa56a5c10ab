/*
 * v3.go, part of eeqbc.
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

// Package v3 implements sets of row vectors in 3D space, backed by
// gonum dense matrices. Within the package it is understood that a
// "vector" is a row vector, i.e. the cartesian coordinates of a point
// in 3D space.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, i.e. a matrix with 3 columns
// and one row per atom.
type Matrix struct {
	*mat.Dense
}

// Matrix2Dense returns the gonum matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dense2Matrix wraps a gonum matrix into a Matrix. It panics if A
// does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(Error{fmt.Sprintf("eeqbc/v3: expected 3 columns, got %d", c), []string{"Dense2Matrix"}, true})
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

// Zeros returns a zero-valued Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// VecView returns a view of the ith vector of the matrix. Changes in
// the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of F starting from i,0 and spanning r rows.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

// Copy returns a new Matrix with a copy of the data in F.
func (F *Matrix) Copy() *Matrix {
	r := mat.DenseCopyOf(F.Dense)
	return &Matrix{r}
}

// SetVecs sets the vectors of the receiver in the positions given by
// clist to the vectors of A, in order. It panics if clist contains
// indexes out of range.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	fr := F.NVecs()
	for key, k := range clist {
		if k >= fr {
			panic(Error{fmt.Sprintf("eeqbc/v3: vector %d out of range (%d)", k, fr), []string{"SetVecs"}, true})
		}
		F.SetRow(k, A.RawRowView(key))
	}
}

// Dist returns the distance between the ith vector of F and the jth
// vector of G.
func Dist(F *Matrix, i int, G *Matrix, j int) float64 {
	dx := F.At(i, 0) - G.At(j, 0)
	dy := F.At(i, 1) - G.At(j, 1)
	dz := F.At(i, 2) - G.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// MinDist returns the smallest distance between the ith vector of F
// and any other vector of F.
func MinDist(F *Matrix, i int) float64 {
	min := math.Inf(1)
	for j := 0; j < F.NVecs(); j++ {
		if j == i {
			continue
		}
		if d := Dist(F, i, F, j); d < min {
			min = d
		}
	}
	return min
}

// Error is the v3 error type. It implements chem.Error, so it can be
// decorated with the call trace leading to it.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }
