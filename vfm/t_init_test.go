// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// tetGrid is a single-element grid carrying the reference gradients of the
// unit tetrahedron with vertices at the origin and along the axes
type tetGrid struct{}

func (o tetGrid) ElemNodes(e int) []int { return []int{0, 1, 2, 3} }

func (o tetGrid) GradN(e, g int) [][]float64 {
	return [][]float64{
		{-1, -1, -1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// tetCoords holds the vertex coordinates matching tetGrid
var tetCoords = [][]float64{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// tetQuad returns the one-point quadrature of the unit tetrahedron
func tetQuad() *Quadrature {
	q, err := NewQuadrature([]int{1}, []float64{1.0 / 6.0})
	if err != nil {
		chk.Panic("cannot allocate quadrature: %v", err)
	}
	return q
}

// affineFrame fills u with the affine field u = A x over the tet vertices
func affineFrame(u [][]float64, A [][]float64) {
	for n, x := range tetCoords {
		for i := 0; i < 3; i++ {
			u[n][i] = 0
			for j := 0; j < 3; j++ {
				u[n][i] += A[i][j] * x[j]
			}
		}
	}
}

// linMat is a fictitious material with stress linear in a single parameter k:
//   σ = k (F + Fᵀ - 2 I)
// It also acts as the parameter sink of identification tests.
type linMat struct {
	k float64
}

func (o *linMat) EvalCauchy(e, g int, F, sig [][]float64) error {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sig[i][j] = o.k * (F[i][j] + F[j][i])
		}
		sig[i][i] -= 2.0 * o.k
	}
	return nil
}

func (o *linMat) ApplyParams(vals []float64) error {
	o.k = vals[0]
	return nil
}

// setResolver resolves surfaces from a fixed table
type setResolver map[string][]int

func (o setResolver) ResolveSurface(name string) []int { return o[name] }
