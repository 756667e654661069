// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mhyper

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// MINJ is the smallest allowed Jacobian determinant in stress computations
const MINJ = 1.0e-14

// NeoHookean implements the compressible neo-Hookean model with
//   σ = (G/J) (b - I) + (λ ln(J)/J) I
// where b = F.Fᵀ is the left Cauchy-Green tensor
type NeoHookean struct {

	// parameters
	G   float64 // shear modulus
	Lam float64 // Lamé constant λ

	// auxiliary
	b  [][]float64 // b = F.Fᵀ
	fi [][]float64 // inverse of F
}

// add model to factory
func init() {
	allocators["neo-hookean"] = func() Model { return new(NeoHookean) }
}

// Init initialises model. Accepts either {G, lam} or {E, nu}
func (o *NeoHookean) Init(prms fun.Prms) (err error) {

	// parameters
	var E, ν float64
	var hasE, hasν bool
	for _, p := range prms {
		switch p.N {
		case "G":
			o.G = p.V
		case "lam":
			o.Lam = p.V
		case "E":
			E, hasE = p.V, true
		case "nu":
			ν, hasν = p.V, true
		default:
			return chk.Err("neo-hookean: parameter %q is invalid", p.N)
		}
	}
	if hasE != hasν {
		return chk.Err("neo-hookean: E and nu must be given together")
	}
	if hasE {
		o.G = E / (2.0 * (1.0 + ν))
		o.Lam = E * ν / ((1.0 + ν) * (1.0 - 2.0*ν))
	}
	if o.G <= 0 {
		return chk.Err("neo-hookean: shear modulus must be positive. G=%g is invalid", o.G)
	}

	// auxiliary
	o.b = la.MatAlloc(3, 3)
	o.fi = la.MatAlloc(3, 3)
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHookean) GetPrms() fun.Prms {
	return []*fun.Prm{
		&fun.Prm{N: "G", V: 1.0},
		&fun.Prm{N: "lam", V: 1.0},
	}
}

// SetParam sets one named parameter
func (o *NeoHookean) SetParam(name string, v float64) (err error) {
	switch name {
	case "G":
		o.G = v
	case "lam":
		o.Lam = v
	default:
		return chk.Err("neo-hookean: parameter %q is invalid", name)
	}
	return
}

// Sig computes the Cauchy stress for given deformation gradient
func (o *NeoHookean) Sig(σ, F [][]float64) (err error) {
	J, err := la.MatInv(o.fi, F, MINJ)
	if err != nil {
		return
	}
	if J < MINJ {
		return chk.Err("neo-hookean: cannot compute stress with J=%g", J)
	}
	lnJ := math.Log(J)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.b[i][j] = 0
			for k := 0; k < 3; k++ {
				o.b[i][j] += F[i][k] * F[j][k]
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			σ[i][j] = o.G / J * o.b[i][j]
		}
		σ[i][i] += (o.Lam*lnJ - o.G) / J
	}
	return
}
