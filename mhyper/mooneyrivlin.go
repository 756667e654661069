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

// MooneyRivlin implements the uncoupled (deviatoric) Mooney-Rivlin model with
//   W = c1 (Ī1 - 3) + c2 (Ī2 - 3)
// The volumetric part is unknown; the pressure is recovered from the
// traction-free thickness condition σzz = 0:
//   σ = s - szz I
// with s the deviatoric Cauchy stress
type MooneyRivlin struct {

	// parameters
	C1 float64 // first invariant coefficient
	C2 float64 // second invariant coefficient

	// auxiliary
	b  [][]float64 // b̄ = J^(-2/3) F.Fᵀ
	bb [][]float64 // b̄.b̄
	fi [][]float64 // inverse of F
}

// add model to factory
func init() {
	allocators["mooney-rivlin"] = func() Model { return new(MooneyRivlin) }
}

// Init initialises model
func (o *MooneyRivlin) Init(prms fun.Prms) (err error) {
	for _, p := range prms {
		switch p.N {
		case "c1":
			o.C1 = p.V
		case "c2":
			o.C2 = p.V
		default:
			return chk.Err("mooney-rivlin: parameter %q is invalid", p.N)
		}
	}
	o.b = la.MatAlloc(3, 3)
	o.bb = la.MatAlloc(3, 3)
	o.fi = la.MatAlloc(3, 3)
	return
}

// GetPrms gets (an example) of parameters
func (o MooneyRivlin) GetPrms() fun.Prms {
	return []*fun.Prm{
		&fun.Prm{N: "c1", V: 1.0},
		&fun.Prm{N: "c2", V: 0.1},
	}
}

// SetParam sets one named parameter
func (o *MooneyRivlin) SetParam(name string, v float64) (err error) {
	switch name {
	case "c1":
		o.C1 = v
	case "c2":
		o.C2 = v
	default:
		return chk.Err("mooney-rivlin: parameter %q is invalid", name)
	}
	return
}

// Sig computes the Cauchy stress for given deformation gradient
func (o *MooneyRivlin) Sig(σ, F [][]float64) (err error) {

	// isochoric left Cauchy-Green tensor
	J, err := la.MatInv(o.fi, F, MINJ)
	if err != nil {
		return
	}
	if J < MINJ {
		return chk.Err("mooney-rivlin: cannot compute stress with J=%g", J)
	}
	cof := math.Pow(J, -2.0/3.0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.b[i][j] = 0
			for k := 0; k < 3; k++ {
				o.b[i][j] += F[i][k] * F[j][k]
			}
			o.b[i][j] *= cof
		}
	}
	I1 := o.b[0][0] + o.b[1][1] + o.b[2][2]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.bb[i][j] = 0
			for k := 0; k < 3; k++ {
				o.bb[i][j] += o.b[i][k] * o.b[k][j]
			}
		}
	}

	// deviatoric stress: s = (2/J) dev[(c1 + c2 I1) b̄ - c2 b̄.b̄]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			σ[i][j] = 2.0 / J * ((o.C1+o.C2*I1)*o.b[i][j] - o.C2*o.bb[i][j])
		}
	}
	tr := (σ[0][0] + σ[1][1] + σ[2][2]) / 3.0
	for i := 0; i < 3; i++ {
		σ[i][i] -= tr
	}

	// pressure estimate from σzz = 0
	szz := σ[2][2]
	for i := 0; i < 3; i++ {
		σ[i][i] -= szz
	}
	return
}
