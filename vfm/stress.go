// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// StressEval populates stress series from deformation gradient series using
// an injected constitutive capability
type StressEval struct {
	Mdl StressProvider

	// scratchpad
	fi [][]float64 // inverse of F
}

// NewStressEval returns an evaluator bound to the given constitutive model
func NewStressEval(mdl StressProvider) *StressEval {
	return &StressEval{Mdl: mdl, fi: la.MatAlloc(3, 3)}
}

// Cauchy evaluates the Cauchy stress at every frame/element/integration
// point of F into out.Sig, resizing out to match F
func (o *StressEval) Cauchy(F *TensorSeries, out *StressSeries) (err error) {
	out.Resize(F.Nt())
	for t := 0; t < F.Nt(); t++ {
		for e := 0; e < F.Nelem(); e++ {
			for g := 0; g < F.Ngp(e); g++ {
				if err = o.Mdl.EvalCauchy(e, g, F.At(t, e, g), out.Sig.At(t, e, g)); err != nil {
					return chk.Err("material evaluation failed at frame %d, element %d, integration point %d:\n%v", t, e, g, err)
				}
			}
		}
	}
	return
}

// FirstPiola transforms the Cauchy stresses of out into first
// Piola-Kirchhoff stresses:
//  P = J σ F⁻ᵀ,  J = det(F)
// A non-positive Jacobian is re-checked here even when the kinematics
// validation already ran.
func (o *StressEval) FirstPiola(F *TensorSeries, out *StressSeries) (err error) {
	if out.Nt() != F.Nt() {
		return chk.Err("stress series has %d frames but deformations have %d", out.Nt(), F.Nt())
	}
	for t := 0; t < F.Nt(); t++ {
		for e := 0; e < F.Nelem(); e++ {
			for g := 0; g < F.Ngp(e); g++ {
				Fm := F.At(t, e, g)
				J, err := la.MatInv(o.fi, Fm, MINDET)
				if err != nil || J <= 0 {
					return chk.Err("first Piola transform: non-positive Jacobian J = %g at frame %d, element %d, integration point %d", J, t, e, g)
				}
				σ := out.Sig.At(t, e, g)
				P := out.P.At(t, e, g)
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						P[i][j] = 0
						for k := 0; k < 3; k++ {
							P[i][j] += σ[i][k] * o.fi[j][k] // F⁻ᵀ[k][j] == F⁻¹[j][k]
						}
						P[i][j] *= J
					}
				}
			}
		}
	}
	return
}

// Eval runs the full stress evaluation: Cauchy stresses followed by the
// first Piola-Kirchhoff transform
func (o *StressEval) Eval(F *TensorSeries, out *StressSeries) (err error) {
	if err = o.Cauchy(F, out); err != nil {
		return
	}
	return o.FirstPiola(F, out)
}

// CauchyFromPiola recovers the Cauchy stress from a first Piola-Kirchhoff
// stress: σ = (1/J) P Fᵀ. Used for cross-checking and export.
func CauchyFromPiola(P, F, σ [][]float64) (err error) {
	fi := la.MatAlloc(3, 3)
	J, err := la.MatInv(fi, F, MINDET)
	if err != nil || J <= 0 {
		return chk.Err("cannot recover Cauchy stress: non-positive Jacobian J = %g", J)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			σ[i][j] = 0
			for k := 0; k < 3; k++ {
				σ[i][j] += P[i][k] * F[j][k]
			}
			σ[i][j] /= J
		}
	}
	return
}
