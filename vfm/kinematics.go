// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// MINDET is the minimum absolute determinant allowed for deformation gradients
const MINDET = 1.0e-14

// Kinematics reconstructs deformation gradients at integration points from
// nodal displacement fields:
//  F = I + Σ_a u_a ⊗ ∇X(N_a)
// No partial output is valid after an error: callers must discard the whole
// output series.
type Kinematics struct {

	// options
	PlaneDef bool // apply plane-deformation projection (see ProjectPlane)
	CheckDet bool // validate det(F) > 0 at every integration point

	// scratchpad
	fi [][]float64 // inverse of F for determinant computation
}

// NewKinematics returns a reconstructor with the given options
func NewKinematics(planeDef, checkDet bool) *Kinematics {
	return &Kinematics{PlaneDef: planeDef, CheckDet: checkDet, fi: la.MatAlloc(3, 3)}
}

// ProjectPlane applies the plane-deformation projection: the out-of-plane
// shear components are zeroed and F[2][2] enforces the incompressible
// in-plane constraint det(F) = 1
func ProjectPlane(F [][]float64) {
	F[0][2], F[1][2] = 0, 0
	F[2][0], F[2][1] = 0, 0
	F[2][2] = 1.0 / (F[0][0] * F[1][1])
}

// gradAtIp accumulates F at one integration point of one element
func (o *Kinematics) gradAtIp(sgp ShapeGradientProvider, u [][]float64, e, g int, F [][]float64) (err error) {
	la.MatFill(F, 0)
	gradn := sgp.GradN(e, g)
	for a, n := range sgp.ElemNodes(e) {
		if n < 0 || n >= len(u) {
			return chk.Err("element %d references node %d outside the displacement field (size %d)", e, n, len(u))
		}
		ua, ga := u[n], gradn[a]
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				F[i][j] += ua[i] * ga[j]
			}
		}
	}
	F[0][0] += 1.0
	F[1][1] += 1.0
	F[2][2] += 1.0
	if o.PlaneDef {
		ProjectPlane(F)
	}
	if o.CheckDet {
		det, err := la.MatInv(o.fi, F, MINDET)
		if err != nil || det <= 0 {
			return chk.Err("kinematics: non-positive det(F) = %g at element %d, integration point %d", det, e, g)
		}
	}
	return
}

// Frame reconstructs F for one nodal displacement frame into frame t of out.
// The output frame must exist already (see TensorSeries.Resize).
func (o *Kinematics) Frame(sgp ShapeGradientProvider, quad *Quadrature, u [][]float64, out *TensorSeries, t int) (err error) {
	for e := 0; e < quad.Nelem(); e++ {
		for g := 0; g < quad.Ngp[e]; g++ {
			if err = o.gradAtIp(sgp, u, e, g, out.At(t, e, g)); err != nil {
				return
			}
		}
	}
	return
}

// Measured reconstructs the deformation gradient series of the measured
// displacement history. The output series is resized to match the input.
func (o *Kinematics) Measured(sgp ShapeGradientProvider, quad *Quadrature, meas *NodalSeries, out *TensorSeries) (err error) {
	out.Resize(meas.Nt())
	for t := 0; t < meas.Nt(); t++ {
		if err = o.Frame(sgp, quad, meas.U(t), out, t); err != nil {
			return chk.Err("measured field, frame %d (t = %g):\n%v", t, meas.Time(t), err)
		}
	}
	return
}

// Virtuals reconstructs one deformation gradient series per virtual field.
// The determinant check follows the CheckDet option; the plane-deformation
// projection applies to the measured field only.
func (o *Kinematics) Virtuals(sgp ShapeGradientProvider, quad *Quadrature, vfs *VirtualFields, out []*TensorSeries) (err error) {
	if len(out) != vfs.Nvf() {
		return chk.Err("kinematics: %d output series for %d virtual fields", len(out), vfs.Nvf())
	}
	raw := Kinematics{CheckDet: o.CheckDet, fi: o.fi}
	for v := 0; v < vfs.Nvf(); v++ {
		vf := vfs.Field(v)
		out[v].Resize(vf.U.Nt())
		for t := 0; t < vf.U.Nt(); t++ {
			if err = raw.Frame(sgp, quad, vf.U.U(t), out[v], t); err != nil {
				return chk.Err("virtual field %q, frame %d:\n%v", vf.Id, t, err)
			}
		}
	}
	return
}
