// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// InternalWork assembles the internal virtual work
//  IW(v,t) = Σ_elems Σ_gauss P(t,e,g) : G(v,·,e,g) · w(e,g)
// where G = F* - I is the virtual displacement gradient and w the
// reference-configuration integration weight. Every assembly re-applies the
// candidate parameters and re-runs the stress evaluation; this is the
// expensive step repeated on every solver iteration.
type InternalWork struct {
	Quad   *Quadrature     // integration layout and weights
	Def    *TensorSeries   // measured deformation gradients F(t,e,g)
	Vdef   []*TensorSeries // virtual deformation gradients F*(v,t,e,g)
	Vfs    *VirtualFields  // time-alignment policy per virtual field
	Stress *StressSeries   // overwritten in place on every call
	Sink   ParamSink       // parameter application into the host model
	Eval   *StressEval     // stress evaluator
}

// Assemble re-applies params, re-evaluates stresses, and fills W[v][t].
// W must be allocated [nvf][nt] where nt is the stress frame count.
// On failure W is not a valid output and must be discarded.
func (o *InternalWork) Assemble(params []float64, W [][]float64) (err error) {

	// parameter application and stress re-evaluation
	if err = o.Sink.ApplyParams(params); err != nil {
		return chk.Err("internal work: cannot apply parameters:\n%v", err)
	}
	if err = o.Eval.Eval(o.Def, o.Stress); err != nil {
		return chk.Err("internal work: stress evaluation failed:\n%v", err)
	}

	// contraction
	nt := o.Stress.Nt()
	for v := 0; v < o.Vfs.Nvf(); v++ {
		vf := o.Vfs.Field(v)
		if len(W[v]) != nt {
			return chk.Err("internal work: output row %d has size %d but there are %d load times", v, len(W[v]), nt)
		}
		for t := 0; t < nt; t++ {
			tf, err := vf.FrameIndex(t, nt)
			if err != nil {
				return err
			}
			acc := 0.0
			for e := 0; e < o.Quad.Nelem(); e++ {
				if o.Stress.P.Ngp(e) != o.Quad.Ngp[e] {
					return chk.Err("internal work: element %d has %d stress points but %d integration weights", e, o.Stress.P.Ngp(e), o.Quad.Ngp[e])
				}
				for g := 0; g < o.Quad.Ngp[e]; g++ {
					P := o.Stress.P.At(t, e, g)
					Fv := o.Vdef[v].At(tf, e, g)
					dd := 0.0 // P : (F* - I)
					for i := 0; i < 3; i++ {
						for j := 0; j < 3; j++ {
							G := Fv[i][j]
							if i == j {
								G -= 1.0
							}
							dd += P[i][j] * G
						}
					}
					acc += dd * o.Quad.W(e, g)
				}
			}
			W[v][t] = acc
		}
	}
	return
}

// ExternalWork assembles the external virtual work
//  EW(v,t) = Σ_surfaces F_s(t) · u*(v, representative node of s, t)
// Surfaces are resolved once; only the first resolved node of a surface is
// sampled (single-node representative, a deliberate simplification).
type ExternalWork struct {
	Loads *LoadSeries
	Vfs   *VirtualFields
	Res   SurfaceResolver

	// derived
	repnode map[string]int // surface name to representative node index
}

// resolve builds the surface-to-representative-node map once
func (o *ExternalWork) resolve() (err error) {
	if o.repnode != nil {
		return
	}
	o.repnode = make(map[string]int)
	for _, name := range o.Loads.Surfaces() {
		nodes := o.Res.ResolveSurface(name)
		if len(nodes) == 0 {
			o.repnode = nil
			return chk.Err("external work: surface %q cannot be resolved to any node", name)
		}
		o.repnode[name] = nodes[0]
	}
	return
}

// Assemble fills W[v][t]. W must be allocated [nvf][nt].
func (o *ExternalWork) Assemble(W [][]float64) (err error) {
	if err = o.resolve(); err != nil {
		return
	}
	nt := o.Loads.Nt()
	for v := 0; v < o.Vfs.Nvf(); v++ {
		vf := o.Vfs.Field(v)
		for t := 0; t < nt; t++ {
			tf, err := vf.FrameIndex(t, nt)
			if err != nil {
				return err
			}
			u := vf.U.U(tf)
			acc := 0.0
			for _, l := range o.Loads.Loads(t) {
				n := o.repnode[l.Surf]
				acc += l.F[0]*u[n][0] + l.F[1]*u[n][1] + l.F[2]*u[n][2]
			}
			W[v][t] = acc
		}
	}
	return
}

// AllocWork allocates a work matrix W[nvf][nt]
func AllocWork(nvf, nt int) [][]float64 {
	return utl.Alloc(nvf, nt)
}
