// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"context"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/govfm/opt"
)

// Parameter holds one unknown constitutive parameter
type Parameter struct {
	Name  string  // identifier; e.g. "G"
	Val   float64 // current value
	Init  float64 // initial value
	Min   float64 // lower bound
	Max   float64 // upper bound
	Scale float64 // magnitude scale; must be nonzero
}

// NewParameter builds a Parameter from a fun.Prm entry with unit scale
func NewParameter(prm *fun.Prm) *Parameter {
	return &Parameter{Name: prm.N, Val: prm.V, Init: prm.V, Min: prm.Min, Max: prm.Max, Scale: 1}
}

// ParamValues extracts the current values, in collection order
func ParamValues(params []*Parameter) (vals []float64) {
	vals = make([]float64, len(params))
	for i, p := range params {
		vals[i] = p.Val
	}
	return
}

// Results holds what one identification run exposes to the caller: the final
// parameters, the work vectors, and the full tensor series for export
type Results struct {
	Params []*Parameter    // final parameter collection
	VfIds  []string        // virtual field identifiers (row order of IW/EW)
	Times  []float64       // load time stamps (column order of IW/EW)
	IW     [][]float64     // internal virtual work [nvf][nt]
	EW     [][]float64     // external virtual work [nvf][nt]
	Def    *TensorSeries   // measured deformation gradients
	Vdef   []*TensorSeries // virtual deformation gradients
	Stress *StressSeries   // final stresses (σ and P)
	Report *opt.Report     // solver diagnostics
}

// Problem is the owning context of one identification run. The assemblers
// and the solver hold only views into this structure; the Stress series is
// overwritten in place on every solver iteration.
type Problem struct {

	// geometry and consumed capabilities
	Nnod int                   // mesh node count
	Sgp  ShapeGradientProvider // reference shape function gradients
	Quad *Quadrature           // integration layout with weights
	Mdl  StressProvider        // constitutive capability
	Sink ParamSink             // parameter application into the host model
	Res  SurfaceResolver       // named surface to node indices

	// input series
	Meas  *NodalSeries   // measured displacement history
	Vfs   *VirtualFields // virtual displacement fields
	Loads *LoadSeries    // measured load history

	// options
	PlaneDef bool // plane-deformation projection of measured F
	CheckDet bool // validate det(F) > 0 during reconstruction
	Verbose  bool // print stage and iteration summaries

	// unknowns
	Params []*Parameter

	// derived series (owned here)
	Def    *TensorSeries
	Vdef   []*TensorSeries
	Stress *StressSeries

	// derived assemblers and work
	iw *InternalWork
	ew *ExternalWork
	EW [][]float64

	// solver of the current run (for cancellation)
	solver *opt.Solver
}

// Init validates the inputs and performs the one-off numerical setup:
// kinematic reconstruction of measured and virtual deformation gradients and
// assembly of the external work matrix. Must be called before Identify.
func (o *Problem) Init() (err error) {

	// consistency first; no numerical work on bad input
	if err = Validate(o.Nnod, o.Meas, o.Vfs, o.Loads, o.Res); err != nil {
		return chk.Err("input validation failed:\n%v", err)
	}
	if err = CheckParameters(o.Params); err != nil {
		return chk.Err("parameter validation failed:\n%v", err)
	}

	// derived series
	o.Def = NewTensorSeries(o.Quad.Ngp)
	o.Stress = NewStressSeries(o.Quad.Ngp)
	o.Vdef = make([]*TensorSeries, o.Vfs.Nvf())
	for v := 0; v < o.Vfs.Nvf(); v++ {
		o.Vdef[v] = NewTensorSeries(o.Quad.Ngp)
	}

	// kinematics
	kin := NewKinematics(o.PlaneDef, o.CheckDet)
	if err = kin.Measured(o.Sgp, o.Quad, o.Meas, o.Def); err != nil {
		return
	}
	if err = kin.Virtuals(o.Sgp, o.Quad, o.Vfs, o.Vdef); err != nil {
		return
	}
	if o.Verbose {
		io.Pf("kinematics: %d measured frames, %d virtual fields, %d integration points\n", o.Def.Nt(), o.Vfs.Nvf(), o.Def.Tot())
	}

	// assemblers
	o.iw = &InternalWork{
		Quad:   o.Quad,
		Def:    o.Def,
		Vdef:   o.Vdef,
		Vfs:    o.Vfs,
		Stress: o.Stress,
		Sink:   o.Sink,
		Eval:   NewStressEval(o.Mdl),
	}
	o.ew = &ExternalWork{Loads: o.Loads, Vfs: o.Vfs, Res: o.Res}

	// external work is parameter-independent; assemble once
	o.EW = AllocWork(o.Vfs.Nvf(), o.Loads.Nt())
	if err = o.ew.Assemble(o.EW); err != nil {
		return
	}
	return
}

// Cancel interrupts the identification run in progress, if any
func (o *Problem) Cancel() {
	if o.solver != nil {
		o.solver.Cancel()
	}
}

// Identify runs the bounded Levenberg-Marquardt identification: parameters
// are the independent variable and IW(params) - EW the residual. On success
// (or iteration-cap exhaustion, or interruption) the current estimate is
// written back into the Parameter collection and the host binding, and the
// stresses and internal work are recomputed once for reporting.
func (o *Problem) Identify(ctx context.Context, cfg *opt.Config) (res *Results, err error) {

	// solver setup
	if o.iw == nil {
		return nil, chk.Err("Init must run before Identify")
	}
	if cfg == nil {
		cfg = opt.DefaultConfig()
	}
	nvf, nt := o.Vfs.Nvf(), o.Loads.Nt()
	m := len(o.Params)
	lo, hi, scale := make([]float64, m), make([]float64, m), make([]float64, m)
	for i, prm := range o.Params {
		lo[i], hi[i], scale[i] = prm.Min, prm.Max, prm.Scale
	}
	o.solver = opt.NewSolver(cfg, lo, hi, scale)
	defer func() { o.solver = nil }()

	// honor context cancellation at the API boundary
	if ctx != nil {
		if ctx.Err() != nil {
			o.solver.Cancel()
		}
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				o.Cancel()
			case <-done:
			}
		}()
	}

	// residual: IW(params) - EW, flattened VF-major
	W := AllocWork(nvf, nt)
	fcn := func(f, p []float64) error {
		if e := o.iw.Assemble(p, W); e != nil {
			return e
		}
		for v := 0; v < nvf; v++ {
			for t := 0; t < nt; t++ {
				f[v*nt+t] = W[v][t] - o.EW[v][t]
			}
		}
		return nil
	}

	// run
	p := ParamValues(o.Params)
	rep, err := o.solver.Run(p, nvf*nt, fcn)
	if err != nil {
		return nil, chk.Err("identification failed:\n%v", err)
	}
	if o.Verbose {
		io.Pf("identification: %v after %d iterations (%d evaluations)\n", rep.Reason, rep.It, rep.Nfev)
	}

	// write back into the collection and the host binding
	for i, prm := range o.Params {
		prm.Val = p[i]
	}
	if err = o.Sink.ApplyParams(p); err != nil {
		return nil, chk.Err("cannot apply final parameters:\n%v", err)
	}

	// final recomputation for reporting and export
	IW := AllocWork(nvf, nt)
	if err = o.iw.Assemble(p, IW); err != nil {
		return nil, chk.Err("final internal work recomputation failed:\n%v", err)
	}

	res = &Results{
		Params: o.Params,
		VfIds:  o.Vfs.Ids(),
		Times:  o.Loads.Times(),
		IW:     IW,
		EW:     o.EW,
		Def:    o.Def,
		Vdef:   o.Vdef,
		Stress: o.Stress,
		Report: rep,
	}
	return
}
