// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.vfm) JSON file
package inp

import (
	"encoding/json"
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/govfm/mhyper"
	"github.com/cpmech/govfm/opt"
	"github.com/cpmech/govfm/shp"
	"github.com/cpmech/govfm/vfm"
)

// Data holds global data for identification runs
type Data struct {
	Desc     string `json:"desc"`     // description of run
	Mshfile  string `json:"mshfile"`  // file path of file with mesh data
	DirOut   string `json:"dirout"`   // directory for output; e.g. /tmp/govfm
	PlaneDef bool   `json:"planedef"` // project measured gradients onto plane deformation
	NoDetChk bool   `json:"nodetchk"` // skip the det(F) > 0 validation during reconstruction
}

// SolverData holds identification solver data
type SolverData struct {
	Bounded bool    `json:"bounded"` // enforce parameter bounds during iterations
	MaxIt   int     `json:"maxit"`   // number of max iterations
	Tau     float64 `json:"tau"`     // initial damping factor
	FdStep  float64 `json:"fdstep"`  // relative finite-difference step
	GradTol float64 `json:"gradtol"` // gradient convergence tolerance
	StepTol float64 `json:"steptol"` // step-size convergence tolerance
	ObjTol  float64 `json:"objtol"`  // objective convergence tolerance
}

// SetDefault sets defaults values
func (o *SolverData) SetDefault() {
	def := opt.DefaultConfig()
	o.MaxIt = def.MaxIt
	o.Tau = def.Tau
	o.FdStep = def.FdStep
	o.GradTol = def.GradTol
	o.StepTol = def.StepTol
	o.ObjTol = def.ObjTol
}

// Config builds the solver configuration
func (o *SolverData) Config(verbose bool) *opt.Config {
	return &opt.Config{
		Bounded: o.Bounded,
		FdStep:  o.FdStep,
		Tau:     o.Tau,
		GradTol: o.GradTol,
		StepTol: o.StepTol,
		ObjTol:  o.ObjTol,
		MaxIt:   o.MaxIt,
		Verbose: verbose,
	}
}

// MatData holds the material model name and all its parameters
type MatData struct {
	Model string   `json:"model"` // model name; e.g. "mooney-rivlin"
	Prms  fun.Prms `json:"prms"`  // model parameters
}

// ParamData selects one material parameter as unknown
type ParamData struct {
	Name  string  `json:"name"`  // parameter name; must exist in material prms
	Min   float64 `json:"min"`   // lower bound
	Max   float64 `json:"max"`   // upper bound
	Scale float64 `json:"scale"` // magnitude scale; 0 => derived from initial value
}

// Frame holds one nodal displacement frame
type Frame struct {
	Time float64     `json:"time"` // time stamp
	U    [][]float64 `json:"u"`    // [nnod][3] displacements
}

// VfData holds one virtual field
type VfData struct {
	Id       string   `json:"id"`       // identifier
	Constant bool     `json:"constant"` // single frame applies at every load time
	Frames   []*Frame `json:"frames"`   // displacement frames
}

// SurfLoadData holds one measured resultant on a named surface
type SurfLoadData struct {
	Surf string    `json:"surf"` // surface (vertex set) name
	F    []float64 `json:"f"`    // resultant force (size 3)
}

// LoadFrame holds the measured loads of one time frame
type LoadFrame struct {
	Time  float64         `json:"time"`  // time stamp
	Loads []*SurfLoadData `json:"loads"` // resultants per surface
}

// Simulation holds all input data for one identification run
type Simulation struct {

	// input data
	Data     Data         `json:"data"`     // global data
	Solver   SolverData   `json:"solver"`   // identification solver data
	Material MatData      `json:"material"` // material model and parameters
	Params   []*ParamData `json:"params"`   // unknown parameters
	Measured []*Frame     `json:"measured"` // measured displacement frames
	Vfields  []*VfData    `json:"vfields"`  // virtual fields
	Loads    []*LoadFrame `json:"loads"`    // measured load frames

	// derived
	DirIn string    // directory of the input file
	Msh   *shp.Mesh // the mesh
}

// ReadVfm reads an identification run from a JSON file
func ReadVfm(fnamepath string) (o *Simulation, err error) {

	// read and decode
	o = new(Simulation)
	o.Solver.SetDefault()
	b, err := io.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read input file %q", fnamepath)
	}
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot unmarshal input file %q:\n%v", fnamepath, err)
	}
	o.DirIn = filepath.Dir(fnamepath)
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/govfm"
	}

	// mesh
	if o.Data.Mshfile == "" {
		return nil, chk.Err("mesh filename is missing in %q", fnamepath)
	}
	o.Msh, err = shp.ReadMsh(o.DirIn, o.Data.Mshfile)
	if err != nil {
		return nil, err
	}
	return
}

// BuildProblem assembles the identification problem from the input data
func (o *Simulation) BuildProblem(verbose bool) (p *vfm.Problem, cfg *opt.Config, err error) {

	// geometry tables
	prov, err := shp.NewProvider(o.Msh)
	if err != nil {
		return
	}
	quad, err := vfm.NewQuadrature(prov.Ngp(), prov.Jw())
	if err != nil {
		return
	}
	nnod := prov.Nnod()

	// material and parameter binding
	mdl, err := mhyper.New(o.Material.Model)
	if err != nil {
		return
	}
	if err = mdl.Init(o.Material.Prms); err != nil {
		return
	}
	if len(o.Params) < 1 {
		return nil, nil, chk.Err("at least one unknown parameter must be given")
	}
	names := make([]string, len(o.Params))
	params := make([]*vfm.Parameter, len(o.Params))
	for i, pd := range o.Params {
		prm := o.Material.Prms.Find(pd.Name)
		if prm == nil {
			return nil, nil, chk.Err("unknown parameter %q is not in the material parameters", pd.Name)
		}
		scale := pd.Scale
		if scale == 0 {
			scale = math.Max(math.Abs(prm.V), 1.0)
		}
		names[i] = pd.Name
		params[i] = &vfm.Parameter{Name: pd.Name, Val: prm.V, Init: prm.V, Min: pd.Min, Max: pd.Max, Scale: scale}
	}
	binding, err := mhyper.NewBinding(mdl, names)
	if err != nil {
		return
	}

	// measured displacements
	meas := vfm.NewNodalSeries(nnod)
	if err = fillSeries(meas, o.Measured, nnod, "measured field"); err != nil {
		return
	}

	// virtual fields
	vfs := vfm.NewVirtualFields(nnod)
	for _, vd := range o.Vfields {
		vf := vfs.Add(vd.Id, vd.Constant)
		if err = fillSeries(vf.U, vd.Frames, nnod, io.Sf("virtual field %q", vd.Id)); err != nil {
			return
		}
	}

	// loads
	loads := new(vfm.LoadSeries)
	for t, lf := range o.Loads {
		loads.AddFrame(lf.Time)
		for _, l := range lf.Loads {
			if len(l.F) != 3 {
				return nil, nil, chk.Err("load on surface %q at frame %d must have 3 components. %d is invalid", l.Surf, t, len(l.F))
			}
			loads.Set(t, l.Surf, l.F)
		}
	}

	// problem
	p = &vfm.Problem{
		Nnod:     nnod,
		Sgp:      prov,
		Quad:     quad,
		Mdl:      binding,
		Sink:     binding,
		Res:      prov,
		Meas:     meas,
		Vfs:      vfs,
		Loads:    loads,
		PlaneDef: o.Data.PlaneDef,
		CheckDet: !o.Data.NoDetChk,
		Verbose:  verbose,
		Params:   params,
	}
	cfg = o.Solver.Config(verbose)
	return
}

// fillSeries copies displacement frames into a nodal series
func fillSeries(dst *vfm.NodalSeries, frames []*Frame, nnod int, label string) (err error) {
	for t, f := range frames {
		if len(f.U) != nnod {
			return chk.Err("%s: frame %d has %d nodes but the mesh has %d", label, t, len(f.U), nnod)
		}
		u := dst.AddFrame(f.Time)
		for n := 0; n < nnod; n++ {
			if len(f.U[n]) != 3 {
				return chk.Err("%s: frame %d: node %d must have 3 components. %d is invalid", label, t, n, len(f.U[n]))
			}
			copy(u[n], f.U[n])
		}
	}
	return
}
