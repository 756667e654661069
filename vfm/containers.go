// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vfm implements the core of the virtual fields method: kinematic
// reconstruction of deformation gradients, stress evaluation, virtual work
// assembly and parameter identification
package vfm

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// NodalSeries holds an ordered, append-only sequence of nodal 3-vector
// fields; e.g. measured displacements u[t][node][3]. The node count is fixed
// at allocation and shared by all frames.
type NodalSeries struct {
	nnod   int           // number of nodes
	times  []float64     // time value of each frame
	frames [][][]float64 // [nt][nnod][3]
}

// NewNodalSeries returns a new series for nnod nodes and no frames
func NewNodalSeries(nnod int) *NodalSeries {
	return &NodalSeries{nnod: nnod}
}

// Nnod returns the number of nodes per frame
func (o *NodalSeries) Nnod() int { return o.nnod }

// Nt returns the number of time frames
func (o *NodalSeries) Nt() int { return len(o.frames) }

// Time returns the time value of frame t
func (o *NodalSeries) Time(t int) float64 { return o.times[t] }

// Times returns the time values of all frames
func (o *NodalSeries) Times() []float64 { return o.times }

// AddFrame appends one zeroed frame at the given time and returns it
func (o *NodalSeries) AddFrame(time float64) (u [][]float64) {
	u = utl.Alloc(o.nnod, 3)
	o.times = append(o.times, time)
	o.frames = append(o.frames, u)
	return
}

// U returns frame t
func (o *NodalSeries) U(t int) [][]float64 { return o.frames[t] }

// At returns the 3-vector of node n at frame t
func (o *NodalSeries) At(t, n int) []float64 { return o.frames[t][n] }

// VirtualField holds one admissible virtual displacement field. Constant
// fields carry exactly one frame that applies at every load time; the flag
// must be set explicitly since a short series is otherwise an input error.
type VirtualField struct {
	Id       string       // identifier; e.g. "vf-stretch-x"
	Constant bool         // single frame reused at every load time
	U        *NodalSeries // nodal displacement frames
}

// FrameIndex maps load time index t onto this field's frame index.
// nt is the number of load time frames.
func (o *VirtualField) FrameIndex(t, nt int) (tf int, err error) {
	if o.Constant {
		if o.U.Nt() != 1 {
			return 0, chk.Err("virtual field %q is flagged constant but has %d time frames instead of 1", o.Id, o.U.Nt())
		}
		return 0, nil
	}
	if o.U.Nt() == nt {
		return t, nil
	}
	if o.U.Nt() == 1 {
		return 0, chk.Err("virtual field %q has a single time frame but is not flagged constant; set the constant flag to broadcast it", o.Id)
	}
	return 0, chk.Err("virtual field %q: ambiguous time alignment: %d frames versus %d load times", o.Id, o.U.Nt(), nt)
}

// VirtualFields holds a fixed collection of virtual fields sharing one node
// index space with the measured data
type VirtualFields struct {
	nnod   int
	fields []*VirtualField
}

// NewVirtualFields returns an empty collection for nnod nodes
func NewVirtualFields(nnod int) *VirtualFields {
	return &VirtualFields{nnod: nnod}
}

// Nvf returns the number of virtual fields
func (o *VirtualFields) Nvf() int { return len(o.fields) }

// Add appends one virtual field and returns it
func (o *VirtualFields) Add(id string, constant bool) *VirtualField {
	vf := &VirtualField{Id: id, Constant: constant, U: NewNodalSeries(o.nnod)}
	o.fields = append(o.fields, vf)
	return vf
}

// Field returns virtual field v
func (o *VirtualFields) Field(v int) *VirtualField { return o.fields[v] }

// Ids returns the identifiers of all fields
func (o *VirtualFields) Ids() (ids []string) {
	ids = make([]string, len(o.fields))
	for i, vf := range o.fields {
		ids[i] = vf.Id
	}
	return
}

// SurfLoad holds one measured resultant force on a named surface
type SurfLoad struct {
	Surf string    // surface identifier; e.g. "left_grip"
	F    []float64 // resultant force (size 3)
}

// LoadSeries holds the measured load history: for each time frame, the
// resultant forces on named surfaces. This series also carries the reference
// time stamps for the whole problem.
type LoadSeries struct {
	times  []float64
	frames [][]*SurfLoad
}

// Nt returns the number of load time frames
func (o *LoadSeries) Nt() int { return len(o.frames) }

// Time returns the time value of frame t
func (o *LoadSeries) Time(t int) float64 { return o.times[t] }

// Times returns all time values
func (o *LoadSeries) Times() []float64 { return o.times }

// AddFrame appends one empty frame at the given time
func (o *LoadSeries) AddFrame(time float64) {
	o.times = append(o.times, time)
	o.frames = append(o.frames, nil)
}

// Set adds or overwrites the force on surface surf at frame t
func (o *LoadSeries) Set(t int, surf string, f []float64) {
	for _, l := range o.frames[t] {
		if l.Surf == surf {
			copy(l.F, f)
			return
		}
	}
	l := &SurfLoad{Surf: surf, F: make([]float64, 3)}
	copy(l.F, f)
	o.frames[t] = append(o.frames[t], l)
}

// Loads returns the surface loads of frame t
func (o *LoadSeries) Loads(t int) []*SurfLoad { return o.frames[t] }

// Surfaces returns the unique surface names, in first-appearance order
func (o *LoadSeries) Surfaces() (names []string) {
	for t := 0; t < len(o.frames); t++ {
		for _, l := range o.frames[t] {
			found := false
			for _, n := range names {
				if n == l.Surf {
					found = true
					break
				}
			}
			if !found {
				names = append(names, l.Surf)
			}
		}
	}
	return
}

// TensorSeries holds ragged per-element/per-integration-point 3x3 tensors
// organised as an ordered sequence of time frames. The per-element counts
// are fixed at allocation; frames are stored as flat arenas addressed by a
// prefix-sum offset table.
type TensorSeries struct {
	ngp    []int           // [nelem] integration points per element
	ofs    []int           // [nelem+1] prefix sum over ngp
	tot    int             // total number of integration points
	frames [][][][]float64 // [nt][tot][3][3]
}

// NewTensorSeries returns a new series with the given (finalized) shape
func NewTensorSeries(ngp []int) (o *TensorSeries) {
	o = new(TensorSeries)
	o.ngp = make([]int, len(ngp))
	copy(o.ngp, ngp)
	o.ofs = make([]int, len(ngp)+1)
	for e := 0; e < len(ngp); e++ {
		o.ofs[e+1] = o.ofs[e] + ngp[e]
	}
	o.tot = o.ofs[len(ngp)]
	return
}

// Nelem returns the number of elements
func (o *TensorSeries) Nelem() int { return len(o.ngp) }

// Ngp returns the number of integration points of element e
func (o *TensorSeries) Ngp(e int) int { return o.ngp[e] }

// Tot returns the total number of integration points per frame
func (o *TensorSeries) Tot() int { return o.tot }

// Nt returns the number of time frames
func (o *TensorSeries) Nt() int { return len(o.frames) }

// AddFrame appends one zeroed frame and returns its index
func (o *TensorSeries) AddFrame() (t int) {
	o.frames = append(o.frames, utl.Deep3alloc(o.tot, 3, 3))
	return len(o.frames) - 1
}

// Resize truncates or extends the series to nt frames
func (o *TensorSeries) Resize(nt int) {
	if nt <= len(o.frames) {
		o.frames = o.frames[:nt]
		return
	}
	for len(o.frames) < nt {
		o.AddFrame()
	}
}

// At returns the 3x3 tensor at frame t, element e, integration point g
func (o *TensorSeries) At(t, e, g int) [][]float64 {
	return o.frames[t][o.ofs[e]+g]
}

// StressSeries holds two tensor series sharing one shape: Cauchy stresses
// and first Piola-Kirchhoff stresses, aligned index-for-index with the
// deformation gradients they derive from
type StressSeries struct {
	Sig *TensorSeries // Cauchy stress
	P   *TensorSeries // first Piola-Kirchhoff stress
}

// NewStressSeries returns a new two-channel series with the given shape
func NewStressSeries(ngp []int) *StressSeries {
	return &StressSeries{Sig: NewTensorSeries(ngp), P: NewTensorSeries(ngp)}
}

// Resize sets both channels to nt frames
func (o *StressSeries) Resize(nt int) {
	o.Sig.Resize(nt)
	o.P.Resize(nt)
}

// Nt returns the number of frames
func (o *StressSeries) Nt() int { return o.Sig.Nt() }

// Quadrature holds the reference-configuration integration layout: ragged
// integration-point counts and the corresponding weights (Gauss weight times
// reference Jacobian determinant), flat with a prefix-sum offset table
type Quadrature struct {
	Ngp []int     // [nelem] integration points per element
	Ofs []int     // [nelem+1] prefix sum over Ngp
	Jw  []float64 // [sum(Ngp)] integration weights
}

// NewQuadrature computes the offset table and returns a new layout.
// jw must have length sum(ngp).
func NewQuadrature(ngp []int, jw []float64) (o *Quadrature, err error) {
	o = new(Quadrature)
	o.Ngp = make([]int, len(ngp))
	copy(o.Ngp, ngp)
	o.Ofs = make([]int, len(ngp)+1)
	for e := 0; e < len(ngp); e++ {
		o.Ofs[e+1] = o.Ofs[e] + ngp[e]
	}
	if len(jw) != o.Ofs[len(ngp)] {
		return nil, chk.Err("quadrature weights have size %d but the layout requires %d", len(jw), o.Ofs[len(ngp)])
	}
	o.Jw = make([]float64, len(jw))
	copy(o.Jw, jw)
	return
}

// Nelem returns the number of elements
func (o *Quadrature) Nelem() int { return len(o.Ngp) }

// W returns the integration weight of element e, integration point g
func (o *Quadrature) W(e, g int) float64 { return o.Jw[o.Ofs[e]+g] }
