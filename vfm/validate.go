// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// TIMETOL is the tolerance used when comparing time stamps across series
const TIMETOL = 1e-12

// Validate cross-checks that the measured, virtual, and load series agree on
// node coverage and time stamps before any numerical work starts. All
// problems found are reported at once.
func Validate(nnod int, meas *NodalSeries, vfs *VirtualFields, loads *LoadSeries, res SurfaceResolver) (err error) {

	// node coverage
	if meas.Nnod() != nnod {
		return chk.Err("measured displacement fields carry %d nodes but the mesh has %d", meas.Nnod(), nnod)
	}
	for v := 0; v < vfs.Nvf(); v++ {
		vf := vfs.Field(v)
		if vf.U.Nnod() != nnod {
			return chk.Err("virtual field %q carries %d nodes but the mesh has %d", vf.Id, vf.U.Nnod(), nnod)
		}
	}

	// frame counts
	if meas.Nt() == 0 {
		return chk.Err("measured displacement history is empty")
	}
	if loads.Nt() == 0 {
		return chk.Err("measured load history is empty")
	}
	if meas.Nt() != loads.Nt() {
		return chk.Err("measured displacements have %d frames but loads have %d", meas.Nt(), loads.Nt())
	}

	// time stamps must match pairwise
	for t := 0; t < loads.Nt(); t++ {
		if math.Abs(meas.Time(t)-loads.Time(t)) > TIMETOL {
			return chk.Err("time stamp mismatch at frame %d: measured t = %g, load t = %g", t, meas.Time(t), loads.Time(t))
		}
	}

	// virtual field time alignment policy
	if vfs.Nvf() == 0 {
		return chk.Err("no virtual fields given")
	}
	for v := 0; v < vfs.Nvf(); v++ {
		vf := vfs.Field(v)
		if vf.U.Nt() == 0 {
			return chk.Err("virtual field %q has no time frames", vf.Id)
		}
		for t := 0; t < loads.Nt(); t++ {
			if _, err = vf.FrameIndex(t, loads.Nt()); err != nil {
				return
			}
		}
	}

	// every surface named by the loads must resolve to at least one node
	for _, name := range loads.Surfaces() {
		nodes := res.ResolveSurface(name)
		if len(nodes) == 0 {
			return chk.Err("surface %q named by the load data has no geometric definition", name)
		}
		for _, n := range nodes {
			if n < 0 || n >= nnod {
				return chk.Err("surface %q resolves to node %d outside the mesh (size %d)", name, n, nnod)
			}
		}
	}
	return
}

// CheckParameters validates the invariants of a parameter collection:
// lower <= upper and scale != 0 for every entry
func CheckParameters(params []*Parameter) (err error) {
	if len(params) == 0 {
		return chk.Err("no parameters to identify")
	}
	for _, p := range params {
		if p.Min > p.Max {
			return chk.Err("parameter %q has lower bound %g greater than upper bound %g", p.Name, p.Min, p.Max)
		}
		if p.Scale == 0 {
			return chk.Err("parameter %q has zero scale factor", p.Name)
		}
		if p.Val < p.Min || p.Val > p.Max {
			return chk.Err("parameter %q starts at %g, outside [%g, %g]", p.Name, p.Val, p.Min, p.Max)
		}
	}
	return
}
