// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// buildIw assembles the internal work of the affine fixture: one tet element,
// measured field u = Am x, one constant virtual field u* = Av x
func buildIw(Am, Av [][]float64, jw float64, k float64) (iw *InternalWork, W [][]float64, err error) {

	meas := NewNodalSeries(4)
	affineFrame(meas.AddFrame(1.0), Am)

	vfs := NewVirtualFields(4)
	vf := vfs.Add("vf", true)
	affineFrame(vf.U.AddFrame(0), Av)

	quad, err := NewQuadrature([]int{1}, []float64{jw})
	if err != nil {
		return
	}
	def := NewTensorSeries([]int{1})
	vdef := []*TensorSeries{NewTensorSeries([]int{1})}
	kin := NewKinematics(false, true)
	if err = kin.Measured(tetGrid{}, quad, meas, def); err != nil {
		return
	}
	if err = kin.Virtuals(tetGrid{}, quad, vfs, vdef); err != nil {
		return
	}

	mat := &linMat{}
	iw = &InternalWork{
		Quad:   quad,
		Def:    def,
		Vdef:   vdef,
		Vfs:    vfs,
		Stress: NewStressSeries([]int{1}),
		Sink:   mat,
		Eval:   NewStressEval(mat),
	}
	W = AllocWork(1, 1)
	err = iw.Assemble([]float64{k}, W)
	return
}

func Test_work01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("work01. undeformed body does no internal work")

	zero := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	Av := [][]float64{{0.1, 0, 0}, {0, 0.2, 0}, {0, 0, 0.3}}
	_, W, err := buildIw(zero, Av, 1.0/6.0, 50.0)
	if err != nil {
		tst.Errorf("assembly failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "IW", 1e-15, W[0][0], 0)
}

func Test_work02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("work02. internal work is linear in the weights and in k")

	Am := [][]float64{{0.10, 0.00, 0.00}, {0.00, -0.05, 0.00}, {0.00, 0.00, 0.02}}
	Av := [][]float64{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}}

	_, W1, err := buildIw(Am, Av, 1.0/6.0, 10.0)
	if err != nil {
		tst.Errorf("assembly failed:\n%v", err)
		return
	}
	_, W2, err := buildIw(Am, Av, 2.0/6.0, 10.0)
	if err != nil {
		tst.Errorf("assembly failed:\n%v", err)
		return
	}
	_, W3, err := buildIw(Am, Av, 1.0/6.0, 20.0)
	if err != nil {
		tst.Errorf("assembly failed:\n%v", err)
		return
	}
	if W1[0][0] == 0 {
		tst.Errorf("fixture must produce nonzero internal work")
		return
	}
	chk.Scalar(tst, "2w", 1e-14, W2[0][0], 2.0*W1[0][0])
	chk.Scalar(tst, "2k", 1e-14, W3[0][0], 2.0*W1[0][0])
}

func Test_work03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("work03. external work samples the first resolved node")

	// unit virtual displacement along x at node 2
	vfs := NewVirtualFields(4)
	vf := vfs.Add("vf", true)
	u := vf.U.AddFrame(0)
	u[2][0] = 1.0

	loads := new(LoadSeries)
	loads.AddFrame(1.0)
	loads.Set(0, "grip", []float64{2.0, 0, 0})

	ew := &ExternalWork{Loads: loads, Vfs: vfs, Res: setResolver{"grip": {2, 3}}}
	W := AllocWork(1, 1)
	err := ew.Assemble(W)
	if err != nil {
		tst.Errorf("assembly failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "EW", 1e-15, W[0][0], 2.0)

	// unknown surface is an error
	loads.Set(0, "ghost", []float64{1, 0, 0})
	ew = &ExternalWork{Loads: loads, Vfs: vfs, Res: setResolver{"grip": {2, 3}}}
	if err = ew.Assemble(W); err == nil {
		tst.Errorf("unresolvable surface must be rejected")
	}
}

func Test_work04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("work04. time alignment policy of virtual fields")

	loads := new(LoadSeries)
	loads.AddFrame(0.0)
	loads.AddFrame(1.0)
	loads.AddFrame(2.0)
	loads.Set(0, "grip", []float64{1, 0, 0})
	loads.Set(1, "grip", []float64{2, 0, 0})
	loads.Set(2, "grip", []float64{3, 0, 0})
	res := setResolver{"grip": {0}}

	// a single unflagged frame is ambiguous
	vfs := NewVirtualFields(4)
	vf := vfs.Add("vf", false)
	u := vf.U.AddFrame(0)
	u[0][0] = 1.0
	ew := &ExternalWork{Loads: loads, Vfs: vfs, Res: res}
	W := AllocWork(1, 3)
	if err := ew.Assemble(W); err == nil {
		tst.Errorf("single unflagged frame must be rejected")
		return
	}

	// two frames can never align with three load times
	vfs = NewVirtualFields(4)
	vf = vfs.Add("vf", false)
	vf.U.AddFrame(0)
	vf.U.AddFrame(1)
	ew = &ExternalWork{Loads: loads, Vfs: vfs, Res: res}
	if err := ew.Assemble(W); err == nil {
		tst.Errorf("ambiguous alignment must be rejected")
		return
	}

	// the constant flag broadcasts one frame over all load times
	vfs = NewVirtualFields(4)
	vf = vfs.Add("vf", true)
	u = vf.U.AddFrame(0)
	u[0][0] = 1.0
	ew = &ExternalWork{Loads: loads, Vfs: vfs, Res: res}
	if err := ew.Assemble(W); err != nil {
		tst.Errorf("assembly failed:\n%v", err)
		return
	}
	chk.Vector(tst, "EW", 1e-15, W[0], []float64{1, 2, 3})
}
