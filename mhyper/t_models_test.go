// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mhyper

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

var eye = [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func Test_nh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nh01. neo-Hookean stress at reference and under stretch")

	mdl, err := New("neo-hookean")
	if err != nil {
		tst.Errorf("allocation failed:\n%v", err)
		return
	}
	err = mdl.Init([]*fun.Prm{
		&fun.Prm{N: "G", V: 2.0},
		&fun.Prm{N: "lam", V: 3.0},
	})
	if err != nil {
		tst.Errorf("initialisation failed:\n%v", err)
		return
	}

	// reference configuration is stress free
	σ := la.MatAlloc(3, 3)
	if err = mdl.Sig(σ, eye); err != nil {
		tst.Errorf("stress computation failed:\n%v", err)
		return
	}
	chk.Matrix(tst, "σ(I)", 1e-15, σ, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	// simple shear: F = I + γ e1⊗e2; J = 1, b = F.Fᵀ
	γ := 0.3
	F := [][]float64{{1, γ, 0}, {0, 1, 0}, {0, 0, 1}}
	if err = mdl.Sig(σ, F); err != nil {
		tst.Errorf("stress computation failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "σ01", 1e-15, σ[0][1], 2.0*γ)
	chk.Scalar(tst, "σ00", 1e-15, σ[0][0], 2.0*γ*γ)
	chk.Scalar(tst, "σ22", 1e-15, σ[2][2], 0)
}

func Test_nh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nh02. elastic constants from E and nu")

	mdl, err := New("neo-hookean")
	if err != nil {
		tst.Errorf("allocation failed:\n%v", err)
		return
	}
	err = mdl.Init([]*fun.Prm{
		&fun.Prm{N: "E", V: 2.6},
		&fun.Prm{N: "nu", V: 0.3},
	})
	if err != nil {
		tst.Errorf("initialisation failed:\n%v", err)
		return
	}
	nh := mdl.(*NeoHookean)
	chk.Scalar(tst, "G", 1e-15, nh.G, 1.0)
	chk.Scalar(tst, "lam", 1e-14, nh.Lam, 1.5)

	// E without nu is an error
	if err = mdl.Init([]*fun.Prm{&fun.Prm{N: "E", V: 2.6}}); err == nil {
		tst.Errorf("E without nu must be rejected")
	}

	// inverted elements are rejected
	σ := la.MatAlloc(3, 3)
	Fneg := [][]float64{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if err = mdl.Init([]*fun.Prm{&fun.Prm{N: "G", V: 1.0}}); err != nil {
		tst.Errorf("initialisation failed:\n%v", err)
		return
	}
	if err = mdl.Sig(σ, Fneg); err == nil {
		tst.Errorf("negative Jacobian must be rejected")
	}
}

func Test_mr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mr01. Mooney-Rivlin stress and thickness condition")

	mdl, err := New("mooney-rivlin")
	if err != nil {
		tst.Errorf("allocation failed:\n%v", err)
		return
	}
	err = mdl.Init([]*fun.Prm{
		&fun.Prm{N: "c1", V: 0.8},
		&fun.Prm{N: "c2", V: 0.2},
	})
	if err != nil {
		tst.Errorf("initialisation failed:\n%v", err)
		return
	}

	// reference configuration is stress free
	σ := la.MatAlloc(3, 3)
	if err = mdl.Sig(σ, eye); err != nil {
		tst.Errorf("stress computation failed:\n%v", err)
		return
	}
	chk.Matrix(tst, "σ(I)", 1e-15, σ, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})

	// the recovered pressure always cancels the normal stress
	F := [][]float64{{1.3, 0.1, 0}, {0.05, 0.9, 0.02}, {0, 0.01, 1.05}}
	if err = mdl.Sig(σ, F); err != nil {
		tst.Errorf("stress computation failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "σ22", 1e-14, σ[2][2], 0)
	chk.Scalar(tst, "symm01", 1e-14, σ[0][1], σ[1][0])
	chk.Scalar(tst, "symm02", 1e-14, σ[0][2], σ[2][0])

	// unknown parameters are rejected
	if err = mdl.SetParam("c3", 1.0); err == nil {
		tst.Errorf("unknown parameter must be rejected")
	}
}

func Test_bind01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bind01. parameter binding routes values by name")

	mdl, err := New("mooney-rivlin")
	if err != nil {
		tst.Errorf("allocation failed:\n%v", err)
		return
	}
	if err = mdl.Init(mdl.GetPrms()); err != nil {
		tst.Errorf("initialisation failed:\n%v", err)
		return
	}

	b, err := NewBinding(mdl, []string{"c2", "c1"})
	if err != nil {
		tst.Errorf("binding failed:\n%v", err)
		return
	}
	if err = b.ApplyParams([]float64{0.5, 3.0}); err != nil {
		tst.Errorf("application failed:\n%v", err)
		return
	}
	mr := mdl.(*MooneyRivlin)
	chk.Scalar(tst, "c1", 1e-15, mr.C1, 3.0)
	chk.Scalar(tst, "c2", 1e-15, mr.C2, 0.5)

	// wrong vector size
	if err = b.ApplyParams([]float64{1.0}); err == nil {
		tst.Errorf("wrong vector size must be rejected")
	}

	// duplicated names
	if _, err = NewBinding(mdl, []string{"c1", "c1"}); err == nil {
		tst.Errorf("duplicated names must be rejected")
	}

	// unknown model
	if _, err = New("ogden"); err == nil {
		tst.Errorf("unknown model must be rejected")
	}
}
