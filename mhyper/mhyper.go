// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mhyper implements hyperelastic constitutive models computing the
// Cauchy stress directly from the deformation gradient
package mhyper

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Model defines the interface for hyperelastic models
type Model interface {
	Init(prms fun.Prms) error              // initialises model
	GetPrms() fun.Prms                     // gets (an example) of parameters
	Sig(σ, F [][]float64) error            // computes Cauchy stress for given F
	SetParam(name string, v float64) error // sets one named parameter
}

// New returns new hyperelastic model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'mhyper' database", name)
	}
	return allocator(), nil
}

// allocators holds all available hyperelastic models; modelname => allocator
var allocators = map[string]func() Model{}
