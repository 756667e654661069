// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mhyper

import (
	"github.com/cpmech/gosl/chk"
)

// Binding adapts one Model to the identification interfaces: it answers
// stress queries per integration point and routes parameter vectors, in a
// fixed name order, into the model
type Binding struct {
	Mdl   Model    // bound model
	Names []string // parameter names, in vector order
}

// NewBinding binds a model and the ordered names of its free parameters
func NewBinding(mdl Model, names []string) (o *Binding, err error) {
	if len(names) < 1 {
		return nil, chk.Err("at least one parameter name must be bound")
	}
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			return nil, chk.Err("parameter %q is bound twice", name)
		}
		seen[name] = true
	}
	return &Binding{Mdl: mdl, Names: names}, nil
}

// ApplyParams writes one parameter vector into the model
func (o *Binding) ApplyParams(vals []float64) (err error) {
	if len(vals) != len(o.Names) {
		return chk.Err("parameter vector has %d values but %d names are bound", len(vals), len(o.Names))
	}
	for i, name := range o.Names {
		if err = o.Mdl.SetParam(name, vals[i]); err != nil {
			return
		}
	}
	return
}

// EvalCauchy computes the Cauchy stress at one integration point. The model
// is homogeneous so the element and point indices are ignored.
func (o *Binding) EvalCauchy(e, g int, F, sig [][]float64) error {
	return o.Mdl.Sig(sig, F)
}
