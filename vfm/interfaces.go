// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vfm

// ShapeGradientProvider supplies element connectivity and the
// reference-configuration gradients of the shape functions
type ShapeGradientProvider interface {

	// ElemNodes returns the ordered node indices of element e
	ElemNodes(e int) []int

	// GradN returns the reference-configuration shape function gradients at
	// integration point g of element e; one [3] gradient per node, in the
	// same order as ElemNodes
	GradN(e, g int) [][]float64
}

// StressProvider evaluates the Cauchy stress for a given deformation
// gradient; the only seam to the host constitutive model. Implementations
// must be stateless per call and write a symmetric tensor into sig.
type StressProvider interface {
	EvalCauchy(e, g int, F, sig [][]float64) error
}

// ParamSink pushes a trial parameter vector into the backing store of the
// host constitutive model. Values arrive in the order of the identification
// parameter collection.
type ParamSink interface {
	ApplyParams(vals []float64) error
}

// SurfaceResolver maps a named surface onto the ordered node indices
// belonging to it; an unknown name yields an empty list
type SurfaceResolver interface {
	ResolveSurface(name string) []int
}
