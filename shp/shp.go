// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines and the reference
// gradient tables consumed by the identification kernel
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// Ipoint holds the natural coordinates and weight of one integration point {r, s, t, w}
type Ipoint []float64

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type    string   // name; e.g. "hex8"
	Func    ShpFunc  // shape/derivs function callback function
	Nverts  int      // number of vertices in cell
	VtkCode int      // VTK code
	Ips     []Ipoint // default integration points

	// scratchpad
	S    []float64   // [nverts] shape functions
	DSdR [][]float64 // [nverts][3] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [3][3] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [3][3] dRdx == inverse(dxdR)
	G    [][]float64 // [nverts][3] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdR
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: returns nil if geoType is not available
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s
}

// alloc allocates the scratchpad of a shape being registered
func (o *Shape) alloc() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, 3)
	o.DxdR = la.MatAlloc(3, 3)
	o.DRdx = la.MatAlloc(3, 3)
	o.G = la.MatAlloc(o.Nverts, 3)
}

// CalcAtIp calculates S, G and J at one integration point
//  Input:
//   x[3][nverts] -- coordinates matrix of solid element
//   ip           -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, true)

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
	if err != nil {
		return
	}
	if o.J < MINDET {
		return chk.Err("cannot compute shape gradients with J=%g", o.J)
	}

	// G == dSdx := dSdR * dRdx
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < 3; i++ {
			o.G[m][i] = 0.0
			for j := 0; j < 3; j++ {
				o.G[m][i] += o.DSdR[m][j] * o.DRdx[j][i]
			}
		}
	}
	return
}

// GetG returns a copy of the current gradient matrix
func (o *Shape) GetG() (g [][]float64) {
	g = utl.Alloc(o.Nverts, 3)
	for m := 0; m < o.Nverts; m++ {
		copy(g[m], o.G[m])
	}
	return
}
