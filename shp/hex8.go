// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// natural coordinates of hex8 vertices
var hex8natcoords = [][]float64{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// register shape
func init() {
	g := 1.0 / math.Sqrt(3.0)
	ips := make([]Ipoint, 8)
	for m, nc := range hex8natcoords {
		ips[m] = Ipoint{nc[0] * g, nc[1] * g, nc[2] * g, 1.0}
	}
	s := &Shape{Type: "hex8", Func: Hex8, Nverts: 8, VtkCode: 12, Ips: ips}
	s.alloc()
	factory["hex8"] = s
}

// Hex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Hex8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	for m, nc := range hex8natcoords {
		S[m] = (1.0 + r[0]*nc[0]) * (1.0 + r[1]*nc[1]) * (1.0 + r[2]*nc[2]) / 8.0
	}
	if !derivs {
		return
	}
	for m, nc := range hex8natcoords {
		dSdR[m][0] = nc[0] * (1.0 + r[1]*nc[1]) * (1.0 + r[2]*nc[2]) / 8.0
		dSdR[m][1] = nc[1] * (1.0 + r[0]*nc[0]) * (1.0 + r[2]*nc[2]) / 8.0
		dSdR[m][2] = nc[2] * (1.0 + r[0]*nc[0]) * (1.0 + r[1]*nc[1]) / 8.0
	}
}
