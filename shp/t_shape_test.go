// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// checkShape verifies the partition of unity and the derivatives of one
// registered shape at a set of natural coordinates
func checkShape(tst *testing.T, geoType string, rvals [][]float64, tolD float64) {
	o := Get(geoType)
	if o == nil {
		tst.Errorf("cannot get %q", geoType)
		return
	}
	S := make([]float64, o.Nverts)
	dSdR := la.MatAlloc(o.Nverts, 3)
	r := make([]float64, 3)
	for _, rv := range rvals {
		copy(r, rv)
		o.Func(S, dSdR, r, true)

		// partition of unity
		sum := 0.0
		for m := 0; m < o.Nverts; m++ {
			sum += S[m]
		}
		chk.Scalar(tst, io.Sf("%s: sum(S)", geoType), 1e-15, sum, 1.0)

		// derivatives against numerical differentiation
		for m := 0; m < o.Nverts; m++ {
			for j := 0; j < 3; j++ {
				mm, jj := m, j
				dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
					rtmp := []float64{r[0], r[1], r[2]}
					rtmp[jj] = x
					Stmp := make([]float64, o.Nverts)
					o.Func(Stmp, nil, rtmp, false)
					return Stmp[mm]
				}, r[j], 1e-3)
				chk.Scalar(tst, io.Sf("%s: dS%ddR%d", geoType, m, j), tolD, dSdR[m][j], dnum)
			}
		}
	}
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. hex8 functions and derivatives")

	checkShape(tst, "hex8", [][]float64{
		{0, 0, 0},
		{0.25, -0.6, 0.1},
		{-1, -1, -1},
		{1, 1, 1},
	}, 1e-9)
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. tet4 functions and derivatives")

	checkShape(tst, "tet4", [][]float64{
		{0.25, 0.25, 0.25},
		{0.1, 0.2, 0.3},
	}, 1e-10)
}

func Test_shape03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape03. integration weights recover element volumes")

	// unit cube from the bi-unit reference cube
	hex := Get("hex8")
	x := [][]float64{
		{0, 1, 1, 0, 0, 1, 1, 0},
		{0, 0, 1, 1, 0, 0, 1, 1},
		{0, 0, 0, 0, 1, 1, 1, 1},
	}
	vol := 0.0
	for _, ip := range hex.Ips {
		if err := hex.CalcAtIp(x, ip); err != nil {
			tst.Errorf("calculation failed:\n%v", err)
			return
		}
		vol += hex.J * ip[3]
	}
	chk.Scalar(tst, "hex8: volume", 1e-14, vol, 1.0)

	// gradients of an isoparametric map sum to zero
	g := make([]float64, 3)
	for m := 0; m < hex.Nverts; m++ {
		for j := 0; j < 3; j++ {
			g[j] += hex.G[m][j]
		}
	}
	chk.Vector(tst, "hex8: sum(G)", 1e-14, g, []float64{0, 0, 0})

	// unit tetrahedron
	tet := Get("tet4")
	xt := [][]float64{
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	vol = 0.0
	for _, ip := range tet.Ips {
		if err := tet.CalcAtIp(xt, ip); err != nil {
			tst.Errorf("calculation failed:\n%v", err)
			return
		}
		vol += tet.J * ip[3]
	}
	chk.Scalar(tst, "tet4: volume", 1e-15, vol, 1.0/6.0)
}

func Test_shape04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape04. degenerate cells are rejected")

	tet := Get("tet4")
	x := [][]float64{
		{0, 1, 0, 0.5},
		{0, 0, 1, 0.5},
		{0, 0, 0, 0.0}, // fourth vertex in the base plane
	}
	if err := tet.CalcAtIp(x, tet.Ips[0]); err == nil {
		tst.Errorf("flat cell must be rejected")
	}
}
