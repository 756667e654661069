// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements functions to write identification results
package out

import (
	"bytes"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/govfm/vfm"
)

// TxtName appends the ".txt" extension to a filename key, unless already present
func TxtName(fnkey string) string {
	if strings.HasSuffix(fnkey, ".txt") {
		return fnkey
	}
	return fnkey + ".txt"
}

// WriteVwTable writes the virtual work balance table: one row per load time,
// one internal and one external work column per virtual field
func WriteVwTable(dirout, fnkey string, res *vfm.Results) {
	buf := new(bytes.Buffer)
	io.Ff(buf, "%23s", "time")
	for _, id := range res.VfIds {
		io.Ff(buf, "%23s%23s", "iw:"+id, "ew:"+id)
	}
	io.Ff(buf, "\n")
	for t, time := range res.Times {
		io.Ff(buf, "%23.15e", time)
		for v := range res.VfIds {
			io.Ff(buf, "%23.15e%23.15e", res.IW[v][t], res.EW[v][t])
		}
		io.Ff(buf, "\n")
	}
	io.WriteFileVD(dirout, TxtName(fnkey), buf)
}

// PrintParams prints the identified parameters table
func PrintParams(res *vfm.Results) {
	io.Pf("%12s%14s%14s%14s%14s\n", "name", "initial", "final", "min", "max")
	for _, p := range res.Params {
		io.Pf("%12s%14g%14g%14g%14g\n", p.Name, p.Init, p.Val, p.Min, p.Max)
	}
	io.Pf("\nsolver: %v  it=%d  nfev=%d  cost: %g => %g\n",
		res.Report.Reason, res.Report.It, res.Report.Nfev, res.Report.InitCost, res.Report.FinalCost)
}
