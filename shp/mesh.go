// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data
type Vert struct {
	Id int       // id
	C  []float64 // coordinates (size==3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Type  string // geometry type (string)
	Verts []int  // vertices

	// derived
	Shp *Shape // shape structure
}

// Mesh holds a three-dimensional mesh with named vertex sets
type Mesh struct {

	// from JSON
	Verts []*Vert          // vertices
	Cells []*Cell          // cells
	Vsets map[string][]int // named vertex sets; e.g. load surfaces

	// derived
	FnamePath string // complete filename path
}

// ReadMsh reads a mesh from a JSON file
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	o = new(Mesh)
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q", o.FnamePath)
	}

	// decode
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// check
	if err = o.Check(); err != nil {
		return nil, err
	}
	return
}

// Check validates vertices, cells and vertex sets and sets the derived data
func (o *Mesh) Check() (err error) {
	if len(o.Verts) < 4 {
		return chk.Err("mesh must have at least 4 vertices. %d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in vertices list. %d != %d", v.Id, i)
		}
		if len(v.C) != 3 {
			return chk.Err("vertex %d must have 3 coordinates. %d is invalid", v.Id, len(v.C))
		}
	}
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in cells list. %d != %d", c.Id, i)
		}
		c.Shp = Get(c.Type)
		if c.Shp == nil {
			return chk.Err("cell %d: cannot allocate shape structure with geoType == %q", c.Id, c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d: number of vertices %d is incorrect for %q. %d is expected", c.Id, len(c.Verts), c.Type, c.Shp.Nverts)
		}
		for _, n := range c.Verts {
			if n < 0 || n >= len(o.Verts) {
				return chk.Err("cell %d: vertex id %d is out of range", c.Id, n)
			}
		}
	}
	for name, nodes := range o.Vsets {
		if len(nodes) < 1 {
			return chk.Err("vertex set %q is empty", name)
		}
		for _, n := range nodes {
			if n < 0 || n >= len(o.Verts) {
				return chk.Err("vertex set %q: vertex id %d is out of range", name, n)
			}
		}
	}
	return
}
