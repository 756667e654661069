// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Provider precomputes, for every cell of a mesh, the gradients of the shape
// functions with respect to the reference configuration at each integration
// point, together with the integration weights scaled by the reference
// Jacobian determinant. The tables are immutable after construction.
type Provider struct {
	msh   *Mesh
	grads [][][][]float64 // [ncells][ngp][nverts][3] reference gradients
	ngp   []int           // [ncells] number of integration points
	jw    []float64       // flattened det(J)*w per integration point
}

// NewProvider builds the gradient tables for all cells of a mesh
func NewProvider(msh *Mesh) (o *Provider, err error) {
	o = &Provider{msh: msh}
	o.grads = make([][][][]float64, len(msh.Cells))
	o.ngp = make([]int, len(msh.Cells))
	for i, c := range msh.Cells {

		// coordinates matrix
		x := la.MatAlloc(3, c.Shp.Nverts)
		for m, n := range c.Verts {
			for j := 0; j < 3; j++ {
				x[j][m] = msh.Verts[n].C[j]
			}
		}

		// gradients and weights at integration points
		o.ngp[i] = len(c.Shp.Ips)
		o.grads[i] = make([][][]float64, len(c.Shp.Ips))
		for g, ip := range c.Shp.Ips {
			if err = c.Shp.CalcAtIp(x, ip); err != nil {
				return nil, chk.Err("cell %d is distorted at integration point %d:\n%v", c.Id, g, err)
			}
			o.grads[i][g] = c.Shp.GetG()
			o.jw = append(o.jw, c.Shp.J*ip[3])
		}
	}
	return
}

// Nnod returns the number of mesh vertices
func (o *Provider) Nnod() int { return len(o.msh.Verts) }

// Ngp returns the number of integration points per cell
func (o *Provider) Ngp() []int { return o.ngp }

// Jw returns the flattened integration weights, det(J)*w per point
func (o *Provider) Jw() []float64 { return o.jw }

// ElemNodes returns the vertex ids of one cell
func (o *Provider) ElemNodes(e int) []int { return o.msh.Cells[e].Verts }

// GradN returns the reference shape gradients at one integration point
func (o *Provider) GradN(e, g int) [][]float64 { return o.grads[e][g] }

// ResolveSurface maps a named vertex set to its node ids
//  Note: returns nil if the name is unknown
func (o *Provider) ResolveSurface(name string) []int { return o.msh.Vsets[name] }
