// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/govfm/shp"
	"github.com/cpmech/govfm/vfm"
)

// cellTensor writes one cell-averaged 9-component tensor data array
func cellTensor(dat *bytes.Buffer, name string, ts *vfm.TensorSeries, t int) {
	io.Ff(dat, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"9\" format=\"ascii\">\n", name)
	for e := 0; e < ts.Nelem(); e++ {
		ave := make([]float64, 9)
		for g := 0; g < ts.Ngp(e); g++ {
			a := ts.At(t, e, g)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					ave[3*i+j] += a[i][j]
				}
			}
		}
		for k := 0; k < 9; k++ {
			io.Ff(dat, "%23.15e ", ave[k]/float64(ts.Ngp(e)))
		}
	}
	io.Ff(dat, "\n</DataArray>\n")
}

// WriteVtu writes a VTK unstructured grid file with the mesh, the measured
// displacements of frame t and the cell-averaged final deformation
// gradients and Cauchy stresses
func WriteVtu(dirout, fnkey string, msh *shp.Mesh, meas *vfm.NodalSeries, res *vfm.Results, t int) {

	// buffers
	geo := new(bytes.Buffer)
	dat := new(bytes.Buffer)

	// coordinates
	io.Ff(geo, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		io.Ff(geo, "%23.15e %23.15e %23.15e ", v.C[0], v.C[1], v.C[2])
	}
	io.Ff(geo, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(geo, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		for _, n := range c.Verts {
			io.Ff(geo, "%d ", n)
		}
	}

	// offsets
	io.Ff(geo, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, c := range msh.Cells {
		offset += len(c.Verts)
		io.Ff(geo, "%d ", offset)
	}

	// types
	io.Ff(geo, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		io.Ff(geo, "%d ", c.Shp.VtkCode)
	}
	io.Ff(geo, "\n</DataArray>\n</Cells>\n")

	// points data: measured displacements
	io.Ff(dat, "<PointData Vectors=\"TheVectors\">\n")
	io.Ff(dat, "<DataArray type=\"Float64\" Name=\"u\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for n := 0; n < meas.Nnod(); n++ {
		u := meas.At(t, n)
		io.Ff(dat, "%23.15e %23.15e %23.15e ", u[0], u[1], u[2])
	}
	io.Ff(dat, "\n</DataArray>\n</PointData>\n")

	// cells data: averaged Cauchy stresses and deformation gradients
	io.Ff(dat, "<CellData Scalars=\"TheScalars\">\n")
	cellTensor(dat, "sig", res.Stress.Sig, t)
	cellTensor(dat, "F", res.Def, t)
	io.Ff(dat, "\n</CellData>\n")

	// write vtu file
	nv := len(msh.Verts)
	nc := len(msh.Cells)
	var hdr, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, nc)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
	io.WriteFileVD(dirout, fnkey+".vtu", &hdr, geo, dat, &foo)
}
