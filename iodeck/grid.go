// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/geom"
)

// PatchGrid is one block's raw structured node coordinates, node-centered
// (spec.md §4.1 builds cell geometry from these), as a multi-block PLOT3D
// file stores them: all blocks' dimensions first, then, block by block,
// that block's X, Y and Z arrays in Fortran (i-fastest) order.
type PatchGrid struct {
	Ni, Nj, Nk int
	X, Y, Z    []float64 // length Ni*Nj*Nk, i-fastest
}

// At returns the node position at (i,j,k).
func (g *PatchGrid) At(i, j, k int) geom.Vec3 {
	idx := i + g.Ni*(j+g.Nj*k)
	return geom.Vec3{X: g.X[idx], Y: g.Y[idx], Z: g.Z[idx]}
}

// ReadPlot3DMultiBlock reads an unformatted (no Fortran record markers)
// little-endian multi-block 3-D PLOT3D grid file, the format spec.md §6
// names for mesh input. gosl carries no PLOT3D reader, so this is the one
// place the ambient stack falls back to encoding/binary rather than an
// ecosystem library (DESIGN.md).
func ReadPlot3DMultiBlock(fnamepath string) ([]*PatchGrid, error) {
	f, err := os.Open(fnamepath)
	if err != nil {
		return nil, errs.NewIOError("iodeck: cannot open grid %q: %v", fnamepath, err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var nblocks int32
	if err := binary.Read(r, binary.LittleEndian, &nblocks); err != nil {
		return nil, errs.NewIOError("iodeck: %q: reading block count: %v", fnamepath, err)
	}

	dims := make([][3]int32, nblocks)
	for b := range dims {
		if err := binary.Read(r, binary.LittleEndian, &dims[b]); err != nil {
			return nil, errs.NewIOError("iodeck: %q: reading block %d dims: %v", fnamepath, b, err)
		}
	}

	grids := make([]*PatchGrid, nblocks)
	for b, d := range dims {
		ni, nj, nk := int(d[0]), int(d[1]), int(d[2])
		n := ni * nj * nk
		g := &PatchGrid{Ni: ni, Nj: nj, Nk: nk}
		for _, dst := range [3]*[]float64{&g.X, &g.Y, &g.Z} {
			buf := make([]float64, n)
			if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
				return nil, errs.NewIOError("iodeck: %q: reading block %d coordinates: %v", fnamepath, b, err)
			}
			*dst = buf
		}
		grids[b] = g
	}
	return grids, nil
}

// WritePlot3DMultiBlock writes grids back out in the same layout
// ReadPlot3DMultiBlock expects, used by tooling that regenerates a
// decomposed/recombined mesh (package decomp) for inspection.
func WritePlot3DMultiBlock(fnamepath string, grids []*PatchGrid) error {
	f, err := os.Create(fnamepath)
	if err != nil {
		return errs.NewIOError("iodeck: cannot create grid %q: %v", fnamepath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, int32(len(grids))); err != nil {
		return errs.NewIOError("iodeck: %q: writing block count: %v", fnamepath, err)
	}
	for _, g := range grids {
		dims := [3]int32{int32(g.Ni), int32(g.Nj), int32(g.Nk)}
		if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
			return errs.NewIOError("iodeck: %q: writing dims: %v", fnamepath, err)
		}
	}
	for _, g := range grids {
		for _, src := range [3][]float64{g.X, g.Y, g.Z} {
			if err := binary.Write(w, binary.LittleEndian, src); err != nil {
				return errs.NewIOError("iodeck: %q: writing coordinates: %v", fnamepath, err)
			}
		}
	}
	return w.Flush()
}
