// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"path/filepath"
	"testing"
)

func TestPlot3DRoundTrip(tst *testing.T) {
	ni, nj, nk := 3, 2, 2
	n := ni * nj * nk
	g := &PatchGrid{Ni: ni, Nj: nj, Nk: nk, X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
	for idx := 0; idx < n; idx++ {
		g.X[idx] = float64(idx)
		g.Y[idx] = float64(idx) * 2
		g.Z[idx] = float64(idx) * 3
	}

	fname := filepath.Join(tst.TempDir(), "grid.p3d")
	if err := WritePlot3DMultiBlock(fname, []*PatchGrid{g}); err != nil {
		tst.Fatalf("WritePlot3DMultiBlock: %v", err)
	}

	got, err := ReadPlot3DMultiBlock(fname)
	if err != nil {
		tst.Fatalf("ReadPlot3DMultiBlock: %v", err)
	}
	if len(got) != 1 {
		tst.Fatalf("got %d blocks, want 1", len(got))
	}
	gg := got[0]
	if gg.Ni != ni || gg.Nj != nj || gg.Nk != nk {
		tst.Fatalf("dims = (%d,%d,%d), want (%d,%d,%d)", gg.Ni, gg.Nj, gg.Nk, ni, nj, nk)
	}
	for idx := 0; idx < n; idx++ {
		if gg.X[idx] != g.X[idx] || gg.Y[idx] != g.Y[idx] || gg.Z[idx] != g.Z[idx] {
			tst.Fatalf("node %d: got (%v,%v,%v), want (%v,%v,%v)", idx, gg.X[idx], gg.Y[idx], gg.Z[idx], g.X[idx], g.Y[idx], g.Z[idx])
		}
	}

	p := gg.At(1, 1, 1)
	wantIdx := 1 + ni*(1+nj*1)
	if p.X != g.X[wantIdx] || p.Y != g.Y[wantIdx] || p.Z != g.Z[wantIdx] {
		tst.Errorf("At(1,1,1) = %v, want node %d", p, wantIdx)
	}
}
