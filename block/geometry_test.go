// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"math"
	"testing"

	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
)

// unitGrid is a NodeSource over a structured grid of two axis-aligned unit
// cubes stacked along I, spanning x in [0,2], y in [0,1], z in [0,1].
type unitGrid struct{ ni, nj, nk int }

func (g unitGrid) At(i, j, k int) geom.Vec3 {
	return geom.Vec3{X: float64(i), Y: float64(j), Z: float64(k)}
}

func TestBuildGeometryUnitCubes(tst *testing.T) {
	b := New(0, 0, 2, 1, 1, 1, state.Laminar)
	g := unitGrid{ni: 2, nj: 1, nk: 1}
	b.BuildGeometry(g)

	for i := 0; i < 2; i++ {
		vol := b.Volume.At(i, 0, 0)
		if math.Abs(vol-1.0) > 1e-9 {
			tst.Errorf("cell %d volume = %v, want 1", i, vol)
		}
		cc := b.CellCenter.At(i, 0, 0)
		want := geom.Vec3{X: float64(i) + 0.5, Y: 0.5, Z: 0.5}
		if cc != want {
			tst.Errorf("cell %d center = %v, want %v", i, cc, want)
		}
	}

	// the shared interior I-face at x=1 must have unit area pointing +X
	// (invariant 3: normals point toward increasing index).
	mid := b.FaceNormal[0].At(1, 0, 0)
	if math.Abs(mid.X-1.0) > 1e-9 || math.Abs(mid.Y) > 1e-9 || math.Abs(mid.Z) > 1e-9 {
		tst.Errorf("interior I-face normal = %v, want (1,0,0)", mid)
	}

	// the two boundary I-faces (x=0, x=2) must also point +X.
	lo := b.FaceNormal[0].At(0, 0, 0)
	hi := b.FaceNormal[0].At(2, 0, 0)
	if math.Abs(lo.X-1.0) > 1e-9 {
		tst.Errorf("low I-face normal = %v, want (1,0,0)", lo)
	}
	if math.Abs(hi.X-1.0) > 1e-9 {
		tst.Errorf("high I-face normal = %v, want (1,0,0)", hi)
	}

	// J and K boundary faces must point +Y and +Z respectively, unit area.
	jFace := b.FaceNormal[1].At(0, 0, 0)
	if math.Abs(jFace.Y-1.0) > 1e-9 {
		tst.Errorf("low J-face normal = %v, want (0,1,0)", jFace)
	}
	kFace := b.FaceNormal[2].At(0, 0, 0)
	if math.Abs(kFace.Z-1.0) > 1e-9 {
		tst.Errorf("low K-face normal = %v, want (0,0,1)", kFace)
	}
}
