// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "github.com/cpmech/cflow/geom"

// NodeSource supplies the (Ni+1)x(Nj+1)x(Nk+1) structured grid-point
// coordinates a ProcBlock's interior is built from (iodeck.PatchGrid
// satisfies this directly, since its At has the same signature).
type NodeSource interface {
	At(i, j, k int) geom.Vec3
}

// BuildGeometry fills CellCenter, Volume, FaceNormal and FaceCentroid from a
// node-centered structured grid, per spec.md §3/§4.1. Cell centers are the
// mean of their 8 corner nodes; face area vectors come from the standard
// diagonal cross-product for a (possibly non-planar) quadrilateral, oriented
// along the axis's increasing-index direction (invariant 3); cell volume is
// the divergence-theorem sum 1/3 Σ_faces (centroid·outward normal), reusing
// the face data this function already computed.
func (b *ProcBlock) BuildGeometry(nodes NodeSource) {
	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				var sum geom.Vec3
				for _, c := range corners(i, j, k) {
					sum = sum.Add(nodes.At(c[0], c[1], c[2]))
				}
				b.CellCenter.SetAt(i, j, k, sum.Scale(1.0/8.0))
			}
		}
	}

	b.buildFaces(DirI, nodes)
	b.buildFaces(DirJ, nodes)
	b.buildFaces(DirK, nodes)

	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				vol := 0.0
				for _, f := range b.cellFaces(i, j, k) {
					vol += faceCentroidNear(b, i, j, k, f).Dot(f.area)
				}
				b.Volume.SetAt(i, j, k, vol/3.0)
			}
		}
	}
}

// faceCentroidNear returns the centroid of the face faceSample f represents,
// identified by which of the six neighbor slots it came from (cellFaces'
// fixed [iLow,iHigh,jLow,jHigh,kLow,kHigh] order); the face shared between
// (i,j,k) and its iLow/jLow/kLow neighbor is stored at this same cell's
// low-side index in FaceCentroid, the high-side ones at i+1/j+1/k+1.
func faceCentroidNear(b *ProcBlock, i, j, k int, f faceSample) geom.Vec3 {
	switch {
	case f.ni == i-1 && f.nj == j && f.nk == k:
		return b.FaceCentroid[0].At(i, j, k)
	case f.ni == i+1 && f.nj == j && f.nk == k:
		return b.FaceCentroid[0].At(i+1, j, k)
	case f.nj == j-1 && f.ni == i && f.nk == k:
		return b.FaceCentroid[1].At(i, j, k)
	case f.nj == j+1 && f.ni == i && f.nk == k:
		return b.FaceCentroid[1].At(i, j+1, k)
	case f.nk == k-1 && f.ni == i && f.nj == j:
		return b.FaceCentroid[2].At(i, j, k)
	default:
		return b.FaceCentroid[2].At(i, j, k+1)
	}
}

// corners returns the 8 grid-node indices bounding interior cell (i,j,k).
func corners(i, j, k int) [8][3]int {
	return [8][3]int{
		{i, j, k}, {i + 1, j, k}, {i + 1, j + 1, k}, {i, j + 1, k},
		{i, j, k + 1}, {i + 1, j, k + 1}, {i + 1, j + 1, k + 1}, {i, j + 1, k + 1},
	}
}

// faceCorners returns the four grid-node indices of face index f (in
// [0,N_axis]) along axis, at tangential cell indices (t1,t2).
func faceCorners(axis Dir, f, t1, t2 int) [4][3]int {
	switch axis {
	case DirI:
		return [4][3]int{{f, t1, t2}, {f, t1 + 1, t2}, {f, t1 + 1, t2 + 1}, {f, t1, t2 + 1}}
	case DirJ:
		return [4][3]int{{t1, f, t2}, {t1 + 1, f, t2}, {t1 + 1, f, t2 + 1}, {t1, f, t2 + 1}}
	default:
		return [4][3]int{{t1, t2, f}, {t1 + 1, t2, f}, {t1 + 1, t2 + 1, f}, {t1, t2 + 1, f}}
	}
}

// faceIndex maps (axis,f,t1,t2) to the 3-D index into the staggered
// FaceNormal[axis]/FaceCentroid[axis] array.
func faceIndex(axis Dir, f, t1, t2 int) [3]int {
	switch axis {
	case DirI:
		return [3]int{f, t1, t2}
	case DirJ:
		return [3]int{t1, f, t2}
	}
	return [3]int{t1, t2, f}
}

// axisNum maps a Dir to its position in the FaceNormal/FaceCentroid arrays.
func axisNum(axis Dir) int {
	switch axis {
	case DirI:
		return 0
	case DirJ:
		return 1
	}
	return 2
}

// buildFaces populates FaceNormal[axis]/FaceCentroid[axis] for every face
// along axis, orienting each area vector toward increasing index by
// comparing it against the vector between the neighboring cell centers on
// either side (extrapolating across the one missing side at a block face).
func (b *ProcBlock) buildFaces(axis Dir, nodes NodeSource) {
	n1, n2 := b.otherExtents(axis)
	nf := b.NFaces(axis)
	extent := b.axisExtent(axis)
	an := axisNum(axis)

	for f := 0; f < nf; f++ {
		for t1 := 0; t1 < n1; t1++ {
			for t2 := 0; t2 < n2; t2++ {
				c := faceCorners(axis, f, t1, t2)
				a := nodes.At(c[0][0], c[0][1], c[0][2])
				bb := nodes.At(c[1][0], c[1][1], c[1][2])
				cc := nodes.At(c[2][0], c[2][1], c[2][2])
				d := nodes.At(c[3][0], c[3][1], c[3][2])

				area := cc.Sub(a).Cross(d.Sub(bb)).Scale(0.5)
				centroid := a.Add(bb).Add(cc).Add(d).Scale(0.25)

				haveLeft, haveRight := f-1 >= 0, f < extent
				var leftC, rightC geom.Vec3
				if haveRight {
					ri := faceIndex(axis, f, t1, t2)
					rightC = b.CellCenter.At(ri[0], ri[1], ri[2])
				}
				if haveLeft {
					li := faceIndex(axis, f-1, t1, t2)
					leftC = b.CellCenter.At(li[0], li[1], li[2])
				}
				switch {
				case haveRight && !haveLeft:
					leftC = centroid.Scale(2).Sub(rightC)
				case haveLeft && !haveRight:
					rightC = centroid.Scale(2).Sub(leftC)
				}
				if area.Dot(rightC.Sub(leftC)) < 0 {
					area = area.Scale(-1)
				}

				idx := faceIndex(axis, f, t1, t2)
				b.FaceNormal[an].SetAt(idx[0], idx[1], idx[2], area)
				b.FaceCentroid[an].SetAt(idx[0], idx[1], idx[2], centroid)
			}
		}
	}
}
