// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

// cellCoord maps a (axis, axisIdx, t1, t2) surface-local coordinate onto
// the block's (i,j,k) interior-relative coordinate system. t1,t2 are the
// two tangential coordinates in the order (J,K), (I,K) or (I,J) for axis
// I, J, K respectively (the same order spec.md §3 lists the non-degenerate
// ranges in).
func cellCoord(axis bc.Axis, axisIdx, t1, t2 int) (i, j, k int) {
	switch axis {
	case bc.AxisI:
		return axisIdx, t1, t2
	case bc.AxisJ:
		return t1, axisIdx, t2
	default:
		return t1, t2, axisIdx
	}
}

func tangentialRange(s *bc.Surface, axis bc.Axis) (min1, max1, min2, max2 int) {
	switch axis {
	case bc.AxisI:
		return s.JMin, s.JMax, s.KMin, s.KMax
	case bc.AxisJ:
		return s.IMin, s.IMax, s.KMin, s.KMax
	default:
		return s.IMin, s.IMax, s.JMin, s.JMax
	}
}

func (b *ProcBlock) axisExtent(axis bc.Axis) int {
	switch axis {
	case bc.AxisI:
		return b.Ni
	case bc.AxisJ:
		return b.Nj
	}
	return b.Nk
}

// ApplyLocalBCs fills the ghost halo for every non-interblock, non-periodic
// surface in b.BCs, per spec.md §4.2/§4.6/invariant 5. Interblock and
// periodic ghosts are filled by package xchg instead.
func ApplyLocalBCs(b *ProcBlock, gas thermo.Gas, turbBC bc.TurbBoundary) error {
	for _, s := range b.BCs {
		if s.BCType == bc.Interblock || s.BCType == bc.Periodic {
			continue
		}
		axis := s.NormalAxis()
		n := b.axisExtent(axis)
		var low bool
		switch axis {
		case bc.AxisI:
			low = s.IMin == 0
		case bc.AxisJ:
			low = s.JMin == 0
		default:
			low = s.KMin == 0
		}
		min1, max1, min2, max2 := tangentialRange(s, axis)

		mirrorIdx := 0
		faceIdx := 0
		if !low {
			mirrorIdx = n - 1
			faceIdx = n
		}

		faceArr := b.FaceNormal[axisToDirIndex(axis)]
		for t1 := min1; t1 <= max1; t1++ {
			for t2 := min2; t2 <= max2; t2++ {
				mi, mj, mk := cellCoord(axis, mirrorIdx, t1, t2)
				fi, fj, fk := cellCoord(axis, faceIdx, t1, t2)

				areaVec := faceArr.At(fi, fj, fk)
				unit := areaVec.Unit()
				if low {
					// stored normals point toward increasing index
					// (invariant 3), i.e. already outward at the high face
					// but inward at the low face.
					unit = unit.Scale(-1)
				}

				pInterior := b.Prim.At(mi, mj, mk)
				wallDist := b.WallDist.At(mi, mj, mk)
				ghostVal := bc.GhostState(s, pInterior, unit, wallDist, gas, turbBC)

				for layer := 0; layer < b.G; layer++ {
					axisIdx := -(layer + 1)
					if !low {
						axisIdx = n + layer
					}
					gi, gj, gk := cellCoord(axis, axisIdx, t1, t2)
					b.Prim.SetAt(gi, gj, gk, ghostVal)
				}
			}
		}
	}
	return nil
}

func axisToDirIndex(axis bc.Axis) int {
	switch axis {
	case bc.AxisI:
		return 0
	case bc.AxisJ:
		return 1
	}
	return 2
}

// PackBoundaryLayer serializes the G interior cell layers facing surface s
// (the layers the neighboring block needs as its own ghost halo) into a
// flat buffer ordered (layer, t1, t2, primitive-component), for
// ParallelExchange (package xchg) to ship across an Interblock or Periodic
// patch (spec.md §4.9).
func (b *ProcBlock) PackBoundaryLayer(s *bc.Surface) []float64 {
	axis := s.NormalAxis()
	n := b.axisExtent(axis)
	low := axisDegenerateIndex(s, axis) == 0
	min1, max1, min2, max2 := tangentialRange(s, axis)
	n1, n2 := max1-min1+1, max2-min2+1
	nvars := b.Turb.NVars()

	buf := make([]float64, 0, b.G*n1*n2*nvars)
	for layer := 0; layer < b.G; layer++ {
		axisIdx := layer
		if !low {
			axisIdx = n - 1 - layer
		}
		for t1 := 0; t1 < n1; t1++ {
			for t2 := 0; t2 < n2; t2++ {
				i, j, k := cellCoord(axis, axisIdx, min1+t1, min2+t2)
				buf = append(buf, b.Prim.At(i, j, k).Array()...)
			}
		}
	}
	return buf
}

// UnpackGhostLayer deserializes a buffer packed by the partner block's
// PackBoundaryLayer (for the patch surface s) into this block's ghost
// halo, applying the inter-block orientation transform between the two
// surfaces' local tangential coordinate systems (spec.md §3/§4.9). The
// sender's own local extents are recovered from this surface's extents and
// orientation's swap bit, since point-matched patches always pair equal
// total cell counts, swapped when Orientation's axis-swap bit is set.
func (b *ProcBlock) UnpackGhostLayer(s *bc.Surface, buf []float64, orientation int) {
	axis := s.NormalAxis()
	n := b.axisExtent(axis)
	low := axisDegenerateIndex(s, axis) == 0
	min1, max1, min2, max2 := tangentialRange(s, axis)
	n1, n2 := max1-min1+1, max2-min2+1
	turb := b.Turb
	nvars := turb.NVars()

	swapped := (orientation-1)&4 != 0
	n1s, n2s := n1, n2
	if swapped {
		n1s, n2s = n2, n1
	}

	idx := 0
	for layer := 0; layer < b.G; layer++ {
		ghostAxisIdx := -(layer + 1)
		if !low {
			ghostAxisIdx = n + layer
		}
		for t1s := 0; t1s < n1s; t1s++ {
			for t2s := 0; t2s < n2s; t2s++ {
				t1r, t2r, _, _ := bc.ApplyOrientation(orientation, t1s, t2s, n1s, n2s)
				i, j, k := cellCoord(axis, ghostAxisIdx, min1+t1r, min2+t2r)
				var p state.Primitive
				p.FromArray(buf[idx:idx+nvars], turb)
				idx += nvars
				b.Prim.SetAt(i, j, k, p)
			}
		}
	}
}

func axisDegenerateIndex(s *bc.Surface, axis bc.Axis) int {
	switch axis {
	case bc.AxisI:
		return s.IMin
	case bc.AxisJ:
		return s.JMin
	}
	return s.KMin
}
