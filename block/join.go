// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/cpmech/cflow/array"
	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/gosl/chk"
)

// splitCopy fills dst's interior from lower and upper, split along axis at
// lowerExtent: indices below the split come from lower, at-or-above from
// upper (offset back by lowerExtent). inclusive controls whether the split
// boundary value itself (axisIdx==lowerExtent) is attributed to upper
// (false, the plain cell-count convention) or still belongs to lower's last
// face (true, used for the face array staggered along axis itself, whose
// extent is lowerExtent+1 within the lower sub-block).
//
// Ghost cells are left at their zero value: the first FillGhosts/
// ApplyLocalBCs pass after a Join always repopulates them, so Join does not
// need to reconstruct halo data that is about to be overwritten anyway.
func splitCopy[T any](dst, lower, upper *array.MultiArray3D[T], axis Dir, lowerExtent int, inclusive bool) {
	dni, dnj, dnk, _ := dst.Dims()
	for k := 0; k < dnk; k++ {
		for j := 0; j < dnj; j++ {
			for i := 0; i < dni; i++ {
				var axisIdx int
				switch axis {
				case DirI:
					axisIdx = i
				case DirJ:
					axisIdx = j
				default:
					axisIdx = k
				}
				useLower := axisIdx < lowerExtent
				if inclusive {
					useLower = axisIdx <= lowerExtent
				}
				if useLower {
					dst.SetAt(i, j, k, lower.At(i, j, k))
					continue
				}
				oi, oj, ok := i, j, k
				switch axis {
				case DirI:
					oi = i - lowerExtent
				case DirJ:
					oj = j - lowerExtent
				default:
					ok = k - lowerExtent
				}
				dst.SetAt(i, j, k, upper.At(oi, oj, ok))
			}
		}
	}
}

func shiftSurface(s *bc.Surface, axis bc.Axis, delta int) *bc.Surface {
	ns := *s
	switch axis {
	case bc.AxisI:
		ns.IMin += delta
		ns.IMax += delta
	case bc.AxisJ:
		ns.JMin += delta
		ns.JMax += delta
	default:
		ns.KMin += delta
		ns.KMax += delta
	}
	return &ns
}

// joinBCs fuses lower's and upper's surface lists into the combined
// block's, dropping the pair of Interblock/local surfaces that used to face
// each other across the join (now interior), and re-indexing every surface
// that came from upper along axis by lowerExtent. Provenance (the SplitIDs
// of the originating split children) is preserved on every kept surface,
// resolving spec.md §9 open question (a): I/O can still attribute BCs
// correctly to their pre-split origin after Recombine.
func joinBCs(lower, upper *ProcBlock, axis Dir, lowerExtent, upperExtent int) bc.List {
	var out bc.List
	for _, s := range lower.BCs {
		if s.NormalAxis() == axis && axisDegenerateIndex(s, axis) != 0 {
			continue // lower's high-side face was the join interface
		}
		ns := *s
		if len(ns.Provenance) == 0 {
			ns.Provenance = []int{lower.SplitID}
		}
		out = append(out, &ns)
	}
	for _, s := range upper.BCs {
		if s.NormalAxis() == axis && axisDegenerateIndex(s, axis) != upperExtent-1 {
			continue // upper's low-side face was the join interface
		}
		ns := shiftSurface(s, axis, lowerExtent)
		if len(ns.Provenance) == 0 {
			ns.Provenance = []int{upper.SplitID}
		}
		out = append(out, ns)
	}
	return out
}

// Join fuses lower and upper, adjacent along axis (lower holding the
// smaller-index side), into a single ProcBlock with the combined extent —
// the geometric/state counterpart to decomp.Recombine's index-space
// bookkeeping (spec.md §4.7).
func Join(lower, upper *ProcBlock, axis Dir, newID int) (*ProcBlock, error) {
	if lower.G != upper.G || lower.Turb != upper.Turb {
		return nil, chk.Err("block.Join: incompatible ghost width or turbulence arity between blocks %d and %d", lower.ID, upper.ID)
	}
	switch axis {
	case DirI:
		if lower.Nj != upper.Nj || lower.Nk != upper.Nk {
			return nil, chk.Err("block.Join: cross-section mismatch joining along I")
		}
	case DirJ:
		if lower.Ni != upper.Ni || lower.Nk != upper.Nk {
			return nil, chk.Err("block.Join: cross-section mismatch joining along J")
		}
	default:
		if lower.Ni != upper.Ni || lower.Nj != upper.Nj {
			return nil, chk.Err("block.Join: cross-section mismatch joining along K")
		}
	}

	lowerExtent := lower.axisExtent(axis)
	upperExtent := upper.axisExtent(axis)
	ni, nj, nk := lower.Ni, lower.Nj, lower.Nk
	switch axis {
	case DirI:
		ni = lowerExtent + upperExtent
	case DirJ:
		nj = lowerExtent + upperExtent
	default:
		nk = lowerExtent + upperExtent
	}

	out := New(newID, lower.Rank, ni, nj, nk, lower.G, lower.Turb)

	splitCopy(out.CellCenter, lower.CellCenter, upper.CellCenter, axis, lowerExtent, false)
	splitCopy(out.Volume, lower.Volume, upper.Volume, axis, lowerExtent, false)
	splitCopy(out.Prim, lower.Prim, upper.Prim, axis, lowerExtent, false)
	splitCopy(out.Cons, lower.Cons, upper.Cons, axis, lowerExtent, false)
	splitCopy(out.WallDist, lower.WallDist, upper.WallDist, axis, lowerExtent, false)

	for d, dAxis := range [3]bc.Axis{bc.AxisI, bc.AxisJ, bc.AxisK} {
		inclusive := dAxis == axis
		splitCopy(out.FaceNormal[d], lower.FaceNormal[d], upper.FaceNormal[d], axis, lowerExtent, inclusive)
		splitCopy(out.FaceCentroid[d], lower.FaceCentroid[d], upper.FaceCentroid[d], axis, lowerExtent, inclusive)
	}

	out.BCs = joinBCs(lower, upper, axis, lowerExtent, upperExtent)
	out.GlobalPos = lower.GlobalPos
	return out, nil
}
