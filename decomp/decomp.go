// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package decomp implements the block-decomposition bookkeeping of spec.md
// §3/§4.7: the historical list of splits that turns an original mesh into a
// parallel workset, and the Recombine/SplitBlockNumber operations that undo
// it for I/O and BC resolution.
package decomp

import (
	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/gosl/chk"
)

// Split records one block split: the parent block id, the lower child id
// (which reuses the parent id, per spec.md §4.7), the upper child id
// (freshly appended), the split axis, and the split index — the number of
// interior cells, along Axis, kept by the lower child.
type Split struct {
	Parent     int
	LowerChild int
	UpperChild int
	Axis       bc.Axis
	Index      int
}

// Decomposition is the ordered split history from the original mesh to the
// current parallel workset (spec.md §3).
type Decomposition struct {
	Splits []Split
}

// Extent describes a block's interior cell-count; the bookkeeping unit
// Split/Recombine/SplitBlockNumber operate on. The full geometric fusion
// (arrays, BC lists) is performed by block.ProcBlock.Join, which uses this
// package for the index-space lineage.
type Extent struct {
	Ni, Nj, Nk int
}

func (e Extent) along(axis bc.Axis) int {
	switch axis {
	case bc.AxisI:
		return e.Ni
	case bc.AxisJ:
		return e.Nj
	}
	return e.Nk
}

func (e Extent) withAlong(axis bc.Axis, n int) Extent {
	switch axis {
	case bc.AxisI:
		e.Ni = n
	case bc.AxisJ:
		e.Nj = n
	default:
		e.Nk = n
	}
	return e
}

// Apply replays splits forward over original, producing the decomposed set
// of block extents keyed by block id.
func Apply(original map[int]Extent, splits []Split) map[int]Extent {
	cur := make(map[int]Extent, len(original))
	for id, e := range original {
		cur[id] = e
	}
	for _, s := range splits {
		parent, ok := cur[s.Parent]
		if !ok {
			chk.Panic("decomp.Apply: split references unknown parent block %d", s.Parent)
		}
		total := parent.along(s.Axis)
		if s.Index <= 0 || s.Index >= total {
			chk.Panic("decomp.Apply: split index %d out of range (0,%d) for block %d", s.Index, total, s.Parent)
		}
		lower := parent.withAlong(s.Axis, s.Index)
		upper := parent.withAlong(s.Axis, total-s.Index)
		delete(cur, s.Parent)
		cur[s.LowerChild] = lower
		cur[s.UpperChild] = upper
	}
	return cur
}

// Recombine replays splits in reverse order over the decomposed set,
// fusing lower+upper children back into their parent extent, producing the
// original mesh's block extents (spec.md §4.7, testable property 4).
func Recombine(parts map[int]Extent, splits []Split) map[int]Extent {
	cur := make(map[int]Extent, len(parts))
	for id, e := range parts {
		cur[id] = e
	}
	for i := len(splits) - 1; i >= 0; i-- {
		s := splits[i]
		lower, ok1 := cur[s.LowerChild]
		upper, ok2 := cur[s.UpperChild]
		if !ok1 || !ok2 {
			chk.Panic("decomp.Recombine: split %v references missing child block(s)", s)
		}
		merged := lower.withAlong(s.Axis, lower.along(s.Axis)+upper.along(s.Axis))
		delete(cur, s.UpperChild)
		if s.LowerChild != s.Parent {
			delete(cur, s.LowerChild)
		}
		cur[s.Parent] = merged
	}
	return cur
}

// SplitBlockNumber locates which split-block owns cell (i,j,k) — given in
// the coordinate system of the *recombined* rootBlock — by walking the
// split history in order and narrowing the (lower,upper) extents at each
// split whose parent matches the block reached so far (spec.md §4.7,
// testable property 5).
func SplitBlockNumber(splits []Split, rootBlock, i, j, k int) int {
	cur := rootBlock
	ci, cj, ck := i, j, k
	for _, s := range splits {
		if s.Parent != cur {
			continue
		}
		switch s.Axis {
		case bc.AxisI:
			if ci < s.Index {
				cur = s.LowerChild
			} else {
				ci -= s.Index
				cur = s.UpperChild
			}
		case bc.AxisJ:
			if cj < s.Index {
				cur = s.LowerChild
			} else {
				cj -= s.Index
				cur = s.UpperChild
			}
		default:
			if ck < s.Index {
				cur = s.LowerChild
			} else {
				ck -= s.Index
				cur = s.UpperChild
			}
		}
	}
	return cur
}
