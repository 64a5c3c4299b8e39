// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xchg

import (
	"testing"

	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/block"
	"github.com/cpmech/cflow/state"
)

// buildTwoBlockLinks makes two 2x2x1 laminar blocks joined along I, with a
// same-rank Interblock Link pair (one per direction) between A's high face
// and B's low face. J is given extent 2 so the tangential ranges on the
// I-normal surfaces are unambiguously non-degenerate (Surface.NormalAxis
// requires exactly one degenerate axis). FillGhosts only unpacks into a
// Link's Remote side, so both directions need their own Link.
func buildTwoBlockLinks() (a, b *block.ProcBlock, links []Link) {
	a = block.New(0, 0, 2, 2, 1, 1, state.Laminar)
	b = block.New(1, 0, 2, 2, 1, 1, state.Laminar)

	patch := &bc.Patch{BlockA: 0, SurfA: 1, BlockB: 1, SurfB: 2, Orientation: 1}
	surfA := &bc.Surface{BCType: bc.Interblock, IMin: 1, IMax: 1, JMin: 0, JMax: 1, KMin: 0, KMax: 0, Tag: 1, Patch: patch}
	surfB := &bc.Surface{BCType: bc.Interblock, IMin: 0, IMax: 0, JMin: 0, JMax: 1, KMin: 0, KMax: 0, Tag: 2, Patch: patch}
	a.BCs = bc.List{surfA}
	b.BCs = bc.List{surfB}

	links = []Link{
		{Local: a, Surface: surfA, Remote: b, RemoteSurf: surfB},
		{Local: b, Surface: surfB, Remote: a, RemoteSurf: surfA},
	}
	return
}

func TestFillGhostsSameRank(tst *testing.T) {
	a, b, links := buildTwoBlockLinks()

	a.Prim.SetAt(0, 0, 0, state.Primitive{Rho: 1})
	a.Prim.SetAt(1, 0, 0, state.Primitive{Rho: 2})
	b.Prim.SetAt(0, 0, 0, state.Primitive{Rho: 10})
	b.Prim.SetAt(1, 0, 0, state.Primitive{Rho: 20})

	x := &Exchange{}
	if err := x.FillGhosts(links); err != nil {
		tst.Fatalf("FillGhosts: %v", err)
	}

	if got := a.Prim.At(2, 0, 0).Rho; got != 10 {
		tst.Errorf("a's ghost beyond high face = %v, want 10 (b's first interior cell)", got)
	}
	if got := b.Prim.At(-1, 0, 0).Rho; got != 2 {
		tst.Errorf("b's ghost beyond low face = %v, want 2 (a's last interior cell)", got)
	}
}

// buildOrientedLinks makes two 2x3x3 laminar blocks joined along I with
// patch orientation o, square (3x3) tangential extents on both J and K so
// every one of the 8 orientations (swap, flip1, flip2 in any combination)
// produces a distinguishable index remap rather than degenerating to a
// no-op on a size-1 tangential axis.
func buildOrientedLinks(o int) (a, b *block.ProcBlock, links []Link) {
	a = block.New(0, 0, 2, 3, 3, 1, state.Laminar)
	b = block.New(1, 0, 2, 3, 3, 1, state.Laminar)

	patch := &bc.Patch{BlockA: 0, SurfA: 1, BlockB: 1, SurfB: 2, Orientation: o}
	surfA := &bc.Surface{BCType: bc.Interblock, IMin: 1, IMax: 1, JMin: 0, JMax: 2, KMin: 0, KMax: 2, Tag: 1, Patch: patch}
	surfB := &bc.Surface{BCType: bc.Interblock, IMin: 0, IMax: 0, JMin: 0, JMax: 2, KMin: 0, KMax: 2, Tag: 2, Patch: patch}
	a.BCs = bc.List{surfA}
	b.BCs = bc.List{surfB}

	links = []Link{
		{Local: a, Surface: surfA, Remote: b, RemoteSurf: surfB},
		{Local: b, Surface: surfB, Remote: a, RemoteSurf: surfA},
	}
	return
}

// TestFillGhostsAllOrientations exercises testable property #6/S4 (spec.md
// §8 S4: "2-block point-matched patch... for all 8 orientations") across
// every bc.Patch.Orientation value, not just Orientation 1.
//
// a's high-face interior layer is filled with a distinct Rho per (j,k) cell;
// after FillGhosts, b's corresponding ghost cell must hold the value at the
// (j,k) that bc.ApplyOrientation(o, ...) predicts for a's packed (t1,t2),
// and likewise in the other direction for b's low-face layer landing in a's
// ghost (using the patch's inverse orientation, since b is the B-side of
// the patch).
func TestFillGhostsAllOrientations(tst *testing.T) {
	const n1, n2 = 3, 3
	valueAt := func(j, k int) float64 { return float64(100 + 10*j + k) }

	for o := 1; o <= 8; o++ {
		a, b, links := buildOrientedLinks(o)

		for j := 0; j < n1; j++ {
			for k := 0; k < n2; k++ {
				a.Prim.SetAt(1, j, k, state.Primitive{Rho: valueAt(j, k)})
				b.Prim.SetAt(0, j, k, state.Primitive{Rho: valueAt(j, k) + 1000})
			}
		}

		x := &Exchange{}
		if err := x.FillGhosts(links); err != nil {
			tst.Fatalf("orientation %d: FillGhosts: %v", o, err)
		}

		for t1 := 0; t1 < n1; t1++ {
			for t2 := 0; t2 < n2; t2++ {
				j2, k2, _, _ := bc.ApplyOrientation(o, t1, t2, n1, n2)
				want := valueAt(t1, t2)
				if got := b.Prim.At(-1, j2, k2).Rho; got != want {
					tst.Errorf("orientation %d: b's ghost at (j=%d,k=%d) = %v, want %v (from a's (j=%d,k=%d))", o, j2, k2, got, want, t1, t2)
				}

				inv := bc.InverseOrientation(o)
				j2i, k2i, _, _ := bc.ApplyOrientation(inv, t1, t2, n1, n2)
				wantI := valueAt(t1, t2) + 1000
				if got := a.Prim.At(2, j2i, k2i).Rho; got != wantI {
					tst.Errorf("orientation %d (inverse %d): a's ghost at (j=%d,k=%d) = %v, want %v (from b's (j=%d,k=%d))", o, inv, j2i, k2i, got, wantI, t1, t2)
				}
			}
		}
	}
}

func TestReduceFallbackWithoutCommunicator(tst *testing.T) {
	x := &Exchange{}
	if got := x.ReduceSum(3.5); got != 3.5 {
		tst.Errorf("ReduceSum fallback = %v, want 3.5", got)
	}
	if got := x.ReduceMin(2.0); got != 2.0 {
		tst.Errorf("ReduceMin fallback = %v, want 2.0", got)
	}
	if got := x.ReduceMax(7.0); got != 7.0 {
		tst.Errorf("ReduceMax fallback = %v, want 7.0", got)
	}
}
