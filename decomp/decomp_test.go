// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decomp

import (
	"reflect"
	"testing"

	"github.com/cpmech/cflow/bc"
)

func TestApplyThenRecombineRoundTrips(tst *testing.T) {
	original := map[int]Extent{0: {Ni: 10, Nj: 4, Nk: 4}}
	splits := []Split{
		{Parent: 0, LowerChild: 0, UpperChild: 1, Axis: bc.AxisI, Index: 6},
		{Parent: 1, LowerChild: 1, UpperChild: 2, Axis: bc.AxisJ, Index: 2},
	}

	parts := Apply(original, splits)
	if len(parts) != 3 {
		tst.Fatalf("got %d parts, want 3", len(parts))
	}
	if parts[0] != (Extent{Ni: 6, Nj: 4, Nk: 4}) {
		tst.Errorf("block 0 = %+v, want {6,4,4}", parts[0])
	}
	if parts[1] != (Extent{Ni: 4, Nj: 2, Nk: 4}) {
		tst.Errorf("block 1 = %+v, want {4,2,4}", parts[1])
	}
	if parts[2] != (Extent{Ni: 4, Nj: 2, Nk: 4}) {
		tst.Errorf("block 2 = %+v, want {4,2,4}", parts[2])
	}

	recombined := Recombine(parts, splits)
	if !reflect.DeepEqual(recombined, original) {
		tst.Errorf("Recombine(Apply(original)) = %+v, want %+v", recombined, original)
	}
}

func TestSplitBlockNumberLocatesOwningChild(tst *testing.T) {
	splits := []Split{
		{Parent: 0, LowerChild: 0, UpperChild: 1, Axis: bc.AxisI, Index: 6},
		{Parent: 1, LowerChild: 1, UpperChild: 2, Axis: bc.AxisJ, Index: 2},
	}

	cases := []struct {
		i, j, k int
		wantID  int
	}{
		{0, 0, 0, 0}, // inside the first I-split's lower half
		{5, 3, 0, 0}, // still i<6, regardless of j
		{6, 0, 0, 1}, // i>=6 puts it in the upper I-child, then j<2 keeps it at 1
		{6, 1, 0, 1},
		{6, 2, 0, 2}, // i>=6 and j>=2 lands in block 2
		{9, 3, 3, 2},
	}
	for _, c := range cases {
		got := SplitBlockNumber(splits, 0, c.i, c.j, c.k)
		if got != c.wantID {
			tst.Errorf("SplitBlockNumber(0,%d,%d,%d) = %d, want %d", c.i, c.j, c.k, got, c.wantID)
		}
	}
}

func TestRecombineSharedParentLowerChildID(tst *testing.T) {
	// Per spec.md §4.7, LowerChild reuses the parent's id; Recombine must not
	// delete the merged block's own entry when LowerChild==Parent.
	parts := map[int]Extent{0: {Ni: 6, Nj: 4, Nk: 4}, 1: {Ni: 4, Nj: 4, Nk: 4}}
	splits := []Split{{Parent: 0, LowerChild: 0, UpperChild: 1, Axis: bc.AxisI, Index: 6}}
	got := Recombine(parts, splits)
	want := map[int]Extent{0: {Ni: 10, Nj: 4, Nk: 4}}
	if !reflect.DeepEqual(got, want) {
		tst.Errorf("Recombine = %+v, want %+v", got, want)
	}
}
