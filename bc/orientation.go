// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import "github.com/cpmech/gosl/chk"

// Patch is a point-matched inter-block (or periodic) surface pairing, per
// spec.md §3. Orientation ∈ {1..8} encodes the eight rotation/flip
// compositions relating the local 2D (d1,d2) coordinate systems of the two
// surfaces: bit 2 (value 4) selects an axis swap, bit 1 (value 2) flips the
// first local axis, bit 0 (value 1) flips the second local axis, so
// Orientation-1 read as a 3-bit number is {swap,flip1,flip2}.
type Patch struct {
	BlockA, SurfA int
	BlockB, SurfB int
	Orientation   int // 1..8
	Periodic      bool
	Translation   [3]float64 // used only when Periodic
}

// orientationBits decodes Orientation (1..8) into its swap/flip1/flip2 bits.
func orientationBits(o int) (swap, flip1, flip2 bool) {
	if o < 1 || o > 8 {
		chk.Panic("bc: orientation index must be in {1..8}, got %d", o)
	}
	b := o - 1
	swap = b&4 != 0
	flip1 = b&2 != 0
	flip2 = b&1 != 0
	return
}

// orientationIndex encodes swap/flip1/flip2 back into an Orientation index.
func orientationIndex(swap, flip1, flip2 bool) int {
	b := 0
	if swap {
		b |= 4
	}
	if flip1 {
		b |= 2
	}
	if flip2 {
		b |= 1
	}
	return b + 1
}

// inverseTable[o-1] is the orientation that undoes o (see comment in
// ApplyOrientation: composing Apply(o,...) with Apply(InverseOrientation(o),...)
// is the identity on (i,j), for every extent (n1,n2); derived by exhaustive
// composition check over all 8x8 pairs).
var inverseTable = [8]int{1, 2, 3, 4, 5, 7, 6, 8}

// InverseOrientation returns the orientation index that undoes o.
func InverseOrientation(o int) int {
	if o < 1 || o > 8 {
		chk.Panic("bc: orientation index must be in {1..8}, got %d", o)
	}
	return inverseTable[o-1]
}

// ApplyOrientation maps local patch coordinates (i,j) on a surface of
// extents (n1,n2) to the partner surface's local coordinates, returning the
// partner extents (m1,m2) as well (they are swapped when the orientation
// swaps axes).
func ApplyOrientation(o, i, j, n1, n2 int) (i2, j2, m1, m2 int) {
	swap, flip1, flip2 := orientationBits(o)
	var i0, j0 int
	if swap {
		i0, j0, m1, m2 = j, i, n2, n1
	} else {
		i0, j0, m1, m2 = i, j, n1, n2
	}
	i2 = i0
	if flip1 {
		i2 = m1 - 1 - i0
	}
	j2 = j0
	if flip2 {
		j2 = m2 - 1 - j0
	}
	return
}
