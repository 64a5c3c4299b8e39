// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"testing"

	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/state"
)

// buildJoinHalves returns two 2x2x2 blocks meant to be joined along I: J and
// K are both given extent 2 so their I-normal surfaces have an unambiguous
// tangential range (bc.Surface.NormalAxis requires exactly one degenerate
// axis). lower's high-I face and upper's low-I face are the (dropped)
// Interblock join faces; lower's low-I and upper's high-I are the (kept,
// re-indexed) outer SlipWall faces.
func buildJoinHalves() (lower, upper *ProcBlock) {
	lower = New(0, 0, 2, 2, 2, 1, state.Laminar)
	upper = New(1, 0, 2, 2, 2, 1, state.Laminar)
	lower.SplitID = 10
	upper.SplitID = 20

	lower.BCs = bc.List{
		&bc.Surface{BCType: bc.SlipWall, IMin: 0, IMax: 0, JMin: 0, JMax: 1, KMin: 0, KMax: 1, Tag: 1},
		&bc.Surface{BCType: bc.Interblock, IMin: 1, IMax: 1, JMin: 0, JMax: 1, KMin: 0, KMax: 1, Tag: 2},
	}
	upper.BCs = bc.List{
		&bc.Surface{BCType: bc.Interblock, IMin: 0, IMax: 0, JMin: 0, JMax: 1, KMin: 0, KMax: 1, Tag: 3},
		&bc.Surface{BCType: bc.SlipWall, IMin: 1, IMax: 1, JMin: 0, JMax: 1, KMin: 0, KMax: 1, Tag: 4},
	}

	lower.Prim.SetAt(0, 0, 0, state.Primitive{Rho: 10})
	lower.Prim.SetAt(1, 0, 0, state.Primitive{Rho: 11})
	upper.Prim.SetAt(0, 0, 0, state.Primitive{Rho: 20})
	upper.Prim.SetAt(1, 0, 0, state.Primitive{Rho: 21})

	return
}

func TestJoinCombinesExtentAndState(tst *testing.T) {
	lower, upper := buildJoinHalves()

	out, err := Join(lower, upper, DirI, 2)
	if err != nil {
		tst.Fatalf("Join: %v", err)
	}
	if out.Ni != 4 || out.Nj != 2 || out.Nk != 2 {
		tst.Fatalf("joined extent = (%d,%d,%d), want (4,2,2)", out.Ni, out.Nj, out.Nk)
	}

	cases := []struct{ i int; want float64 }{
		{0, 10}, {1, 11}, {2, 20}, {3, 21},
	}
	for _, c := range cases {
		if got := out.Prim.At(c.i, 0, 0).Rho; got != c.want {
			tst.Errorf("Prim.At(%d,0,0).Rho = %v, want %v", c.i, got, c.want)
		}
	}
}

func TestJoinDropsInteriorInterblockFacesAndShiftsTheRest(tst *testing.T) {
	lower, upper := buildJoinHalves()

	out, err := Join(lower, upper, DirI, 2)
	if err != nil {
		tst.Fatalf("Join: %v", err)
	}
	if len(out.BCs) != 2 {
		tst.Fatalf("len(out.BCs) = %d, want 2 (both Interblock join faces dropped)", len(out.BCs))
	}

	var sawLow, sawHigh bool
	for _, s := range out.BCs {
		if s.BCType == bc.Interblock {
			tst.Errorf("join-face Interblock surface %+v should have been dropped", s)
		}
		switch s.Tag {
		case 1:
			sawLow = true
			if s.IMin != 0 || s.IMax != 0 {
				tst.Errorf("lower's outer face should stay at I=0, got IMin=%d IMax=%d", s.IMin, s.IMax)
			}
			if len(s.Provenance) != 1 || s.Provenance[0] != 10 {
				tst.Errorf("lower's outer face Provenance = %v, want [10]", s.Provenance)
			}
		case 4:
			sawHigh = true
			if s.IMin != 3 || s.IMax != 3 {
				tst.Errorf("upper's outer face should shift to I=3, got IMin=%d IMax=%d", s.IMin, s.IMax)
			}
			if len(s.Provenance) != 1 || s.Provenance[0] != 20 {
				tst.Errorf("upper's outer face Provenance = %v, want [20]", s.Provenance)
			}
		}
	}
	if !sawLow || !sawHigh {
		tst.Errorf("expected both outer faces to survive Join, sawLow=%v sawHigh=%v", sawLow, sawHigh)
	}
}

func TestJoinRejectsMismatchedGhostWidth(tst *testing.T) {
	lower, upper := buildJoinHalves()
	upper.G = 2
	if _, err := Join(lower, upper, DirI, 2); err == nil {
		tst.Errorf("expected an error joining blocks with mismatched ghost widths")
	}
}
