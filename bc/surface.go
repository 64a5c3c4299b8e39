// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bc implements the boundary-condition surface records of spec.md
// §3/§4.6: per-block surface lists, the ghost-state rules for each surface
// kind, and the inter-block point-matched patch/orientation machinery.
package bc

import "github.com/cpmech/gosl/chk"

// Kind enumerates the boundary surface types of spec.md §3. Dispatch on
// Kind is a plain switch (spec.md §9's tagged-variant guidance), not
// interface-based virtual dispatch, so the hot ghost-fill loop stays
// inlinable.
type Kind int

const (
	SlipWall Kind = iota
	ViscousWallIsothermal
	ViscousWallAdiabatic
	SubsonicInflow
	SupersonicInflow
	SubsonicOutflow
	SupersonicOutflow
	Farfield
	Periodic
	Interblock
)

func (k Kind) String() string {
	switch k {
	case SlipWall:
		return "slip-wall"
	case ViscousWallIsothermal:
		return "viscous-wall-isothermal"
	case ViscousWallAdiabatic:
		return "viscous-wall-adiabatic"
	case SubsonicInflow:
		return "subsonic-inflow"
	case SupersonicInflow:
		return "supersonic-inflow"
	case SubsonicOutflow:
		return "subsonic-outflow"
	case SupersonicOutflow:
		return "supersonic-outflow"
	case Farfield:
		return "farfield"
	case Periodic:
		return "periodic"
	case Interblock:
		return "interblock"
	}
	return "unknown"
}

// Surface is one BC surface record on a block, per spec.md §3. Exactly one
// of the three axis ranges is degenerate (Min==Max); that pins the block
// face the surface covers. All six bounds are interior-relative 0-based
// CELL indices: on the degenerate axis, 0 means the low face and N-1 (N
// being that axis' interior extent) means the high face; on the other two
// axes, Min/Max are the inclusive tangential extent of the patch.
type Surface struct {
	BCType                         Kind
	IMin, IMax, JMin, JMax, KMin, KMax int
	Tag                            int

	// TWall is used by ViscousWallIsothermal; ignored otherwise.
	TWall float64

	// WallLaw selects wall-law treatment over low-Re resolution for
	// viscous-wall surfaces (see turb package for the y+ switch/hysteresis).
	WallLaw bool

	// Freestream holds the reference state for Farfield/inflow/outflow
	// characteristic BCs.
	Freestream FreestreamState

	// Patch is non-nil when BCType==Interblock or Periodic.
	Patch *Patch

	// provenance: SplitIDs of the originating split children, preserved across
	// Join/Recombine so I/O metadata attributes BCs correctly after
	// recombination (spec.md §9 open question (a)).
	Provenance []int
}

// FreestreamState is the reference state used by characteristic BCs.
type FreestreamState struct {
	Rho, U, V, W, P float64
	K, Omega        float64
}

// Axis reports which logical direction is normal to the surface, by
// inspecting which range is degenerate.
type Axis int

const (
	AxisI Axis = iota
	AxisJ
	AxisK
)

// NormalAxis returns the axis normal to the surface and panics if none (or
// more than one) of the three ranges is degenerate, since that would make
// the surface ill-defined.
func (s *Surface) NormalAxis() Axis {
	iDeg := s.IMin == s.IMax
	jDeg := s.JMin == s.JMax
	kDeg := s.KMin == s.KMax
	switch {
	case iDeg && !jDeg && !kDeg:
		return AxisI
	case jDeg && !iDeg && !kDeg:
		return AxisJ
	case kDeg && !iDeg && !jDeg:
		return AxisK
	}
	chk.Panic("bc.Surface: exactly one of iMin==iMax, jMin==jMax, kMin==kMax must hold (tag=%d)", s.Tag)
	return AxisI
}

// List is the ordered BC surface list owned by one block (spec.md §3).
type List []*Surface
