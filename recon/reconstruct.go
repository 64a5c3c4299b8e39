// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import "github.com/cpmech/cflow/state"

// Diagnostics accumulates counts of faces that needed a first-order
// fallback (spec.md §4.3 point 4), so the caller can report how often the
// limited reconstruction produced a non-physical face state.
type Diagnostics struct {
	FallbackCount int
}

// Face reconstructs the left and right face primitive states between cells
// L and R from the four-point MUSCL stencil {LL, L, R, RR} (LL is the
// neighbor beyond L, RR the neighbor beyond R), per spec.md §4.3:
//  1. extrapolate from each side with a limited slope,
//  2. repair to first-order (piecewise constant) if the extrapolated state
//     is non-physical,
//  3. return an errs.NumericalError of kind ReconstructionFailure if even
//     the repaired state is non-physical.
func Face(ll, l, r, rr state.Primitive, kind LimiterKind, diag *Diagnostics) (pL, pR state.Primitive, err error) {
	turb := l.Turb
	aLL, aL, aR, aRR := ll.Array(), l.Array(), r.Array(), rr.Array()
	n := len(aL)

	outL := make([]float64, n)
	outR := make([]float64, n)
	for i := 0; i < n; i++ {
		dL := limit(kind, aL[i]-aLL[i], aR[i]-aL[i])
		dR := limit(kind, aR[i]-aL[i], aRR[i]-aR[i])
		outL[i] = aL[i] + 0.5*dL
		outR[i] = aR[i] - 0.5*dR
	}
	pL.FromArray(outL, turb)
	pR.FromArray(outR, turb)

	if state.Valid(pL.Rho, pL.P) && state.Valid(pR.Rho, pR.P) {
		return
	}

	// first-order fallback: piecewise constant, i.e. the cell-center values
	// themselves.
	if diag != nil {
		diag.FallbackCount++
	}
	pL, pR = l, r
	if !state.Valid(pL.Rho, pL.P) || !state.Valid(pR.Rho, pR.P) {
		err = reconFail("non-positive density/pressure survives first-order fallback (ρL=%v pL=%v ρR=%v pR=%v)",
			pL.Rho, pL.P, pR.Rho, pR.P)
	}
	return
}
