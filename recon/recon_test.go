// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"math"
	"testing"

	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

func TestMinmodPicksSmallerSameSignSlope(tst *testing.T) {
	if got := minmod(1.0, 2.0); got != 1.0 {
		tst.Errorf("minmod(1,2) = %v, want 1", got)
	}
	if got := minmod(2.0, 1.0); got != 1.0 {
		tst.Errorf("minmod(2,1) = %v, want 1", got)
	}
	if got := minmod(-1.0, 2.0); got != 0 {
		tst.Errorf("minmod(-1,2) = %v, want 0 (opposite signs)", got)
	}
}

func TestVanAlbadaVanishesOppositeSign(tst *testing.T) {
	if got := vanAlbada(1.0, -1.0); got != 0 {
		tst.Errorf("vanAlbada(1,-1) = %v, want 0", got)
	}
	got := vanAlbada(1.0, 1.0)
	if math.Abs(got-1.0) > 1e-9 {
		tst.Errorf("vanAlbada(1,1) = %v, want 1 (equal slopes reproduce the slope)", got)
	}
}

func TestFaceUniformStateReconstructsExactly(tst *testing.T) {
	p := state.Primitive{Rho: 1.2, U: 0.3, V: 0, W: 0, P: 1.0}
	var diag Diagnostics
	pL, pR, err := Face(p, p, p, p, Minmod, &diag)
	if err != nil {
		tst.Fatalf("Face: %v", err)
	}
	if pL != p || pR != p {
		tst.Errorf("reconstructing a uniform stencil should reproduce it exactly, got pL=%+v pR=%+v", pL, pR)
	}
	if diag.FallbackCount != 0 {
		tst.Errorf("FallbackCount = %d, want 0", diag.FallbackCount)
	}
}

func TestFaceMinmodStaysWithinLocalBounds(tst *testing.T) {
	// The minmod limiter is TVD: reconstructed face densities must stay
	// within the min/max of the local stencil, never overshooting past it.
	ll := state.Primitive{Rho: 1.0, P: 1}
	l := state.Primitive{Rho: 0.5, P: 1}
	r := state.Primitive{Rho: 0.2, P: 1}
	rr := state.Primitive{Rho: 0.1, P: 1}
	var diag Diagnostics
	pL, pR, err := Face(ll, l, r, rr, Minmod, &diag)
	if err != nil {
		tst.Fatalf("Face: %v", err)
	}
	if pL.Rho < r.Rho || pL.Rho > ll.Rho {
		tst.Errorf("pL.Rho = %v, want within [%v,%v]", pL.Rho, r.Rho, ll.Rho)
	}
	if pR.Rho < rr.Rho || pR.Rho > l.Rho {
		tst.Errorf("pR.Rho = %v, want within [%v,%v]", pR.Rho, rr.Rho, l.Rho)
	}
}

func TestRoeFluxUniformStateMatchesPhysicalFlux(tst *testing.T) {
	gas := thermo.NewPerfectGasSutherland(thermo.Reference{RhoInf: 1, AInf: 1, L: 1, MuRef: 1.8e-5, TRef: 288.15})
	p := state.Primitive{Rho: 1.0, U: 0.5, V: 0.1, W: 0, P: 1.0 / gas.Gamma}
	n := geom.Vec3{X: 1}

	got := RoeFlux(p, p, n, 1.0, gas)
	want := physicalFlux(p, gas, n, 1.0)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			tst.Errorf("flux[%d] = %v, want %v (uniform state has zero Roe dissipation)", i, got[i], want[i])
		}
	}
}

func TestRoeFluxMassConservationAntisymmetry(tst *testing.T) {
	gas := thermo.NewPerfectGasSutherland(thermo.Reference{RhoInf: 1, AInf: 1, L: 1, MuRef: 1.8e-5, TRef: 288.15})
	pL := state.Primitive{Rho: 1.0, U: 0.2, P: 1.0 / gas.Gamma}
	pR := state.Primitive{Rho: 0.8, U: -0.1, P: 0.9 / gas.Gamma}
	n := geom.Vec3{X: 1}

	fwd := RoeFlux(pL, pR, n, 1.0, gas)
	rev := RoeFlux(pR, pL, n.Scale(-1), 1.0, gas)
	for i := range fwd {
		if math.Abs(fwd[i]+rev[i]) > 1e-9 {
			tst.Errorf("flux[%d]: F(L,R,n)=%v should equal -F(R,L,-n)=%v", i, fwd[i], -rev[i])
		}
	}
}
