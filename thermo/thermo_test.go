// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/state"
)

func testGas() *PerfectGasSutherland {
	return NewPerfectGasSutherland(Reference{RhoInf: 1, AInf: 1, L: 1, MuRef: 1.8e-5, TRef: 288.15})
}

func TestPrimConsRoundTrip(tst *testing.T) {
	gas := testGas()
	p := state.Primitive{Rho: 1.2, U: 0.5, V: -0.1, W: 0.2, P: 101325.0 / 1.8e5}

	c := gas.ToCons(p)
	got, err := gas.ToPrim(c)
	if err != nil {
		tst.Fatalf("ToPrim: %v", err)
	}
	const tol = 1e-9
	if math.Abs(got.Rho-p.Rho) > tol || math.Abs(got.U-p.U) > tol ||
		math.Abs(got.V-p.V) > tol || math.Abs(got.W-p.W) > tol || math.Abs(got.P-p.P) > tol {
		tst.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestPrimConsRoundTripTurbulent(tst *testing.T) {
	gas := testGas()
	p := state.Primitive{Rho: 1.0, U: 1.0, P: 1.0, Turb: state.TwoEqnTurb, K: 0.01, Omega: 50.0}

	c := gas.ToCons(p)
	got, err := gas.ToPrim(c)
	if err != nil {
		tst.Fatalf("ToPrim: %v", err)
	}
	const tol = 1e-9
	if math.Abs(got.P-p.P) > tol || math.Abs(got.K-p.K) > tol || math.Abs(got.Omega-p.Omega) > tol {
		tst.Errorf("turbulent round trip = %+v, want %+v", got, p)
	}
}

func TestToPrimNonPositiveDensity(tst *testing.T) {
	gas := testGas()
	_, err := gas.ToPrim(state.Conservative{Rho: 0})
	if err == nil {
		tst.Fatalf("expected an error for non-positive density")
	}
	var numErr *errs.NumericalError
	if !errors.As(err, &numErr) {
		tst.Fatalf("expected a *errs.NumericalError, got %T", err)
	}
	if numErr.Kind != errs.NonPositiveState {
		tst.Errorf("Kind = %v, want %v", numErr.Kind, errs.NonPositiveState)
	}
}

func TestSutherlandViscosityIncreasesWithTemperature(tst *testing.T) {
	gas := testGas()
	mu1 := gas.Viscosity(1.0)
	mu2 := gas.Viscosity(2.0)
	if mu2 <= mu1 {
		tst.Errorf("Viscosity(2.0)=%v should exceed Viscosity(1.0)=%v", mu2, mu1)
	}
	if gas.Viscosity(0) != 0 {
		tst.Errorf("Viscosity(0) = %v, want 0", gas.Viscosity(0))
	}
}

func TestSoundSpeed(tst *testing.T) {
	gas := testGas()
	p := state.Primitive{Rho: 1.0, P: 1.0 / gas.Gamma}
	a := gas.SoundSpeed(p)
	if math.Abs(a-1.0) > 1e-9 {
		tst.Errorf("SoundSpeed = %v, want 1 (reference sound-speed state)", a)
	}
}
