// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turb

import (
	"math"

	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

// MenterSST implements Menter's Shear-Stress-Transport k-ω closure, with
// the inner (Wilcox) and outer (k-ε-derived) constant sets blended by F1 and
// Bradshaw's eddy-viscosity limiter via F2 (spec.md §4.5). SST-DES shares
// this same machinery: a DES length-scale correction can be layered on top
// of the destruction term in the k equation without touching production or
// the wall treatment, which is why spec.md's SST-DES variant is represented
// here via the DESFactor hook rather than a separate type.
type MenterSST struct {
	Gas   thermo.Gas
	Treat *WallTreatment

	BetaStar float64
	A1       float64

	// inner (k-ω) set
	Alpha1, Beta1, SigmaK1, SigmaW1 float64
	// outer (k-ε) set
	Alpha2, Beta2, SigmaK2, SigmaW2 float64

	// DESFactor, when > 0, scales up the k-equation destruction term once
	// the turbulent length scale exceeds DESFactor*Δ (grid spacing),
	// switching the closure from RANS to a DES-like subgrid model; 0
	// disables DES behavior and yields the plain SST model.
	DESFactor float64
	GridScale float64 // local grid spacing Δ, set by the caller per cell
}

// NewMenterSST returns an SST model with the standard 2003 constants.
func NewMenterSST(gas thermo.Gas) *MenterSST {
	return &MenterSST{
		Gas: gas, Treat: NewWallTreatment(),
		BetaStar: 0.09, A1: 0.31,
		Alpha1: 0.5532, Beta1: 0.0750, SigmaK1: 0.85, SigmaW1: 0.5,
		Alpha2: 0.4403, Beta2: 0.0828, SigmaK2: 1.0, SigmaW2: 0.856,
	}
}

// blendF1 returns Menter's first blending function, ranging from 1 at the
// wall (inner/Wilcox set active) to 0 far from the wall (outer/k-ε set).
func (m *MenterSST) blendF1(p state.Primitive, gradK, gradOmega geom.Vec3, wallDist float64, nu float64) float64 {
	if wallDist <= 0 || p.Omega <= 0 {
		return 1
	}
	crossDiff := math.Max(2*p.Rho*m.SigmaW2/p.Omega*gradK.Dot(gradOmega), 1e-10)
	term1 := math.Sqrt(p.K) / (m.BetaStar * p.Omega * wallDist)
	term2 := 500 * nu / (wallDist * wallDist * p.Omega)
	arg1 := math.Min(math.Max(term1, term2), 4*p.Rho*m.SigmaW2*p.K/(crossDiff*wallDist*wallDist))
	return math.Tanh(math.Pow(arg1, 4))
}

// blend linearly interpolates an inner/outer constant pair by F1.
func blend(f1, inner, outer float64) float64 {
	return f1*inner + (1-f1)*outer
}

// EddyViscosity applies Bradshaw's assumption with the F2 limiter, bounding
// μt so that the turbulent shear stress never exceeds a1 ρ k.
func (m *MenterSST) EddyViscosity(p state.Primitive, gradU geom.Tensor3, wallDist float64) float64 {
	if p.Omega <= 0 {
		return 0
	}
	vort := vorticityMagnitude(gradU)
	T := m.Gas.Temperature(p)
	nu := m.Gas.Viscosity(T) / p.Rho
	f2 := 1.0
	if wallDist > 0 {
		term1 := 2 * math.Sqrt(p.K) / (m.BetaStar * p.Omega * wallDist)
		term2 := 500 * nu / (wallDist * wallDist * p.Omega)
		f2 = math.Tanh(math.Pow(math.Max(term1, term2), 2))
	}
	denom := math.Max(m.A1*p.Omega, vort*f2)
	if denom <= 0 {
		return 0
	}
	return p.Rho * m.A1 * p.K / denom
}

// vorticityMagnitude returns |∇xu| from the full velocity gradient tensor.
func vorticityMagnitude(gradU geom.Tensor3) float64 {
	wx := gradU[2][1] - gradU[1][2]
	wy := gradU[0][2] - gradU[2][0]
	wz := gradU[1][0] - gradU[0][1]
	return math.Sqrt(wx*wx + wy*wy + wz*wz)
}

// SourceTerms returns the blended production/destruction terms of spec.md
// §4.5, including the cross-diffusion term distinctive to SST's ω equation.
func (m *MenterSST) SourceTerms(p state.Primitive, gradU geom.Tensor3, gradK, gradOmega geom.Vec3, wallDist float64) (sourceK, sourceOmega float64) {
	T := m.Gas.Temperature(p)
	nu := m.Gas.Viscosity(T) / p.Rho
	f1 := m.blendF1(p, gradK, gradOmega, wallDist, nu)

	muT := m.EddyViscosity(p, gradU, wallDist)
	tau := geom.StrainRateStress(gradU, muT)
	var prod float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			prod += tau[i][j] * gradU[i][j]
		}
	}
	if prod < 0 {
		prod = 0
	}
	prodLimited := math.Min(prod, 20*m.BetaStar*p.Rho*p.K*p.Omega)

	destroyK := m.BetaStar * p.Rho * p.K * p.Omega
	if m.DESFactor > 0 && m.GridScale > 0 && p.Omega > 0 {
		lRANS := math.Sqrt(p.K) / (m.BetaStar * p.Omega)
		lLES := m.DESFactor * m.GridScale
		if lRANS > lLES {
			destroyK *= lRANS / lLES
		}
	}
	sourceK = prodLimited - destroyK

	alpha := blend(f1, m.Alpha1, m.Alpha2)
	beta := blend(f1, m.Beta1, m.Beta2)
	sigmaW2 := m.SigmaW2
	crossDiff := 2 * (1 - f1) * p.Rho * sigmaW2 / math.Max(p.Omega, 1e-300) * gradK.Dot(gradOmega)

	prodOmega := 0.0
	if muT > 0 {
		prodOmega = alpha * p.Rho / muT * prodLimited
	}
	destroyOmega := beta * p.Rho * p.Omega * p.Omega
	sourceOmega = prodOmega - destroyOmega + crossDiff
	return
}

// BCGhostState implements the shared k-ω family wall formulas (spec.md
// §4.6): k=0, ω_w = 60ν/(β1 Δy²) using the inner-set β1.
func (m *MenterSST) BCGhostState(kind bc.Kind, pInterior state.Primitive, wallDist float64) (k, omega float64) {
	T := m.Gas.Temperature(pInterior)
	nu := m.Gas.Viscosity(T) / pInterior.Rho
	return 0, WallOmega(nu, wallDist)
}
