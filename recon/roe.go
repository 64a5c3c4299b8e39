// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import (
	"math"

	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

// EntropyFixFraction sets δ, in Harten's entropy fix λ→(λ²+δ²)/(2δ) when
// |λ|<δ, as a fraction of the local (Roe-averaged) speed of sound
// (spec.md §4.3 point 2).
const EntropyFixFraction = 0.1

func hartenFix(lambda, aTilde float64) float64 {
	delta := EntropyFixFraction * aTilde
	if math.Abs(lambda) < delta {
		return (lambda*lambda + delta*delta) / (2 * delta)
	}
	return math.Abs(lambda)
}

// physicalFlux returns the inviscid flux F(P)·n·A through a face with unit
// normal n and area magnitude areaMag.
func physicalFlux(p state.Primitive, gas thermo.Gas, n geom.Vec3, areaMag float64) []float64 {
	c := gas.ToCons(p)
	un := p.Velocity().Dot(n)
	mdot := p.Rho * un
	f := []float64{
		mdot,
		mdot*p.U + p.P*n.X,
		mdot*p.V + p.P*n.Y,
		mdot*p.W + p.P*n.Z,
		un * (c.RhoE + p.P),
	}
	if p.Turb == state.TwoEqnTurb {
		f = append(f, mdot*p.K, mdot*p.Omega)
	}
	for i := range f {
		f[i] *= areaMag
	}
	return f
}

// RoeFlux computes the approximate-Riemann (Roe-type) inviscid flux across
// a face with unit outward normal n and area magnitude areaMag, between
// left state pL and right state pR, per spec.md §4.3: Roe-averaged
// intermediate state and wave speeds, Harten entropy fix on the acoustic
// eigenvalues, turbulence scalars upwound by the sign of the resolved mass
// flux.
func RoeFlux(pL, pR state.Primitive, n geom.Vec3, areaMag float64, gas thermo.Gas) []float64 {
	gamma := 1.4
	if pg, ok := gas.(*thermo.PerfectGasSutherland); ok {
		gamma = pg.Gamma
	}

	fL := physicalFlux(pL, gas, n, 1) // unit-area fluxes; areaMag applied at the end
	fR := physicalFlux(pR, gas, n, 1)

	cL := gas.ToCons(pL)
	cR := gas.ToCons(pR)
	HL := (cL.RhoE + pL.P) / pL.Rho
	HR := (cR.RhoE + pR.P) / pR.Rho

	sqrtRhoL := math.Sqrt(pL.Rho)
	sqrtRhoR := math.Sqrt(pR.Rho)
	denom := sqrtRhoL + sqrtRhoR

	uTilde := geom.Vec3{
		X: (sqrtRhoL*pL.U + sqrtRhoR*pR.U) / denom,
		Y: (sqrtRhoL*pL.V + sqrtRhoR*pR.V) / denom,
		Z: (sqrtRhoL*pL.W + sqrtRhoR*pR.W) / denom,
	}
	HTilde := (sqrtRhoL*HL + sqrtRhoR*HR) / denom
	rhoTilde := sqrtRhoL * sqrtRhoR
	unTilde := uTilde.Dot(n)
	qTilde2 := uTilde.Dot(uTilde)
	aTilde2 := (gamma - 1) * (HTilde - 0.5*qTilde2)
	if aTilde2 < 1e-12 {
		aTilde2 = 1e-12
	}
	aTilde := math.Sqrt(aTilde2)

	drho := pR.Rho - pL.Rho
	dp := pR.P - pL.P
	du := pR.Velocity().Sub(pL.Velocity())
	dun := du.Dot(n)

	dV1 := (dp - rhoTilde*aTilde*dun) / (2 * aTilde2)
	dV5 := (dp + rhoTilde*aTilde*dun) / (2 * aTilde2)
	dV2 := drho - dp/aTilde2

	l1 := hartenFix(unTilde-aTilde, aTilde)
	l2 := hartenFix(unTilde, aTilde)
	l5 := hartenFix(unTilde+aTilde, aTilde)

	uM1 := uTilde.Sub(n.Scale(aTilde))
	uP1 := uTilde.Add(n.Scale(aTilde))
	r1 := []float64{1, uM1.X, uM1.Y, uM1.Z, HTilde - aTilde*unTilde}
	r5 := []float64{1, uP1.X, uP1.Y, uP1.Z, HTilde + aTilde*unTilde}
	r2 := []float64{1, uTilde.X, uTilde.Y, uTilde.Z, 0.5 * qTilde2}

	duShear := du.Sub(n.Scale(dun))
	r3 := []float64{0, duShear.X, duShear.Y, duShear.Z, uTilde.Dot(du) - unTilde*dun}

	dissipation := make([]float64, 5)
	for i := 0; i < 5; i++ {
		dissipation[i] = l1*dV1*r1[i] + l2*dV2*r2[i] + l2*rhoTilde*r3[i] + l5*dV5*r5[i]
	}

	n5 := 5
	if pL.Turb == state.TwoEqnTurb {
		n5 = 7
	}
	flux := make([]float64, n5)
	for i := 0; i < 5; i++ {
		flux[i] = 0.5*(fL[i]+fR[i]) - 0.5*dissipation[i]
	}
	if n5 == 7 {
		// mass-flux consistent upwind for the passively-advected turbulence
		// scalars, using the already-resolved Roe mass flux's sign.
		mdot := flux[0]
		if mdot >= 0 {
			flux[5] = mdot * pL.K
			flux[6] = mdot * pL.Omega
		} else {
			flux[5] = mdot * pR.K
			flux[6] = mdot * pR.Omega
		}
	}
	for i := range flux {
		flux[i] *= areaMag
	}
	return flux
}
