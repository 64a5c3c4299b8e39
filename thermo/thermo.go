// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package thermo supplies the equation-of-state and transport-property
// collaborator: the capability set the core solver packages (recon, visc,
// turb, block) are written against, without the core ever knowing about a
// concrete gas model. spec.md §1 lists "equation-of-state tables and
// Sutherland-law coefficients" as deliberately out of core scope; this
// package is the external collaborator that supplies them.
package thermo

import (
	"math"

	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/state"
)

// Gas is the capability set the core needs from a thermodynamics object.
type Gas interface {
	ToPrim(c state.Conservative) (state.Primitive, error)
	ToCons(p state.Primitive) state.Conservative
	SoundSpeed(p state.Primitive) float64
	Viscosity(T float64) float64    // Sutherland's law, molecular viscosity
	Conductivity(T float64) float64 // from Pr or a second Sutherland fit
	Temperature(p state.Primitive) float64
}

// Reference holds the nondimensionalization constants. All internal
// arithmetic in the solver is carried out in this nondimensional frame.
type Reference struct {
	RhoInf float64 // reference density ρ∞
	AInf   float64 // reference speed of sound a∞
	L      float64 // reference length
	MuRef  float64 // reference (scaling) viscosity
	TRef   float64 // reference temperature
}

// PerfectGasSutherland implements Gas for a calorically perfect gas with
// Sutherland's viscosity law and a constant Prandtl number for
// conductivity. This is the one concrete Gas the core is exercised against,
// per spec.md's non-goal "arbitrary constitutive models beyond perfect-gas
// + Sutherland".
type PerfectGasSutherland struct {
	Gamma float64 // ratio of specific heats
	R     float64 // nondimensional gas constant; NewPerfectGasSutherland sets 1, so T = p/ρ
	Pr    float64 // Prandtl number

	// Sutherland's law coefficients, nondimensionalized by Ref
	SutherlandC1 float64 // μ = C1 T^1.5 / (T + S), nondimensional C1
	SutherlandS  float64 // nondimensional Sutherland constant S

	Ref Reference
}

// NewPerfectGasSutherland returns a gas model with the standard air
// constants (γ=1.4, Pr=0.72) nondimensionalized against ref.
func NewPerfectGasSutherland(ref Reference) *PerfectGasSutherland {
	return &PerfectGasSutherland{
		Gamma:        1.4,
		R:            1.0,
		Pr:           0.72,
		SutherlandC1: 1.458e-6 * math.Pow(ref.TRef, 1.5) / ref.MuRef,
		SutherlandS:  110.4 / ref.TRef,
		Ref:          ref,
	}
}

// Temperature returns T = p/(ρR) nondimensionally
func (g *PerfectGasSutherland) Temperature(p state.Primitive) float64 {
	return p.P / (p.Rho * g.R)
}

// ToPrim converts conservative to primitive state via the perfect-gas EOS.
// Returns an *errs.NumericalError of kind NonPositiveState if density is
// non-positive, since temperature and pressure cannot be recovered; callers
// (block.SyncPrimFromCons) pass it up as a state.Valid()==false violation,
// i.e. invariant 2 (§3).
func (g *PerfectGasSutherland) ToPrim(c state.Conservative) (state.Primitive, error) {
	if c.Rho <= 0 {
		return state.Primitive{}, errs.NewNumericalError(errs.NonPositiveState, "ToPrim: non-positive density ρ=%v", c.Rho)
	}
	u := c.RhoU / c.Rho
	v := c.RhoV / c.Rho
	w := c.RhoW / c.Rho
	kinetic := 0.5 * (u*u + v*v + w*w)
	p := state.Primitive{Rho: c.Rho, U: u, V: v, W: w, Turb: c.Turb}
	p.P = (g.Gamma - 1) * (c.RhoE - c.Rho*kinetic)
	if c.Turb == state.TwoEqnTurb {
		p.K = c.RhoK / c.Rho
		p.Omega = c.RhoOmega / c.Rho
		p.P = (g.Gamma - 1) * (c.RhoE - c.Rho*kinetic - c.RhoK)
	}
	return p, nil
}

// ToCons converts primitive to conservative state via the perfect-gas EOS.
func (g *PerfectGasSutherland) ToCons(p state.Primitive) state.Conservative {
	kinetic := 0.5 * (p.U*p.U + p.V*p.V + p.W*p.W)
	c := state.Conservative{
		Rho: p.Rho, RhoU: p.Rho * p.U, RhoV: p.Rho * p.V, RhoW: p.Rho * p.W,
		Turb: p.Turb,
	}
	tke := 0.0
	if p.Turb == state.TwoEqnTurb {
		tke = p.K
		c.RhoK = p.Rho * p.K
		c.RhoOmega = p.Rho * p.Omega
	}
	c.RhoE = p.P/(g.Gamma-1) + p.Rho*kinetic + p.Rho*tke
	return c
}

// SoundSpeed returns a = sqrt(γ p / ρ)
func (g *PerfectGasSutherland) SoundSpeed(p state.Primitive) float64 {
	return math.Sqrt(g.Gamma * p.P / p.Rho)
}

// Viscosity returns μ(T) via Sutherland's law, nondimensional.
func (g *PerfectGasSutherland) Viscosity(T float64) float64 {
	if T <= 0 {
		return 0
	}
	return g.SutherlandC1 * math.Pow(T, 1.5) / (T + g.SutherlandS)
}

// Conductivity returns k(T) from μ(T) and a constant Prandtl number:
//   k = μ cp / Pr,  cp = γR/(γ-1) in this nondimensional frame.
func (g *PerfectGasSutherland) Conductivity(T float64) float64 {
	cp := g.Gamma * g.R / (g.Gamma - 1)
	return g.Viscosity(T) * cp / g.Pr
}
