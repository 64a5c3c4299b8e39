// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import (
	"math"

	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

// TurbBoundary is the narrow capability a turbulence model exposes to the
// ghost-fill routines here, so bc never imports the turb package (turb
// imports bc instead, for Kind). It mirrors spec.md §4.5's
// "BCGhostState(kind, P_interior, wallDist)" capability.
type TurbBoundary interface {
	BCGhostState(kind Kind, pInterior state.Primitive, wallDist float64) (k, omega float64)
}

// GhostState computes the ghost-cell primitive state for one non-interblock
// surface, given the mirror interior cell's primitive state, the outward
// face unit normal, the distance from the wall-adjacent cell center to the
// wall (for viscous walls), and the gas model. turbBC may be nil for
// laminar runs.
func GhostState(s *Surface, pInterior state.Primitive, normal geom.Vec3, wallDist float64, gas thermo.Gas, turbBC TurbBoundary) state.Primitive {
	switch s.BCType {
	case SlipWall:
		return slipWallGhost(pInterior, normal)
	case ViscousWallIsothermal:
		return viscousWallGhost(s, pInterior, normal, wallDist, gas, turbBC, true)
	case ViscousWallAdiabatic:
		return viscousWallGhost(s, pInterior, normal, wallDist, gas, turbBC, false)
	case SupersonicInflow:
		return freestreamPrimitive(s.Freestream, pInterior.Turb)
	case SupersonicOutflow:
		return pInterior
	case SubsonicInflow, SubsonicOutflow, Farfield:
		return characteristicGhost(s.Freestream, pInterior, normal, gas)
	}
	// Periodic/Interblock are filled by ParallelExchange, never here.
	return pInterior
}

// slipWallGhost reflects the normal velocity component and copies
// everything else, per spec.md §4.6.
func slipWallGhost(p state.Primitive, n geom.Vec3) state.Primitive {
	u := p.Velocity()
	un := u.Dot(n)
	ug := u.Sub(n.Scale(2 * un))
	g := p
	g.U, g.V, g.W = ug.X, ug.Y, ug.Z
	return g
}

// viscousWallGhost implements the isothermal and adiabatic viscous-wall
// ghost rules of spec.md §4.6: the no-slip condition is enforced by
// reflecting velocity (face average is then zero); temperature either
// targets T_wall (isothermal, face-average equals T_w) or is mirrored
// (adiabatic, zero normal heat flux); pressure is extrapolated (zero normal
// gradient); k is reflected to zero at the wall; ω follows Menter's
// near-wall formula via the turbulence model's BCGhostState.
func viscousWallGhost(s *Surface, p state.Primitive, n geom.Vec3, wallDist float64, gas thermo.Gas, turbBC TurbBoundary, isothermal bool) state.Primitive {
	u := p.Velocity()
	ug := u.Scale(-1)
	g := p
	g.U, g.V, g.W = ug.X, ug.Y, ug.Z
	g.P = p.P // extrapolate pressure

	Ti := gas.Temperature(p)
	var Tg float64
	if isothermal {
		Tg = 2*s.TWall - Ti
	} else {
		Tg = Ti
	}
	if Tg <= 0 {
		Tg = Ti // guard against a pathological reflection; caller will see
		// the resulting state fail the positivity invariant downstream if
		// Ti itself is already invalid.
	}
	g.Rho = g.P / (Tg * 1.0) // R==1 in this nondimensional frame (thermo.PerfectGasSutherland.R)

	if p.Turb == state.TwoEqnTurb {
		g.K = -p.K // reflect to zero wall value
		if turbBC != nil {
			_, omegaWall := turbBC.BCGhostState(s.BCType, p, wallDist)
			// ω is a cell value, not a face value: store the reflected
			// ghost value so the face average equals the wall formula.
			g.Omega = 2*omegaWall - p.Omega
		} else {
			g.Omega = p.Omega
		}
	}
	return g
}

// freestreamPrimitive converts a FreestreamState record into a Primitive
// with the given turbulence arity.
func freestreamPrimitive(f FreestreamState, turb state.NTurb) state.Primitive {
	return state.Primitive{Rho: f.Rho, U: f.U, V: f.V, W: f.W, P: f.P, K: f.K, Omega: f.Omega, Turb: turb}
}

// characteristicGhost implements the Riemann-invariant farfield/in-outflow
// boundary condition of spec.md §4.6: the normal Riemann invariants from
// the interior and from the freestream are combined to get the boundary
// normal velocity and sound speed; whichever side the resulting normal
// velocity points away from supplies the entropy, tangential velocity and
// turbulence quantities (full characteristic decomposition).
func characteristicGhost(f FreestreamState, pInt state.Primitive, n geom.Vec3, gas thermo.Gas) state.Primitive {
	gamma := 1.4
	if pg, ok := gas.(*thermo.PerfectGasSutherland); ok {
		gamma = pg.Gamma
	}

	uInt := pInt.Velocity()
	unInt := uInt.Dot(n)
	aInt := gas.SoundSpeed(pInt)

	uInf := geom.Vec3{X: f.U, Y: f.V, Z: f.W}
	unInf := uInf.Dot(n)
	pInf := state.Primitive{Rho: f.Rho, U: f.U, V: f.V, W: f.W, P: f.P, Turb: pInt.Turb}
	aInf := gas.SoundSpeed(pInf)

	rPlus := unInt + 2*aInt/(gamma-1)  // outgoing characteristic (from interior)
	rMinus := unInf - 2*aInf/(gamma-1) // incoming characteristic (from freestream)

	unB := 0.5 * (rPlus + rMinus)
	aB := (gamma - 1) / 4 * (rPlus - rMinus)

	var rho, p float64
	var uTan geom.Vec3
	var k, omega float64
	if unB >= 0 {
		// outflow: entropy & tangential velocity from the interior
		s := pInt.P / math.Pow(pInt.Rho, gamma)
		rho = math.Pow(aB*aB/(gamma*s), 1/(gamma-1))
		uTan = uInt.Sub(n.Scale(unInt))
		k, omega = pInt.K, pInt.Omega
	} else {
		// inflow: entropy & tangential velocity from the freestream
		s := f.P / math.Pow(f.Rho, gamma)
		rho = math.Pow(aB*aB/(gamma*s), 1/(gamma-1))
		uTan = uInf.Sub(n.Scale(unInf))
		k, omega = f.K, f.Omega
	}
	p = rho * aB * aB / gamma
	uB := uTan.Add(n.Scale(unB))
	return state.Primitive{Rho: rho, U: uB.X, V: uB.Y, W: uB.Z, P: p, K: k, Omega: omega, Turb: pInt.Turb}
}
