// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state implements the primitive and conservative flow-state value
// types and their algebra. A state carries the five perfect-gas variables
// {ρ,u,v,w,p} and, when NTurb==2, the two turbulence variables {k,ω}.
package state

import "github.com/cpmech/cflow/geom"

// NTurb selects whether a state carries turbulence variables
type NTurb int

const (
	Laminar    NTurb = 0
	TwoEqnTurb NTurb = 2
)

// NVars returns the number of active equations for a given turbulence mode
func (n NTurb) NVars() int {
	return 5 + int(n)
}

// Primitive is the primitive flow state {ρ,u,v,w,p,k,ω}
type Primitive struct {
	Rho, U, V, W, P float64
	K, Omega        float64
	Turb            NTurb
}

// Conservative is the conservative flow state {ρ,ρu,ρv,ρw,ρE,ρk,ρω}
type Conservative struct {
	Rho, RhoU, RhoV, RhoW, RhoE float64
	RhoK, RhoOmega              float64
	Turb                        NTurb
}

// Velocity returns the velocity vector
func (p Primitive) Velocity() geom.Vec3 {
	return geom.Vec3{X: p.U, Y: p.V, Z: p.W}
}

// Array returns the active equations as a flat slice, in the fixed order
// ρ,ρu,ρv,ρw,ρE[,ρk,ρω]; used by residual and flux accumulation.
func (c Conservative) Array() []float64 {
	a := []float64{c.Rho, c.RhoU, c.RhoV, c.RhoW, c.RhoE}
	if c.Turb == TwoEqnTurb {
		a = append(a, c.RhoK, c.RhoOmega)
	}
	return a
}

// FromArray sets c from a flat slice in the same order as Array
func (c *Conservative) FromArray(a []float64, turb NTurb) {
	c.Rho, c.RhoU, c.RhoV, c.RhoW, c.RhoE = a[0], a[1], a[2], a[3], a[4]
	c.Turb = turb
	if turb == TwoEqnTurb {
		c.RhoK, c.RhoOmega = a[5], a[6]
	}
}

// Add returns a+b; both must have the same Turb arity
func (a Conservative) Add(b Conservative) Conservative {
	r := Conservative{
		Rho: a.Rho + b.Rho, RhoU: a.RhoU + b.RhoU, RhoV: a.RhoV + b.RhoV,
		RhoW: a.RhoW + b.RhoW, RhoE: a.RhoE + b.RhoE, Turb: a.Turb,
	}
	if a.Turb == TwoEqnTurb {
		r.RhoK = a.RhoK + b.RhoK
		r.RhoOmega = a.RhoOmega + b.RhoOmega
	}
	return r
}

// Sub returns a-b
func (a Conservative) Sub(b Conservative) Conservative {
	return a.Add(b.Scale(-1))
}

// Scale returns s*a
func (a Conservative) Scale(s float64) Conservative {
	r := Conservative{
		Rho: s * a.Rho, RhoU: s * a.RhoU, RhoV: s * a.RhoV,
		RhoW: s * a.RhoW, RhoE: s * a.RhoE, Turb: a.Turb,
	}
	if a.Turb == TwoEqnTurb {
		r.RhoK = s * a.RhoK
		r.RhoOmega = s * a.RhoOmega
	}
	return r
}

// Valid reports whether the invariant ρ>0, p>0 holds (spec.md invariant 2);
// callers pass in the pressure already extracted via an EOS ToPrim call.
func Valid(rho, p float64) bool {
	return rho > 0 && p > 0
}

// Array returns the primitive variables as a flat slice, ρ,u,v,w,p[,k,ω],
// used by reconstruction to apply the same limiter/blend logic to every
// component without a per-field switch.
func (p Primitive) Array() []float64 {
	a := []float64{p.Rho, p.U, p.V, p.W, p.P}
	if p.Turb == TwoEqnTurb {
		a = append(a, p.K, p.Omega)
	}
	return a
}

// FromArray sets p from a flat slice in the same order as Array.
func (p *Primitive) FromArray(a []float64, turb NTurb) {
	p.Rho, p.U, p.V, p.W, p.P = a[0], a[1], a[2], a[3], a[4]
	p.Turb = turb
	if turb == TwoEqnTurb {
		p.K, p.Omega = a[5], a[6]
	}
}
