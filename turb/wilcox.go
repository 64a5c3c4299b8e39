// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package turb

import (
	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

// Wilcox implements the 2006 Wilcox k-ω closure.
type Wilcox struct {
	Gas      thermo.Gas
	Treat    *WallTreatment
	BetaStar float64 // destruction constant in the k equation
	Alpha    float64 // production constant in the ω equation
	Beta0    float64 // destruction constant in the ω equation
	SigmaK   float64
	SigmaW   float64
}

// NewWilcox returns a Wilcox model with the standard 2006 constants.
func NewWilcox(gas thermo.Gas) *Wilcox {
	return &Wilcox{
		Gas: gas, Treat: NewWallTreatment(),
		BetaStar: 0.09, Alpha: 0.52, Beta0: wilcoxBeta1, SigmaK: 0.6, SigmaW: 0.5,
	}
}

// EddyViscosity returns μt = ρ k/ω, per the Wilcox closure.
func (w *Wilcox) EddyViscosity(p state.Primitive, gradU geom.Tensor3, wallDist float64) float64 {
	if p.Omega <= 0 {
		return 0
	}
	return p.Rho * p.K / p.Omega
}

// SourceTerms returns the production/destruction source terms for the k and
// ω transport equations (spec.md §4.5).
func (w *Wilcox) SourceTerms(p state.Primitive, gradU geom.Tensor3, gradK, gradOmega geom.Vec3, wallDist float64) (sourceK, sourceOmega float64) {
	muT := w.EddyViscosity(p, gradU, wallDist)
	tau := geom.StrainRateStress(gradU, muT)
	var prod float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			prod += tau[i][j] * gradU[i][j]
		}
	}
	if prod < 0 {
		prod = 0 // production is clipped to avoid spurious negative k
	}
	destroyK := w.BetaStar * p.Rho * p.K * p.Omega
	sourceK = prod - destroyK

	prodOmega := 0.0
	if p.K > 0 {
		prodOmega = w.Alpha * p.Rho / muT * prod
	}
	destroyOmega := w.Beta0 * p.Rho * p.Omega * p.Omega
	sourceOmega = prodOmega - destroyOmega
	return
}

// BCGhostState implements spec.md §4.6's wall formulas: k=0 at the wall,
// ω_w = 60ν/(β1 Δy²) (Menter's near-wall formula, shared across the k-ω
// family).
func (w *Wilcox) BCGhostState(kind bc.Kind, pInterior state.Primitive, wallDist float64) (k, omega float64) {
	T := w.Gas.Temperature(pInterior)
	nu := w.Gas.Viscosity(T) / pInterior.Rho
	return 0, WallOmega(nu, wallDist)
}
