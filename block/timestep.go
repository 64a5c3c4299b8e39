// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
	"github.com/cpmech/cflow/turb"
)

// viscousSpectralFactor is the constant from the classical viscous-spectral-
// radius CFL bound (Blazek, "Computational Fluid Dynamics", eq. 6.21,
// collapsed to its inviscid-Prandtl-independent upper bound of 4/3).
const viscousSpectralFactor = 4.0 / 3.0

// LocalTimeStep fills DtLocal with the per-cell explicit stability bound of
// spec.md §5: CFL scaled by cell volume over the sum of the convective and
// viscous spectral radii across the six faces.
func (b *ProcBlock) LocalTimeStep(cfl float64, gas thermo.Gas, turbModel turb.Model) {
	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				p := b.Prim.At(i, j, k)
				vol := b.Volume.At(i, j, k)
				faces := b.cellFaces(i, j, k)

				a := gas.SoundSpeed(p)
				u := p.Velocity()

				var convSpec, areaSqSum float64
				for _, f := range faces {
					areaMag := f.area.Norm()
					if areaMag == 0 {
						continue
					}
					n := f.area.Scale(1 / areaMag)
					un := u.Dot(n)
					convSpec += (absFloat(un) + a) * areaMag
					areaSqSum += areaMag * areaMag
				}

				T := gas.Temperature(p)
				mu := gas.Viscosity(T)
				var muT float64
				if b.Turb == state.TwoEqnTurb && turbModel != nil {
					wallDist := b.WallDist.At(i, j, k)
					muT = turbModel.EddyViscosity(p, b.GradU.At(i, j, k), wallDist)
				}
				viscSpec := 0.0
				if p.Rho > 0 && vol > 0 {
					viscSpec = viscousSpectralFactor * (mu + muT) / p.Rho * areaSqSum / vol
				}

				denom := convSpec + viscSpec
				dt := 0.0
				if denom > 0 {
					dt = cfl * vol / denom
				}
				b.DtLocal.SetAt(i, j, k, dt)
			}
		}
	}
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
