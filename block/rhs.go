// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/cpmech/cflow/array"
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/recon"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
	"github.com/cpmech/cflow/turb"
	"github.com/cpmech/cflow/visc"
)

func (b *ProcBlock) otherExtents(axis Dir) (n1, n2 int) {
	switch axis {
	case DirI:
		return b.Nj, b.Nk
	case DirJ:
		return b.Ni, b.Nk
	}
	return b.Ni, b.Nj
}

func averagePrimitive(a, b state.Primitive) state.Primitive {
	out := a
	out.Rho = 0.5 * (a.Rho + b.Rho)
	out.U = 0.5 * (a.U + b.U)
	out.V = 0.5 * (a.V + b.V)
	out.W = 0.5 * (a.W + b.W)
	out.P = 0.5 * (a.P + b.P)
	if a.Turb == state.TwoEqnTurb {
		out.K = 0.5 * (a.K + b.K)
		out.Omega = 0.5 * (a.Omega + b.Omega)
	}
	return out
}

// AssembleRHS fills Residual with the net surface-flux balance of spec.md
// §4.3/§4.4 for every interior cell (inviscid Roe flux minus the Green-Gauss
// viscous flux, integrated over all six faces) plus the turbulence source
// terms, ready for the time-integration update (package integrate) to apply
// Residual/Volume. It returns the first reconstruction failure (a
// NumericalError candidate the caller wraps), per spec.md §7.
func (b *ProcBlock) AssembleRHS(gas thermo.Gas, turbModel turb.Model, limiter recon.LimiterKind, diag *recon.Diagnostics) error {
	array.Fill(b.Residual, state.Conservative{Turb: b.Turb})
	b.ComputeGradients(gas)

	for _, axis := range [3]Dir{DirI, DirJ, DirK} {
		if err := b.assembleDirection(axis, gas, turbModel, limiter, diag); err != nil {
			return err
		}
	}
	if turbModel != nil {
		b.addTurbulenceSource(turbModel)
	}
	return nil
}

func (b *ProcBlock) assembleDirection(axis Dir, gas thermo.Gas, turbModel turb.Model, limiter recon.LimiterKind, diag *recon.Diagnostics) error {
	n1, n2 := b.otherExtents(axis)
	nFaces := b.NFaces(axis)
	nInterior := b.axisExtent(axis)
	faceArr := b.FaceNormal[axisToDirIndex(axis)]

	for t1 := 0; t1 < n1; t1++ {
		for t2 := 0; t2 < n2; t2++ {
			for f := 0; f < nFaces; f++ {
				li, lj, lk := cellCoord(axis, f-1, t1, t2)
				ri, rj, rk := cellCoord(axis, f, t1, t2)
				lli, llj, llk := cellCoord(axis, f-2, t1, t2)
				rri, rrj, rrk := cellCoord(axis, f+1, t1, t2)

				pll := b.Prim.At(lli, llj, llk)
				pl := b.Prim.At(li, lj, lk)
				pr := b.Prim.At(ri, rj, rk)
				prr := b.Prim.At(rri, rrj, rrk)

				pL, pR, err := recon.Face(pll, pl, pr, prr, limiter, diag)
				if err != nil {
					return err
				}

				fi, fj, fk := cellCoord(axis, f, t1, t2)
				areaVec := faceArr.At(fi, fj, fk)
				areaMag := areaVec.Norm()
				if areaMag == 0 {
					continue
				}
				n := areaVec.Scale(1 / areaMag)

				invFlux := recon.RoeFlux(pL, pR, n, areaMag, gas)
				viscFlux := b.faceViscousFlux(li, lj, lk, ri, rj, rk, pl, pr, n, areaMag, gas, turbModel)

				combined := make([]float64, len(invFlux))
				for i := range combined {
					combined[i] = invFlux[i] - viscFlux[i]
				}
				var totalFlux state.Conservative
				totalFlux.FromArray(combined, b.Turb)

				if f >= 1 {
					cur := b.Residual.At(li, lj, lk)
					b.Residual.SetAt(li, lj, lk, cur.Add(totalFlux))
				}
				if f < nInterior {
					cur := b.Residual.At(ri, rj, rk)
					b.Residual.SetAt(ri, rj, rk, cur.Sub(totalFlux))
				}
			}
		}
	}
	return nil
}

// faceViscousFlux builds the Green-Gauss viscous flux at a face from the
// two neighboring cells' lagged gradients, applying the thin-shear-layer
// correction of spec.md §4.4.
func (b *ProcBlock) faceViscousFlux(li, lj, lk, ri, rj, rk int, pl, pr state.Primitive, n geom.Vec3, areaMag float64, gas thermo.Gas, turbModel turb.Model) []float64 {
	centerL := b.CellCenter.At(li, lj, lk)
	centerR := b.CellCenter.At(ri, rj, rk)
	dn := centerR.Sub(centerL).Dot(n)
	if dn == 0 {
		dn = 1e-300
	}

	gradUL, gradUR := b.GradU.At(li, lj, lk), b.GradU.At(ri, rj, rk)
	gradTL, gradTR := b.GradT.At(li, lj, lk), b.GradT.At(ri, rj, rk)

	faceGradU := visc.ThinShearCorrectTensor(gradUL, gradUR, pl.Velocity(), pr.Velocity(), n, dn)
	tl, tr := gas.Temperature(pl), gas.Temperature(pr)
	faceGradT := visc.ThinShearCorrectScalar(gradTL, gradTR, tl, tr, n, dn)

	uFace := pl.Velocity().Add(pr.Velocity()).Scale(0.5)
	tFace := 0.5 * (tl + tr)
	muLam := gas.Viscosity(tFace)
	kCond := gas.Conductivity(tFace)

	var faceGradK, faceGradOmega geom.Vec3
	var muT float64
	if b.Turb == state.TwoEqnTurb && turbModel != nil {
		gradKL, gradKR := b.GradK.At(li, lj, lk), b.GradK.At(ri, rj, rk)
		gradWL, gradWR := b.GradOmega.At(li, lj, lk), b.GradOmega.At(ri, rj, rk)
		faceGradK = visc.ThinShearCorrectScalar(gradKL, gradKR, pl.K, pr.K, n, dn)
		faceGradOmega = visc.ThinShearCorrectScalar(gradWL, gradWR, pl.Omega, pr.Omega, n, dn)

		pAvg := averagePrimitive(pl, pr)
		wallDistAvg := 0.5 * (b.WallDist.At(li, lj, lk) + b.WallDist.At(ri, rj, rk))
		muT = turbModel.EddyViscosity(pAvg, faceGradU, wallDistAvg)
	}

	return visc.Flux(faceGradU, faceGradT, faceGradK, faceGradOmega, uFace, muLam, muT, kCond, n, areaMag, b.Turb)
}

// addTurbulenceSource subtracts the k-ω production/dissipation source terms
// from each interior cell's residual, per spec.md §4.5.
func (b *ProcBlock) addTurbulenceSource(turbModel turb.Model) {
	if b.Turb != state.TwoEqnTurb {
		return
	}
	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				p := b.Prim.At(i, j, k)
				gradU := b.GradU.At(i, j, k)
				gradK := b.GradK.At(i, j, k)
				gradOmega := b.GradOmega.At(i, j, k)
				wallDist := b.WallDist.At(i, j, k)
				sK, sOmega := turbModel.SourceTerms(p, gradU, gradK, gradOmega, wallDist)
				vol := b.Volume.At(i, j, k)

				cur := b.Residual.At(i, j, k)
				cur.RhoK -= sK * vol
				cur.RhoOmega -= sOmega * vol
				b.Residual.SetAt(i, j, k, cur)
			}
		}
	}
}
