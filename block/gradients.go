// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
	"github.com/cpmech/cflow/visc"
)

// faceSample gathers, for one of a cell's six faces, the outward
// area-weighted normal and the neighbor cell's (i,j,k).
type faceSample struct {
	ni, nj, nk int
	area       geom.Vec3
}

// cellFaces returns the six faceSamples for interior cell (i,j,k), in the
// fixed order [iLow, iHigh, jLow, jHigh, kLow, kHigh].
func (b *ProcBlock) cellFaces(i, j, k int) [6]faceSample {
	var s [6]faceSample
	s[0] = faceSample{i - 1, j, k, b.FaceNormal[0].At(i, j, k).Scale(-1)}
	s[1] = faceSample{i + 1, j, k, b.FaceNormal[0].At(i+1, j, k)}
	s[2] = faceSample{i, j - 1, k, b.FaceNormal[1].At(i, j, k).Scale(-1)}
	s[3] = faceSample{i, j + 1, k, b.FaceNormal[1].At(i, j+1, k)}
	s[4] = faceSample{i, j, k - 1, b.FaceNormal[2].At(i, j, k).Scale(-1)}
	s[5] = faceSample{i, j, k + 1, b.FaceNormal[2].At(i, j, k+1)}
	return s
}

// ComputeGradients fills GradU, GradT and (when turbulent) GradK/GradOmega
// at every interior cell center via the Green-Gauss formula of spec.md
// §4.4, averaging each face value from the two neighboring cell centers.
// The thin-shear-layer correction is applied later, per face, when
// AssembleRHS builds the viscous flux (package visc), not here.
func (b *ProcBlock) ComputeGradients(gas thermo.Gas) {
	turbulent := b.Turb == state.TwoEqnTurb
	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				vol := b.Volume.At(i, j, k)
				faces := b.cellFaces(i, j, k)

				pc := b.Prim.At(i, j, k)
				uVals := make([]geom.Vec3, 6)
				tVals := make([]float64, 6)
				areas := make([]geom.Vec3, 6)
				var kVals, wVals []float64
				if turbulent {
					kVals = make([]float64, 6)
					wVals = make([]float64, 6)
				}

				tc := gas.Temperature(pc)
				for f, s := range faces {
					pn := b.Prim.At(s.ni, s.nj, s.nk)
					uVals[f] = pc.Velocity().Add(pn.Velocity()).Scale(0.5)
					tVals[f] = 0.5 * (tc + gas.Temperature(pn))
					areas[f] = s.area
					if turbulent {
						kVals[f] = 0.5 * (pc.K + pn.K)
						wVals[f] = 0.5 * (pc.Omega + pn.Omega)
					}
				}

				b.GradU.SetAt(i, j, k, visc.GreenGaussTensor(uVals, areas[:], vol))
				b.GradT.SetAt(i, j, k, visc.GreenGaussVec3(tVals, areas[:], vol))
				if turbulent {
					b.GradK.SetAt(i, j, k, visc.GreenGaussVec3(kVals, areas[:], vol))
					b.GradOmega.SetAt(i, j, k, visc.GreenGaussVec3(wVals, areas[:], vol))
				}
			}
		}
	}
}
