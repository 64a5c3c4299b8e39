// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visc

import (
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
)

// SigmaK and SigmaOmega are the turbulent-diffusion Prandtl numbers for the
// k and ω transport equations (Wilcox 2006 / Menter SST share the same
// order of magnitude; the concrete turb.Model supplies the exact blended
// values used in its own source terms, this package only needs a single
// representative pair for the diffusion flux it assembles).
const (
	SigmaK     = 0.6
	SigmaOmega = 0.5
)

// Flux computes the viscous (diffusive) flux through a face with outward
// unit normal n and area magnitude areaMag, given the face-averaged
// (thin-shear-layer corrected) velocity gradient, temperature gradient and
// turbulence-variable gradients, the face velocity, and the effective
// transport properties. Returns the flux in the same component order as
// recon.RoeFlux (mass has no viscous contribution, so index 0 is always
// zero).
func Flux(faceGradU geom.Tensor3, faceGradT geom.Vec3, faceGradK, faceGradOmega geom.Vec3,
	uFace geom.Vec3, muLam, muT, kCond float64, n geom.Vec3, areaMag float64, turb state.NTurb) []float64 {

	tau := geom.StrainRateStress(faceGradU, muLam+muT)
	tauDotN := tau.Apply(n)
	q := faceGradT.Scale(-kCond) // Fourier's law: q = -k∇T

	nvar := 5
	if turb == state.TwoEqnTurb {
		nvar = 7
	}
	f := make([]float64, nvar)
	f[0] = 0
	f[1] = tauDotN.X
	f[2] = tauDotN.Y
	f[3] = tauDotN.Z
	f[4] = tauDotN.Dot(uFace) - q.Dot(n)
	if turb == state.TwoEqnTurb {
		muEffK := muLam + SigmaK*muT
		muEffW := muLam + SigmaOmega*muT
		f[5] = muEffK * faceGradK.Dot(n)
		f[6] = muEffW * faceGradOmega.Dot(n)
	}
	for i := range f {
		f[i] *= areaMag
	}
	return f
}
