// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package visc implements the cell-centered Green-Gauss gradient
// reconstruction and the viscous (diffusive) flux assembly of spec.md
// §4.4: stress tensor, heat flux, and turbulent diffusion, with Sutherland
// transport properties supplied by the thermo.Gas collaborator.
package visc

import "github.com/cpmech/cflow/geom"

// GreenGaussVec3 computes ∇φ for a scalar field φ at a cell center via the
// Green-Gauss formula ∇φ|_c = (1/V_c) Σ_f φ_f Â_f·A_f, given the six
// face-averaged values and their area-weighted outward normals.
func GreenGaussVec3(faceValues []float64, faceAreas []geom.Vec3, volume float64) geom.Vec3 {
	var sum geom.Vec3
	for i, v := range faceValues {
		sum = sum.Add(faceAreas[i].Scale(v))
	}
	return sum.Scale(1 / volume)
}

// GreenGaussTensor computes the velocity gradient ∇u (or any vector field's
// gradient) at a cell center via Green-Gauss: row i is ∇u_i, i.e.
// GreenGaussTensor(...)[i][j] = ∂u_i/∂x_j.
func GreenGaussTensor(faceValues []geom.Vec3, faceAreas []geom.Vec3, volume float64) geom.Tensor3 {
	var sum geom.Tensor3
	for i, v := range faceValues {
		sum = sum.Add(v.Outer(faceAreas[i]))
	}
	return sum.Scale(1 / volume)
}

// ThinShearCorrectScalar blends the cell-average gradient of a scalar field
// with a direct face-normal finite difference, per spec.md §4.4's
// thin-shear-layer correction: the component of the averaged gradient along
// the face normal n is replaced by (valR-valL)/dn, suppressing odd-even
// decoupling, while the tangential components are kept from averaging.
func ThinShearCorrectScalar(gradL, gradR geom.Vec3, valL, valR float64, n geom.Vec3, dn float64) geom.Vec3 {
	avg := gradL.Add(gradR).Scale(0.5)
	direct := (valR - valL) / dn
	correction := direct - avg.Dot(n)
	return avg.Add(n.Scale(correction))
}

// ThinShearCorrectTensor applies ThinShearCorrectScalar row-by-row to a
// velocity-gradient tensor.
func ThinShearCorrectTensor(gradL, gradR geom.Tensor3, uL, uR geom.Vec3, n geom.Vec3, dn float64) geom.Tensor3 {
	compL := [3]float64{uL.X, uL.Y, uL.Z}
	compR := [3]float64{uR.X, uR.Y, uR.Z}
	var out geom.Tensor3
	for i := 0; i < 3; i++ {
		corrected := ThinShearCorrectScalar(gradL.Row(i), gradR.Row(i), compL[i], compR[i], n, dn)
		out[i] = [3]float64{corrected.X, corrected.Y, corrected.Z}
	}
	return out
}
