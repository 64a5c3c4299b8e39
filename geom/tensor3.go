// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// Tensor3 is a dense 3x3 tensor; used for velocity gradients and the
// viscous stress tensor. Unlike gosl/tsr's Mandel-vector representation
// (which assumes symmetry), Tensor3 keeps all nine components because the
// velocity gradient ∇u is, in general, not symmetric.
type Tensor3 [3][3]float64

// Identity returns the 3x3 identity tensor
func Identity() Tensor3 {
	return Tensor3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Add returns a+b
func (a Tensor3) Add(b Tensor3) (r Tensor3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] + b[i][j]
		}
	}
	return
}

// Scale returns s*a
func (a Tensor3) Scale(s float64) (r Tensor3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = s * a[i][j]
		}
	}
	return
}

// Transpose returns aᵀ
func (a Tensor3) Transpose() (r Tensor3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[j][i]
		}
	}
	return
}

// Trace returns tr(a)
func (a Tensor3) Trace() float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// Sym returns the symmetric part (a+aᵀ)/2
func (a Tensor3) Sym() Tensor3 {
	return a.Add(a.Transpose()).Scale(0.5)
}

// Apply returns a·v
func (a Tensor3) Apply(v Vec3) Vec3 {
	return Vec3{
		a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

// Row returns row i (0-based) as a Vec3
func (a Tensor3) Row(i int) Vec3 {
	return Vec3{a[i][0], a[i][1], a[i][2]}
}

// Col returns column j (0-based) as a Vec3
func (a Tensor3) Col(j int) Vec3 {
	return Vec3{a[0][j], a[1][j], a[2][j]}
}

// StrainRateStress builds the Newtonian viscous stress tensor
//   τ = (μ+μt)(∇u + ∇uᵀ - (2/3)(∇·u) I)
// gradU is the velocity gradient ∇u, i.e. gradU[i][j] = ∂u_i/∂x_j.
func StrainRateStress(gradU Tensor3, muEff float64) Tensor3 {
	divU := gradU.Trace()
	s := gradU.Add(gradU.Transpose())
	dev := Identity().Scale(-2.0 / 3.0 * divU)
	return s.Add(dev).Scale(muEff)
}
