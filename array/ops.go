// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package array

import "github.com/cpmech/gosl/chk"

// Addable is satisfied by any per-cell value type with its own Add/Scale
// algebra (state.Conservative, geom.Vec3, geom.Tensor3 all qualify).
type Addable[T any] interface {
	Add(T) T
}

// Scalable is satisfied by any per-cell value type with its own Scale
// algebra.
type Scalable[T any] interface {
	Scale(float64) T
}

func sameShape[T any](a, b *MultiArray3D[T]) bool {
	return a.Ni == b.Ni && a.Nj == b.Nj && a.Nk == b.Nk && a.G == b.G
}

// AddInto computes dst = a+b componentwise, over the full padded extent
// (interior and ghosts alike), matching spec.md §4.1's "assignable/addable
// componentwise" contract.
func AddInto[T Addable[T]](dst, a, b *MultiArray3D[T]) {
	if !sameShape(a, b) || !sameShape(a, dst) {
		chk.Panic("array.AddInto: shape mismatch")
	}
	da, db, dd := a.Raw(), b.Raw(), dst.Raw()
	for i := range da {
		dd[i] = da[i].Add(db[i])
	}
}

// ScaleInto computes dst = s*a componentwise.
func ScaleInto[T Scalable[T]](dst, a *MultiArray3D[T], s float64) {
	if !sameShape(a, dst) {
		chk.Panic("array.ScaleInto: shape mismatch")
	}
	da, dd := a.Raw(), dst.Raw()
	for i := range da {
		dd[i] = da[i].Scale(s)
	}
}

// Fill sets every element (interior and ghost) to v.
func Fill[T any](a *MultiArray3D[T], v T) {
	d := a.Raw()
	for i := range d {
		d[i] = v
	}
}

// CopyInto copies src into dst; both must have the same shape.
func CopyInto[T any](dst, src *MultiArray3D[T]) {
	if !sameShape(src, dst) {
		chk.Panic("array.CopyInto: shape mismatch")
	}
	copy(dst.Raw(), src.Raw())
}
