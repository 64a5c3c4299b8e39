// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package array implements the contiguous ghosted (i,j,k) storage shared by
// every per-cell and per-face field in the solver: cell state, geometry,
// gradients, residuals and per-cell time steps. A single dense buffer with
// ghost width G models the halo directly (spec.md §9 design note), so inner
// kernels can sweep [G-1, G+N+1) without conditional branches at faces.
package array

import "github.com/cpmech/gosl/chk"

// MultiArray3D stores (Ni+2G)(Nj+2G)(Nk+2G) values of type T in one
// contiguous buffer, k outermost, so that fixed-(j,k) i-sweeps are
// sequential in memory.
type MultiArray3D[T any] struct {
	Ni, Nj, Nk int // interior (non-ghost) extents
	G          int // ghost width, uniform on all six faces
	data       []T
}

// NewMultiArray3D allocates a new array of interior size (ni,nj,nk) with
// ghost width g on all six faces.
func NewMultiArray3D[T any](ni, nj, nk, g int) *MultiArray3D[T] {
	if ni <= 0 || nj <= 0 || nk <= 0 || g < 0 {
		chk.Panic("MultiArray3D: invalid dimensions ni=%d nj=%d nk=%d g=%d", ni, nj, nk, g)
	}
	n := (ni + 2*g) * (nj + 2*g) * (nk + 2*g)
	return &MultiArray3D[T]{Ni: ni, Nj: nj, Nk: nk, G: g, data: make([]T, n)}
}

// dims returns the padded (with-ghost) extents
func (a *MultiArray3D[T]) dims() (pi, pj, pk int) {
	return a.Ni + 2*a.G, a.Nj + 2*a.G, a.Nk + 2*a.G
}

// idx converts a raw (i,j,k) index, where i,j,k ∈ [0, N+2G), into a flat
// offset. Indices are NOT shifted by G here: callers use raw storage
// coordinates. At(...) below offers the G-shifted convenience accessor.
func (a *MultiArray3D[T]) idx(i, j, k int) int {
	pi, pj, _ := a.dims()
	return k*pi*pj + j*pi + i
}

// Get returns the value at raw storage coordinates (i,j,k), each in
// [0, N+2G).
func (a *MultiArray3D[T]) Get(i, j, k int) T {
	return a.data[a.idx(i, j, k)]
}

// Set assigns the value at raw storage coordinates (i,j,k).
func (a *MultiArray3D[T]) Set(i, j, k int, v T) {
	a.data[a.idx(i, j, k)] = v
}

// At returns the value at interior-relative coordinates: the cell
// Interior(b)=[G,G+N) maps to at(0,0,0)..at(N-1,N-1,N-1); negative indices
// or indices ≥ N address the ghost halo, exactly like spec.md §3's
// Interior() definition.
func (a *MultiArray3D[T]) At(i, j, k int) T {
	return a.Get(i+a.G, j+a.G, k+a.G)
}

// SetAt assigns the value at interior-relative coordinates (see At).
func (a *MultiArray3D[T]) SetAt(i, j, k int, v T) {
	a.Set(i+a.G, j+a.G, k+a.G, v)
}

// Dims returns the interior extents and ghost width.
func (a *MultiArray3D[T]) Dims() (ni, nj, nk, g int) {
	return a.Ni, a.Nj, a.Nk, a.G
}

// Raw returns the backing buffer; used by ParallelExchange to pack/unpack
// message buffers without per-element method-call overhead.
func (a *MultiArray3D[T]) Raw() []T {
	return a.data
}

// View is a borrowed sub-range of a MultiArray3D that shares the parent's
// backing buffer: mutation through a View mutates the parent, satisfying
// spec.md §4.1's slice-view contract.
type View[T any] struct {
	parent           *MultiArray3D[T]
	i0, j0, k0       int // raw-coordinate origin of the view within parent
	ni, nj, nk       int // view extents
}

// Slice returns a view over the raw-coordinate box
// [i0,i0+ni) x [j0,j0+nj) x [k0,k0+nk).
func (a *MultiArray3D[T]) Slice(i0, j0, k0, ni, nj, nk int) *View[T] {
	return &View[T]{parent: a, i0: i0, j0: j0, k0: k0, ni: ni, nj: nj, nk: nk}
}

// Get returns the value at view-local coordinates (i,j,k).
func (v *View[T]) Get(i, j, k int) T {
	return v.parent.Get(v.i0+i, v.j0+j, v.k0+k)
}

// Set assigns the value at view-local coordinates (i,j,k), mutating the
// parent array in place.
func (v *View[T]) Set(i, j, k int, val T) {
	v.parent.Set(v.i0+i, v.j0+j, v.k0+k, val)
}

// Dims returns the view's extents.
func (v *View[T]) Dims() (ni, nj, nk int) {
	return v.ni, v.nj, v.nk
}
