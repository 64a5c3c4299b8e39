// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package block implements ProcBlock, the structured finite-volume block
// owned by one rank (spec.md §3/§4.2): geometry, primitive/conservative
// state, gradients, residuals, per-cell Δt, its boundary-condition list and
// the split-history tag that lets Recombine (package decomp) fuse it back
// with its siblings.
package block

import (
	"github.com/cpmech/cflow/array"
	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/gosl/la"
)

// Dir enumerates the three logical directions, matching bc.Axis.
type Dir = bc.Axis

const (
	DirI = bc.AxisI
	DirJ = bc.AxisJ
	DirK = bc.AxisK
)

// ProcBlock is one structured block, with ghost halo of width G on all six
// faces, owned by rank Rank (spec.md §4.2).
type ProcBlock struct {
	ID   int
	Rank int
	Ni, Nj, Nk int
	G          int
	Turb       state.NTurb

	// geometry
	CellCenter *array.MultiArray3D[geom.Vec3]
	Volume     *array.MultiArray3D[float64]
	// FaceNormal[d]/FaceCentroid[d] are staggered along direction d: their
	// extent along d is N_d+1, matching spec.md §3's three staggered face
	// arrays.
	FaceNormal   [3]*array.MultiArray3D[geom.Vec3]
	FaceCentroid [3]*array.MultiArray3D[geom.Vec3]

	// state
	Prim *array.MultiArray3D[state.Primitive]
	Cons *array.MultiArray3D[state.Conservative]

	// scratch: gradients, valid only during the nonlinear iteration that
	// produced them (spec.md §3 lifecycle)
	GradU     *array.MultiArray3D[geom.Tensor3]
	GradT     *array.MultiArray3D[geom.Vec3]
	GradK     *array.MultiArray3D[geom.Vec3]
	GradOmega *array.MultiArray3D[geom.Vec3]

	// scratch: per-cell surface-flux balance (spec.md §3 "residual"); the
	// explicit/implicit update divides by Volume and advances state.
	Residual *array.MultiArray3D[state.Conservative]

	// scratch: per-cell local time step
	DtLocal *array.MultiArray3D[float64]

	// precomputed once per grid
	WallDist *array.MultiArray3D[float64]

	// boundary conditions
	BCs bc.List

	// decomposition provenance: GlobalPos is the block's position tag in
	// the original (pre-split) mesh numbering; SplitID identifies which
	// split-history leaf this ProcBlock corresponds to (spec.md §3).
	GlobalPos [3]int
	SplitID   int

	// implicit-path linear solver state: a Triplet + LinSol pair per
	// block, mirroring fem.Domain.Kb/Domain.LinSol, so the implicit
	// time-integration driver gets a pluggable sparse-solver backend
	// (umfpack/mumps) for the LU-SGS operator.
	LinTriplet *la.Triplet
	LinSolver  la.LinSol
	linSolInit bool

	// rollback snapshot used by the step-rejection/retry logic in package
	// integrate when a candidate step violates the positivity invariant.
	ConsBackup *array.MultiArray3D[state.Conservative]
	PrimBackup *array.MultiArray3D[state.Primitive]
}

// New allocates a ProcBlock of interior size (ni,nj,nk) with ghost width g.
func New(id, rank, ni, nj, nk, g int, turb state.NTurb) *ProcBlock {
	b := &ProcBlock{ID: id, Rank: rank, Ni: ni, Nj: nj, Nk: nk, G: g, Turb: turb}
	b.CellCenter = array.NewMultiArray3D[geom.Vec3](ni, nj, nk, g)
	b.Volume = array.NewMultiArray3D[float64](ni, nj, nk, g)

	dims := [3][3]int{{ni + 1, nj, nk}, {ni, nj + 1, nk}, {ni, nj, nk + 1}}
	for d := 0; d < 3; d++ {
		b.FaceNormal[d] = array.NewMultiArray3D[geom.Vec3](dims[d][0], dims[d][1], dims[d][2], g)
		b.FaceCentroid[d] = array.NewMultiArray3D[geom.Vec3](dims[d][0], dims[d][1], dims[d][2], g)
	}

	b.Prim = array.NewMultiArray3D[state.Primitive](ni, nj, nk, g)
	b.Cons = array.NewMultiArray3D[state.Conservative](ni, nj, nk, g)
	b.GradU = array.NewMultiArray3D[geom.Tensor3](ni, nj, nk, g)
	b.GradT = array.NewMultiArray3D[geom.Vec3](ni, nj, nk, g)
	if turb == state.TwoEqnTurb {
		b.GradK = array.NewMultiArray3D[geom.Vec3](ni, nj, nk, g)
		b.GradOmega = array.NewMultiArray3D[geom.Vec3](ni, nj, nk, g)
	}
	b.Residual = array.NewMultiArray3D[state.Conservative](ni, nj, nk, g)
	b.DtLocal = array.NewMultiArray3D[float64](ni, nj, nk, g)
	b.WallDist = array.NewMultiArray3D[float64](ni, nj, nk, g)
	b.ConsBackup = array.NewMultiArray3D[state.Conservative](ni, nj, nk, g)
	b.PrimBackup = array.NewMultiArray3D[state.Primitive](ni, nj, nk, g)
	return b
}

// NFaces returns the number of faces along direction d (N_d+1).
func (b *ProcBlock) NFaces(d Dir) int {
	switch d {
	case DirI:
		return b.Ni + 1
	case DirJ:
		return b.Nj + 1
	}
	return b.Nk + 1
}

// SyncConsFromPrim recomputes Cons from Prim over the full padded extent
// (interior and ghosts), e.g. after FillGhosts has written new primitive
// ghost values.
func (b *ProcBlock) SyncConsFromPrim(gas interface {
	ToCons(state.Primitive) state.Conservative
}) {
	pr, cr := b.Prim.Raw(), b.Cons.Raw()
	for i := range pr {
		cr[i] = gas.ToCons(pr[i])
	}
}

// SyncPrimFromCons recomputes Prim from Cons over interior cells only,
// returning the first error encountered (a non-positive density), which
// callers surface as a NumericalError (package integrate).
func (b *ProcBlock) SyncPrimFromCons(gas interface {
	ToPrim(state.Conservative) (state.Primitive, error)
}) error {
	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				c := b.Cons.At(i, j, k)
				p, err := gas.ToPrim(c)
				if err != nil {
					return err
				}
				b.Prim.SetAt(i, j, k, p)
			}
		}
	}
	return nil
}
