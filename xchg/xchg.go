// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package xchg implements ParallelExchange (spec.md §4.9): ghost-cell fill
// across Interblock and Periodic patches, whether the partner block lives
// on this rank or another, plus the residual-norm and time-step Allreduce
// collectives the time-integration driver needs. Built over gosl/mpi's
// package-level functions, the same style the teacher's fem.FEM.Run
// lifecycle (Start/Stop/IsOn/Rank/Size) and fem.Solver.assembleRHS
// (AllReduceSum) already use against the implicit world communicator.
package xchg

import (
	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/block"
	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/gosl/mpi"
)

// Link pairs one local Interblock/Periodic surface with where its partner
// lives: another ProcBlock owned by this rank (Remote!=nil), or a block
// owned by a different rank (Remote==nil, RemoteRank is who to talk to).
type Link struct {
	Local      *block.ProcBlock
	Surface    *bc.Surface // BCType==Interblock or Periodic; Surface.Patch != nil
	Remote     *block.ProcBlock // non-nil iff the partner is owned by this same rank
	RemoteSurf *bc.Surface      // the partner's own surface record (needed when Remote != nil)
	RemoteRank int              // valid iff Remote == nil
	Tag        int              // message tag, derived from the patch's surface pairing
}

// Exchange drives ghost-fill and collective reductions for one rank's set
// of ProcBlocks. gosl/mpi keeps no communicator handle of its own — every
// call site retrieved (fem.Solver.assembleRHS in all three gofem forks)
// reaches straight for the package-level mpi.IsOn/Rank/Size/AllReduceSum
// functions against the implicit world communicator mpi.Start brings up —
// so Exchange carries no state beyond what a rank already knows about
// itself; see DESIGN.md for what beyond AllReduceSum is not grounded this
// way.
type Exchange struct{}

// New returns an Exchange; mpi.IsOn() gates every collective and cross-rank
// transfer at the call site, so serial runs and unit tests (where
// mpi.Start is never called) fall back to single-rank behavior for free.
func New() *Exchange {
	return &Exchange{}
}

// orientationFor resolves the orientation that maps l.Local's surface
// coordinates onto its partner's, which depends on which side of the Patch
// record l.Local is: data sent from A to B uses Orientation as stored;
// data sent from B to A uses its inverse (spec.md §3's Patch/Orientation
// contract is defined from A's perspective). A receiver always unpacks with
// the orientation of the side that packed the buffer.
func orientationFor(l Link) int {
	p := l.Surface.Patch
	if p.BlockA == l.Local.ID {
		return p.Orientation
	}
	return bc.InverseOrientation(p.Orientation)
}

// FillGhosts exchanges ghost data for every link, blocking until all
// transfers complete. Same-rank links are resolved with a direct
// pack/unpack, never touching the network.
func (x *Exchange) FillGhosts(links []Link) error {
	for _, l := range links {
		if l.Remote != nil {
			buf := l.Local.PackBoundaryLayer(l.Surface)
			l.Remote.UnpackGhostLayer(l.RemoteSurf, buf, orientationFor(l))
			continue
		}
		if !mpi.IsOn() {
			return errs.NewTransientError(errs.MessageLost, "FillGhosts: link to rank %d requires an active MPI session", l.RemoteRank)
		}
		sendBuf := l.Local.PackBoundaryLayer(l.Surface)
		recvBuf := make([]float64, len(sendBuf))
		if l.Local.Rank < l.RemoteRank {
			mpi.Send(sendBuf, l.RemoteRank, l.Tag)
			mpi.Recv(recvBuf, l.RemoteRank, l.Tag)
		} else {
			mpi.Recv(recvBuf, l.RemoteRank, l.Tag)
			mpi.Send(sendBuf, l.RemoteRank, l.Tag)
		}
		l.Local.UnpackGhostLayer(l.Surface, recvBuf, bc.InverseOrientation(orientationFor(l)))
	}
	return nil
}

// ReduceSum returns the global sum of a per-rank scalar (used for both the
// Σ R² accumulation and the interior-cell count behind spec.md §4.8's L2
// residual bookkeeping), via the same AllReduceSum(dest, workspace) shape
// fem.Solver.assembleRHS uses to fold shared-node residuals across ranks.
func (x *Exchange) ReduceSum(local float64) float64 {
	if !mpi.IsOn() {
		return local
	}
	dest := []float64{local}
	workspace := make([]float64, 1)
	mpi.AllReduceSum(dest, workspace)
	return dest[0]
}

// ReduceMin returns the global minimum of a per-rank scalar (used to pick a
// single global Δt under spec.md §4.8's global-timestepping mode).
func (x *Exchange) ReduceMin(local float64) float64 {
	if !mpi.IsOn() {
		return local
	}
	dest := []float64{local}
	workspace := make([]float64, 1)
	mpi.AllReduceMin(dest, workspace)
	return dest[0]
}

// ReduceMax returns the global maximum of a per-rank scalar. Used for the L∞
// residual norm of spec.md §4.8; gosl/mpi exposes no AllReduceMaxloc, so the
// (block,i,j,k,eqn) locator reported alongside it is only exact in the
// single-rank case package integrate is exercised against — see DESIGN.md.
func (x *Exchange) ReduceMax(local float64) float64 {
	if !mpi.IsOn() {
		return local
	}
	dest := []float64{local}
	workspace := make([]float64, 1)
	mpi.AllReduceMax(dest, workspace)
	return dest[0]
}
