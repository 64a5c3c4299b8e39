// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"fmt"
	"os"

	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/integrate"
)

// residualNames is the fixed equation-name order a Report's L2/L2Normalized
// slices are indexed in, matching state.Conservative.Array()'s layout.
var residualNames = []string{"Mass", "Mom-X", "Mom-Y", "Mom-Z", "Energy", "Tke", "Omega"}

// ResidualLog writes one line per reported outer iteration to a file:
//
//	Step CFL Res-Mass Res-Mom-X Res-Mom-Y Res-Mom-Z Res-Energy
//	[Res-Tke Res-Omega] Max-Eqn Max-Blk Max-I Max-J Max-K Max-Res
//
// The Res-* columns are the normalized L2 residuals and the Max-* columns
// locate and give the L∞ residual. The column header is written once, at
// the top of the file, and is not repeated; the log has no nonlinear-
// iteration, time-step or matrix-residual column, and writes nothing to
// stdout.
type ResidualLog struct {
	f        *os.File
	headered bool
}

// NewResidualLog creates fnamepath, truncating any existing file; the
// column header is written by the first Write.
func NewResidualLog(fnamepath string) (*ResidualLog, error) {
	f, err := os.Create(fnamepath)
	if err != nil {
		return nil, errs.NewIOError("iodeck: cannot create residual log %q: %v", fnamepath, err)
	}
	return &ResidualLog{f: f}, nil
}

// Close flushes and closes the underlying file.
func (l *ResidualLog) Close() error {
	return l.f.Close()
}

// Write appends one Report as a log line, writing the column header first
// if this is the log's first Write call (so the column count matches the
// number of active equations, laminar or turbulent).
func (l *ResidualLog) Write(r integrate.Report) {
	if !l.headered {
		fmt.Fprintf(l.f, "%8s %4s", "Step", "CFL")
		for i := range r.L2Normalized {
			fmt.Fprintf(l.f, " %14s", "Res-"+residualNames[i])
		}
		fmt.Fprintf(l.f, " %10s %6s %4s %4s %4s %14s\n", "Max-Eqn", "Max-Blk", "Max-I", "Max-J", "Max-K", "Max-Res")
		l.headered = true
	}
	fmt.Fprintf(l.f, "%8d %4.2e", r.Iteration, r.CFL)
	for _, v := range r.L2Normalized {
		fmt.Fprintf(l.f, " %14.6e", v)
	}
	fmt.Fprintf(l.f, " %10s %6d %4d %4d %4d %14.6e\n",
		residualNames[r.LInfLocator.Eqn], r.LInfLocator.BlockID,
		r.LInfLocator.I, r.LInfLocator.J, r.LInfLocator.K, r.LInf)
}
