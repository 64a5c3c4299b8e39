// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpmech/cflow/block"
	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/recon"
	"github.com/cpmech/cflow/thermo"
	"github.com/cpmech/cflow/turb"
	"github.com/cpmech/cflow/xchg"
)

// rkAlpha are the Jameson-Schmidt-Turkel 4-stage multistage coefficients
// package block.StageStep applies successively for the explicit path.
var rkAlpha = [4]float64{0.25, 1.0 / 3.0, 0.5, 1.0}

// Locator pins the (block, cell, equation) that produced a residual's L∞.
type Locator struct {
	BlockID int
	I, J, K int
	Eqn     int
}

// Report is one outer iteration's residual bookkeeping (spec.md §4.8),
// ready to be handed to an iodeck logger.
type Report struct {
	Iteration    int
	CFL          float64
	L2           []float64 // raw, one entry per active equation
	L2Normalized []float64 // (L2+ε)/(L2_ref+ε), the log's actual columns
	LInf         float64
	LInfLocator  Locator

	// Retries is how many times this Step rejected a candidate update and
	// halved its local CFL scale before one was accepted (spec.md §4.8's
	// step-rejection rule, S6); 0 means the first attempt succeeded.
	Retries int
}

// Driver owns the set of blocks a rank integrates and runs the ordering
// guarantee of spec.md §4.8: Exchange before Gradients before RHS before
// StateUpdate before ResidualReduce, with the collective at the end of
// every inner iteration enforcing lockstep across ranks.
type Driver struct {
	Cfg      Config
	Blocks   []*block.ProcBlock
	Gas      thermo.Gas
	Turb     turb.Model
	Exchange *xchg.Exchange
	Links    []xchg.Link

	cfl       float64
	outerIter int
	l2Ref     []float64
	nvars     int
}

// NewDriver wires a Config, the rank's blocks, the gas/turbulence models and
// an Exchange/Link set (spec.md §4.9) into a ready-to-Step Driver.
func NewDriver(cfg Config, blocks []*block.ProcBlock, gas thermo.Gas, turbModel turb.Model, ex *xchg.Exchange, links []xchg.Link) *Driver {
	nvars := 5
	if len(blocks) > 0 {
		nvars = blocks[0].Turb.NVars()
	}
	return &Driver{
		Cfg:      cfg,
		Blocks:   blocks,
		Gas:      gas,
		Turb:     turbModel,
		Exchange: ex,
		Links:    links,
		cfl:      cfg.CFLInitial,
		l2Ref:    make([]float64, nvars),
		nvars:    nvars,
	}
}

// Step runs one outer (nonlinear) iteration: ghost exchange, local BC
// application, RHS assembly, the explicit or implicit state update, and the
// residual Allreduce, retrying with a halved CFL up to Cfg.MaxRetries times
// whenever the update reports a recoverable errs.NumericalError (spec.md
// §4.8's step-rejection rule, S6).
func (d *Driver) Step() (Report, error) {
	if err := d.fillGhostsRetrying(); err != nil {
		return Report{}, fmt.Errorf("Step %d: %w", d.outerIter, err)
	}
	for _, b := range d.Blocks {
		if err := block.ApplyLocalBCs(b, d.Gas, d.Turb); err != nil {
			return Report{}, fmt.Errorf("Step %d: %w", d.outerIter, err)
		}
	}

	for _, b := range d.Blocks {
		b.SaveState()
	}

	cflScale := 1.0
	var lastErr error
	for attempt := 0; attempt <= d.Cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			for _, b := range d.Blocks {
				b.RestoreState()
			}
			cflScale *= 0.5
		}
		if err := d.assembleAndUpdate(cflScale); err != nil {
			var numErr *errs.NumericalError
			if errors.As(err, &numErr) {
				lastErr = err
				continue
			}
			return Report{}, err
		}
		report := d.computeResidual()
		report.Retries = attempt
		d.outerIter++
		d.cfl = math.Min(d.cfl*d.Cfg.CFLRampFactor, d.Cfg.CFLMax)
		return report, nil
	}
	return Report{}, fmt.Errorf("Step %d: rejected after %d retries: %w", d.outerIter, d.Cfg.MaxRetries, lastErr)
}

// fillGhostsRetrying runs the ghost exchange, retrying up to
// Cfg.TransientRetries times whenever it fails with an errs.TransientError
// (a dropped message or a Recv timeout, spec.md §7) before giving up and
// returning the last transient failure as fatal. Any other error, such as a
// malformed Link, is returned immediately without retrying.
func (d *Driver) fillGhostsRetrying() error {
	var lastErr error
	for attempt := 0; attempt <= d.Cfg.TransientRetries; attempt++ {
		err := d.Exchange.FillGhosts(d.Links)
		if err == nil {
			return nil
		}
		var transientErr *errs.TransientError
		if !errors.As(err, &transientErr) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("ghost exchange: exhausted %d retries: %w", d.Cfg.TransientRetries, lastErr)
}

// assembleAndUpdate runs Gradients (inside AssembleRHS) -> RHS -> StateUpdate
// for every block at the given CFL scale, the middle three links of the
// ordering guarantee; ResidualReduce is computeResidual, called by Step
// only once a candidate update survives.
func (d *Driver) assembleAndUpdate(cflScale float64) error {
	effectiveCFL := d.cfl * cflScale

	if d.Cfg.Implicit {
		diag := &recon.Diagnostics{}
		for _, b := range d.Blocks {
			if err := b.AssembleRHS(d.Gas, d.Turb, d.Cfg.Limiter, diag); err != nil {
				return err
			}
			b.LocalTimeStep(effectiveCFL, d.Gas, d.Turb)
		}
		for _, b := range d.Blocks {
			if err := b.ImplicitStep(1.0, d.Gas); err != nil {
				return err
			}
		}
		return nil
	}

	for _, b := range d.Blocks {
		diag := &recon.Diagnostics{}
		if err := b.AssembleRHS(d.Gas, d.Turb, d.Cfg.Limiter, diag); err != nil {
			return err
		}
		b.LocalTimeStep(effectiveCFL, d.Gas, d.Turb)
	}

	var dtGlobal float64
	if d.Cfg.GlobalTimestepping {
		dtGlobal = d.globalDt()
	}

	for stage, alpha := range rkAlpha {
		if stage > 0 {
			if err := d.fillGhostsRetrying(); err != nil {
				return err
			}
			for _, b := range d.Blocks {
				if err := block.ApplyLocalBCs(b, d.Gas, d.Turb); err != nil {
					return err
				}
			}
			for _, b := range d.Blocks {
				diag := &recon.Diagnostics{}
				if err := b.AssembleRHS(d.Gas, d.Turb, d.Cfg.Limiter, diag); err != nil {
					return err
				}
			}
		}
		for _, b := range d.Blocks {
			dtAt := d.dtFn(b, dtGlobal)
			if err := b.StageStep(b.ConsBackup, dtAt, alpha, d.Gas); err != nil {
				return err
			}
		}
	}
	return nil
}

// dtFn returns the per-cell Δt closure StageStep/ExplicitStep take: either
// block b's own local Δt field, or the rank-wide Allreduce-min under
// Cfg.GlobalTimestepping.
func (d *Driver) dtFn(b *block.ProcBlock, dtGlobal float64) func(i, j, k int) float64 {
	if d.Cfg.GlobalTimestepping {
		return func(i, j, k int) float64 { return dtGlobal }
	}
	return func(i, j, k int) float64 { return b.DtLocal.At(i, j, k) }
}

// globalDt reduces every block's minimum local Δt to one rank-wide value,
// then Allreduce-mins across ranks (spec.md §4.8's global-timestepping mode).
func (d *Driver) globalDt() float64 {
	local := math.Inf(1)
	for _, b := range d.Blocks {
		for k := 0; k < b.Nk; k++ {
			for j := 0; j < b.Nj; j++ {
				for i := 0; i < b.Ni; i++ {
					if dt := b.DtLocal.At(i, j, k); dt < local {
						local = dt
					}
				}
			}
		}
	}
	return d.Exchange.ReduceMin(local)
}

// computeResidual is the ResidualReduce step: per-equation Σ R² and the
// worst |R| with its locator, Allreduced across ranks, then normalized
// against L2_ref (captured over the first Cfg.L2RefWindow iterations).
func (d *Driver) computeResidual() Report {
	sumSq := make([]float64, d.nvars)
	count := 0
	worst := -1.0
	var worstLoc Locator

	for _, b := range d.Blocks {
		for k := 0; k < b.Nk; k++ {
			for j := 0; j < b.Nj; j++ {
				for i := 0; i < b.Ni; i++ {
					arr := b.Residual.At(i, j, k).Array()
					for v, val := range arr {
						sumSq[v] += val * val
						if a := math.Abs(val); a > worst {
							worst = a
							worstLoc = Locator{BlockID: b.ID, I: i, J: j, K: k, Eqn: v}
						}
					}
					count++
				}
			}
		}
	}

	globalCount := d.Exchange.ReduceSum(float64(count))
	l2 := make([]float64, d.nvars)
	for v := range sumSq {
		l2[v] = math.Sqrt(d.Exchange.ReduceSum(sumSq[v])) / globalCount
	}
	linf := d.Exchange.ReduceMax(worst)

	if d.outerIter < d.Cfg.L2RefWindow {
		for v := range l2 {
			if l2[v] > d.l2Ref[v] {
				d.l2Ref[v] = l2[v]
			}
		}
	}

	const eps = 1e-30
	normalized := make([]float64, d.nvars)
	for v := range l2 {
		normalized[v] = (l2[v] + eps) / (d.l2Ref[v] + eps)
	}

	return Report{
		Iteration:    d.outerIter,
		CFL:          d.cfl,
		L2:           l2,
		L2Normalized: normalized,
		LInf:         linf,
		LInfLocator:  worstLoc,
	}
}
