// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cflow is the structured-grid compressible Navier-Stokes solver's entry
// point, mirroring gofem's main.go: parse a deck path, recover from panics
// under MPI, and flush the run's log before mpi.Stop.
package main

import (
	"flag"
	"strconv"

	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/block"
	"github.com/cpmech/cflow/integrate"
	"github.com/cpmech/cflow/iodeck"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/turb"
	"github.com/cpmech/cflow/xchg"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\ncflow -- structured-grid compressible Navier-Stokes solver\n\n")
	}

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a case deck filename. Ex.: case.json")
	}
	deckPath := flag.Arg(0)
	maxIter := 1000
	if len(flag.Args()) > 1 {
		n, err := parseInt(flag.Arg(1))
		if err != nil {
			chk.Panic("bad max-iterations argument: %v", err)
		}
		maxIter = n
	}

	cfg, err := iodeck.ReadConfig(deckPath)
	if err != nil {
		chk.Panic("%v", err)
	}

	gas := cfg.NewGas()
	grids, err := iodeck.ReadPlot3DMultiBlock(cfg.GridFile)
	if err != nil {
		chk.Panic("%v", err)
	}
	bcsByBlock, err := iodeck.ReadBCDeck(cfg.BCFile)
	if err != nil {
		chk.Panic("%v", err)
	}

	turbArity := state.Laminar
	var turbModel turb.Model
	switch cfg.TurbulenceModel {
	case "", "none":
	case "wilcox":
		turbArity = state.TwoEqnTurb
		turbModel = turb.NewWilcox(gas)
	case "sst", "sst-des":
		turbArity = state.TwoEqnTurb
		turbModel = turb.NewMenterSST(gas)
	default:
		chk.Panic("unknown turbulence model %q", cfg.TurbulenceModel)
	}

	blocks := make([]*block.ProcBlock, len(grids))
	for id, g := range grids {
		ni, nj, nk := g.Ni-1, g.Nj-1, g.Nk-1
		b := block.New(id, mpi.Rank(), ni, nj, nk, 2, turbArity)
		b.BuildGeometry(g)
		b.BCs = bcsByBlock[id]
		blocks[id] = b
	}

	links := buildLocalLinks(blocks)

	driverCfg, err := cfg.ToIntegrateConfig()
	if err != nil {
		chk.Panic("%v", err)
	}
	ex := xchg.New()
	driver := integrate.NewDriver(driverCfg, blocks, gas, turbModel, ex, links)

	log, err := iodeck.NewResidualLog(cfg.Name + ".log")
	if err != nil {
		chk.Panic("%v", err)
	}
	defer log.Close()

	if err := iodeck.WriteMeshOutput(cfg.Name+".mesh", blocks, cfg.Reference); err != nil {
		chk.Panic("%v", err)
	}

	fieldCtx := iodeck.FieldContext{Gas: gas, Turb: turbModel}
	var snapshotTimes []float64

	for iter := 0; iter < maxIter; iter++ {
		report, err := driver.Step()
		if err != nil {
			chk.Panic("%v", err)
		}
		if iter%driverCfg.OutputFrequency == 0 {
			log.Write(report)
			snapshotTimes = append(snapshotTimes, float64(iter))
			fnamepath := io.Sf("%s_%06d.fun", cfg.Name, iter)
			if err := iodeck.WriteFunctionOutput(fnamepath, blocks, cfg.OutputVars, fieldCtx, cfg.Reference); err != nil {
				chk.Panic("%v", err)
			}
		}
	}

	if err := iodeck.WriteResultIndex(cfg.Name+".index", cfg.OutputVars, snapshotTimes, driverCfg.OutputFrequency); err != nil {
		chk.Panic("%v", err)
	}

	if mpi.Rank() == 0 {
		io.PfGreen("> done\n")
	}
}

// buildLocalLinks derives same-rank ghost-exchange Links from every
// Interblock/Periodic surface's Patch, pairing each surface with its
// partner block/surface (spec.md §4.9). Cross-rank links need the global
// block-to-rank map decomp.Decomposition produces and are left to the
// case-specific launcher that owns that map.
func buildLocalLinks(blocks []*block.ProcBlock) []xchg.Link {
	byID := make(map[int]*block.ProcBlock, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}
	var links []xchg.Link
	for _, b := range blocks {
		for _, s := range b.BCs {
			if s.Patch == nil {
				continue
			}
			p := s.Patch
			partnerID := p.BlockB
			if p.BlockA != b.ID {
				partnerID = p.BlockA
			}
			partner, ok := byID[partnerID]
			if !ok {
				continue // cross-rank: handled by the launcher, not here
			}
			wantTag := p.SurfB
			if p.BlockA != b.ID {
				wantTag = p.SurfA
			}
			remoteSurf := findSurfaceByTag(partner, wantTag)
			if remoteSurf == nil {
				continue
			}
			links = append(links, xchg.Link{Local: b, Surface: s, Remote: partner, RemoteSurf: remoteSurf})
		}
	}
	return links
}

// findSurfaceByTag locates the surface on b carrying the given Tag, the
// identifier a Patch's SurfA/SurfB refers to its partner by.
func findSurfaceByTag(b *block.ProcBlock, tag int) *bc.Surface {
	for _, s := range b.BCs {
		if s.Tag == tag {
			return s
		}
	}
	return nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
