// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/cflow/bc"
	"github.com/cpmech/cflow/errs"
)

var kindByName = map[string]bc.Kind{
	"slip-wall":               bc.SlipWall,
	"viscous-wall-isothermal": bc.ViscousWallIsothermal,
	"viscous-wall-adiabatic":  bc.ViscousWallAdiabatic,
	"subsonic-inflow":         bc.SubsonicInflow,
	"supersonic-inflow":       bc.SupersonicInflow,
	"subsonic-outflow":        bc.SubsonicOutflow,
	"supersonic-outflow":      bc.SupersonicOutflow,
	"farfield":                bc.Farfield,
	"periodic":                bc.Periodic,
	"interblock":              bc.Interblock,
}

// ReadBCDeck parses the ASCII boundary-condition deck spec.md §6 names,
// one surface record per non-blank, non-'#' line:
//
//	<blockID> <kind> <iMin> <iMax> <jMin> <jMax> <kMin> <kMax> <tag> [key=value ...]
//
// key=value pairs carry the per-kind extras: twall, walllaw, rho, u, v, w,
// p, k, omega (FreestreamState/TWall/WallLaw), or patchblock/patchsurf/
// patchorient (bc.Patch, for interblock/periodic surfaces; Patch.BlockA/
// SurfA are this line's blockID/tag). Returns the parsed surfaces grouped
// by owning block ID.
func ReadBCDeck(fnamepath string) (map[int]bc.List, error) {
	f, err := os.Open(fnamepath)
	if err != nil {
		return nil, errs.NewIOError("iodeck: cannot open BC deck %q: %v", fnamepath, err)
	}
	defer f.Close()

	out := make(map[int]bc.List)
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			return nil, errs.NewConfigError("iodeck: %q line %d: expected at least 9 fields, got %d", fnamepath, lineNo, len(fields))
		}
		blockID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errs.NewConfigError("iodeck: %q line %d: bad block id %q", fnamepath, lineNo, fields[0])
		}
		kind, ok := kindByName[fields[1]]
		if !ok {
			return nil, errs.NewConfigError("iodeck: %q line %d: unknown BC kind %q", fnamepath, lineNo, fields[1])
		}
		idx := make([]int, 6)
		for i := 0; i < 6; i++ {
			idx[i], err = strconv.Atoi(fields[2+i])
			if err != nil {
				return nil, errs.NewConfigError("iodeck: %q line %d: bad index %q", fnamepath, lineNo, fields[2+i])
			}
		}
		tag, err := strconv.Atoi(fields[8])
		if err != nil {
			return nil, errs.NewConfigError("iodeck: %q line %d: bad tag %q", fnamepath, lineNo, fields[8])
		}

		s := &bc.Surface{
			BCType: kind,
			IMin:   idx[0], IMax: idx[1], JMin: idx[2], JMax: idx[3], KMin: idx[4], KMax: idx[5],
			Tag: tag,
		}

		var patchBlock, patchSurf, patchOrient int
		var havePatch bool
		for _, kv := range fields[9:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, errs.NewConfigError("iodeck: %q line %d: malformed key=value %q", fnamepath, lineNo, kv)
			}
			switch strings.ToLower(k) {
			case "twall":
				s.TWall, _ = strconv.ParseFloat(v, 64)
			case "walllaw":
				s.WallLaw = v == "1" || strings.EqualFold(v, "true")
			case "rho":
				s.Freestream.Rho, _ = strconv.ParseFloat(v, 64)
			case "u":
				s.Freestream.U, _ = strconv.ParseFloat(v, 64)
			case "v":
				s.Freestream.V, _ = strconv.ParseFloat(v, 64)
			case "w":
				s.Freestream.W, _ = strconv.ParseFloat(v, 64)
			case "p":
				s.Freestream.P, _ = strconv.ParseFloat(v, 64)
			case "k":
				s.Freestream.K, _ = strconv.ParseFloat(v, 64)
			case "omega":
				s.Freestream.Omega, _ = strconv.ParseFloat(v, 64)
			case "patchblock":
				patchBlock, _ = strconv.Atoi(v)
				havePatch = true
			case "patchsurf":
				patchSurf, _ = strconv.Atoi(v)
				havePatch = true
			case "patchorient":
				patchOrient, _ = strconv.Atoi(v)
				havePatch = true
			default:
				return nil, errs.NewConfigError("iodeck: %q line %d: unknown key %q", fnamepath, lineNo, k)
			}
		}
		if havePatch {
			s.Patch = &bc.Patch{BlockA: blockID, SurfA: tag, BlockB: patchBlock, SurfB: patchSurf, Orientation: patchOrient}
		}

		out[blockID] = append(out[blockID], s)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.NewIOError("iodeck: %q: %v", fnamepath, err)
	}
	return out, nil
}
