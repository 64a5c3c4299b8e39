// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cpmech/cflow/block"
	"github.com/cpmech/cflow/errs"
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/thermo"
	"github.com/cpmech/cflow/turb"
)

// FieldContext carries the collaborators a FieldExtractor needs beyond the
// block itself: the gas model (temperature, sound speed) and, when the run
// is turbulent, the closure (eddy viscosity for viscosityRatio). Turb is
// nil for a laminar run; extractors that need it report 0 in that case.
type FieldContext struct {
	Gas  thermo.Gas
	Turb turb.Model
}

// FieldExtractor returns one recognized output variable's nondimensional
// value at block cell (i,j,k), the per-variable unit the
// Recognized-output-variables table (spec.md §6) is built from.
type FieldExtractor func(ctx FieldContext, b *block.ProcBlock, i, j, k int) float64

// scaleFactor returns the dimensionalizing multiplier for a recognized
// output variable, per spec.md §6's table: velocities/sound speed scale by
// a_ref, pressure by ρ_ref·a_ref², gradients by the underlying quantity's
// scale divided by L, residuals by the underlying equation's flux scale
// times L² (a cell-integrated balance), and so on.
func scaleFactor(name string, ref thermo.Reference) (float64, bool) {
	a2 := ref.AInf * ref.AInf
	switch name {
	case "density":
		return ref.RhoInf, true
	case "vel_x", "vel_y", "vel_z", "sos":
		return ref.AInf, true
	case "pressure":
		return ref.RhoInf * a2, true
	case "dt":
		return ref.L / ref.AInf, true
	case "temperature":
		return ref.TRef, true
	case "tke":
		return a2, true
	case "sdr":
		return ref.RhoInf * a2 / ref.MuRef, true
	case "wallDistance":
		return ref.L, true
	case "velGrad_xx", "velGrad_xy", "velGrad_xz",
		"velGrad_yx", "velGrad_yy", "velGrad_yz",
		"velGrad_zx", "velGrad_zy", "velGrad_zz":
		return ref.AInf / ref.L, true
	case "tempGrad_x", "tempGrad_y", "tempGrad_z":
		return ref.TRef / ref.L, true
	case "tkeGrad_x", "tkeGrad_y", "tkeGrad_z":
		return a2 / ref.L, true
	case "sdrGrad_x", "sdrGrad_y", "sdrGrad_z":
		return ref.RhoInf * a2 / (ref.MuRef * ref.L), true
	case "resid_mass":
		return ref.RhoInf * ref.AInf * ref.L * ref.L, true
	case "resid_mom_x", "resid_mom_y", "resid_mom_z":
		return ref.RhoInf * a2 * ref.L * ref.L, true
	case "resid_energy", "resid_tke":
		return ref.RhoInf * ref.AInf * a2 * ref.L * ref.L, true
	case "resid_sdr":
		return ref.RhoInf * ref.RhoInf * a2 * a2 * ref.L * ref.L / ref.MuRef, true
	case "rank", "globalPosition", "viscosityRatio":
		return 1, true
	}
	return 0, false
}

func velComponent(b *block.ProcBlock, i, j, k, comp int) float64 {
	u := b.Prim.At(i, j, k).Velocity()
	switch comp {
	case 0:
		return u.X
	case 1:
		return u.Y
	}
	return u.Z
}

func vec3Component(v geom.Vec3, comp int) float64 {
	switch comp {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func residComponent(b *block.ProcBlock, i, j, k, field int) float64 {
	r := b.Residual.At(i, j, k).Array()
	if field >= len(r) {
		return 0
	}
	return r[field]
}

// fieldExtractors is the Recognized-output-variables registry (spec.md §6);
// every name scaleFactor knows about has an extractor here, and every
// WriteFunctionOutput call rejects a name neither map carries.
var fieldExtractors = map[string]FieldExtractor{
	"density": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return b.Prim.At(i, j, k).Rho
	},
	"vel_x": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return velComponent(b, i, j, k, 0) },
	"vel_y": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return velComponent(b, i, j, k, 1) },
	"vel_z": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return velComponent(b, i, j, k, 2) },
	"sos": func(ctx FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return ctx.Gas.SoundSpeed(b.Prim.At(i, j, k))
	},
	"pressure": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return b.Prim.At(i, j, k).P
	},
	"dt": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return b.DtLocal.At(i, j, k)
	},
	"temperature": func(ctx FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return ctx.Gas.Temperature(b.Prim.At(i, j, k))
	},
	"tke": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return b.Prim.At(i, j, k).K
	},
	"sdr": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return b.Prim.At(i, j, k).Omega
	},
	"wallDistance": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return b.WallDist.At(i, j, k)
	},
	"rank": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return float64(b.Rank)
	},
	"globalPosition": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		return float64(b.GlobalPos[0] + b.GlobalPos[1] + b.GlobalPos[2])
	},
	"viscosityRatio": func(ctx FieldContext, b *block.ProcBlock, i, j, k int) float64 {
		if ctx.Turb == nil || ctx.Gas == nil {
			return 0
		}
		p := b.Prim.At(i, j, k)
		muT := ctx.Turb.EddyViscosity(p, b.GradU.At(i, j, k), b.WallDist.At(i, j, k))
		mu := ctx.Gas.Viscosity(ctx.Gas.Temperature(p))
		if mu <= 0 {
			return 0
		}
		return muT / mu
	},
	"resid_mass":   func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 0) },
	"resid_mom_x":  func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 1) },
	"resid_mom_y":  func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 2) },
	"resid_mom_z":  func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 3) },
	"resid_energy": func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 4) },
	"resid_tke":    func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 5) },
	"resid_sdr":    func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 { return residComponent(b, i, j, k, 6) },
}

func init() {
	gradVel := [3][3]string{
		{"velGrad_xx", "velGrad_xy", "velGrad_xz"},
		{"velGrad_yx", "velGrad_yy", "velGrad_yz"},
		{"velGrad_zx", "velGrad_zy", "velGrad_zz"},
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r, c := row, col
			fieldExtractors[gradVel[row][col]] = func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
				return b.GradU.At(i, j, k)[r][c]
			}
		}
	}
	tempGrad := [3]string{"tempGrad_x", "tempGrad_y", "tempGrad_z"}
	tkeGrad := [3]string{"tkeGrad_x", "tkeGrad_y", "tkeGrad_z"}
	sdrGrad := [3]string{"sdrGrad_x", "sdrGrad_y", "sdrGrad_z"}
	for comp := 0; comp < 3; comp++ {
		c := comp
		fieldExtractors[tempGrad[c]] = func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
			return vec3Component(b.GradT.At(i, j, k), c)
		}
		fieldExtractors[tkeGrad[c]] = func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
			if b.GradK == nil {
				return 0
			}
			return vec3Component(b.GradK.At(i, j, k), c)
		}
		fieldExtractors[sdrGrad[c]] = func(_ FieldContext, b *block.ProcBlock, i, j, k int) float64 {
			if b.GradOmega == nil {
				return 0
			}
			return vec3Component(b.GradOmega.At(i, j, k), c)
		}
	}
}

// WriteMeshOutput writes the interior cell-center coordinates of blocks as
// the binary "Mesh output" format of spec.md §6: numBlocks:int32; per block
// (Ni,Nj,Nk):int32×3; then, per block, all-X then all-Y then all-Z
// float64, each dimensionalized by ref.L. Built the same way
// WritePlot3DMultiBlock lays out its own per-block dims-then-coordinate
// arrays (grid.go), since gosl carries no writer for this family of format
// either.
func WriteMeshOutput(fnamepath string, blocks []*block.ProcBlock, ref thermo.Reference) error {
	f, err := os.Create(fnamepath)
	if err != nil {
		return errs.NewIOError("iodeck: cannot create mesh output %q: %v", fnamepath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, int32(len(blocks))); err != nil {
		return errs.NewIOError("iodeck: %q: writing block count: %v", fnamepath, err)
	}
	for _, b := range blocks {
		dims := [3]int32{int32(b.Ni), int32(b.Nj), int32(b.Nk)}
		if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
			return errs.NewIOError("iodeck: %q: writing dims: %v", fnamepath, err)
		}
	}
	for _, b := range blocks {
		n := b.Ni * b.Nj * b.Nk
		for axis := 0; axis < 3; axis++ {
			coords := make([]float64, 0, n)
			for k := 0; k < b.Nk; k++ {
				for j := 0; j < b.Nj; j++ {
					for i := 0; i < b.Ni; i++ {
						c := b.CellCenter.At(i, j, k)
						coords = append(coords, vec3Component(c, axis)*ref.L)
					}
				}
			}
			if err := binary.Write(w, binary.LittleEndian, coords); err != nil {
				return errs.NewIOError("iodeck: %q: writing block coordinates: %v", fnamepath, err)
			}
		}
	}
	return w.Flush()
}

// WriteFunctionOutput writes one solution snapshot in the binary "Solution
// output (function file)" format of spec.md §6: numBlocks:int32; per block
// (Ni,Nj,Nk,numVars):int32×4; then, per block and per variable in vars'
// order, Ni·Nj·Nk float64 values in i-fastest, k-slowest order, each scaled
// by its variable's factor from the Recognized-output-variables table. An
// unrecognized variable name is rejected before any bytes are written.
func WriteFunctionOutput(fnamepath string, blocks []*block.ProcBlock, vars []string, ctx FieldContext, ref thermo.Reference) error {
	extractors := make([]FieldExtractor, len(vars))
	scales := make([]float64, len(vars))
	for i, name := range vars {
		ex, ok := fieldExtractors[name]
		if !ok {
			return errs.NewConfigError("iodeck: unrecognized output variable %q", name)
		}
		scale, ok := scaleFactor(name, ref)
		if !ok {
			return errs.NewConfigError("iodeck: no scale factor for output variable %q", name)
		}
		extractors[i] = ex
		scales[i] = scale
	}

	f, err := os.Create(fnamepath)
	if err != nil {
		return errs.NewIOError("iodeck: cannot create function output %q: %v", fnamepath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, int32(len(blocks))); err != nil {
		return errs.NewIOError("iodeck: %q: writing block count: %v", fnamepath, err)
	}
	for _, b := range blocks {
		dims := [4]int32{int32(b.Ni), int32(b.Nj), int32(b.Nk), int32(len(vars))}
		if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
			return errs.NewIOError("iodeck: %q: writing dims: %v", fnamepath, err)
		}
	}
	for _, b := range blocks {
		n := b.Ni * b.Nj * b.Nk
		for v, ex := range extractors {
			values := make([]float64, 0, n)
			for k := 0; k < b.Nk; k++ {
				for j := 0; j < b.Nj; j++ {
					for i := 0; i < b.Ni; i++ {
						values = append(values, ex(ctx, b, i, j, k)*scales[v])
					}
				}
			}
			if err := binary.Write(w, binary.LittleEndian, values); err != nil {
				return errs.NewIOError("iodeck: %q: writing block %d variable %q: %v", fnamepath, b.ID, vars[v], err)
			}
		}
	}
	return w.Flush()
}

// scalarVectorGrouping splits vars into plain scalars and, when three
// consecutive names form "vel_x","vel_y","vel_z", a named vector binding
// (spec.md §6's result-index "F" vector line), the one grouping this
// solver's fixed Recognized-output-variables list supports.
func scalarVectorGrouping(vars []string) (vectorName string, vectorStart int, haveVector bool) {
	for i := 0; i+2 < len(vars); i++ {
		if vars[i] == "vel_x" && vars[i+1] == "vel_y" && vars[i+2] == "vel_z" {
			return "velocity", i, true
		}
	}
	return "", 0, false
}

// WriteResultIndex writes the ASCII "Result index file" of spec.md §6:
//
//	<numScalar> <numVector> 0
//	numTime
//	<times, wrapped>
//	<outFreq> <outFreq>
//	one "F" line per scalar binding it to a zero-padded 4-digit index,
//	plus, if vars contains a vel_x,vel_y,vel_z run, one "F" line binding
//	those three indices to the named vector "velocity".
func WriteResultIndex(fnamepath string, vars []string, times []float64, outFreq int) error {
	f, err := os.Create(fnamepath)
	if err != nil {
		return errs.NewIOError("iodeck: cannot create result index %q: %v", fnamepath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	vectorName, vectorStart, haveVector := scalarVectorGrouping(vars)
	numVector := 0
	if haveVector {
		numVector = 1
	}
	fmt.Fprintf(w, "%d %d 0\n", len(vars), numVector)
	fmt.Fprintf(w, "%d\n", len(times))
	const perLine = 6
	for i := 0; i < len(times); i += perLine {
		end := i + perLine
		if end > len(times) {
			end = len(times)
		}
		for j := i; j < end; j++ {
			if j > i {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.10e", times[j])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d %d\n", outFreq, outFreq)
	for i, name := range vars {
		fmt.Fprintf(w, "F %04d %s\n", i, name)
	}
	if haveVector {
		fmt.Fprintf(w, "F %04d %04d %04d %s\n", vectorStart, vectorStart+1, vectorStart+2, vectorName)
	}

	if err := w.Flush(); err != nil {
		return errs.NewIOError("iodeck: %q: %v", fnamepath, err)
	}
	return nil
}
