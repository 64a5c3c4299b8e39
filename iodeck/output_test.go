// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/cflow/block"
	"github.com/cpmech/cflow/geom"
	"github.com/cpmech/cflow/state"
	"github.com/cpmech/cflow/thermo"
)

// unitGrid is a NodeSource over a regular grid of unit cubes, the same
// fixture block/geometry_test.go and integrate/driver_test.go build.
type unitGrid struct{}

func (unitGrid) At(i, j, k int) geom.Vec3 {
	return geom.Vec3{X: float64(i), Y: float64(j), Z: float64(k)}
}

func testBlock(gas *thermo.PerfectGasSutherland) *block.ProcBlock {
	b := block.New(0, 0, 2, 2, 2, 2, state.Laminar)
	b.BuildGeometry(unitGrid{})
	p := state.Primitive{Rho: 1.2, U: 3.0, V: 0.5, W: -0.25, P: 1.0}
	for k := 0; k < b.Nk; k++ {
		for j := 0; j < b.Nj; j++ {
			for i := 0; i < b.Ni; i++ {
				b.Prim.SetAt(i, j, k, p)
			}
		}
	}
	b.SyncConsFromPrim(gas)
	return b
}

func TestWriteMeshOutputLayout(tst *testing.T) {
	gas := thermo.NewPerfectGasSutherland(thermo.Reference{RhoInf: 1, AInf: 1, L: 2.0, MuRef: 1.8e-5, TRef: 288.15})
	b := testBlock(gas)
	fname := filepath.Join(tst.TempDir(), "mesh.out")

	if err := WriteMeshOutput(fname, []*block.ProcBlock{b}, gas.Ref); err != nil {
		tst.Fatalf("WriteMeshOutput: %v", err)
	}

	f, err := os.Open(fname)
	if err != nil {
		tst.Fatalf("open: %v", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var numBlocks int32
	if err := binary.Read(r, binary.LittleEndian, &numBlocks); err != nil {
		tst.Fatalf("reading block count: %v", err)
	}
	if numBlocks != 1 {
		tst.Fatalf("numBlocks = %d, want 1", numBlocks)
	}

	var dims [3]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		tst.Fatalf("reading dims: %v", err)
	}
	if dims[0] != 2 || dims[1] != 2 || dims[2] != 2 {
		tst.Fatalf("dims = %v, want (2,2,2)", dims)
	}

	n := int(dims[0] * dims[1] * dims[2])
	for axis := 0; axis < 3; axis++ {
		coords := make([]float64, n)
		if err := binary.Read(r, binary.LittleEndian, &coords); err != nil {
			tst.Fatalf("reading axis %d: %v", axis, err)
		}
		for idx, c := range coords {
			k := idx / (int(dims[0]) * int(dims[1]))
			j := (idx / int(dims[0])) % int(dims[1])
			i := idx % int(dims[0])
			want := vec3Component(b.CellCenter.At(i, j, k), axis) * gas.Ref.L
			if c != want {
				tst.Errorf("axis %d cell (%d,%d,%d) = %v, want %v", axis, i, j, k, c, want)
			}
		}
	}
}

func TestWriteFunctionOutputScalesAndLayout(tst *testing.T) {
	gas := thermo.NewPerfectGasSutherland(thermo.Reference{RhoInf: 2.0, AInf: 3.0, L: 1.0, MuRef: 1.8e-5, TRef: 288.15})
	b := testBlock(gas)
	fname := filepath.Join(tst.TempDir(), "snap.fun")
	vars := []string{"density", "vel_x", "pressure"}
	ctx := FieldContext{Gas: gas}

	if err := WriteFunctionOutput(fname, []*block.ProcBlock{b}, vars, ctx, gas.Ref); err != nil {
		tst.Fatalf("WriteFunctionOutput: %v", err)
	}

	f, err := os.Open(fname)
	if err != nil {
		tst.Fatalf("open: %v", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var numBlocks int32
	if err := binary.Read(r, binary.LittleEndian, &numBlocks); err != nil {
		tst.Fatalf("reading block count: %v", err)
	}
	var dims [4]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		tst.Fatalf("reading dims: %v", err)
	}
	if dims[3] != int32(len(vars)) {
		tst.Fatalf("numVars = %d, want %d", dims[3], len(vars))
	}

	n := int(dims[0] * dims[1] * dims[2])
	densityScale, _ := scaleFactor("density", gas.Ref)
	velScale, _ := scaleFactor("vel_x", gas.Ref)
	pressureScale, _ := scaleFactor("pressure", gas.Ref)
	wantScales := []float64{densityScale, velScale, pressureScale}

	p := b.Prim.At(0, 0, 0)
	wantRaw := []float64{p.Rho, p.U, p.P}

	for v := range vars {
		values := make([]float64, n)
		if err := binary.Read(r, binary.LittleEndian, &values); err != nil {
			tst.Fatalf("reading variable %d: %v", v, err)
		}
		got := values[0]
		want := wantRaw[v] * wantScales[v]
		if got != want {
			tst.Errorf("var %q cell 0 = %v, want %v", vars[v], got, want)
		}
	}
}

func TestWriteFunctionOutputRejectsUnrecognizedVariable(tst *testing.T) {
	gas := thermo.NewPerfectGasSutherland(thermo.Reference{RhoInf: 1, AInf: 1, L: 1, MuRef: 1.8e-5, TRef: 288.15})
	b := testBlock(gas)
	fname := filepath.Join(tst.TempDir(), "bad.fun")

	err := WriteFunctionOutput(fname, []*block.ProcBlock{b}, []string{"not_a_real_field"}, FieldContext{Gas: gas}, gas.Ref)
	if err == nil {
		tst.Fatal("expected an error for an unrecognized output variable")
	}
	if _, statErr := os.Stat(fname); statErr == nil {
		tst.Error("WriteFunctionOutput should not create a file when a variable name is rejected")
	}
}

func TestWriteResultIndexFormat(tst *testing.T) {
	fname := filepath.Join(tst.TempDir(), "run.index")
	vars := []string{"density", "vel_x", "vel_y", "vel_z", "pressure"}
	times := []float64{0, 10, 20}

	if err := WriteResultIndex(fname, vars, times, 5); err != nil {
		tst.Fatalf("WriteResultIndex: %v", err)
	}

	raw, err := os.ReadFile(fname)
	if err != nil {
		tst.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	if lines[0] != "5 1 0" {
		tst.Errorf("header line = %q, want %q", lines[0], "5 1 0")
	}
	if lines[1] != "3" {
		tst.Errorf("numTime line = %q, want %q", lines[1], "3")
	}
	if lines[3] != "5 5" {
		tst.Errorf("output-frequency line = %q, want %q", lines[3], "5 5")
	}

	var scalarLines, vectorLines int
	for _, l := range lines[4:] {
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		switch len(fields) {
		case 3:
			scalarLines++
		case 5:
			vectorLines++
			if fields[4] != "velocity" {
				tst.Errorf("vector binding name = %q, want %q", fields[4], "velocity")
			}
		}
	}
	if scalarLines != len(vars) {
		tst.Errorf("scalar F lines = %d, want %d", scalarLines, len(vars))
	}
	if vectorLines != 1 {
		tst.Errorf("vector F lines = %d, want 1 (vel_x,vel_y,vel_z run detected)", vectorLines)
	}
}
