// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/cflow/integrate"
)

func TestResidualLogWritesHeaderOnceThenOneLinePerReport(tst *testing.T) {
	fname := filepath.Join(tst.TempDir(), "residual.log")
	l, err := NewResidualLog(fname)
	if err != nil {
		tst.Fatalf("NewResidualLog: %v", err)
	}

	r1 := integrate.Report{
		Iteration:     0,
		CFL:           1.0,
		L2Normalized:  []float64{1e-3, 1e-4, 1e-4, 1e-4, 1e-2},
		LInf:          5e-2,
		LInfLocator:   integrate.Locator{BlockID: 0, I: 1, J: 2, K: 3, Eqn: 4},
	}
	r2 := r1
	r2.Iteration = 1
	r2.CFL = 1.1

	l.Write(r1)
	l.Write(r2)
	if err := l.Close(); err != nil {
		tst.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(fname)
	if err != nil {
		tst.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		tst.Fatalf("got %d lines, want 3 (1 header + 2 reports)", len(lines))
	}

	header := lines[0]
	for _, col := range []string{"Step", "CFL", "Res-Mass", "Res-Mom-X", "Res-Mom-Y", "Res-Mom-Z", "Res-Energy", "Max-Eqn"} {
		if !strings.Contains(header, col) {
			tst.Errorf("header %q missing column %q", header, col)
		}
	}

	if !strings.Contains(lines[1], "Energy") {
		tst.Errorf("data line %q should name the Max-Res equation (Eqn=4 -> Energy)", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "1") {
		tst.Errorf("second data line %q should start with Iteration=1", lines[2])
	}
}
