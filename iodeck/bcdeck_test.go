// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iodeck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/cflow/bc"
)

func writeDeck(tst *testing.T, body string) string {
	tst.Helper()
	fname := filepath.Join(tst.TempDir(), "bc.deck")
	if err := os.WriteFile(fname, []byte(body), 0644); err != nil {
		tst.Fatalf("WriteFile: %v", err)
	}
	return fname
}

func TestReadBCDeckParsesSimpleSurface(tst *testing.T) {
	fname := writeDeck(tst, "# a comment\n0 slip-wall 0 0 0 1 0 1 1\n")

	decks, err := ReadBCDeck(fname)
	if err != nil {
		tst.Fatalf("ReadBCDeck: %v", err)
	}
	list, ok := decks[0]
	if !ok || len(list) != 1 {
		tst.Fatalf("decks[0] = %+v, want one surface", list)
	}
	s := list[0]
	if s.BCType != bc.SlipWall {
		tst.Errorf("BCType = %v, want SlipWall", s.BCType)
	}
	if s.IMin != 0 || s.IMax != 0 || s.JMin != 0 || s.JMax != 1 || s.KMin != 0 || s.KMax != 1 {
		tst.Errorf("indices = (%d,%d,%d,%d,%d,%d), want (0,0,0,1,0,1)", s.IMin, s.IMax, s.JMin, s.JMax, s.KMin, s.KMax)
	}
	if s.Tag != 1 {
		tst.Errorf("Tag = %d, want 1", s.Tag)
	}
}

func TestReadBCDeckParsesKeyValueExtras(tst *testing.T) {
	fname := writeDeck(tst, "1 viscous-wall-isothermal 1 1 0 1 0 1 2 twall=300 walllaw=true\n")

	decks, err := ReadBCDeck(fname)
	if err != nil {
		tst.Fatalf("ReadBCDeck: %v", err)
	}
	s := decks[1][0]
	if s.TWall != 300 {
		tst.Errorf("TWall = %v, want 300", s.TWall)
	}
	if !s.WallLaw {
		tst.Errorf("WallLaw = %v, want true", s.WallLaw)
	}
}

func TestReadBCDeckParsesFreestreamFields(tst *testing.T) {
	fname := writeDeck(tst, "2 farfield 1 1 0 1 0 1 3 rho=1 u=0.8 v=0 w=0 p=0.7 k=0.01 omega=5\n")

	decks, err := ReadBCDeck(fname)
	if err != nil {
		tst.Fatalf("ReadBCDeck: %v", err)
	}
	fs := decks[2][0].Freestream
	if fs.Rho != 1 || fs.U != 0.8 || fs.P != 0.7 || fs.K != 0.01 || fs.Omega != 5 {
		tst.Errorf("Freestream = %+v, want Rho=1 U=0.8 P=0.7 K=0.01 Omega=5", fs)
	}
}

func TestReadBCDeckParsesInterblockPatch(tst *testing.T) {
	fname := writeDeck(tst, "0 interblock 1 1 0 1 0 1 1 patchblock=1 patchsurf=2 patchorient=3\n")

	decks, err := ReadBCDeck(fname)
	if err != nil {
		tst.Fatalf("ReadBCDeck: %v", err)
	}
	s := decks[0][0]
	if s.Patch == nil {
		tst.Fatalf("Patch = nil, want a populated bc.Patch")
	}
	if s.Patch.BlockA != 0 || s.Patch.SurfA != 1 || s.Patch.BlockB != 1 || s.Patch.SurfB != 2 || s.Patch.Orientation != 3 {
		tst.Errorf("Patch = %+v, want {BlockA:0 SurfA:1 BlockB:1 SurfB:2 Orientation:3}", s.Patch)
	}
}

func TestReadBCDeckRejectsUnknownKind(tst *testing.T) {
	fname := writeDeck(tst, "0 not-a-real-kind 0 0 0 1 0 1 1\n")
	if _, err := ReadBCDeck(fname); err == nil {
		tst.Errorf("expected an error for an unknown BC kind")
	}
}

func TestReadBCDeckRejectsTooFewFields(tst *testing.T) {
	fname := writeDeck(tst, "0 slip-wall 0 0 0 1\n")
	if _, err := ReadBCDeck(fname); err == nil {
		tst.Errorf("expected an error for a short line")
	}
}

func TestReadBCDeckRejectsMissingFile(tst *testing.T) {
	if _, err := ReadBCDeck(filepath.Join(tst.TempDir(), "missing.deck")); err == nil {
		tst.Errorf("expected an error opening a nonexistent deck")
	}
}
