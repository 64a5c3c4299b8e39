// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package recon implements MUSCL face-state reconstruction and the
// approximate-Riemann (Roe) inviscid flux of spec.md §4.3.
package recon

import "math"

// LimiterKind selects the MUSCL slope limiter. Dispatch is a plain switch
// (spec.md §9's tagged-variant guidance), not virtual dispatch.
type LimiterKind int

const (
	Minmod LimiterKind = iota
	VanAlbada
)

// limit returns the limited slope given the backward and forward
// differences a,b at a cell, per the selected limiter.
func limit(kind LimiterKind, a, b float64) float64 {
	switch kind {
	case Minmod:
		return minmod(a, b)
	case VanAlbada:
		return vanAlbada(a, b)
	}
	return 0
}

func minmod(a, b float64) float64 {
	if a*b <= 0 {
		return 0
	}
	if math.Abs(a) < math.Abs(b) {
		return a
	}
	return b
}

func vanAlbada(a, b float64) float64 {
	const eps = 1e-12
	if a*b <= 0 {
		return 0
	}
	return (a*(b*b+eps) + b*(a*a+eps)) / (a*a + b*b + 2*eps)
}
