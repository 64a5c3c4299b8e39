// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recon

import "github.com/cpmech/cflow/errs"

// reconFail builds the NumericalError Face returns when even the
// first-order (piecewise constant) fallback yields a non-positive density
// or pressure, per spec.md §4.3. The integrator (package integrate) is the
// sole component allowed to catch this and convert it into a step
// rejection (spec.md §7).
func reconFail(format string, args ...any) error {
	return errs.NewNumericalError(errs.ReconstructionFailure, format, args...)
}
