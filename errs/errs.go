// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package errs defines the fatal-vs-recoverable error taxonomy of spec.md
// §7, shared by every package so the time-integration driver (the sole
// recoverer) can dispatch on error kind with errors.As instead of string
// matching. Every constructor wraps an underlying cause the way gosl/chk.Err
// builds a message, but returns a concrete type so callers up the stack can
// type-switch.
package errs

import "fmt"

// ConfigError marks a malformed input deck or unknown configuration key;
// always fatal at startup.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// GridError marks inconsistent block dimensions, a negative cell volume or
// a degenerate face; always fatal.
type GridError struct {
	Msg string
}

func (e *GridError) Error() string { return "grid error: " + e.Msg }

// NewGridError builds a GridError with a formatted message.
func NewGridError(format string, args ...any) *GridError {
	return &GridError{Msg: fmt.Sprintf(format, args...)}
}

// NumericalErrorKind distinguishes the three numerical-failure causes of
// spec.md §7, all of which the time-integration driver may retry with a
// reduced CFL before giving up.
type NumericalErrorKind int

const (
	NonPositiveState NumericalErrorKind = iota
	ReconstructionFailure
	LinearSolveDivergence
)

func (k NumericalErrorKind) String() string {
	switch k {
	case NonPositiveState:
		return "non-positive-state"
	case ReconstructionFailure:
		return "reconstruction-failure"
	case LinearSolveDivergence:
		return "linear-solve-divergence"
	}
	return "unknown"
}

// NumericalError is surfaced by AssembleRHS/ExplicitStep/ImplicitStep to
// the time-integration driver, the sole package allowed to catch it and
// retry; every other package must propagate it unchanged.
type NumericalError struct {
	Kind NumericalErrorKind
	Msg  string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error (%s): %s", e.Kind, e.Msg)
}

// NewNumericalError builds a NumericalError with a formatted message.
func NewNumericalError(kind NumericalErrorKind, format string, args ...any) *NumericalError {
	return &NumericalError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// TransientErrorKind distinguishes the two ParallelExchange failure modes
// of spec.md §7.
type TransientErrorKind int

const (
	MessageLost TransientErrorKind = iota
	Timeout
)

func (k TransientErrorKind) String() string {
	if k == Timeout {
		return "timeout"
	}
	return "message-lost"
}

// TransientError is surfaced by ParallelExchange; the driver retries it a
// bounded number of times before escalating to fatal.
type TransientError struct {
	Kind TransientErrorKind
	Msg  string
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error (%s): %s", e.Kind, e.Msg)
}

// NewTransientError builds a TransientError with a formatted message.
func NewTransientError(kind TransientErrorKind, format string, args ...any) *TransientError {
	return &TransientError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IOError marks a file that could not be opened or written; always fatal,
// since the computation then has nowhere to land its results.
type IOError struct {
	Msg string
}

func (e *IOError) Error() string { return "io error: " + e.Msg }

// NewIOError builds an IOError with a formatted message.
func NewIOError(format string, args ...any) *IOError {
	return &IOError{Msg: fmt.Sprintf(format, args...)}
}
