// SPDX-License-Identifier: MIT
// Package solvers: functional configuration shared by every kernel.
//
//   - WithExecutor selects the parallel strategy (default parallel.Sequential).
//   - WithTolerance sets the absolute guard on divisors, radicands, norms and beta.
//
// Options never change the algorithm, only where its inner ranges run and
// when it gives up.

package solvers

import (
	"math"
	"unsafe"

	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	// DefaultTolerance64 is the guard threshold for 64-bit elements.
	DefaultTolerance64 = 1e-12

	// DefaultTolerance32 is the guard threshold for 32-bit elements.
	DefaultTolerance32 = 1e-6
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	executor  parallel.Executor
	tolerance float64
	tolSet    bool
}

// WithExecutor selects the execution strategy for the inner ranges.
// A nil executor keeps the default (parallel.Sequential).
func WithExecutor(ex parallel.Executor) Option {
	return func(o *Options) {
		if ex != nil {
			o.executor = ex
		}
	}
}

// WithTolerance sets the absolute guard threshold. Zero makes the guards
// fire only on exact zeros and non-finite values.
// Panics if tol is negative or not finite (programmer error).
func WithTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("solvers: WithTolerance requires a finite tol >= 0")
	}

	return func(o *Options) {
		o.tolerance = tol
		o.tolSet = true
	}
}

// DefaultTolerance returns the guard threshold used for element type T
// when WithTolerance is not given.
func DefaultTolerance[T matrix.Float]() float64 {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return DefaultTolerance32
	}

	return DefaultTolerance64
}

// gatherOptions resolves defaults for element type T and applies setters in order.
func gatherOptions[T matrix.Float](opts ...Option) Options {
	o := Options{executor: parallel.Sequential}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if !o.tolSet {
		o.tolerance = DefaultTolerance[T]()
	}

	return o
}

// degenerate reports a divisor or norm that must not be used:
// |v| <= tol or v not finite.
func degenerate[T matrix.Float](v T, tol float64) bool {
	f := float64(v)

	return math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) <= tol
}

// notPositive reports a radicand that has no usable square root: v <= tol or NaN.
// +Inf is rejected as well.
func notPositive[T matrix.Float](v T, tol float64) bool {
	f := float64(v)

	return math.IsNaN(f) || math.IsInf(f, 0) || f <= tol
}
