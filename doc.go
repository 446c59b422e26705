// SPDX-License-Identifier: MIT

// Package polysolve is a small toolkit of dense linear-algebra kernels:
// factorizations and recurrences that run in place on caller storage, over
// float32 or float64, under a pluggable execution strategy.
//
// What is inside?
//
//	• LU without pivoting, and the LU-based solve (ludcmp)
//	• Cholesky for symmetric positive-definite matrices, plus its solve
//	• Forward and back triangular substitution
//	• Thin QR by modified Gram-Schmidt
//	• Durbin-Levinson for symmetric Toeplitz (Yule-Walker) systems
//
// Every kernel keeps its outer step sequential and spreads the inner,
// independent index across a parallel.Executor with a barrier between
// phases. Numerical breakdowns (zero pivot, non-positive radicand, rank
// deficiency, degenerate recursion) are reported as errors carrying the
// failing step instead of propagating NaN or Inf.
//
// Packages:
//
//	matrix/    row-major Dense[T], validators, reference ops
//	parallel/  Sequential and worker Pool executors, Reduce and Dot
//	solvers/   the kernels and their error taxonomy
//	dataset/   standard dataset sizes and initialisation patterns
//	dump/      golden output dumps for cross-run comparison
//	oracle/    gonum-backed float64 reference solutions
//	harness/   kernel registry, timing, benchmarking and verification
//	cmd/polysolve  command-line front end
//
// Quick example:
//
//	a, _ := matrix.NewDenseFrom(2, 2, []float64{4, 2, 2, 3})
//	x, err := solvers.CholeskySolve(a, []float64{2, 1})
//
//	go install github.com/katalvlaran/polysolve/cmd/polysolve@latest
package polysolve
