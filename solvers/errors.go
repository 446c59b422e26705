// SPDX-License-Identifier: MIT
// Package solvers: sentinel error set and the positional wrapper.
//
// Shape and ownership failures reuse the matrix sentinels
// (matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrInvalidDimensions);
// the four numerical failures below are specific to this package.

package solvers

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular indicates a zero, near-zero or non-finite pivot in LU or a
	// triangular solve.
	ErrSingular = errors.New("solvers: singular matrix")

	// ErrNotPositiveDefinite indicates a Cholesky radicand at or below the
	// tolerance (or NaN): the input is not symmetric positive-definite.
	ErrNotPositiveDefinite = errors.New("solvers: matrix is not positive-definite")

	// ErrRankDeficient indicates a Gram-Schmidt column whose residual norm
	// vanished: the columns of A are linearly dependent.
	ErrRankDeficient = errors.New("solvers: matrix is rank-deficient")

	// ErrDegenerateRecursion indicates the Durbin-Levinson beta collapsed to zero.
	ErrDegenerateRecursion = errors.New("solvers: degenerate Durbin recursion")
)

// StepError reports where a numerical failure was detected.
// Step is the outer index (row, column or recursion step) and Value the
// offending divisor, radicand, norm or beta. Unwrap yields the sentinel.
type StepError struct {
	Op    string
	Step  int
	Value float64
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d: value %g: %v", e.Op, e.Step, e.Value, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// solverErrorf wraps err with an operation tag, preserving it via %w.
func solverErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// stepError builds the positional error for op at step with value v.
func stepError(op string, step int, v float64, sentinel error) error {
	return &StepError{Op: op, Step: step, Value: v, Err: sentinel}
}
