// SPDX-License-Identifier: MIT
// Package solvers: forward and back substitution.
//
// Every solve runs i strictly in order (forward: 0..n-1, back: n-1..0)
// because x[i] needs every previously solved entry; the inner sum is a
// parallel reduction through the executor. Only the triangle the solve
// names is read, so a packed LU or an in-place Cholesky result can be
// passed directly.

package solvers

import (
	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	opSolveLower          = "SolveLower"
	opSolveUpper          = "SolveUpper"
	opSolveUnitLower      = "SolveUnitLower"
	opSolveLowerTranspose = "SolveLowerTranspose"
)

// triangularKind selects which solve solveInto runs.
type triangularKind int

const (
	kindLower triangularKind = iota
	kindUpper
	kindUnitLower
	kindLowerTranspose
)

// SolveLower solves L·x = b for lower-triangular l.
// x[i] = (b[i] - Σ_{j<i} L[i][j]·x[j]) / L[i][i].
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular (*StepError, Step=i).
func SolveLower[T matrix.Float](l *matrix.Dense[T], b []T, opts ...Option) ([]T, error) {
	return solveAlloc(opSolveLower, kindLower, l, b, opts)
}

// SolveLowerInto is SolveLower writing into the caller's x (len n).
// x may alias b.
func SolveLowerInto[T matrix.Float](l *matrix.Dense[T], b, x []T, opts ...Option) error {
	return solveInto(opSolveLower, kindLower, l, b, x, opts)
}

// SolveUpper solves U·x = b for upper-triangular u by back substitution.
// x[i] = (b[i] - Σ_{j>i} U[i][j]·x[j]) / U[i][i].
func SolveUpper[T matrix.Float](u *matrix.Dense[T], b []T, opts ...Option) ([]T, error) {
	return solveAlloc(opSolveUpper, kindUpper, u, b, opts)
}

// SolveUpperInto is SolveUpper writing into the caller's x (len n).
func SolveUpperInto[T matrix.Float](u *matrix.Dense[T], b, x []T, opts ...Option) error {
	return solveInto(opSolveUpper, kindUpper, u, b, x, opts)
}

// SolveUnitLower solves L·x = b where L has an implicit unit diagonal
// (the L half of a packed LU result). The diagonal of l is never read and
// the solve cannot fail numerically.
func SolveUnitLower[T matrix.Float](l *matrix.Dense[T], b []T, opts ...Option) ([]T, error) {
	return solveAlloc(opSolveUnitLower, kindUnitLower, l, b, opts)
}

// SolveUnitLowerInto is SolveUnitLower writing into the caller's x (len n).
func SolveUnitLowerInto[T matrix.Float](l *matrix.Dense[T], b, x []T, opts ...Option) error {
	return solveInto(opSolveUnitLower, kindUnitLower, l, b, x, opts)
}

// SolveLowerTranspose solves Lᵀ·x = b using the lower triangle of l, so the
// second half of a Cholesky solve needs no explicit transpose.
// x[i] = (b[i] - Σ_{j>i} L[j][i]·x[j]) / L[i][i].
func SolveLowerTranspose[T matrix.Float](l *matrix.Dense[T], b []T, opts ...Option) ([]T, error) {
	return solveAlloc(opSolveLowerTranspose, kindLowerTranspose, l, b, opts)
}

// SolveLowerTransposeInto is SolveLowerTranspose writing into the caller's x (len n).
func SolveLowerTransposeInto[T matrix.Float](l *matrix.Dense[T], b, x []T, opts ...Option) error {
	return solveInto(opSolveLowerTranspose, kindLowerTranspose, l, b, x, opts)
}

func solveAlloc[T matrix.Float](op string, kind triangularKind, m *matrix.Dense[T], b []T, opts []Option) ([]T, error) {
	if err := matrix.ValidateSquare[T](m); err != nil {
		return nil, solverErrorf(op, err)
	}
	x := make([]T, m.Rows())
	if err := solveInto(op, kind, m, b, x, opts); err != nil {
		return nil, err
	}

	return x, nil
}

// solveInto validates shapes, then dispatches to the flat-buffer kernels.
// On a numerical failure x holds the entries solved before the failing step.
func solveInto[T matrix.Float](op string, kind triangularKind, m *matrix.Dense[T], b, x []T, opts []Option) error {
	if err := matrix.ValidateSquare[T](m); err != nil {
		return solverErrorf(op, err)
	}
	n := m.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return solverErrorf(op, err)
	}
	if err := matrix.ValidateVecLen(x, n); err != nil {
		return solverErrorf(op, err)
	}
	o := gatherOptions[T](opts...)
	data := m.Data()

	switch kind {
	case kindLower:
		return forwardLower(op, data, n, b, x, o)
	case kindUpper:
		return backUpper(op, data, n, b, x, o)
	case kindUnitLower:
		forwardUnitLower(data, n, b, x, o)
		return nil
	default:
		return backLowerTranspose(op, data, n, b, x, o)
	}
}

// forwardLower: x[i] = (b[i] - L[i][:i]·x[:i]) / L[i][i].
func forwardLower[T matrix.Float](op string, data []T, n int, b, x []T, o Options) error {
	for i := 0; i < n; i++ {
		row := data[i*n : (i+1)*n]
		d := row[i]
		if degenerate(d, o.tolerance) {
			return stepError(op, i, float64(d), ErrSingular)
		}
		x[i] = (b[i] - parallel.Dot(o.executor, row[:i], x[:i])) / d
	}

	return nil
}

// forwardUnitLower: x[i] = b[i] - L[i][:i]·x[:i].
func forwardUnitLower[T matrix.Float](data []T, n int, b, x []T, o Options) {
	for i := 0; i < n; i++ {
		row := data[i*n : (i+1)*n]
		x[i] = b[i] - parallel.Dot(o.executor, row[:i], x[:i])
	}
}

// backUpper: x[i] = (b[i] - U[i][i+1:]·x[i+1:]) / U[i][i].
func backUpper[T matrix.Float](op string, data []T, n int, b, x []T, o Options) error {
	for i := n - 1; i >= 0; i-- {
		row := data[i*n : (i+1)*n]
		d := row[i]
		if degenerate(d, o.tolerance) {
			return stepError(op, i, float64(d), ErrSingular)
		}
		x[i] = (b[i] - parallel.Dot(o.executor, row[i+1:], x[i+1:n])) / d
	}

	return nil
}

// backLowerTranspose: x[i] = (b[i] - Σ_{j>i} L[j][i]·x[j]) / L[i][i].
func backLowerTranspose[T matrix.Float](op string, data []T, n int, b, x []T, o Options) error {
	for i := n - 1; i >= 0; i-- {
		d := data[i*n+i]
		if degenerate(d, o.tolerance) {
			return stepError(op, i, float64(d), ErrSingular)
		}
		col, base := i, i+1
		sum := parallel.Reduce(o.executor, n-base, func(lo, hi int) T {
			var acc T
			for j := base + lo; j < base+hi; j++ {
				acc += data[j*n+col] * x[j]
			}

			return acc
		})
		x[i] = (b[i] - sum) / d
	}

	return nil
}
