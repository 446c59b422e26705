// SPDX-License-Identifier: MIT

package solvers

import (
	"math"

	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	opCholesky      = "Cholesky"
	opCholeskySolve = "CholeskySolve"
)

// Cholesky overwrites the lower triangle of the symmetric positive-definite
// matrix a with L such that L·Lᵀ = A.
//
// Implementation:
//   - Row i = 0..n-1 strictly in order.
//   - For j < i (in order): A[i][j] -= A[i][:j]·A[j][:j], then /= A[j][j].
//     Both operands are contiguous row prefixes; the dot is a parallel reduction.
//   - Diagonal radicand A[i][i] - A[i][:i]·A[i][:i] (parallel reduction),
//     guarded, then A[i][i] = sqrt(radicand).
//
// Behavior highlights:
//   - Only the lower triangle is read or written; the strict upper triangle
//     keeps its input values. Use matrix.Lower to extract L.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (non-square).
//   - ErrNotPositiveDefinite as *StepError{Step: i, Value: radicand} when the
//     radicand is <= tolerance, NaN or infinite.
//
// Complexity:
//   - Time O(n³/3), extra space O(workers).
func Cholesky[T matrix.Float](a *matrix.Dense[T], opts ...Option) error {
	if err := matrix.ValidateSquare[T](a); err != nil {
		return solverErrorf(opCholesky, err)
	}
	o := gatherOptions[T](opts...)

	return choleskyInPlace(opCholesky, a.Data(), a.Rows(), o)
}

func choleskyInPlace[T matrix.Float](op string, data []T, n int, o Options) error {
	ex := o.executor
	var i, j int
	for i = 0; i < n; i++ {
		rowI := data[i*n : (i+1)*n]
		for j = 0; j < i; j++ {
			rowJ := data[j*n : (j+1)*n]
			rowI[j] = (rowI[j] - parallel.Dot(ex, rowI[:j], rowJ[:j])) / rowJ[j]
		}
		rad := rowI[i] - parallel.Dot(ex, rowI[:i], rowI[:i])
		if notPositive(rad, o.tolerance) {
			return stepError(op, i, float64(rad), ErrNotPositiveDefinite)
		}
		rowI[i] = T(math.Sqrt(float64(rad)))
	}

	return nil
}

// CholeskySolve solves A·x = b for symmetric positive-definite a: factor a
// in place, then L·y = b and Lᵀ·x = y.
// a is consumed (lower triangle holds L on success); b is not modified.
func CholeskySolve[T matrix.Float](a *matrix.Dense[T], b []T, opts ...Option) ([]T, error) {
	if err := matrix.ValidateSquare[T](a); err != nil {
		return nil, solverErrorf(opCholeskySolve, err)
	}
	n := a.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return nil, solverErrorf(opCholeskySolve, err)
	}
	o := gatherOptions[T](opts...)

	data := a.Data()
	if err := choleskyInPlace(opCholeskySolve, data, n, o); err != nil {
		return nil, err
	}
	x := make([]T, n)
	if err := forwardLower(opCholeskySolve, data, n, b, x, o); err != nil {
		return nil, err
	}
	if err := backLowerTranspose(opCholeskySolve, data, n, x, x, o); err != nil {
		return nil, err
	}

	return x, nil
}
