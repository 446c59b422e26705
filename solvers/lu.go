// SPDX-License-Identifier: MIT

package solvers

import (
	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	opLU      = "LU"
	opLUSolve = "LUSolve"
)

// LU factors the square matrix a in place without pivoting (Doolittle).
//
// Implementation:
//   - Row i = 0..n-1 strictly in order; row i reads only rows < i.
//   - L segment (j < i): A[i][j] -= Σ_{k<j} A[i][k]·A[k][j], then /= A[j][j].
//     Entries depend on the earlier entries of the same row, so j runs in
//     order and each sum is a parallel reduction over k.
//   - U segment (j >= i): A[i][j] -= Σ_{k<i} A[i][k]·A[k][j]. Entries are
//     independent across j and the range is split over the executor.
//   - Barrier, then the pivot A[i][i] is guarded before any later row divides by it.
//
// Behavior highlights:
//   - On return a holds L strictly below the diagonal (unit diagonal implicit)
//     and U on and above it. Use matrix.UnitLower / matrix.Upper to split.
//   - The per-element update order over k matches the textbook loop, so the
//     U segment is bitwise identical for every executor.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (non-square), checked
//     before a is touched.
//   - ErrSingular as *StepError{Step: i} when |U[i][i]| <= tolerance or it is
//     not finite; rows > i are left unmodified.
//
// Complexity:
//   - Time O(n³), extra space O(workers).
func LU[T matrix.Float](a *matrix.Dense[T], opts ...Option) error {
	if err := matrix.ValidateSquare[T](a); err != nil {
		return solverErrorf(opLU, err)
	}
	o := gatherOptions[T](opts...)

	return luInPlace(opLU, a.Data(), a.Rows(), o)
}

// luInPlace runs the factorization on the flat n×n buffer data.
func luInPlace[T matrix.Float](op string, data []T, n int, o Options) error {
	ex := o.executor
	var i, j int
	for i = 0; i < n; i++ {
		rowI := data[i*n : (i+1)*n]

		// L segment: sequential in j, reduction over k.
		for j = 0; j < i; j++ {
			col := j
			sum := parallel.Reduce(ex, col, func(lo, hi int) T {
				var acc T
				for k := lo; k < hi; k++ {
					acc += rowI[k] * data[k*n+col]
				}

				return acc
			})
			rowI[j] = (rowI[j] - sum) / data[j*n+j]
		}

		// U segment: split over j, k-outer inside each chunk.
		row := i
		ex.For(n-i, func(lo, hi int) {
			lo, hi = lo+row, hi+row
			for k := 0; k < row; k++ {
				aik := rowI[k]
				rowK := data[k*n : (k+1)*n]
				for jj := lo; jj < hi; jj++ {
					rowI[jj] -= aik * rowK[jj]
				}
			}
		})

		if degenerate(rowI[i], o.tolerance) {
			return stepError(op, i, float64(rowI[i]), ErrSingular)
		}
	}

	return nil
}

// LUSolve solves A·x = b by factoring a in place with LU, then forward
// substitution with the unit-lower factor (L·y = b) and back substitution
// with the upper factor (U·x = y).
//
// a is consumed: on success it holds the packed factors. b is not modified.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (non-square a, len(b) != n).
//   - ErrSingular from the factorization or the back substitution.
func LUSolve[T matrix.Float](a *matrix.Dense[T], b []T, opts ...Option) ([]T, error) {
	if err := matrix.ValidateSquare[T](a); err != nil {
		return nil, solverErrorf(opLUSolve, err)
	}
	n := a.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return nil, solverErrorf(opLUSolve, err)
	}
	o := gatherOptions[T](opts...)

	if err := luInPlace(opLUSolve, a.Data(), n, o); err != nil {
		return nil, err
	}
	y := make([]T, n)
	forwardUnitLower(a.Data(), n, b, y, o)
	x := make([]T, n)
	if err := backUpper(opLUSolve, a.Data(), n, y, x, o); err != nil {
		return nil, err
	}

	return x, nil
}
