// SPDX-License-Identifier: MIT

package solvers

import (
	"math"

	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	opGramSchmidt = "GramSchmidt"
	opQR          = "QR"
)

// GramSchmidt computes the thin QR factorization A = Q·R by modified
// Gram-Schmidt into caller storage.
//
// Implementation (column k = 0..n-1 strictly in order):
//   - Stage 1: nrm = Σ_i A[i][k]² (parallel reduction over i); R[k][k] = sqrt(nrm), guarded.
//   - Stage 2: Q[i][k] = A[i][k] / R[k][k] (parallel over i).
//   - Stage 3: for j > k (parallel over j): R[k][j] = Σ_i Q[i][k]·A[i][j],
//     then A[i][j] -= Q[i][k]·R[k][j]. Each chunk owns whole columns j.
//   - Barrier between stages.
//
// Inputs:
//   - a: m×n with m >= n. Consumed: overwritten with the projection residuals.
//   - q: m×n output; r: n×n output (strict lower triangle set to zero).
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (m < n or wrong q/r shape),
//     checked before any buffer is touched.
//   - ErrRankDeficient as *StepError{Step: k, Value: R[k][k]} when the
//     residual norm of column k is <= tolerance or not finite.
//
// Complexity:
//   - Time O(m·n²), no extra space beyond per-phase partials.
func GramSchmidt[T matrix.Float](a, q, r *matrix.Dense[T], opts ...Option) error {
	if err := matrix.ValidateTall[T](a); err != nil {
		return solverErrorf(opGramSchmidt, err)
	}
	if err := matrix.ValidateBinarySameShape[T](a, q); err != nil {
		return solverErrorf(opGramSchmidt, err)
	}
	if err := matrix.ValidateSquare[T](r); err != nil {
		return solverErrorf(opGramSchmidt, err)
	}
	if r.Rows() != a.Cols() {
		return solverErrorf(opGramSchmidt, matrix.ErrDimensionMismatch)
	}
	o := gatherOptions[T](opts...)

	return gramSchmidt(opGramSchmidt, a.Data(), q.Data(), r.Data(), a.Rows(), a.Cols(), o)
}

func gramSchmidt[T matrix.Float](op string, A, Q, R []T, m, n int, o Options) error {
	ex := o.executor
	var i, k int
	for i = 1; i < n; i++ {
		for k = 0; k < i; k++ {
			R[i*n+k] = 0
		}
	}

	for k = 0; k < n; k++ {
		col := k
		nrm := parallel.Reduce(ex, m, func(lo, hi int) T {
			var acc T
			for ii := lo; ii < hi; ii++ {
				v := A[ii*n+col]
				acc += v * v
			}

			return acc
		})
		rkk := T(math.Sqrt(float64(nrm)))
		if degenerate(rkk, o.tolerance) {
			return stepError(op, k, float64(rkk), ErrRankDeficient)
		}
		R[k*n+k] = rkk

		ex.For(m, func(lo, hi int) {
			for ii := lo; ii < hi; ii++ {
				Q[ii*n+col] = A[ii*n+col] / rkk
			}
		})

		ex.For(n-k-1, func(lo, hi int) {
			for j := col + 1 + lo; j < col+1+hi; j++ {
				var rkj T
				for ii := 0; ii < m; ii++ {
					rkj += Q[ii*n+col] * A[ii*n+j]
				}
				R[col*n+j] = rkj
				for ii := 0; ii < m; ii++ {
					A[ii*n+j] -= Q[ii*n+col] * rkj
				}
			}
		})
	}

	return nil
}

// QR is the allocating form of GramSchmidt: a is left intact and fresh
// q (m×n) and r (n×n) are returned.
func QR[T matrix.Float](a *matrix.Dense[T], opts ...Option) (q, r *matrix.Dense[T], err error) {
	if err = matrix.ValidateTall[T](a); err != nil {
		return nil, nil, solverErrorf(opQR, err)
	}
	m, n := a.Shape()
	work := a.Clone()
	if q, err = matrix.NewDense[T](m, n); err != nil {
		return nil, nil, solverErrorf(opQR, err)
	}
	if r, err = matrix.NewDense[T](n, n); err != nil {
		return nil, nil, solverErrorf(opQR, err)
	}
	o := gatherOptions[T](opts...)
	if err = gramSchmidt(opQR, work.Data(), q.Data(), r.Data(), m, n, o); err != nil {
		return nil, nil, err
	}

	return q, r, nil
}
