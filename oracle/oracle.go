// SPDX-License-Identifier: MIT

// Package oracle computes reference results with gonum for cross-checking
// the in-place kernels. Every function works on float64 copies and never
// mutates its inputs.
//
// The references use different algorithms from the kernels (partial
// pivoting LU, LAPACK Cholesky, Householder QR, dense solve of the Toeplitz
// system), so agreement is evidence rather than repetition.
package oracle

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/polysolve/matrix"
)

var (
	// ErrSingular indicates gonum reported an exactly or numerically singular system.
	ErrSingular = errors.New("oracle: singular system")

	// ErrNotPositiveDefinite indicates gonum's Cholesky factorization failed.
	ErrNotPositiveDefinite = errors.New("oracle: matrix is not positive-definite")
)

func oracleErrorf(op string, err error) error {
	return fmt.Errorf("oracle.%s: %w", op, err)
}

// toGonum copies a into a gonum Dense.
func toGonum(a *matrix.Dense[float64]) *mat.Dense {
	r, c := a.Shape()
	data := make([]float64, r*c)
	copy(data, a.Data())

	return mat.NewDense(r, c, data)
}

// fromGonum copies any r×c gonum matrix into a new Dense.
func fromGonum(m mat.Matrix) (*matrix.Dense[float64], error) {
	r, c := m.Dims()
	out, err := matrix.NewDense[float64](r, c, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	data := out.Data()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}

	return out, nil
}

// SolveLU solves A·x = b with gonum's partial-pivoting LU.
// Errors: matrix.ErrDimensionMismatch, ErrSingular (gonum Condition error).
func SolveLU(a *matrix.Dense[float64], b []float64) ([]float64, error) {
	if err := matrix.ValidateSquare[float64](a); err != nil {
		return nil, oracleErrorf("SolveLU", err)
	}
	if err := matrix.ValidateVecLen(b, a.Rows()); err != nil {
		return nil, oracleErrorf("SolveLU", err)
	}
	var lu mat.LU
	lu.Factorize(toGonum(a))

	var x mat.VecDense
	rhs := mat.NewVecDense(len(b), append([]float64(nil), b...))
	if err := lu.SolveVecTo(&x, false, rhs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, oracleErrorf("SolveLU", fmt.Errorf("%w: %v", ErrSingular, err))
		}

		return nil, oracleErrorf("SolveLU", err)
	}

	return append([]float64(nil), x.RawVector().Data...), nil
}

// Cholesky returns the lower factor L of the symmetric matrix A (upper
// triangle read, as gonum's SymDense does).
// Errors: matrix.ErrDimensionMismatch, ErrNotPositiveDefinite.
func Cholesky(a *matrix.Dense[float64]) (*matrix.Dense[float64], error) {
	if err := matrix.ValidateSquare[float64](a); err != nil {
		return nil, oracleErrorf("Cholesky", err)
	}
	n := a.Rows()
	sym := mat.NewSymDense(n, append([]float64(nil), a.Data()...))

	var ch mat.Cholesky
	if ok := ch.Factorize(sym); !ok {
		return nil, oracleErrorf("Cholesky", ErrNotPositiveDefinite)
	}
	var l mat.TriDense
	ch.LTo(&l)

	return fromGonum(&l)
}

// QR returns the thin factorization of A (m×n, m ≥ n): Q m×n with
// orthonormal columns and R n×n upper-triangular with a non-negative
// diagonal, the normalisation Gram-Schmidt produces.
func QR(a *matrix.Dense[float64]) (q, r *matrix.Dense[float64], err error) {
	if err = matrix.ValidateTall[float64](a); err != nil {
		return nil, nil, oracleErrorf("QR", err)
	}
	m, n := a.Shape()

	var f mat.QR
	f.Factorize(toGonum(a))
	var qFull, rFull mat.Dense
	f.QTo(&qFull)
	f.RTo(&rFull)

	if q, err = fromGonum(qFull.Slice(0, m, 0, n)); err != nil {
		return nil, nil, oracleErrorf("QR", err)
	}
	if r, err = fromGonum(rFull.Slice(0, n, 0, n)); err != nil {
		return nil, nil, oracleErrorf("QR", err)
	}

	// Householder leaves arbitrary signs on diag(R); flip row k of R and
	// column k of Q together so the product is unchanged.
	qd, rd := q.Data(), r.Data()
	for k := 0; k < n; k++ {
		if rd[k*n+k] >= 0 {
			continue
		}
		for j := 0; j < n; j++ {
			rd[k*n+j] = -rd[k*n+j]
		}
		for i := 0; i < m; i++ {
			qd[i*n+k] = -qd[i*n+k]
		}
	}

	return q, r, nil
}

// SolveToeplitz solves Toeplitz(1, r[0..n-2])·y = -r densely, the system the
// Durbin recursion solves in O(n²).
func SolveToeplitz(r []float64) ([]float64, error) {
	n := len(r)
	if n == 0 {
		return nil, oracleErrorf("SolveToeplitz", matrix.ErrInvalidDimensions)
	}
	t, err := matrix.NewDense[float64](n, n)
	if err != nil {
		return nil, oracleErrorf("SolveToeplitz", err)
	}
	data := t.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			if d == 0 {
				data[i*n+j] = 1
			} else {
				data[i*n+j] = r[d-1]
			}
		}
	}
	rhs := make([]float64, n)
	for i, v := range r {
		rhs[i] = -v
	}

	return SolveLU(t, rhs)
}

// Residual returns ‖A·x − b‖∞.
func Residual(a *matrix.Dense[float64], x, b []float64) (float64, error) {
	ax, err := matrix.MatVec[float64](a, x)
	if err != nil {
		return 0, oracleErrorf("Residual", err)
	}
	if err = matrix.ValidateVecLen(b, len(ax)); err != nil {
		return 0, oracleErrorf("Residual", err)
	}

	return floats.Norm(floats.SubTo(ax, ax, b), math.Inf(1)), nil
}

// Reconstruct returns ‖A − F·G‖max, the largest entry-wise error of a
// factorization (L·U, L·Lᵀ or Q·R).
func Reconstruct(a, f, g *matrix.Dense[float64]) (float64, error) {
	prod, err := matrix.Mul[float64](f, g)
	if err != nil {
		return 0, oracleErrorf("Reconstruct", err)
	}
	d, err := matrix.MaxAbsDiff[float64](a, prod)
	if err != nil {
		return 0, oracleErrorf("Reconstruct", err)
	}

	return d, nil
}

// Orthonormality returns ‖Qᵀ·Q − I‖max.
func Orthonormality(q *matrix.Dense[float64]) (float64, error) {
	qt, err := matrix.Transpose[float64](q)
	if err != nil {
		return 0, oracleErrorf("Orthonormality", err)
	}
	id, err := matrix.NewIdentity[float64](q.Cols())
	if err != nil {
		return 0, oracleErrorf("Orthonormality", err)
	}

	return Reconstruct(id, qt, q)
}
