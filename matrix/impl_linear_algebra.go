// SPDX-License-Identifier: MIT
// Package matrix provides reference operations on any Matrix implementation:
// multiplication, transpose, matrix-vector product, closeness checks and
// extraction of the triangles of a packed factorization.
//
// Purpose:
//   - Give the factorization kernels an independent way to rebuild their inputs
//     (L·U, L·Lᵀ, Q·R) so tests and verification can compare against the input.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - These ops allocate their result; the in-place kernels live in package solvers.
//   - All ops use central validators and wrap failures via matrixErrorf at the facade.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul        = "Mul"
	opTranspose  = "Transpose"
	opMatVec     = "MatVec"
	opAllClose   = "AllClose"
	opMaxAbsDiff = "MaxAbsDiff"
	opUnitLower  = "UnitLower"
	opUpper      = "Upper"
	opLower      = "Lower"
	opConvert    = "Convert"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product a×b into a newly allocated Dense.
//
// Implementation:
//   - Stage 1: validate non-nil operands and a.Cols()==b.Rows().
//   - Stage 2: *Dense fast path (i→k→j, flat indexing); generic At fallback (i→j→k).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop orders independent of data values.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - Reconstruction checks call Mul(L, U) or Mul(L, Lᵀ); keep both as *Dense.
func Mul[T Float](a, b Matrix[T]) (*Dense[T], error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense[T](aRows, bCols, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k     int
		av, bv, acc T
	)
	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense[T]); okA {
		if db, okB := b.(*Dense[T]); okB {
			var rowA, rowB, rowR int
			for i = 0; i < aRows; i++ {
				rowA = i * aCols
				rowR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowA+k]
					if av == 0 {
						continue
					}
					rowB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowR+j] += av * db.data[rowB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k).
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			acc = 0
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				acc += av * bv
			}
			res.data[i*bCols+j] = acc
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose[T Float](m Matrix[T]) (*Dense[T], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense[T](cols, rows, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense[T]); ok {
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[i*cols+j]
			}
		}

		return res, nil
	}

	var v T
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec[T Float](m Matrix[T], x []T) ([]T, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]T, rows)

	var (
		i, j int
		acc  T
	)
	if d, ok := m.(*Dense[T]); ok {
		var base int
		for i = 0; i < rows; i++ {
			acc = 0
			base = i * cols
			for j = 0; j < cols; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var (
		mv  T
		err error
	)
	for i = 0; i < rows; i++ {
		acc = 0
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			acc += mv * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// MaxAbsDiff returns max |a[i,j] - b[i,j]| over all entries, computed in float64.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func MaxAbsDiff[T Float](a, b Matrix[T]) (float64, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}

	var (
		i, j   int
		av, bv T
		err    error
		d, mx  float64
	)
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return 0, matrixErrorf(opMaxAbsDiff, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return 0, matrixErrorf(opMaxAbsDiff, err)
			}
			d = math.Abs(float64(av) - float64(bv))
			if d > mx || math.IsNaN(d) {
				mx = d
			}
		}
	}

	return mx, nil
}

// AllClose reports whether |a[i,j]-b[i,j]| <= atol + rtol*|b[i,j]| for every entry.
//
// Inputs:
//   - rtol: relative tolerance (negative values treated as 0).
//   - atol: absolute tolerance; a non-positive atol selects DefaultEpsilon.
//
// Behavior highlights:
//   - NaN on either side never compares close.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func AllClose[T Float](a, b Matrix[T], rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if rtol < 0 {
		rtol = 0
	}
	if atol <= 0 {
		atol = DefaultEpsilon
	}

	var (
		i, j   int
		av, bv T
		err    error
		x, y   float64
	)
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			x, y = float64(av), float64(bv)
			if !(math.Abs(x-y) <= atol+rtol*math.Abs(y)) {
				return false, nil
			}
		}
	}

	return true, nil
}

// triangle copies the entries of square m selected by keep, substituting
// diag on the diagonal when unit is set.
func triangle[T Float](tag string, m Matrix[T], keep func(i, j int) bool, unit bool) (*Dense[T], error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	n := m.Rows()
	res, err := NewDense[T](n, n, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	var (
		i, j int
		v    T
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if unit && i == j {
				res.data[i*n+j] = 1
				continue
			}
			if !keep(i, j) {
				continue
			}
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			res.data[i*n+j] = v
		}
	}

	return res, nil
}

// UnitLower extracts the unit lower-triangular factor of a packed LU result:
// strict lower part of m, ones on the diagonal, zeros above.
func UnitLower[T Float](m Matrix[T]) (*Dense[T], error) {
	return triangle(opUnitLower, m, func(i, j int) bool { return j < i }, true)
}

// Upper extracts the upper triangle of m (diagonal included), zeros below.
func Upper[T Float](m Matrix[T]) (*Dense[T], error) {
	return triangle(opUpper, m, func(i, j int) bool { return j >= i }, false)
}

// Lower extracts the lower triangle of m (diagonal included), zeros above.
// After an in-place Cholesky this is L; the untouched strict upper part is dropped.
func Lower[T Float](m Matrix[T]) (*Dense[T], error) {
	return triangle(opLower, m, func(i, j int) bool { return j <= i }, false)
}

// Convert copies a *Dense[T] into a new *Dense[U] element by element.
// Used to run a float32 kernel against a float64 reference and back.
// Errors: ErrNilMatrix.
func Convert[U, T Float](m *Dense[T]) (*Dense[U], error) {
	if m == nil {
		return nil, matrixErrorf(opConvert, ErrNilMatrix)
	}
	res, err := NewDense[U](m.r, m.c, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(opConvert, err)
	}
	for idx, v := range m.data {
		res.data[idx] = U(v)
	}

	return res, nil
}

// ConvertVec copies a []T into a new []U.
func ConvertVec[U, T Float](x []T) []U {
	out := make([]U, len(x))
	for i, v := range x {
		out[i] = U(v)
	}

	return out
}
