// SPDX-License-Identifier: MIT

package solvers

import (
	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	opDurbin         = "Durbin"
	opDurbinSolve    = "DurbinSolve"
	opToeplitzSystem = "ToeplitzSystem"
)

// Durbin solves the Yule-Walker system Toeplitz(1, r[0..n-2])·y = -r by the
// Durbin-Levinson recursion in O(n²), writing the solution into y.
//
// Implementation:
//   - y[0] = -r[0], beta = 1, alpha = -r[0].
//   - Step k = 1..n-1 strictly in order:
//     beta *= 1 - alpha² (guarded);
//     sum = Σ_{i<k} r[k-i-1]·y[i] (parallel reduction);
//     alpha = -(r[k] + sum) / beta;
//     z[i] = y[i] + alpha·y[k-i-1] for i < k (parallel over i), z[k] = alpha;
//     then y and z swap roles.
//
// Behavior highlights:
//   - Every step reads the whole previous vector before any entry of the
//     next one is written: the two buffers are y and one internal scratch
//     vector, swapped each step. y always receives the final vector.
//
// Errors:
//   - matrix.ErrNilMatrix (nil r or y), matrix.ErrInvalidDimensions (empty r),
//     matrix.ErrDimensionMismatch (len(y) != len(r)).
//   - ErrDegenerateRecursion as *StepError{Step: k, Value: beta} when
//     |beta| <= tolerance or beta is not finite.
//
// Complexity:
//   - Time O(n²), extra space O(n).
func Durbin[T matrix.Float](r, y []T, opts ...Option) error {
	if r == nil {
		return solverErrorf(opDurbin, matrix.ErrNilMatrix)
	}
	if len(r) == 0 {
		return solverErrorf(opDurbin, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateVecLen(y, len(r)); err != nil {
		return solverErrorf(opDurbin, err)
	}
	o := gatherOptions[T](opts...)

	return durbin(opDurbin, r, y, o)
}

func durbin[T matrix.Float](op string, r, y []T, o Options) error {
	n := len(r)
	ex := o.executor
	cur, next := y, make([]T, n)

	cur[0] = -r[0]
	beta, alpha := T(1), -r[0]
	for k := 1; k < n; k++ {
		beta *= 1 - alpha*alpha
		if degenerate(beta, o.tolerance) {
			return stepError(op, k, float64(beta), ErrDegenerateRecursion)
		}
		step, old := k, cur
		sum := parallel.Reduce(ex, step, func(lo, hi int) T {
			var acc T
			for i := lo; i < hi; i++ {
				acc += r[step-i-1] * old[i]
			}

			return acc
		})
		alpha = -(r[k] + sum) / beta

		dst, a := next, alpha
		ex.For(step, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				dst[i] = old[i] + a*old[step-i-1]
			}
		})
		dst[k] = alpha
		cur, next = next, cur
	}
	if &cur[0] != &y[0] {
		copy(y, cur)
	}

	return nil
}

// DurbinSolve is the allocating form of Durbin.
func DurbinSolve[T matrix.Float](r []T, opts ...Option) ([]T, error) {
	if r == nil {
		return nil, solverErrorf(opDurbinSolve, matrix.ErrNilMatrix)
	}
	if len(r) == 0 {
		return nil, solverErrorf(opDurbinSolve, matrix.ErrInvalidDimensions)
	}
	y := make([]T, len(r))
	if err := durbin(opDurbinSolve, r, y, gatherOptions[T](opts...)); err != nil {
		return nil, err
	}

	return y, nil
}

// ToeplitzSystem builds the explicit system the recursion solves:
// t[i][j] = c[|i-j|] with c = (1, r[0], ..., r[n-2]), and rhs = -r.
// Used to cross-check Durbin against a dense solver.
func ToeplitzSystem[T matrix.Float](r []T) (*matrix.Dense[T], []T, error) {
	if r == nil {
		return nil, nil, solverErrorf(opToeplitzSystem, matrix.ErrNilMatrix)
	}
	n := len(r)
	t, err := matrix.NewDense[T](n, n)
	if err != nil {
		return nil, nil, solverErrorf(opToeplitzSystem, err)
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
	rhs := make([]T, n)
	for i, v := range r {
		rhs[i] = -v
	}

	return t, rhs, nil
}
