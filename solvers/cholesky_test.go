// SPDX-License-Identifier: MIT
package solvers_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/oracle"
	"github.com/katalvlaran/polysolve/solvers"
)

func TestCholesky_Known3x3(t *testing.T) {
	t.Parallel()
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			a := MustDense(t, 3, 3, []float64{
				4, 12, -16,
				12, 37, -43,
				-16, -43, 98,
			})
			require.NoError(t, solvers.Cholesky(a, solvers.WithExecutor(e.ex)))
			assert.Equal(t, []float64{
				2, 12, -16, // strict upper triangle keeps the input
				6, 1, -43,
				-8, 5, 3,
			}, a.Data())
		})
	}
}

func TestCholesky_MatchesOracle(t *testing.T) {
	t.Parallel()
	for _, n := range []int{5, 40} {
		for _, e := range executors(t) {
			t.Run(fmt.Sprintf("%s/n=%d", e.name, n), func(t *testing.T) {
				orig := spd(t, n, int64(10+n))
				a := orig.Clone()
				require.NoError(t, solvers.Cholesky(a, solvers.WithExecutor(e.ex)))

				l, err := matrix.Lower[float64](a)
				require.NoError(t, err)
				lt, err := matrix.Transpose[float64](l)
				require.NoError(t, err)
				d, err := oracle.Reconstruct(orig, l, lt)
				require.NoError(t, err)
				assert.LessOrEqual(t, d, 1e-9*float64(n))

				ref, err := oracle.Cholesky(orig)
				require.NoError(t, err)
				ok, err := matrix.AllClose[float64](ref, l, 1e-9, 1e-9)
				require.NoError(t, err)
				assert.True(t, ok)
			})
		}
	}
}

func TestCholesky_NotPositiveDefinite(t *testing.T) {
	t.Parallel()
	// Eigenvalues 3 and -1; radicand at row 1 is 1 - 2² = -3.
	a := MustDense(t, 2, 2, []float64{1, 2, 2, 1})
	se := requireStep(t, solvers.Cholesky(a), solvers.ErrNotPositiveDefinite, 1)
	assert.Equal(t, -3.0, se.Value)

	// Negative leading entry fails at step 0.
	a = MustDense(t, 1, 1, []float64{-1})
	requireStep(t, solvers.Cholesky(a, solvers.WithExecutor(newTestPool(t))), solvers.ErrNotPositiveDefinite, 0)

	// A NaN radicand never passes the guard.
	loose, err := matrix.NewDense[float64](2, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	copy(loose.Data(), []float64{4, 0, 0, math.NaN()})
	requireStep(t, solvers.Cholesky(loose), solvers.ErrNotPositiveDefinite, 1)

	// The oracle agrees on the first case.
	_, err = oracle.Cholesky(MustDense(t, 2, 2, []float64{1, 2, 2, 1}))
	require.ErrorIs(t, err, oracle.ErrNotPositiveDefinite)
}

func TestCholesky_ShapeErrors(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, solvers.Cholesky(MustDense(t, 1, 2, []float64{1, 2})), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, solvers.Cholesky[float32](nil), matrix.ErrNilMatrix)
}

func TestCholeskySolve_RoundTrip(t *testing.T) {
	t.Parallel()
	const n = 30
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			orig := spd(t, n, 5)
			want := make([]float64, n)
			for i := range want {
				want[i] = 1 / float64(i+1)
			}
			b, err := matrix.MatVec[float64](orig, want)
			require.NoError(t, err)
			bCopy := append([]float64(nil), b...)

			x, err := solvers.CholeskySolve(orig.Clone(), b, solvers.WithExecutor(e.ex))
			require.NoError(t, err)
			requireVecInDelta(t, want, x, 1e-10)
			assert.Equal(t, bCopy, b, "b untouched")

			res, err := oracle.Residual(orig, x, b)
			require.NoError(t, err)
			assert.LessOrEqual(t, res, 1e-9)
		})
	}
}
