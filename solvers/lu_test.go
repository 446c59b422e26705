// SPDX-License-Identifier: MIT
package solvers_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/oracle"
	"github.com/katalvlaran/polysolve/solvers"
)

func TestLU_Known3x3(t *testing.T) {
	t.Parallel()
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			a := MustDense(t, 3, 3, []float64{
				4, 3, 2,
				8, 7, 9,
				4, 6, 5,
			})
			require.NoError(t, solvers.LU(a, solvers.WithExecutor(e.ex)))
			// L = [[1,0,0],[2,1,0],[1,3,1]], U = [[4,3,2],[0,1,5],[0,0,-12]].
			assert.Equal(t, []float64{4, 3, 2, 2, 1, 5, 1, 3, -12}, a.Data())
		})
	}
}

func TestLU_Reconstruction(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 6, 40} {
		for _, e := range executors(t) {
			t.Run(fmt.Sprintf("%s/n=%d", e.name, n), func(t *testing.T) {
				orig := diagDominant(t, n, int64(n))
				a := orig.Clone()
				require.NoError(t, solvers.LU(a, solvers.WithExecutor(e.ex)))

				l, err := matrix.UnitLower[float64](a)
				require.NoError(t, err)
				u, err := matrix.Upper[float64](a)
				require.NoError(t, err)
				d, err := oracle.Reconstruct(orig, l, u)
				require.NoError(t, err)
				assert.LessOrEqual(t, d, 1e-9*float64(n))
			})
		}
	}
}

func TestLU_ExecutorsAgree(t *testing.T) {
	t.Parallel()
	orig := diagDominant(t, 33, 7)
	seq := orig.Clone()
	par := orig.Clone()
	require.NoError(t, solvers.LU(seq))
	require.NoError(t, solvers.LU(par, solvers.WithExecutor(newTestPool(t))))

	ok, err := matrix.AllClose[float64](seq, par, 1e-12, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLU_Float32(t *testing.T) {
	t.Parallel()
	orig := diagDominant(t, 12, 3)
	a, err := matrix.Convert[float32](orig)
	require.NoError(t, err)
	require.NoError(t, solvers.LU(a, solvers.WithExecutor(newTestPool(t))))

	back, err := matrix.Convert[float64](a)
	require.NoError(t, err)
	l, _ := matrix.UnitLower[float64](back)
	u, _ := matrix.Upper[float64](back)
	d, err := oracle.Reconstruct(orig, l, u)
	require.NoError(t, err)
	assert.LessOrEqual(t, d, 1e-4)
}

func TestLU_ZeroPivot(t *testing.T) {
	t.Parallel()
	// Every run reports the same kind at the same step.
	for range 3 {
		a := MustDense(t, 2, 2, []float64{0, 1, 1, 0})
		se := requireStep(t, solvers.LU(a), solvers.ErrSingular, 0)
		assert.Equal(t, "LU", se.Op)
		assert.Equal(t, 0.0, se.Value)
	}

	// The last pivot is guarded as well: det = 0.
	a := MustDense(t, 2, 2, []float64{1, 2, 2, 4})
	requireStep(t, solvers.LU(a, solvers.WithExecutor(newTestPool(t))), solvers.ErrSingular, 1)

	// Near-zero pivot below the tolerance.
	a = MustDense(t, 2, 2, []float64{1e-3, 1, 1, 1})
	requireStep(t, solvers.LU(a, solvers.WithTolerance(1e-2)), solvers.ErrSingular, 0)
}

func TestLU_ShapeErrors(t *testing.T) {
	t.Parallel()
	wide := MustDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	err := solvers.LU(wide)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, wide.Data(), "input untouched")

	require.ErrorIs(t, solvers.LU[float64](nil), matrix.ErrNilMatrix)
}

func TestLUSolve_RoundTrip(t *testing.T) {
	t.Parallel()
	const n = 25
	for _, e := range executors(t) {
		t.Run(e.name, func(t *testing.T) {
			orig := diagDominant(t, n, 99)
			want := make([]float64, n)
			for i := range want {
				want[i] = float64(i%5) - 2
			}
			b, err := matrix.MatVec[float64](orig, want)
			require.NoError(t, err)

			x, err := solvers.LUSolve(orig.Clone(), b, solvers.WithExecutor(e.ex))
			require.NoError(t, err)
			requireVecInDelta(t, want, x, 1e-10)

			ref, err := oracle.SolveLU(orig, b)
			require.NoError(t, err)
			requireVecInDelta(t, ref, x, 1e-10)
		})
	}
}

func TestLUSolve_Errors(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 2, 2, []float64{1, 0, 0, 1})
	_, err := solvers.LUSolve(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = solvers.LUSolve(MustDense(t, 2, 2, []float64{0, 1, 1, 0}), []float64{1, 1})
	se := requireStep(t, err, solvers.ErrSingular, 0)
	assert.Equal(t, "LUSolve", se.Op)
}

func BenchmarkLU(b *testing.B) {
	for _, n := range []int{64, 128, 256} {
		orig := diagDominant(b, n, 303)
		work := orig.Clone()
		for _, e := range executors(b) {
			b.Run(fmt.Sprintf("%s/n=%d", e.name, n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = work.CopyFrom(orig)
					if err := solvers.LU(work, solvers.WithExecutor(e.ex)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
