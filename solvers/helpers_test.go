// SPDX-License-Identifier: MIT
// Package solvers_test contains shared fixtures for the kernel tests.
//
// Purpose:
//   • Deterministic (seeded) well-conditioned and SPD inputs.
//   • A small pool with a tiny grain so chunking happens even for n < 10.

package solvers_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/parallel"
	"github.com/katalvlaran/polysolve/solvers"
)

// newTestPool returns a 4-worker pool with grain 2, closed at test cleanup.
func newTestPool(t testing.TB) *parallel.Pool {
	t.Helper()
	p := parallel.NewPool(parallel.WithWorkers(4), parallel.WithMinChunk(2))
	t.Cleanup(p.Close)

	return p
}

// executors lists the strategies every kernel must agree across.
func executors(t testing.TB) []struct {
	name string
	ex   parallel.Executor
} {
	return []struct {
		name string
		ex   parallel.Executor
	}{
		{"sequential", parallel.Sequential},
		{"pool", newTestPool(t)},
	}
}

// MustDense builds an r×c float64 Dense from row-major vals.
func MustDense(t testing.TB, r, c int, vals []float64) *matrix.Dense[float64] {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// randDense fills an r×c matrix with values in [-1,1) from seed.
func randDense(t testing.TB, r, c int, seed int64) *matrix.Dense[float64] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.Float64()*2 - 1
	}

	return MustDense(t, r, c, vals)
}

// diagDominant returns a random n×n matrix with n added to the diagonal,
// so every leading minor is safely non-zero.
func diagDominant(t testing.TB, n int, seed int64) *matrix.Dense[float64] {
	t.Helper()
	a := randDense(t, n, n, seed)
	d := a.Data()
	for i := 0; i < n; i++ {
		d[i*n+i] += float64(n)
	}

	return a
}

// spd returns B·Bᵀ + n·I for a random B.
func spd(t testing.TB, n int, seed int64) *matrix.Dense[float64] {
	t.Helper()
	b := randDense(t, n, n, seed)
	bt, err := matrix.Transpose[float64](b)
	require.NoError(t, err)
	a, err := matrix.Mul[float64](b, bt)
	require.NoError(t, err)
	d := a.Data()
	for i := 0; i < n; i++ {
		d[i*n+i] += float64(n)
	}

	return a
}

// requireStep asserts err is a *StepError wrapping sentinel at step.
func requireStep(t testing.TB, err, sentinel error, step int) *solvers.StepError {
	t.Helper()
	require.ErrorIs(t, err, sentinel)
	var se *solvers.StepError
	require.ErrorAs(t, err, &se)
	require.Equal(t, step, se.Step, "failing step")

	return se
}

// requireVecInDelta compares two vectors entry-wise.
func requireVecInDelta(t testing.TB, want, got []float64, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], delta, "index %d", i)
	}
}
