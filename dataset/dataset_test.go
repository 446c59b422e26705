// SPDX-License-Identifier: MIT
package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polysolve/dataset"
	"github.com/katalvlaran/polysolve/matrix"
)

func TestParseSize(t *testing.T) {
	t.Parallel()
	cases := map[string]dataset.Size{
		"mini":               dataset.Mini,
		"SMALL":              dataset.Small,
		" medium ":           dataset.Medium,
		"LARGE_DATASET":      dataset.Large,
		"extralarge":         dataset.ExtraLarge,
		"extra-large":        dataset.ExtraLarge,
		"EXTRALARGE_DATASET": dataset.ExtraLarge,
		"xl":                 dataset.ExtraLarge,
	}
	for in, want := range cases {
		got, err := dataset.ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := dataset.ParseSize("huge")
	require.ErrorIs(t, err, dataset.ErrUnknownSize)
}

func TestSize_StringAndFlag(t *testing.T) {
	t.Parallel()
	for _, s := range dataset.Sizes() {
		back, err := dataset.ParseSize(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "Size(9)", dataset.Size(9).String())

	var s dataset.Size
	require.NoError(t, s.Set("large"))
	assert.Equal(t, dataset.Large, s)
	require.ErrorIs(t, s.Set("nope"), dataset.ErrUnknownSize)
	assert.Equal(t, dataset.Large, s, "failed Set keeps the old value")
	assert.Equal(t, "size", s.Type())
}

func TestFor(t *testing.T) {
	t.Parallel()
	d, err := dataset.For(dataset.LU, dataset.Mini)
	require.NoError(t, err)
	assert.Equal(t, dataset.Dims{M: 40, N: 40}, d)

	d, err = dataset.For(dataset.Durbin, dataset.ExtraLarge)
	require.NoError(t, err)
	assert.Equal(t, 4000, d.N)

	d, err = dataset.For(dataset.GramSchmidt, dataset.Small)
	require.NoError(t, err)
	assert.Equal(t, dataset.Dims{M: 528, N: 256}, d)

	for _, k := range dataset.Kernels() {
		for _, s := range dataset.Sizes() {
			d, err := dataset.For(k, s)
			require.NoError(t, err)
			if k == dataset.GramSchmidt {
				assert.GreaterOrEqual(t, d.M, 2*d.N-1, "%s/%s", k, s)
			} else {
				assert.Equal(t, d.M, d.N, "%s/%s", k, s)
			}
		}
	}

	_, err = dataset.For("gemm", dataset.Mini)
	require.ErrorIs(t, err, dataset.ErrUnknownKernel)
	_, err = dataset.For(dataset.LU, dataset.Size(-1))
	require.ErrorIs(t, err, dataset.ErrUnknownSize)
}

func TestKernels(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"cholesky", "durbin", "gramschmidt", "lu", "ludcmp", "trisolv"}, dataset.Kernels())
}

func TestSPD(t *testing.T) {
	t.Parallel()
	a, err := matrix.NewDense[float64](4, 4)
	require.NoError(t, err)
	require.NoError(t, dataset.SPD(a))

	// L rows: [1], [1 1], [1 .75 1], [1 .75 .5 1].
	assert.Equal(t, []float64{
		1, 1, 1, 1,
		1, 2, 1.75, 1.75,
		1, 1.75, 2.5625, 2.0625,
		1, 1.75, 2.0625, 2.8125,
	}, a.Data())
	require.NoError(t, matrix.ValidateSymmetric[float64](a, 0))

	require.ErrorIs(t, dataset.SPD(mustDense(t, 2, 3)), matrix.ErrDimensionMismatch)
}

func TestVectors(t *testing.T) {
	t.Parallel()
	b := make([]float64, 4)
	dataset.LUDcmpRHS(b)
	assert.Equal(t, []float64{4.125, 4.25, 4.375, 4.5}, b)

	dataset.Ramp(b)
	assert.Equal(t, []float64{0, 1, 2, 3}, b)

	r := make([]float32, 4)
	dataset.DurbinInput(r)
	assert.Equal(t, []float32{5, 4, 3, 2}, r)
}

func TestLowerTriangular(t *testing.T) {
	t.Parallel()
	l := mustDense(t, 4, 4)
	l.Fill(-999)
	require.NoError(t, dataset.LowerTriangular(l))
	assert.Equal(t, []float64{
		2.5, 0, 0, 0,
		3, 2.5, 0, 0,
		3.5, 3, 2.5, 0,
		4, 3.5, 3, 2.5,
	}, l.Data())
}

func TestGramSchmidtInput(t *testing.T) {
	t.Parallel()
	a := mustDense(t, 4, 3)
	require.NoError(t, dataset.GramSchmidtInput(a))
	assert.Equal(t, []float64{
		10, 10, 10,
		10, 35, 60,
		10, 60, 10,
		10, 85, 60,
	}, a.Data())

	require.ErrorIs(t, dataset.GramSchmidtInput[float64](nil), matrix.ErrNilMatrix)
}

func mustDense(t *testing.T, r, c int) *matrix.Dense[float64] {
	t.Helper()
	m, err := matrix.NewDense[float64](r, c)
	require.NoError(t, err)

	return m
}
