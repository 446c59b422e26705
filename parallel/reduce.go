// SPDX-License-Identifier: MIT

package parallel

import "github.com/katalvlaran/polysolve/matrix"

// Reduce sums fn(lo, hi) over the chunks of [0,n) produced by ex.
// Partials are stored per chunk and added in chunk order, so the result is
// reproducible for a given executor configuration. A single chunk calls fn
// directly without allocating.
func Reduce[T matrix.Float](ex Executor, n int, fn func(lo, hi int) T) T {
	chunks := ex.Chunks(n)
	switch chunks {
	case 0:
		return 0
	case 1:
		return fn(0, n)
	}

	partials := make([]T, chunks)
	size := ChunkSize(n, chunks)
	ex.For(n, func(lo, hi int) {
		partials[lo/size] = fn(lo, hi)
	})

	var sum T
	for _, v := range partials {
		sum += v
	}

	return sum
}

// Dot returns Σ x[i]*y[i] for i < len(x); y must be at least as long as x.
func Dot[T matrix.Float](ex Executor, x, y []T) T {
	y = y[:len(x)]

	return Reduce(ex, len(x), func(lo, hi int) T {
		return dot(x[lo:hi], y[lo:hi])
	})
}

func dot[T matrix.Float](x, y []T) T {
	var acc T
	y = y[:len(x)]
	for i, v := range x {
		acc += v * y[i]
	}

	return acc
}
