// SPDX-License-Identifier: MIT

// Package parallel provides the execution strategies the solver kernels are
// parameterised by.
//
// Every kernel is a sequential loop over an outer index whose body
// distributes an inner index range across an Executor and waits for all of
// it (the barrier) before the next outer step. The kernel code is identical
// for every strategy; only the Executor changes.
//
//   - Sequential runs the whole range as one chunk on the calling goroutine.
//   - Pool runs chunks on persistent worker goroutines.
//
// Chunking contract (shared by all executors, relied on by Reduce):
// For(n, fn) with c = Chunks(n) and size = ChunkSize(n, c) calls fn once
// for every non-empty range [k*size, min((k+1)*size, n)), k = 0..c-1.
// Ranges are disjoint, so chunks never write the same output index.
package parallel

// Executor runs disjoint index ranges and returns once all of them finished.
type Executor interface {
	// Workers reports the configured degree of parallelism (>= 1).
	Workers() int

	// Chunks reports how many chunks For(n, ...) splits [0,n) into.
	// It returns 0 for n <= 0.
	Chunks(n int) int

	// For runs fn over the chunks of [0,n) and blocks until every call returned.
	// n <= 0 is a no-op.
	For(n int, fn func(lo, hi int))
}

// ChunkSize returns ceil(n/chunks), the length of every chunk but the last.
func ChunkSize(n, chunks int) int {
	if chunks <= 0 {
		return n
	}

	return (n + chunks - 1) / chunks
}

// sequential is the single-chunk executor.
type sequential struct{}

// Sequential runs every range inline on the caller goroutine.
var Sequential Executor = sequential{}

func (sequential) Workers() int { return 1 }

func (sequential) Chunks(n int) int {
	if n <= 0 {
		return 0
	}

	return 1
}

func (sequential) For(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	fn(0, n)
}
