// SPDX-License-Identifier: MIT

package parallel

import (
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool reused across every phase of a kernel.
// Workers are spawned once in NewPool and live until Close, so the per-phase
// cost is one channel send per chunk plus the barrier wait.
//
// A Pool may be shared by concurrent kernels: each For call waits on its own
// barrier.
type Pool struct {
	numWorkers int
	minChunk   int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one chunk of one For call.
type workItem struct {
	fn      func(lo, hi int)
	lo, hi  int
	barrier *sync.WaitGroup
}

var _ Executor = (*Pool)(nil)

// NewPool spawns the workers and returns the pool.
//
// Usage:
//
//	pool := parallel.NewPool(parallel.WithWorkers(8))
//	defer pool.Close()
//	err := solvers.LU(a, solvers.WithExecutor(pool))
func NewPool(opts ...Option) *Pool {
	o := gatherOptions(opts...)
	p := &Pool{
		numWorkers: o.workers,
		minChunk:   o.minChunk,
		workC:      make(chan workItem, o.workers*2),
	}
	for range o.workers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn(item.lo, item.hi)
		item.barrier.Done()
	}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int { return p.numWorkers }

// MinChunk returns the configured minimum chunk length.
func (p *Pool) MinChunk() int { return p.minChunk }

// Close shuts down the workers after pending chunks complete.
// Calling Close multiple times is safe. A closed pool runs For inline.
// Close must not race with an in-flight For.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Chunks returns min(workers, n/minChunk), at least 1 for n > 0,
// and 1 once the pool is closed.
func (p *Pool) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	if p.closed.Load() {
		return 1
	}

	return max(1, min(p.numWorkers, n/p.minChunk))
}

// For executes fn over the chunks of [0,n) and blocks until all complete.
// The last chunk runs on the calling goroutine.
func (p *Pool) For(n int, fn func(lo, hi int)) {
	chunks := p.Chunks(n)
	if chunks == 0 {
		return
	}
	if chunks == 1 {
		fn(0, n)
		return
	}

	size := ChunkSize(n, chunks)
	var wg sync.WaitGroup
	var lo int
	for lo = 0; lo+size < n; lo += size {
		wg.Add(1)
		p.workC <- workItem{fn: fn, lo: lo, hi: lo + size, barrier: &wg}
	}
	fn(lo, n)
	wg.Wait()
}
