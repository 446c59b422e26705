// SPDX-License-Identifier: MIT

package parallel

import "runtime"

// DefaultMinChunk is the smallest range length handed to a single worker.
// Ranges shorter than twice this value run inline on the caller.
const DefaultMinChunk = 64

// Option configures a Pool.
type Option func(*Options)

// Options holds the resolved Pool configuration.
type Options struct {
	workers  int
	minChunk int
}

// WithWorkers sets the number of persistent workers.
// n <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}

// WithMinChunk sets the minimum chunk length.
// Panics if n < 1 (programmer error).
func WithMinChunk(n int) Option {
	if n < 1 {
		panic("parallel: WithMinChunk requires n >= 1")
	}

	return func(o *Options) { o.minChunk = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{minChunk: DefaultMinChunk}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}
