// SPDX-License-Identifier: MIT

// Package harness drives the solver kernels the way a benchmark suite does:
// look a kernel up by name, allocate and initialise its dataset, time the
// kernel call alone, and optionally dump its outputs.
//
// On top of single runs it offers Bench (repeated timing with summary
// statistics), Verify (sequential and parallel dumps must hash identically
// and the result must pass a float64 oracle check) and RunAll (independent
// kernels concurrently, first error cancels the rest).
package harness

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/polysolve/dataset"
	"github.com/katalvlaran/polysolve/dump"
	"github.com/katalvlaran/polysolve/parallel"
)

var (
	// ErrInvalidConfig indicates a Config field outside its domain.
	ErrInvalidConfig = errors.New("harness: invalid config")

	// ErrMismatch indicates the sequential and parallel dumps differ.
	ErrMismatch = errors.New("harness: dumps differ between strategies")

	// ErrResidual indicates the oracle check exceeded the precision's limit.
	ErrResidual = errors.New("harness: oracle residual above limit")
)

func harnessErrorf(kernel string, err error) error {
	return fmt.Errorf("harness.%s: %w", kernel, err)
}

// Result reports one timed kernel run.
type Result struct {
	Kernel    string
	Size      dataset.Size
	Dims      dataset.Dims
	Precision Precision
	Workers   int
	Elapsed   time.Duration // kernel call only, excluding init and dump
}

func (c Config) validate() error {
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %v", ErrInvalidConfig, c.Tolerance)
	}
	if c.Precision != Float64 && c.Precision != Float32 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Precision)
	}

	return nil
}

// Run executes kernel name once under cfg.
//
// Errors:
//   - ctx.Err() when ctx is already done; a running kernel is not interrupted.
//   - ErrInvalidConfig, dataset.ErrUnknownKernel, dataset.ErrUnknownSize.
//   - The kernel's own error (e.g. a *solvers.StepError) and dump write errors,
//     wrapped with the kernel name.
func Run(ctx context.Context, name string, cfg Config) (Result, error) {
	res, _, err := execute(ctx, name, cfg)

	return res, err
}

func execute(ctx context.Context, name string, cfg Config) (Result, workload, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, nil, err
	}
	if err := cfg.validate(); err != nil {
		return Result{}, nil, err
	}
	k, err := Lookup(name)
	if err != nil {
		return Result{}, nil, err
	}
	dims, err := dataset.For(name, cfg.Size)
	if err != nil {
		return Result{}, nil, harnessErrorf(name, err)
	}
	w, err := k.build(cfg.Precision)(dims)
	if err != nil {
		return Result{}, nil, harnessErrorf(name, err)
	}

	start := time.Now()
	err = w.compute(cfg.options())
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, nil, harnessErrorf(name, err)
	}

	res := Result{
		Kernel:    name,
		Size:      cfg.Size,
		Dims:      dims,
		Precision: cfg.Precision,
		Workers:   cfg.workers(),
		Elapsed:   elapsed,
	}
	if cfg.Dump != nil {
		d := dump.NewWriter(cfg.Dump)
		d.Start()
		w.dump(d)
		if err = d.Finish(); err != nil {
			return res, w, harnessErrorf(name, err)
		}
	}

	return res, w, nil
}

// Stats summarises Bench timings. Durations are per run of the kernel call.
type Stats struct {
	Kernel     string
	Size       dataset.Size
	Precision  Precision
	Workers    int
	Iterations int
	Samples    []time.Duration

	Mean, Median, StdDev, Min, Max time.Duration
}

// Bench runs kernel name cfg.Iterations times (DefaultIterations when unset),
// each on a freshly initialised dataset. Only the first run is dumped.
func Bench(ctx context.Context, name string, cfg Config) (Stats, error) {
	n := cfg.iterations()
	secs := make([]float64, 0, n)
	st := Stats{Kernel: name, Size: cfg.Size, Precision: cfg.Precision, Workers: cfg.workers(), Iterations: n}
	for i := 0; i < n; i++ {
		c := cfg
		if i > 0 {
			c.Dump = nil
		}
		res, err := Run(ctx, name, c)
		if err != nil {
			return Stats{}, err
		}
		st.Samples = append(st.Samples, res.Elapsed)
		secs = append(secs, res.Elapsed.Seconds())
	}

	mean, std := stat.MeanStdDev(secs, nil)
	if n < 2 {
		std = 0
	}
	sorted := append([]float64(nil), secs...)
	sort.Float64s(sorted)

	st.Mean = seconds(mean)
	st.StdDev = seconds(std)
	st.Median = seconds(stat.Quantile(0.5, stat.Empirical, sorted, nil))
	st.Min = seconds(floats.Min(secs))
	st.Max = seconds(floats.Max(secs))

	return st, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Report is the outcome of Verify.
type Report struct {
	Kernel           string
	Size             dataset.Size
	Precision        Precision
	Sequential       Result
	Parallel         Result
	SequentialDigest string // hex SHA-256 of the sequential dump
	ParallelDigest   string // hex SHA-256 of the parallel dump
	Residual         float64
	Limit            float64
}

// Match reports whether both strategies produced the same dump.
func (r Report) Match() bool { return r.SequentialDigest == r.ParallelDigest }

// Err returns nil when the dumps match and the residual is within the limit,
// otherwise ErrMismatch or ErrResidual with the details.
func (r Report) Err() error {
	if !r.Match() {
		return fmt.Errorf("%w: %s: %s != %s", ErrMismatch, r.Kernel, r.SequentialDigest, r.ParallelDigest)
	}
	if !(r.Residual <= r.Limit) {
		return fmt.Errorf("%w: %s: %g > %g", ErrResidual, r.Kernel, r.Residual, r.Limit)
	}

	return nil
}

// Verify runs kernel name sequentially and with cfg.Executor, hashes both
// dumps, and checks the parallel outputs against a float64 oracle.
// When cfg.Executor is nil or parallel.Sequential a default Pool is used for
// the parallel run. cfg.Dump, if set, receives the parallel dump.
//
// The returned error covers failed runs only; inspect Report.Err for the verdict.
func Verify(ctx context.Context, name string, cfg Config) (Report, error) {
	ex := cfg.Executor
	if ex == nil || ex == parallel.Sequential {
		pool := parallel.NewPool()
		defer pool.Close()
		ex = pool
	}

	seqHash, parHash := sha256.New(), sha256.New()
	seqCfg, parCfg := cfg, cfg
	seqCfg.Executor, seqCfg.Dump = parallel.Sequential, seqHash
	parCfg.Executor, parCfg.Dump = ex, parHash

	if cfg.Dump != nil {
		parCfg.Dump = io.MultiWriter(parHash, cfg.Dump)
	}

	seq, _, err := execute(ctx, name, seqCfg)
	if err != nil {
		return Report{}, err
	}
	par, w, err := execute(ctx, name, parCfg)
	if err != nil {
		return Report{}, err
	}
	residual, err := w.check()
	if err != nil {
		return Report{}, harnessErrorf(name, err)
	}

	return Report{
		Kernel:           name,
		Size:             cfg.Size,
		Precision:        cfg.Precision,
		Sequential:       seq,
		Parallel:         par,
		SequentialDigest: hex.EncodeToString(seqHash.Sum(nil)),
		ParallelDigest:   hex.EncodeToString(parHash.Sum(nil)),
		Residual:         residual,
		Limit:            cfg.Precision.residualLimit(),
	}, nil
}

// RunAll runs the named kernels concurrently, at most jobs at a time
// (jobs <= 0 means no limit). Each kernel gets its own storage; the first
// failure cancels the kernels not yet started. Dumps are buffered per kernel
// and written to cfg.Dump in the order of names once all runs succeeded.
func RunAll(ctx context.Context, names []string, cfg Config, jobs int) ([]Result, error) {
	results := make([]Result, len(names))
	var bufs []*bytes.Buffer
	if cfg.Dump != nil {
		bufs = make([]*bytes.Buffer, len(names))
	}

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, name := range names {
		c := cfg
		if bufs != nil {
			bufs[i] = new(bytes.Buffer)
			c.Dump = bufs[i]
		}
		g.Go(func() error {
			res, err := Run(gctx, name, c)
			if err != nil {
				return err
			}
			results[i] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, b := range bufs {
		if _, err := b.WriteTo(cfg.Dump); err != nil {
			return nil, err
		}
	}

	return results, nil
}
