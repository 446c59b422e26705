// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/polysolve/dataset"
	"github.com/katalvlaran/polysolve/harness"
	"github.com/katalvlaran/polysolve/parallel"
)

const (
	strategySequential = "sequential"
	strategyPool       = "pool"
)

var errBadFlag = errors.New("invalid flag value")

// cliConfig holds the values of the persistent flags shared by every subcommand.
type cliConfig struct {
	size      dataset.Size
	precision harness.Precision
	strategy  string
	workers   int
	minChunk  int
	tolerance float64
	dump      bool
	logLevel  string

	logger *slog.Logger
}

func defaultCLIConfig() *cliConfig {
	return &cliConfig{
		size:      dataset.Mini,
		precision: harness.Float64,
		strategy:  strategyPool,
		minChunk:  parallel.DefaultMinChunk,
		logLevel:  "info",
	}
}

func (c *cliConfig) bindFlags(fs *pflag.FlagSet) {
	fs.Var(&c.size, "size", "dataset size: mini, small, medium, large or extralarge")
	fs.Var(&c.precision, "type", "element type: float64 or float32")
	fs.StringVar(&c.strategy, "strategy", c.strategy, "execution strategy: sequential or pool")
	fs.IntVar(&c.workers, "workers", c.workers, "pool workers (0 uses GOMAXPROCS)")
	fs.IntVar(&c.minChunk, "min-chunk", c.minChunk, "smallest index range handed to one pool worker")
	fs.Float64Var(&c.tolerance, "tolerance", c.tolerance, "solver guard threshold (0 keeps the per-type default)")
	fs.BoolVar(&c.dump, "dump", c.dump, "write the golden output dump to stderr")
	fs.StringVar(&c.logLevel, "log-level", c.logLevel, "log level: debug, info, warn or error")
}

// setupLogger installs a text slog handler on w at the configured level.
func (c *cliConfig) setupLogger(w io.Writer) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.logLevel)); err != nil {
		return fmt.Errorf("%w: --log-level %q", errBadFlag, c.logLevel)
	}
	c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))

	return nil
}

// executor builds the configured strategy. The returned release func must be
// called once the commands using it are done.
func (c *cliConfig) executor() (parallel.Executor, func(), error) {
	switch strings.ToLower(c.strategy) {
	case strategySequential, "seq":
		return parallel.Sequential, func() {}, nil
	case strategyPool:
		if c.minChunk < 1 {
			return nil, nil, fmt.Errorf("%w: --min-chunk %d", errBadFlag, c.minChunk)
		}
		pool := parallel.NewPool(parallel.WithWorkers(c.workers), parallel.WithMinChunk(c.minChunk))

		return pool, pool.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: --strategy %q", errBadFlag, c.strategy)
}

// harnessConfig resolves the flags into a harness.Config. dumpTo is used
// only when --dump is set.
func (c *cliConfig) harnessConfig(ex parallel.Executor, dumpTo io.Writer) harness.Config {
	cfg := harness.Config{
		Size:      c.size,
		Precision: c.precision,
		Executor:  ex,
		Tolerance: c.tolerance,
	}
	if c.dump {
		cfg.Dump = dumpTo
	}

	return cfg
}

// kernelNames expands "all" and checks every name against the registry.
func kernelNames(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if a == "all" {
			for _, k := range harness.Kernels() {
				out = append(out, k.Name)
			}
			continue
		}
		if _, err := harness.Lookup(a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}
