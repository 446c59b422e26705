// SPDX-License-Identifier: MIT

package harness

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/polysolve/dataset"
	"github.com/katalvlaran/polysolve/parallel"
	"github.com/katalvlaran/polysolve/solvers"
)

// DefaultIterations is the number of timed runs Bench takes when
// Config.Iterations is not positive.
const DefaultIterations = 5

// ErrUnknownPrecision indicates an element type name ParsePrecision does not recognise.
var ErrUnknownPrecision = errors.New("harness: unknown precision")

// Precision selects the element type a kernel runs on.
type Precision int

const (
	Float64 Precision = iota
	Float32
)

// String returns "float64" or "float32".
func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	}

	return fmt.Sprintf("Precision(%d)", int(p))
}

// ParsePrecision accepts float64/f64/double and float32/f32/single.
func ParsePrecision(name string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "float64", "f64", "double":
		return Float64, nil
	case "float32", "f32", "single", "float":
		return Float32, nil
	}

	return Float64, fmt.Errorf("%w: %q", ErrUnknownPrecision, name)
}

// Set parses name into p, so a *Precision can back a command-line flag.
func (p *Precision) Set(name string) error {
	v, err := ParsePrecision(name)
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// Type names the flag value kind in usage output.
func (p *Precision) Type() string { return "precision" }

// residualLimit is the largest normalised oracle error Verify accepts.
func (p Precision) residualLimit() float64 {
	if p == Float32 {
		return 1e-4
	}

	return 1e-10
}

// Config describes one harness invocation.
type Config struct {
	Size      dataset.Size
	Precision Precision

	// Executor runs the inner loops; nil runs them sequentially.
	Executor parallel.Executor

	// Tolerance overrides the solver guard threshold when > 0.
	Tolerance float64

	// Dump receives the golden output of every run when non-nil.
	Dump io.Writer

	// Iterations is the number of timed runs for Bench.
	Iterations int
}

func (c Config) options() []solvers.Option {
	opts := []solvers.Option{solvers.WithExecutor(c.Executor)}
	if c.Tolerance > 0 {
		opts = append(opts, solvers.WithTolerance(c.Tolerance))
	}

	return opts
}

func (c Config) workers() int {
	if c.Executor == nil {
		return 1
	}

	return c.Executor.Workers()
}

func (c Config) iterations() int {
	if c.Iterations <= 0 {
		return DefaultIterations
	}

	return c.Iterations
}
