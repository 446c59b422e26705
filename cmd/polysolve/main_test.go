// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polysolve/dataset"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := makePolysolveCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	for _, k := range dataset.Kernels() {
		assert.Contains(t, out, k)
	}
	assert.Contains(t, out, "[R Q]")
}

func TestRun(t *testing.T) {
	t.Parallel()
	for _, strategy := range []string{"sequential", "pool"} {
		t.Run(strategy, func(t *testing.T) {
			t.Parallel()
			out, logs, err := execute(t, "run", "all", "--strategy", strategy, "--workers", "2", "--jobs", "2")
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, len(dataset.Kernels()))
			assert.True(t, strings.HasPrefix(lines[0], dataset.Cholesky))
			assert.Contains(t, out, "mini")
			assert.Contains(t, logs, "kernel finished")
		})
	}
}

func TestRun_Dump(t *testing.T) {
	t.Parallel()
	_, stderr, err := execute(t, "run", "trisolv", "--dump", "--type", "float32", "--log-level", "warn")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stderr, "==BEGIN DUMP_ARRAYS==\nbegin dump: x"))
	assert.NotContains(t, stderr, "kernel finished")
}

func TestVerify(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "verify", "lu", "durbin")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, " OK\n"))
	assert.NotContains(t, out, "FAIL")
}

func TestBench(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "bench", "gramschmidt", "--iterations", "2", "--strategy", "seq")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations=2")
	assert.Contains(t, out, "median=")

	_, _, err = execute(t, "bench", "lu", "cholesky")
	require.Error(t, err)
}

func TestInfo(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "info", "--size", "small")
	require.NoError(t, err)
	assert.Contains(t, out, "platform: ")
	assert.Contains(t, out, "size: small")
	assert.Contains(t, out, "strategy: pool")
}

func TestErrors(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "run", "lu", "--size", "huge")
	require.Error(t, err)

	_, _, err = execute(t, "run", "gemm")
	require.ErrorIs(t, err, dataset.ErrUnknownKernel)

	_, _, err = execute(t, "run", "lu", "--strategy", "threads")
	require.ErrorIs(t, err, errBadFlag)

	_, _, err = execute(t, "run", "lu", "--min-chunk", "0")
	require.ErrorIs(t, err, errBadFlag)

	_, _, err = execute(t, "list", "--log-level", "loud")
	require.ErrorIs(t, err, errBadFlag)

	_, _, err = execute(t, "run")
	require.Error(t, err)
}
