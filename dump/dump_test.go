// SPDX-License-Identifier: MIT
package dump_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/polysolve/dump"
	"github.com/katalvlaran/polysolve/matrix"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

func TestDump_Document(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := dump.NewWriter(&buf)
	d.Start()
	dump.Array(d, "x", func(d *dump.Writer) { dump.Values(d, []float64{1, 2.5, -0.25}) })
	require.NoError(t, d.Finish())

	assert.Equal(t, "==BEGIN DUMP_ARRAYS==\n"+
		"begin dump: x\n1.00 2.50 -0.25 \nend   dump: x\n"+
		"==END   DUMP_ARRAYS==\n", buf.String())
}

func TestDump_LineBreaks(t *testing.T) {
	t.Parallel()
	var lead, trail bytes.Buffer
	d := dump.NewWriter(&lead)
	dump.Values(d, ramp(21))
	require.NoError(t, d.Finish())

	d = dump.NewWriter(&trail)
	dump.TrailingValues(d, ramp(21))
	require.NoError(t, d.Finish())

	leadLines := strings.Split(strings.TrimSuffix(lead.String(), "==END   DUMP_ARRAYS==\n"), "\n")
	require.Len(t, leadLines, 3)
	assert.Equal(t, "", leadLines[0])
	assert.Len(t, strings.Fields(leadLines[1]), 20)
	assert.Equal(t, "20.00 ", leadLines[2])

	trailLines := strings.Split(strings.TrimSuffix(trail.String(), "==END   DUMP_ARRAYS==\n"), "\n")
	require.Len(t, trailLines, 3)
	assert.Equal(t, "0.00 ", trailLines[0])
	assert.Len(t, strings.Fields(trailLines[1]), 20)
	assert.Equal(t, "", trailLines[2])
}

func TestDump_MatrixLayouts(t *testing.T) {
	t.Parallel()
	m, err := matrix.NewDenseFrom(5, 5, ramp(25))
	require.NoError(t, err)

	var full bytes.Buffer
	d := dump.NewWriter(&full)
	dump.Matrix(d, m)
	require.NoError(t, d.Finish())
	assert.Equal(t, 25, len(strings.Fields(strings.TrimSuffix(full.String(), "==END   DUMP_ARRAYS==\n"))))

	var lower bytes.Buffer
	d = dump.NewWriter(&lower)
	dump.LowerTriangle(d, m)
	require.NoError(t, d.Finish())
	// Flat indices 0 and 20 (row 4, column 0) start a line.
	assert.Equal(t,
		"\n0.00 5.00 6.00 10.00 11.00 12.00 15.00 16.00 17.00 18.00 "+
			"\n20.00 21.00 22.00 23.00 24.00 "+
			"==END   DUMP_ARRAYS==\n",
		lower.String())
}

func TestDump_Float32(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := dump.NewWriter(&buf)
	dump.Values(d, []float32{0.5, 3})
	require.NoError(t, d.Finish())
	assert.True(t, strings.HasPrefix(buf.String(), "\n0.50 3.00 "))
}

type failWriter struct{ calls int }

var errBroken = errors.New("broken pipe")

func (f *failWriter) Write(p []byte) (int, error) {
	f.calls++

	return 0, errBroken
}

func TestDump_StickyError(t *testing.T) {
	t.Parallel()
	fw := &failWriter{}
	d := dump.NewWriter(fw)
	d.Start()
	dump.Values(d, ramp(3000)) // overflows the buffer
	require.ErrorIs(t, d.Err(), errBroken)

	calls := fw.calls
	dump.Values(d, ramp(3000))
	d.End("x")
	require.ErrorIs(t, d.Finish(), errBroken)
	assert.Equal(t, calls, fw.calls, "no writes after the first failure")
}
