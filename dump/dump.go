// SPDX-License-Identifier: MIT

// Package dump writes kernel outputs in the golden text layout used to
// compare runs byte for byte:
//
//	==BEGIN DUMP_ARRAYS==
//	begin dump: A
//	0.50 1.25 ...            (20 values per line, "%0.2f ")
//	end   dump: A
//	==END   DUMP_ARRAYS==
//
// The line break goes before every value whose flat index is a multiple of
// 20, so each array body starts on a fresh line. TrailingValues puts it after
// such values instead, which is the historical layout of the triangular
// solve output.
//
// Write errors are sticky: after the first failure every call is a no-op
// and Err / Finish report it.
package dump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/polysolve/matrix"
)

const (
	startMarker  = "==BEGIN DUMP_ARRAYS==\n"
	finishMarker = "==END   DUMP_ARRAYS==\n"
	perLine      = 20
)

// Writer formats dump sections onto an underlying io.Writer.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer buffering onto w. Nothing reaches w before Finish.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (d *Writer) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// Start writes the opening marker of a dump.
func (d *Writer) Start() { d.printf(startMarker) }

// Begin opens the section of one named array.
func (d *Writer) Begin(name string) { d.printf("begin dump: %s", name) }

// End closes the section of one named array.
func (d *Writer) End(name string) { d.printf("\nend   dump: %s\n", name) }

// Finish writes the closing marker, flushes, and returns the first error seen.
func (d *Writer) Finish() error {
	d.printf(finishMarker)
	if d.err == nil {
		d.err = d.w.Flush()
	}

	return d.err
}

// Err returns the first write error, if any.
func (d *Writer) Err() error { return d.err }

func value[T matrix.Float](d *Writer, idx int, v T, trailing bool) {
	if !trailing && idx%perLine == 0 {
		d.printf("\n")
	}
	d.printf("%0.2f ", v)
	if trailing && idx%perLine == 0 {
		d.printf("\n")
	}
}

// Values writes vals with a break before every 20th value.
func Values[T matrix.Float](d *Writer, vals []T) {
	for i, v := range vals {
		value(d, i, v, false)
	}
}

// TrailingValues writes vals with a break after every 20th value.
func TrailingValues[T matrix.Float](d *Writer, vals []T) {
	for i, v := range vals {
		value(d, i, v, true)
	}
}

// Matrix writes every entry of m in row-major order (flat index i*cols+j).
func Matrix[T matrix.Float](d *Writer, m *matrix.Dense[T]) {
	Values(d, m.Data())
}

// LowerTriangle writes the entries j <= i of the square matrix m row by row.
// Breaks follow the full-matrix index i*n+j, so lines are uneven.
func LowerTriangle[T matrix.Float](d *Writer, m *matrix.Dense[T]) {
	n := m.Cols()
	data := m.Data()
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j <= i && j < n; j++ {
			value(d, i*n+j, data[i*n+j], false)
		}
	}
}

// Array writes one complete named section: Begin, body, End.
func Array(d *Writer, name string, body func(*Writer)) {
	d.Begin(name)
	body(d)
	d.End(name)
}
