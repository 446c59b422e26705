// SPDX-License-Identifier: MIT

// Package matrix: element constraint and the read/write surface shared by
// generic ops. Errors and options live in dedicated files (errors.go,
// options.go) per the package conventions.
package matrix

// Float is the set of element types every kernel is instantiated with.
// Single and double precision are selected by the caller through the type
// parameter, never by a global switch.
type Float interface {
	~float32 | ~float64
}

// Matrix is a two-dimensional mutable array of T values.
// Generic ops accept any Matrix and take a fast path when the concrete
// type is *Dense; kernels in package solvers require *Dense directly.
//
// Complexity notes: all methods are expected O(1).
type Matrix[T Float] interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (T, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v T) error
}
