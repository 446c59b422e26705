// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"sort"
)

// Kernel names with a row in the dimension table.
const (
	Cholesky    = "cholesky"
	LU          = "lu"
	LUDcmp      = "ludcmp"
	Trisolv     = "trisolv"
	GramSchmidt = "gramschmidt"
	Durbin      = "durbin"
)

// Dims is the problem shape of one kernel at one size. Square kernels and
// Durbin use N only (M == N); GramSchmidt factors an M×N matrix.
type Dims struct {
	M, N int
}

func square(ns ...int) [5]Dims {
	var out [5]Dims
	for i, n := range ns {
		out[i] = Dims{M: n, N: n}
	}

	return out
}

// table[kernel][size]. GramSchmidt rows are M+N for the classic (M, N)
// pairs, which keeps the ((i·j) mod M) pattern at full column rank.
var table = map[string][5]Dims{
	Cholesky: square(40, 120, 400, 2000, 4000),
	LU:       square(40, 120, 400, 2000, 4000),
	LUDcmp:   square(40, 120, 400, 2000, 4000),
	Trisolv:  square(40, 120, 400, 2000, 4000),
	Durbin:   square(40, 120, 400, 2000, 4000),
	GramSchmidt: {
		{M: 72, N: 32},
		{M: 528, N: 256},
		{M: 2072, N: 1024},
		{M: 4128, N: 2048},
		{M: 8232, N: 4096},
	},
}

// For returns the dimensions of kernel at size s.
// Errors: ErrUnknownKernel, ErrUnknownSize.
func For(kernel string, s Size) (Dims, error) {
	row, ok := table[kernel]
	if !ok {
		return Dims{}, fmt.Errorf("%w: %q", ErrUnknownKernel, kernel)
	}
	if s < Mini || s > ExtraLarge {
		return Dims{}, fmt.Errorf("%w: %d", ErrUnknownSize, int(s))
	}

	return row[s], nil
}

// Kernels lists the kernel names of the table in sorted order.
func Kernels() []string {
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}
