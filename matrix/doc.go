// SPDX-License-Identifier: MIT

// Package matrix provides the dense storage the solver kernels operate on.
//
// The matrix package provides:
//
//   - Dense[T], a row-major rows×cols store over a flat buffer, generic over
//     float32 and float64 (the Float constraint).
//   - Bounds-checked At/Set returning sentinel errors, plus Data and Row for
//     the live buffer that in-place kernels mutate.
//   - Allocating reference ops (Mul, Transpose, MatVec, AllClose, MaxAbsDiff)
//     and triangle extraction (UnitLower, Upper, Lower) used to rebuild a
//     matrix from its packed factors.
//   - Central validators shared by every kernel.
//
// Vectors are plain []T slices. The caller owns every buffer; a kernel
// borrows it for one call and returns no copy.
package matrix
