// SPDX-License-Identifier: MIT

// Package solvers implements in-place dense factorization and recurrence
// kernels over matrix.Dense, each parameterised by a parallel.Executor.
//
// Overview:
//
//   - LU: Doolittle factorization without pivoting, L (unit diagonal) and U
//     packed into A. LUSolve adds forward and back substitution.
//   - Cholesky: A = L·Lᵀ for symmetric positive-definite A; L overwrites the
//     lower triangle, the strict upper triangle is left as given.
//     CholeskySolve adds the two triangular solves.
//   - GramSchmidt / QR: thin A = Q·R by modified Gram-Schmidt for m >= n.
//   - SolveLower, SolveUpper, SolveUnitLower, SolveLowerTranspose: dense
//     triangular solves, with ...Into forms that may write over b.
//   - Durbin / DurbinSolve: Durbin-Levinson recursion for the Yule-Walker
//     system Toeplitz(1, r[0..n-2])·y = -r.
//
// Execution model:
//
//   - The outer index (row, column or recursion step) always advances
//     sequentially. Work inside one outer step is split across the
//     executor and joined before the next step begins.
//   - Results do not depend on the executor except for the summation
//     order of reductions, which moves the last few bits only.
//     LU's U segment has no reduction and is bitwise identical.
//
// Guards and errors:
//
//   - Every divisor, radicand, norm and beta is checked against an absolute
//     tolerance (WithTolerance; default DefaultTolerance64 or
//     DefaultTolerance32). A failing check returns a *StepError naming the
//     kernel, the outer step and the offending value, wrapping one of
//     ErrSingular, ErrNotPositiveDefinite, ErrRankDeficient,
//     ErrDegenerateRecursion.
//   - Shape problems are reported with the matrix sentinels before any
//     buffer is written. After a numerical failure the in-place buffers
//     hold partial results and must be treated as garbage.
//
// Complexity:
//
//   - LU, Cholesky: O(n³) time. GramSchmidt: O(m·n²). Triangular solves and
//     Durbin: O(n²). None allocates more than O(n) besides the allocating
//     ...Solve and QR forms.
package solvers
