// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/polysolve/matrix"
)

func datasetErrorf(op string, err error) error {
	return fmt.Errorf("dataset.%s: %w", op, err)
}

// SPD fills the square matrix a with a symmetric positive-definite input:
// L has L[i][j] = (-j mod n)/n + 1 below the diagonal and a unit diagonal,
// and a receives L·Lᵀ. The same matrix feeds LU and the LU solve.
func SPD[T matrix.Float](a *matrix.Dense[T]) error {
	if err := matrix.ValidateSquare[T](a); err != nil {
		return datasetErrorf("SPD", err)
	}
	n := a.Rows()
	fn := T(n)
	l := make([]T, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < i; j++ {
			l[i*n+j] = T(-j%n)/fn + 1
		}
		l[i*n+i] = 1
	}

	data := a.Data()
	for i = 0; i < n; i++ {
		li := l[i*n : (i+1)*n]
		for j = 0; j < n; j++ {
			lj := l[j*n : (j+1)*n]
			var s T
			for k = 0; k <= min(i, j); k++ {
				s += li[k] * lj[k]
			}
			data[i*n+j] = s
		}
	}

	return nil
}

// LUDcmpRHS fills b[i] = (i+1)/n/2 + 4 with n = len(b).
func LUDcmpRHS[T matrix.Float](b []T) {
	fn := T(len(b))
	for i := range b {
		b[i] = T(i+1)/fn/2 + 4
	}
}

// LowerTriangular fills l with L[i][j] = (i+n-j+1)·2/n for j <= i and
// zero above the diagonal.
func LowerTriangular[T matrix.Float](l *matrix.Dense[T]) error {
	if err := matrix.ValidateSquare[T](l); err != nil {
		return datasetErrorf("LowerTriangular", err)
	}
	n := l.Rows()
	data := l.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j > i {
				data[i*n+j] = 0
				continue
			}
			data[i*n+j] = T(i+n-j+1) * 2 / T(n)
		}
	}

	return nil
}

// Ramp fills b[i] = i.
func Ramp[T matrix.Float](b []T) {
	for i := range b {
		b[i] = T(i)
	}
}

// GramSchmidtInput fills the m×n matrix a with ((i·j) mod m)/m·100 + 10.
func GramSchmidtInput[T matrix.Float](a *matrix.Dense[T]) error {
	if err := matrix.ValidateNotNil[T](a); err != nil {
		return datasetErrorf("GramSchmidtInput", err)
	}
	m, n := a.Shape()
	data := a.Data()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = T((i*j)%m)/T(m)*100 + 10
		}
	}

	return nil
}

// DurbinInput fills r[i] = n+1-i with n = len(r).
func DurbinInput[T matrix.Float](r []T) {
	n := len(r)
	for i := range r {
		r[i] = T(n + 1 - i)
	}
}
