// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/polysolve/dataset"
	"github.com/katalvlaran/polysolve/dump"
	"github.com/katalvlaran/polysolve/matrix"
	"github.com/katalvlaran/polysolve/oracle"
	"github.com/katalvlaran/polysolve/solvers"
)

// workload is one initialised problem instance. compute runs the kernel
// exactly once; dump and check read its outputs afterwards.
type workload interface {
	compute(opts []solvers.Option) error
	dump(d *dump.Writer)
	// check returns the float64 oracle error of the outputs, normalised so
	// that values near the unit roundoff of the element type mean success.
	check() (float64, error)
}

type builder func(d dataset.Dims) (workload, error)

// Kernel describes one registered benchmark kernel.
type Kernel struct {
	Name    string
	Summary string
	Arrays  []string // names of the dumped arrays, in dump order

	build32 builder
	build64 builder
}

var registry = map[string]Kernel{}

func register(k Kernel) { registry[k.Name] = k }

func init() {
	register(Kernel{
		Name: dataset.Cholesky, Summary: "Cholesky factorization A = L·Lᵀ of an SPD matrix",
		Arrays: []string{"A"}, build32: newCholesky[float32], build64: newCholesky[float64],
	})
	register(Kernel{
		Name: dataset.LU, Summary: "LU factorization without pivoting",
		Arrays: []string{"A"}, build32: newLU[float32], build64: newLU[float64],
	})
	register(Kernel{
		Name: dataset.LUDcmp, Summary: "LU factorization followed by forward and back substitution",
		Arrays: []string{"x"}, build32: newLUDcmp[float32], build64: newLUDcmp[float64],
	})
	register(Kernel{
		Name: dataset.Trisolv, Summary: "lower triangular solve L·x = b",
		Arrays: []string{"x"}, build32: newTrisolv[float32], build64: newTrisolv[float64],
	})
	register(Kernel{
		Name: dataset.GramSchmidt, Summary: "thin QR by modified Gram-Schmidt",
		Arrays: []string{"R", "Q"}, build32: newGramSchmidt[float32], build64: newGramSchmidt[float64],
	})
	register(Kernel{
		Name: dataset.Durbin, Summary: "Durbin-Levinson recursion for a Yule-Walker system",
		Arrays: []string{"y"}, build32: newDurbin[float32], build64: newDurbin[float64],
	})
}

// Kernels returns every registered kernel sorted by name.
func Kernels() []Kernel {
	out := make([]Kernel, 0, len(registry))
	for _, k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Lookup returns the kernel registered under name.
// Errors: dataset.ErrUnknownKernel.
func Lookup(name string) (Kernel, error) {
	k, ok := registry[name]
	if !ok {
		return Kernel{}, fmt.Errorf("harness: %w: %q", dataset.ErrUnknownKernel, name)
	}

	return k, nil
}

func (k Kernel) build(p Precision) builder {
	if p == Float32 {
		return k.build32
	}

	return k.build64
}

// backward returns diff / (scale·n), the usual normalisation of a
// factorization or solve error.
func backward(diff, scale float64, n int) float64 {
	if scale == 0 || n == 0 {
		return diff
	}

	return diff / (scale * float64(n))
}

func maxAbs(m *matrix.Dense[float64]) float64 {
	return floats.Norm(m.Data(), math.Inf(1))
}

func newSquare[T matrix.Float](n int) (*matrix.Dense[T], error) {
	return matrix.NewDense[T](n, n)
}

// ------------------------------------------------------------------------
// cholesky
// ------------------------------------------------------------------------

type choleskyWork[T matrix.Float] struct {
	a, orig *matrix.Dense[T]
}

func newCholesky[T matrix.Float](d dataset.Dims) (workload, error) {
	a, err := newSquare[T](d.N)
	if err != nil {
		return nil, err
	}
	if err = dataset.SPD(a); err != nil {
		return nil, err
	}

	return &choleskyWork[T]{a: a, orig: a.Clone()}, nil
}

func (w *choleskyWork[T]) compute(opts []solvers.Option) error { return solvers.Cholesky(w.a, opts...) }

func (w *choleskyWork[T]) dump(d *dump.Writer) {
	dump.Array(d, "A", func(d *dump.Writer) { dump.LowerTriangle(d, w.a) })
}

func (w *choleskyWork[T]) check() (float64, error) {
	orig, err := matrix.Convert[float64](w.orig)
	if err != nil {
		return 0, err
	}
	packed, err := matrix.Convert[float64](w.a)
	if err != nil {
		return 0, err
	}
	l, err := matrix.Lower[float64](packed)
	if err != nil {
		return 0, err
	}
	lt, err := matrix.Transpose[float64](l)
	if err != nil {
		return 0, err
	}
	diff, err := oracle.Reconstruct(orig, l, lt)
	if err != nil {
		return 0, err
	}

	return backward(diff, maxAbs(orig), orig.Rows()), nil
}

// ------------------------------------------------------------------------
// lu
// ------------------------------------------------------------------------

type luWork[T matrix.Float] struct {
	a, orig *matrix.Dense[T]
}

func newLU[T matrix.Float](d dataset.Dims) (workload, error) {
	a, err := newSquare[T](d.N)
	if err != nil {
		return nil, err
	}
	if err = dataset.SPD(a); err != nil {
		return nil, err
	}

	return &luWork[T]{a: a, orig: a.Clone()}, nil
}

func (w *luWork[T]) compute(opts []solvers.Option) error { return solvers.LU(w.a, opts...) }

func (w *luWork[T]) dump(d *dump.Writer) {
	dump.Array(d, "A", func(d *dump.Writer) { dump.Matrix(d, w.a) })
}

func (w *luWork[T]) check() (float64, error) {
	orig, err := matrix.Convert[float64](w.orig)
	if err != nil {
		return 0, err
	}
	packed, err := matrix.Convert[float64](w.a)
	if err != nil {
		return 0, err
	}
	l, err := matrix.UnitLower[float64](packed)
	if err != nil {
		return 0, err
	}
	u, err := matrix.Upper[float64](packed)
	if err != nil {
		return 0, err
	}
	diff, err := oracle.Reconstruct(orig, l, u)
	if err != nil {
		return 0, err
	}

	return backward(diff, maxAbs(orig), orig.Rows()), nil
}

// ------------------------------------------------------------------------
// ludcmp
// ------------------------------------------------------------------------

type ludcmpWork[T matrix.Float] struct {
	a, orig *matrix.Dense[T]
	b, x    []T
}

func newLUDcmp[T matrix.Float](d dataset.Dims) (workload, error) {
	a, err := newSquare[T](d.N)
	if err != nil {
		return nil, err
	}
	if err = dataset.SPD(a); err != nil {
		return nil, err
	}
	b := make([]T, d.N)
	dataset.LUDcmpRHS(b)

	return &ludcmpWork[T]{a: a, orig: a.Clone(), b: b, x: make([]T, d.N)}, nil
}

func (w *ludcmpWork[T]) compute(opts []solvers.Option) error {
	x, err := solvers.LUSolve(w.a, w.b, opts...)
	if err != nil {
		return err
	}
	copy(w.x, x)

	return nil
}

func (w *ludcmpWork[T]) dump(d *dump.Writer) {
	dump.Array(d, "x", func(d *dump.Writer) { dump.Values(d, w.x) })
}

func (w *ludcmpWork[T]) check() (float64, error) {
	return solveCheck(w.orig, w.x, w.b)
}

// solveCheck returns ‖A·x − b‖∞ / (‖A‖max·‖x‖∞·n).
func solveCheck[T matrix.Float](a *matrix.Dense[T], x, b []T) (float64, error) {
	a64, err := matrix.Convert[float64](a)
	if err != nil {
		return 0, err
	}
	x64 := matrix.ConvertVec[float64](x)
	res, err := oracle.Residual(a64, x64, matrix.ConvertVec[float64](b))
	if err != nil {
		return 0, err
	}

	return backward(res, maxAbs(a64)*floats.Norm(x64, math.Inf(1)), len(x)), nil
}

// ------------------------------------------------------------------------
// trisolv
// ------------------------------------------------------------------------

type trisolvWork[T matrix.Float] struct {
	l    *matrix.Dense[T]
	b, x []T
}

func newTrisolv[T matrix.Float](d dataset.Dims) (workload, error) {
	l, err := newSquare[T](d.N)
	if err != nil {
		return nil, err
	}
	if err = dataset.LowerTriangular(l); err != nil {
		return nil, err
	}
	b := make([]T, d.N)
	dataset.Ramp(b)
	x := make([]T, d.N)
	for i := range x {
		x[i] = -999
	}

	return &trisolvWork[T]{l: l, b: b, x: x}, nil
}

func (w *trisolvWork[T]) compute(opts []solvers.Option) error {
	return solvers.SolveLowerInto(w.l, w.b, w.x, opts...)
}

func (w *trisolvWork[T]) dump(d *dump.Writer) {
	dump.Array(d, "x", func(d *dump.Writer) { dump.TrailingValues(d, w.x) })
}

func (w *trisolvWork[T]) check() (float64, error) {
	return solveCheck(w.l, w.x, w.b)
}

// ------------------------------------------------------------------------
// gramschmidt
// ------------------------------------------------------------------------

type gramSchmidtWork[T matrix.Float] struct {
	a, orig, q, r *matrix.Dense[T]
}

func newGramSchmidt[T matrix.Float](d dataset.Dims) (workload, error) {
	a, err := matrix.NewDense[T](d.M, d.N)
	if err != nil {
		return nil, err
	}
	if err = dataset.GramSchmidtInput(a); err != nil {
		return nil, err
	}
	q, err := matrix.NewDense[T](d.M, d.N)
	if err != nil {
		return nil, err
	}
	r, err := newSquare[T](d.N)
	if err != nil {
		return nil, err
	}

	return &gramSchmidtWork[T]{a: a, orig: a.Clone(), q: q, r: r}, nil
}

func (w *gramSchmidtWork[T]) compute(opts []solvers.Option) error {
	return solvers.GramSchmidt(w.a, w.q, w.r, opts...)
}

func (w *gramSchmidtWork[T]) dump(d *dump.Writer) {
	dump.Array(d, "R", func(d *dump.Writer) { dump.Matrix(d, w.r) })
	dump.Array(d, "Q", func(d *dump.Writer) { dump.Matrix(d, w.q) })
}

// check reports the larger of the normalised reconstruction error and the
// loss of orthonormality of Q.
func (w *gramSchmidtWork[T]) check() (float64, error) {
	orig, err := matrix.Convert[float64](w.orig)
	if err != nil {
		return 0, err
	}
	q, err := matrix.Convert[float64](w.q)
	if err != nil {
		return 0, err
	}
	r, err := matrix.Convert[float64](w.r)
	if err != nil {
		return 0, err
	}
	diff, err := oracle.Reconstruct(orig, q, r)
	if err != nil {
		return 0, err
	}
	ortho, err := oracle.Orthonormality(q)
	if err != nil {
		return 0, err
	}

	return math.Max(backward(diff, maxAbs(orig), orig.Cols()), ortho), nil
}

// ------------------------------------------------------------------------
// durbin
// ------------------------------------------------------------------------

type durbinWork[T matrix.Float] struct {
	r, y []T
}

func newDurbin[T matrix.Float](d dataset.Dims) (workload, error) {
	r := make([]T, d.N)
	dataset.DurbinInput(r)

	return &durbinWork[T]{r: r, y: make([]T, d.N)}, nil
}

func (w *durbinWork[T]) compute(opts []solvers.Option) error { return solvers.Durbin(w.r, w.y, opts...) }

func (w *durbinWork[T]) dump(d *dump.Writer) {
	dump.Array(d, "y", func(d *dump.Writer) { dump.Values(d, w.y) })
}

func (w *durbinWork[T]) check() (float64, error) {
	sys, rhs, err := solvers.ToeplitzSystem(w.r)
	if err != nil {
		return 0, err
	}

	return solveCheck(sys, w.y, rhs)
}
