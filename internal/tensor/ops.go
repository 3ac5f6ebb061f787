package tensor

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// Map applies fn to every scalar leaf of v and returns a value of the same
// shape. Integers pass through unchanged.
func Map(v Value, fn func(autodiff.Scalar) autodiff.Scalar) Value {
	switch x := v.(type) {
	case autodiff.Scalar:
		return fn(x)
	case Int:
		return x
	case Vector:
		out := make(Vector, len(x))
		for i, s := range x {
			out[i] = fn(s)
		}
		return out
	case Matrix:
		data := make([]autodiff.Scalar, len(x.data))
		for i, s := range x.data {
			data[i] = fn(s)
		}
		return Matrix{rows: x.rows, cols: x.cols, data: data}
	case Array:
		out := make(Array, len(x))
		for i, e := range x {
			out[i] = Map(e, fn)
		}
		return out
	}
	panic(fmt.Sprintf("tensor: unsupported value type %T", v))
}

// Sum returns the sum of xs, or a real zero when xs is empty.
func Sum(xs ...autodiff.Scalar) autodiff.Scalar {
	var acc autodiff.Scalar = autodiff.Real(0)
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}

// Dot returns the inner product of a and b.
func Dot(a, b Vector) autodiff.Scalar {
	if len(a) != len(b) {
		panic(fmt.Sprintf("tensor: dot of vectors with lengths %d and %d", len(a), len(b)))
	}
	terms := make([]autodiff.Scalar, len(a))
	for i := range a {
		terms[i] = a[i].Mul(b[i])
	}
	return Sum(terms...)
}

// MulVec returns m·v.
func (m Matrix) MulVec(v Vector) Vector {
	if m.cols != len(v) {
		panic(fmt.Sprintf("tensor: %dx%d matrix times vector of length %d", m.rows, m.cols, len(v)))
	}
	out := make(Vector, m.rows)
	for i := range out {
		terms := make([]autodiff.Scalar, m.cols)
		for j := 0; j < m.cols; j++ {
			terms[j] = m.At(i, j).Mul(v[j])
		}
		out[i] = Sum(terms...)
	}
	return out
}
