// Package tensor defines the structured numerical values the test harness
// flattens and rebuilds: scalars, integers, vectors, column-major matrices and
// nested arrays of those.
//
// The shape variant is closed:
//
//	Value = autodiff.Scalar | Int | Vector | Matrix | Array
//
// Element values are autodiff.Scalar, so the same shape carries plain reals
// for the primal and AD scalars for every differentiation mode.
package tensor

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// Value is any supported structured value. Size returns the number of scalar
// leaves that take part in differentiation.
type Value interface {
	Size() int
}

// Int is an integer argument. Integers are never differentiated: Size is 0
// and the serializer passes them through unchanged.
type Int int

// Size returns 0.
func (n Int) Size() int { return 0 }

// Vector is a fixed-length ordered sequence of scalars.
type Vector []autodiff.Scalar

// Size returns the number of elements.
func (v Vector) Size() int { return len(v) }

// Array is a sequence of values, used for nested containers
// (sequence-of-sequence, sequence-of-matrix).
type Array []Value

// Size returns the total number of scalar leaves of all elements.
func (a Array) Size() int {
	n := 0
	for _, v := range a {
		n += v.Size()
	}
	return n
}

// Matrix is a fixed-size rectangular matrix stored in column-major order.
type Matrix struct {
	rows, cols int
	data       []autodiff.Scalar
}

// NewMatrix creates a rows×cols matrix over data given in column-major order.
// The slice is not copied.
func NewMatrix(rows, cols int, data []autodiff.Scalar) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, fmt.Errorf("invalid matrix dimensions %dx%d", rows, cols)
	}
	if rows*cols != len(data) {
		return Matrix{}, fmt.Errorf("matrix %dx%d requires %d elements, but got %d", rows, cols, rows*cols, len(data))
	}
	return Matrix{rows: rows, cols: cols, data: data}, nil
}

// Size returns rows*cols.
func (m Matrix) Size() int { return len(m.data) }

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// Data returns the column-major backing slice.
func (m Matrix) Data() []autodiff.Scalar { return m.data }

// At returns element (i, j).
func (m Matrix) At(i, j int) autodiff.Scalar {
	m.check(i, j)
	return m.data[j*m.rows+i]
}

// Set assigns element (i, j).
func (m Matrix) Set(i, j int, s autodiff.Scalar) {
	m.check(i, j)
	m.data[j*m.rows+i] = s
}

func (m Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("tensor: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Leaves appends the scalar leaves of v to dst in canonical order: vectors
// left to right, matrices column-major, arrays outer before inner.
// Integers contribute nothing.
func Leaves(dst []autodiff.Scalar, v Value) []autodiff.Scalar {
	switch x := v.(type) {
	case autodiff.Scalar:
		return append(dst, x)
	case Int:
		return dst
	case Vector:
		return append(dst, x...)
	case Matrix:
		return append(dst, x.data...)
	case Array:
		for _, e := range x {
			dst = Leaves(dst, e)
		}
		return dst
	}
	panic(fmt.Sprintf("tensor: unsupported value type %T", v))
}
