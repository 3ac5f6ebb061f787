package tensor

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// Kind tags the variant of a Value.
type Kind int

// Value kinds.
const (
	KindScalar Kind = iota
	KindInt
	KindVector
	KindMatrix
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindInt:
		return "int"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindArray:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is the structural descriptor of a Value, independent of its scalar type.
type Shape struct {
	Kind  Kind
	Dims  []int   // vector: [n]; matrix: [rows, cols]
	Elems []Shape // array elements
}

// ShapeOf returns the shape descriptor of v.
func ShapeOf(v Value) Shape {
	switch x := v.(type) {
	case autodiff.Scalar:
		return Shape{Kind: KindScalar}
	case Int:
		return Shape{Kind: KindInt}
	case Vector:
		return Shape{Kind: KindVector, Dims: []int{len(x)}}
	case Matrix:
		return Shape{Kind: KindMatrix, Dims: []int{x.rows, x.cols}}
	case Array:
		elems := make([]Shape, len(x))
		for i, e := range x {
			elems[i] = ShapeOf(e)
		}
		return Shape{Kind: KindArray, Elems: elems}
	}
	panic(fmt.Sprintf("tensor: unsupported value type %T", v))
}

// NumElements returns the number of scalar leaves a value of this shape holds.
func (s Shape) NumElements() int {
	switch s.Kind {
	case KindScalar:
		return 1
	case KindInt:
		return 0
	case KindArray:
		n := 0
		for _, e := range s.Elems {
			n += e.NumElements()
		}
		return n
	}
	n := 1
	for _, dim := range s.Dims {
		n *= dim
	}
	return n
}

// Equal checks if two shapes are structurally identical.
func (s Shape) Equal(other Shape) bool {
	if s.Kind != other.Kind || len(s.Dims) != len(other.Dims) || len(s.Elems) != len(other.Elems) {
		return false
	}
	for i := range s.Dims {
		if s.Dims[i] != other.Dims[i] {
			return false
		}
	}
	for i := range s.Elems {
		if !s.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}
	return true
}

// String renders the shape, e.g. "array[vector(3) matrix(2x2)]".
func (s Shape) String() string {
	switch s.Kind {
	case KindVector:
		return fmt.Sprintf("vector(%d)", s.Dims[0])
	case KindMatrix:
		return fmt.Sprintf("matrix(%dx%d)", s.Dims[0], s.Dims[1])
	case KindArray:
		parts := make([]string, len(s.Elems))
		for i, e := range s.Elems {
			parts[i] = e.String()
		}
		return "array[" + strings.Join(parts, " ") + "]"
	}
	return s.Kind.String()
}

// Equal reports whether a and b have the same shape and bit-identical primal
// leaves (integers compared by value).
func Equal(a, b Value) bool {
	if !ShapeOf(a).Equal(ShapeOf(b)) {
		return false
	}
	if !equalInts(a, b) {
		return false
	}
	la, lb := Leaves(nil, a), Leaves(nil, b)
	for i := range la {
		if math.Float64bits(la[i].Value()) != math.Float64bits(lb[i].Value()) {
			return false
		}
	}
	return true
}

func equalInts(a, b Value) bool {
	switch x := a.(type) {
	case Int:
		return x == b.(Int)
	case Array:
		y := b.(Array)
		for i := range x {
			if !equalInts(x[i], y[i]) {
				return false
			}
		}
	}
	return true
}
