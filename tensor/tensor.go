// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/adcheck/autodiff"
	"github.com/born-ml/adcheck/internal/tensor"
)

// Type aliases for public API

// Value is an argument or result of a function under test.
type Value = tensor.Value

// Int is an integer value. It has no scalar leaves.
type Int = tensor.Int

// Vector is a vector of scalars.
type Vector = tensor.Vector

// Matrix is a column-major matrix of scalars.
type Matrix = tensor.Matrix

// Array is a sequence of values.
type Array = tensor.Array

// Shape describes the structure of a Value, ignoring its scalar type.
type Shape = tensor.Shape

// Float returns a real scalar value.
func Float(x float64) autodiff.Scalar {
	return tensor.Float(x)
}

// Vec creates a real vector.
func Vec(xs ...float64) Vector {
	return tensor.Vec(xs...)
}

// NewMatrix creates a rows×cols matrix from column-major data.
func NewMatrix(rows, cols int, data []autodiff.Scalar) (Matrix, error) {
	return tensor.NewMatrix(rows, cols, data)
}

// FromRows creates a real matrix from row slices.
func FromRows(rows [][]float64) (Matrix, error) {
	return tensor.FromRows(rows)
}

// MustFromRows is like FromRows but panics on ragged rows.
func MustFromRows(rows [][]float64) Matrix {
	return tensor.MustFromRows(rows)
}

// FromDense creates a real matrix from a gonum matrix.
func FromDense(m mat.Matrix) Matrix {
	return tensor.FromDense(m)
}

// FromVecDense creates a real vector from a gonum vector.
func FromVecDense(v mat.Vector) Vector {
	return tensor.FromVecDense(v)
}

// ShapeOf returns the shape of v.
func ShapeOf(v Value) Shape {
	return tensor.ShapeOf(v)
}

// Equal reports whether a and b have the same shape and identical values.
func Equal(a, b Value) bool {
	return tensor.Equal(a, b)
}

// Map applies fn to every scalar leaf of v, keeping its structure.
func Map(v Value, fn func(autodiff.Scalar) autodiff.Scalar) Value {
	return tensor.Map(v, fn)
}

// Sum returns the sum of xs.
func Sum(xs ...autodiff.Scalar) autodiff.Scalar {
	return tensor.Sum(xs...)
}

// Dot returns the inner product of a and b.
func Dot(a, b Vector) autodiff.Scalar {
	return tensor.Dot(a, b)
}
