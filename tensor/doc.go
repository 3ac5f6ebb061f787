// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the argument and result values of functions under
// test.
//
// # Overview
//
// A Value is one of:
//   - a scalar (autodiff.Scalar)
//   - an Int, which is never differentiated and has no scalar leaves
//   - a Vector of scalars
//   - a Matrix of scalars, stored column-major
//   - an Array of values, possibly nested
//
// # Basic Usage
//
//	import "github.com/born-ml/adcheck/tensor"
//
//	func main() {
//	    a := tensor.Vec(1, 1)
//	    m := tensor.MustFromRows([][]float64{{1, 2}, {3, 4}})
//
//	    y := tensor.Dot(a, m.MulVec(a)) // aᵀ M a
//	}
//
// # Flattening
//
// Every Value has a canonical flattening into its scalar leaves: scalars
// are one leaf, vectors are in order, matrices column-major, and arrays
// element by element. Size reports the number of leaves.
//
// # Interop
//
// Matrices and vectors convert to and from gonum's mat.Dense and
// mat.VecDense through FromDense, Matrix.Dense, FromVecDense and
// Vector.VecDense.
package tensor
