// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the scalar types functions under test are
// written against.
//
// A function written once against Scalar runs on plain reals and on every
// AD scalar: reverse-mode variables recorded on a GradientTape, forward-mode
// dual numbers, and any nesting of the two.
//
// Example:
//
//	import "github.com/born-ml/adcheck/autodiff"
//
//	func main() {
//	    tape := autodiff.NewGradientTape()
//	    defer tape.Release()
//
//	    x := tape.Variable(0.5)
//	    y := x.Mul(x).Sin().(autodiff.Var)
//
//	    grad := tape.Gradient(y, x) // [cos(0.25)]
//	}
package autodiff

import (
	"github.com/born-ml/adcheck/internal/autodiff"
)

// Scalar is the numeric interface shared by reals and AD scalars.
type Scalar = autodiff.Scalar

// Real is a plain float64 scalar with no derivative information.
type Real = autodiff.Real

// Var is a reverse-mode scalar recorded on a GradientTape.
type Var = autodiff.Var

// Dual is a forward-mode scalar: a value and a tangent of the same level.
type Dual = autodiff.Dual

// GradientTape records operations for reverse-mode differentiation.
type GradientTape = autodiff.GradientTape

// DomainError is raised (as a panic) when an argument is outside the
// domain of a function, such as the logarithm of a negative number.
type DomainError = autodiff.DomainError

// ErrDomain matches every *DomainError through errors.Is.
var ErrDomain = autodiff.ErrDomain

// NewGradientTape creates a new gradient tape. Release it when done.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// NewDual creates a dual number. Both parts must have the same level.
func NewDual(val, tan Scalar) Dual {
	return autodiff.NewDual(val, tan)
}

// Seed returns the dual number with value base and the given tangent.
func Seed(base Scalar, tangent float64) Dual {
	return autodiff.Seed(base, tangent)
}

// Reals converts float64 values to Real scalars.
func Reals(xs []float64) []Scalar {
	return autodiff.Reals(xs)
}

// Values returns the primal values of xs.
func Values(xs []Scalar) []float64 {
	return autodiff.Values(xs)
}
