// Package autodiff implements the scalar automatic differentiation types the
// test harness threads through functions under test.
//
// Three scalar families implement the Scalar interface:
//   - Real: a plain float64 (the primal).
//   - Var: a reverse-mode node recorded on a GradientTape.
//   - Dual: a forward-mode pair (value, tangent) over any other Scalar.
//
// Dual nests, so higher derivatives come from composition:
//
//	Dual{Real}        forward mode (gradient by unit seeds)
//	Dual{Var}         forward-over-reverse (Hessian rows)
//	Dual{Dual{Real}}  forward-forward (Hessian entries)
//	Dual{Dual{Var}}   forward-forward-reverse (grad-Hessian slices)
//
// Usage:
//
//	tape := autodiff.NewGradientTape()
//	defer tape.Release()
//
//	x := tape.Variable(0.5)
//	y := x.Atan() // y = atan(x)
//
//	grad := tape.Gradient(y, x) // dy/dx = 1/(1+x²) = 0.8
package autodiff

import "fmt"

// Scalar is a differentiable real number.
//
// Binary operations accept any Scalar. When the operands live at different
// nesting levels the lower one is embedded as a constant of the higher one,
// so fixed real arguments mix freely with AD arguments. Mixing two different
// scalar families at the same level (for example a Var with a Dual{Real})
// panics.
type Scalar interface {
	// Value returns the primal value.
	Value() float64

	// Size returns the number of scalar leaves, which is always 1.
	Size() int

	// Level returns the nesting depth: 0 for Real, 1 for Var and Dual{Real},
	// one more for every extra Dual wrapper.
	Level() int

	// Const returns c as a constant of the receiver's type.
	Const(c float64) Scalar

	// Embed lifts s, which must not be nested deeper than the receiver,
	// into the receiver's type. Lower-level values become constants.
	Embed(s Scalar) Scalar

	Add(o Scalar) Scalar
	Sub(o Scalar) Scalar
	Mul(o Scalar) Scalar
	Div(o Scalar) Scalar
	Neg() Scalar

	Sin() Scalar
	Cos() Scalar
	Exp() Scalar
	Log() Scalar
	Sqrt() Scalar
	Atan() Scalar
	Tanh() Scalar
}

// incompatible builds the panic message for operands that cannot be combined.
func incompatible(a, b Scalar) string {
	return fmt.Sprintf("autodiff: cannot combine %T (level %d) with %T (level %d)", a, a.Level(), b, b.Level())
}

// Values returns the primal values of xs.
func Values(xs []Scalar) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x.Value()
	}
	return out
}

// Reals converts xs into a slice of Real scalars.
func Reals(xs []float64) []Scalar {
	out := make([]Scalar, len(xs))
	for i, x := range xs {
		out[i] = Real(x)
	}
	return out
}

// Scalars converts a slice of one concrete scalar type to []Scalar.
func Scalars[T Scalar](xs []T) []Scalar {
	out := make([]Scalar, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
