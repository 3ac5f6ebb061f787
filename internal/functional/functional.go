// Package functional evaluates value and derivatives of a scalar objective
// with each automatic differentiation mode.
//
// Modes and what they produce:
//
//	Reverse                 value, gradient               (Var)
//	Forward                 value, gradient               (Dual{Real}, one sweep per seed)
//	ForwardReverse          value, gradient, Hessian      (Dual{Var}, one Hessian row per seed)
//	ForwardForward          value, gradient, Hessian      (Dual{Dual{Real}}, one entry per seed pair)
//	ForwardForwardReverse   value, gradient, Hessian,
//	                        grad-Hessian                  (Dual{Dual{Var}}, one slice per seed pair)
//
// Every tape acquired here is released before the function returns, including
// when the objective panics.
package functional

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// Func is a scalar objective over a flat vector of AD scalars. A non-nil
// error (or a panic) means the objective raised.
type Func func(x []autodiff.Scalar) (autodiff.Scalar, error)

// Derivatives holds the artefacts one evaluation produced. Orders that were
// not computed are nil.
type Derivatives struct {
	Value       float64
	Gradient    []float64
	Hessian     [][]float64
	GradHessian [][][]float64 // GradHessian[i][j][k] = ∂³f/∂xᵢ∂xⱼ∂xₖ
}

// Mode identifies an AD evaluation path.
type Mode int

// Evaluation modes.
const (
	Reverse Mode = iota
	Forward
	ForwardReverse
	ForwardForward
	ForwardForwardReverse
)

// Modes lists every mode in evaluation order.
func Modes() []Mode {
	return []Mode{Reverse, Forward, ForwardReverse, ForwardForward, ForwardForwardReverse}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Reverse:
		return "reverse"
	case Forward:
		return "forward"
	case ForwardReverse:
		return "forward-reverse"
	case ForwardForward:
		return "forward-forward"
	case ForwardForwardReverse:
		return "forward-forward-reverse"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

// MaxOrder returns the highest derivative order the mode produces.
func (m Mode) MaxOrder() int {
	switch m {
	case ForwardReverse, ForwardForward:
		return 2
	case ForwardForwardReverse:
		return 3
	}
	return 1
}

// Evaluate runs f at x in mode m with untracked tapes.
func (m Mode) Evaluate(f Func, x []float64) (Derivatives, error) {
	return Evaluator{}.Evaluate(m, f, x)
}
