package autodiff_test

import (
	"math"
	"testing"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// numericalGradient computes the gradient using central finite differences.
func numericalGradient(f func(float64) float64, x, epsilon float64) float64 {
	return (f(x+epsilon) - f(x-epsilon)) / (2 * epsilon)
}

// elementary pairs each Scalar method with its float64 reference.
var elementary = []struct {
	name string
	ad   func(autodiff.Scalar) autodiff.Scalar
	ref  func(float64) float64
	at   float64
}{
	{"sin", autodiff.Scalar.Sin, math.Sin, 0.3},
	{"cos", autodiff.Scalar.Cos, math.Cos, 0.3},
	{"exp", autodiff.Scalar.Exp, math.Exp, 0.7},
	{"log", autodiff.Scalar.Log, math.Log, 1.7},
	{"sqrt", autodiff.Scalar.Sqrt, math.Sqrt, 2.5},
	{"atan", autodiff.Scalar.Atan, math.Atan, 0.5},
	{"tanh", autodiff.Scalar.Tanh, math.Tanh, -0.4},
	{"neg", autodiff.Scalar.Neg, func(x float64) float64 { return -x }, 1.25},
}

// TestNumericalGradient_Reverse checks every tape operation against finite differences.
func TestNumericalGradient_Reverse(t *testing.T) {
	for _, e := range elementary {
		t.Run(e.name, func(t *testing.T) {
			tape := autodiff.NewGradientTape()
			defer tape.Release()

			x := tape.Variable(e.at)
			y := e.ad(x).(autodiff.Var)

			autodiffGrad := tape.Gradient(y, x)[0]
			numericalGrad := numericalGradient(e.ref, e.at, 1e-6)

			if math.Abs(y.Value()-e.ref(e.at)) > 1e-15 {
				t.Errorf("value = %v, want %v", y.Value(), e.ref(e.at))
			}
			if math.Abs(autodiffGrad-numericalGrad) > 1e-6 {
				t.Errorf("Autodiff grad (%v) differs from numerical grad (%v)", autodiffGrad, numericalGrad)
			}
		})
	}
}

// TestNumericalGradient_Forward checks every Dual operation against finite differences.
func TestNumericalGradient_Forward(t *testing.T) {
	for _, e := range elementary {
		t.Run(e.name, func(t *testing.T) {
			y := e.ad(autodiff.Seed(autodiff.Real(e.at), 1)).(autodiff.Dual)
			numericalGrad := numericalGradient(e.ref, e.at, 1e-6)

			if math.Abs(y.Tan.Value()-numericalGrad) > 1e-6 {
				t.Errorf("Forward tangent (%v) differs from numerical grad (%v)", y.Tan.Value(), numericalGrad)
			}
		})
	}
}

// TestNumericalGradient_Division tests both partials of a / b.
func TestNumericalGradient_Division(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	a, b := tape.Variable(1.5), tape.Variable(-0.5)
	q := a.Div(b).(autodiff.Var)
	grad := tape.Gradient(q, a, b)

	da := numericalGradient(func(x float64) float64 { return x / -0.5 }, 1.5, 1e-6)
	db := numericalGradient(func(x float64) float64 { return 1.5 / x }, -0.5, 1e-6)

	if math.Abs(grad[0]-da) > 1e-6 || math.Abs(grad[1]-db) > 1e-5 {
		t.Errorf("Gradient = %v, want [%v %v]", grad, da, db)
	}
}
