// Package finitediff estimates value, gradient, Hessian and grad-Hessian of a
// scalar function of a flat vector using only primal evaluations.
//
// The estimates are the reference oracle the AD modes are checked against.
// Noise from round-off grows like 1/hᵏ for a k-th derivative, so higher orders
// use wider steps and are compared under looser tolerances.
package finitediff

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/parallel"
)

// Func is a scalar objective over a flat vector. A non-nil error means the
// function raised at x.
type Func func(x []float64) (float64, error)

// Default absolute step sizes, balancing truncation against round-off for
// float64 arithmetic.
const (
	GradientStep    = 1e-3 // 6th-order central differences
	HessianStep     = 1e-3 // 5-point diagonal, 4-corner off-diagonal
	GradHessianStep = 1e-2 // 4th-order central differences of Hessians
)

// Steps holds the step size per derivative order.
type Steps struct {
	GradientH    float64
	HessianH     float64
	GradHessianH float64

	// Parallel controls concurrent evaluation of the perturbed Hessians in
	// GradHessian. f must be safe for concurrent use when it is enabled.
	Parallel parallel.Config
}

// DefaultSteps returns the package default step sizes.
func DefaultSteps() Steps {
	return Steps{
		GradientH:    GradientStep,
		HessianH:     HessianStep,
		GradHessianH: GradHessianStep,
		Parallel:     parallel.Sequential(),
	}
}

// Gradient estimates f(x) and ∇f(x) with DefaultSteps.
func Gradient(f Func, x []float64) (float64, []float64, error) {
	return DefaultSteps().Gradient(f, x)
}

// Hessian estimates f(x), ∇f(x) and ∇²f(x) with DefaultSteps.
func Hessian(f Func, x []float64) (float64, []float64, [][]float64, error) {
	return DefaultSteps().Hessian(f, x)
}

// GradHessian estimates f(x), ∇²f(x) and ∇³f(x) with DefaultSteps.
func GradHessian(f Func, x []float64) (float64, [][]float64, [][][]float64, error) {
	return DefaultSteps().GradHessian(f, x)
}

// Gradient estimates f(x) and ∇f(x) with the 6th-order central formula
//
//	f'(x) ≈ (-f(x-3h) + 9f(x-2h) - 45f(x-h) + 45f(x+h) - 9f(x+2h) + f(x+3h)) / 60h
func (s Steps) Gradient(f Func, x []float64) (float64, []float64, error) {
	ev := newEvaluator(f, x)
	fx, err := ev.at()
	if err != nil {
		return 0, nil, err
	}

	h := s.GradientH
	coeffs := [...]struct {
		k float64
		c float64
	}{{-3, -1}, {-2, 9}, {-1, -45}, {1, 45}, {2, -9}, {3, 1}}

	grad := make([]float64, len(x))
	for i := range x {
		sum := 0.0
		for _, t := range coeffs {
			fi, err := ev.at(shift{i, t.k * h})
			if err != nil {
				return 0, nil, err
			}
			sum += t.c * fi
		}
		grad[i] = sum / (60 * h)
	}
	return fx, grad, nil
}

// Hessian estimates f(x), ∇f(x) and the symmetric ∇²f(x). Diagonal entries use
//
//	(-f(x+2h) + 16f(x+h) - 30f(x) + 16f(x-h) - f(x-2h)) / 12h²
//
// and off-diagonal entries use the four corners
//
//	(f(x+hᵢ+hⱼ) - f(x+hᵢ-hⱼ) - f(x-hᵢ+hⱼ) + f(x-hᵢ-hⱼ)) / 4h²
func (s Steps) Hessian(f Func, x []float64) (float64, []float64, [][]float64, error) {
	fx, grad, err := s.Gradient(f, x)
	if err != nil {
		return 0, nil, nil, err
	}
	hess, err := s.hessian(newEvaluator(f, x), fx)
	if err != nil {
		return 0, nil, nil, err
	}
	return fx, grad, hess, nil
}

func (s Steps) hessian(ev *evaluator, fx float64) ([][]float64, error) {
	n := len(ev.x)
	h := s.HessianH
	hess := newMatrix(n)

	for i := 0; i < n; i++ {
		var f [4]float64
		for k, d := range [...]float64{2, 1, -1, -2} {
			v, err := ev.at(shift{i, d * h})
			if err != nil {
				return nil, err
			}
			f[k] = v
		}
		hess[i][i] = (-f[0] + 16*f[1] - 30*fx + 16*f[2] - f[3]) / (12 * h * h)

		for j := 0; j < i; j++ {
			var c [4]float64
			for k, d := range [...][2]float64{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
				v, err := ev.at(shift{i, d[0] * h}, shift{j, d[1] * h})
				if err != nil {
					return nil, err
				}
				c[k] = v
			}
			hij := (c[0] - c[1] - c[2] + c[3]) / (4 * h * h)
			hess[i][j] = hij
			hess[j][i] = hij
		}
	}
	return hess, nil
}

// GradHessian estimates f(x), ∇²f(x) and the third-derivative tensor
// T[i][j][k] = ∂³f/∂xᵢ∂xⱼ∂xₖ by differencing finite-difference Hessians:
//
//	∂ₖH ≈ (H(x-2h) - 8H(x-h) + 8H(x+h) - H(x+2h)) / 12h
func (s Steps) GradHessian(f Func, x []float64) (float64, [][]float64, [][][]float64, error) {
	fx, _, hess, err := s.Hessian(f, x)
	if err != nil {
		return 0, nil, nil, err
	}

	n := len(x)
	h := s.GradHessianH
	third := make([][][]float64, n)
	for i := range third {
		third[i] = newMatrix(n)
	}

	offsets := [...]float64{-2, -1, 1, 2}
	hs := make([][len(offsets)][][]float64, n)
	err = parallel.ForGrid(n, len(offsets), func(k, m int) error {
		xk := append([]float64(nil), x...)
		xk[k] += offsets[m] * h
		ev := newEvaluator(f, xk)
		fk, err := ev.at()
		if err != nil {
			return err
		}
		hs[k][m], err = s.hessian(ev, fk)
		return err
	}, s.Parallel)
	if err != nil {
		return 0, nil, nil, err
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				third[i][j][k] = (hs[k][0][i][j] - 8*hs[k][1][i][j] + 8*hs[k][2][i][j] - hs[k][3][i][j]) / (12 * h)
			}
		}
	}
	return fx, hess, third, nil
}

// shift is a displacement d along coordinate i.
type shift struct {
	i int
	d float64
}

// evaluator calls f at x plus a few coordinate shifts, reusing one scratch buffer.
type evaluator struct {
	f       Func
	x       []float64
	scratch []float64
}

func newEvaluator(f Func, x []float64) *evaluator {
	return &evaluator{f: f, x: x, scratch: make([]float64, len(x))}
}

func (ev *evaluator) at(shifts ...shift) (float64, error) {
	copy(ev.scratch, ev.x)
	for _, s := range shifts {
		ev.scratch[s.i] += s.d
	}
	// Pass a fresh copy so f may retain or modify its argument.
	y, err := ev.f(append([]float64(nil), ev.scratch...))
	if err != nil {
		return 0, fmt.Errorf("finite difference evaluation at %v: %w", ev.scratch, err)
	}
	return y, nil
}

func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
