package functional

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// Evaluator runs the evaluation modes. Every tape it uses comes from Tapes,
// which may be nil.
type Evaluator struct {
	Tapes *autodiff.Tapes
}

// Evaluate runs f at x in mode m.
func (e Evaluator) Evaluate(m Mode, f Func, x []float64) (Derivatives, error) {
	switch m {
	case Reverse:
		return e.Gradient(f, x)
	case Forward:
		return e.GradientFwd(f, x)
	case ForwardReverse:
		return e.Hessian(f, x)
	case ForwardForward:
		return e.HessianFwd(f, x)
	case ForwardForwardReverse:
		return e.GradHessian(f, x)
	}
	return Derivatives{}, fmt.Errorf("unknown mode %d", int(m))
}

// Gradient evaluates value and gradient with reverse mode.
func Gradient(f Func, x []float64) (Derivatives, error) {
	return Evaluator{}.Gradient(f, x)
}

// GradientFwd evaluates value and gradient with first-order forward mode.
func GradientFwd(f Func, x []float64) (Derivatives, error) {
	return Evaluator{}.GradientFwd(f, x)
}

// Hessian evaluates value, gradient and Hessian with forward-over-reverse mode.
func Hessian(f Func, x []float64) (Derivatives, error) {
	return Evaluator{}.Hessian(f, x)
}

// HessianFwd evaluates value, gradient and Hessian with forward-forward mode.
func HessianFwd(f Func, x []float64) (Derivatives, error) {
	return Evaluator{}.HessianFwd(f, x)
}

// GradHessian evaluates value, gradient, Hessian and grad-Hessian with
// forward-forward-reverse mode.
func GradHessian(f Func, x []float64) (Derivatives, error) {
	return Evaluator{}.GradHessian(f, x)
}

// valPart returns the value part of an outermost Dual. Results that are not
// Duals (the objective ignored its inputs) are their own value.
func valPart(y autodiff.Scalar) autodiff.Scalar {
	if d, ok := y.(autodiff.Dual); ok {
		return d.Val
	}
	return y
}

// tanPart returns the tangent of an outermost Dual, or zero for results that
// do not depend on the seeded inputs.
func tanPart(y autodiff.Scalar) autodiff.Scalar {
	if d, ok := y.(autodiff.Dual); ok {
		return d.Tan
	}
	return autodiff.Real(0)
}

// gradientOf runs the reverse sweep for y over vars. Constant results have a
// zero gradient.
func gradientOf(tape *autodiff.GradientTape, y autodiff.Scalar, vars []autodiff.Var) ([]float64, error) {
	switch v := y.(type) {
	case autodiff.Var:
		return tape.Gradient(v, vars...), nil
	case autodiff.Real:
		return make([]float64, len(vars)), nil
	}
	return nil, fmt.Errorf("objective returned %T, want reverse-mode scalar", y)
}

// seeds returns max(n, 1) so objectives without free inputs still evaluate once.
func seeds(n int) int {
	return max(n, 1)
}

// Gradient evaluates value and gradient with reverse mode.
func (e Evaluator) Gradient(f Func, x []float64) (Derivatives, error) {
	tape := e.Tapes.New()
	defer tape.Release()

	vars := tape.Variables(x)
	y, err := call(f, autodiff.Scalars(vars))
	if err != nil {
		return Derivatives{}, err
	}
	grad, err := gradientOf(tape, y, vars)
	if err != nil {
		return Derivatives{}, err
	}
	return Derivatives{Value: y.Value(), Gradient: grad}, nil
}

// GradientFwd evaluates value and gradient with first-order forward mode,
// one sweep per unit seed.
func (e Evaluator) GradientFwd(f Func, x []float64) (Derivatives, error) {
	n := len(x)
	out := Derivatives{Gradient: make([]float64, n)}

	for i := 0; i < seeds(n); i++ {
		xs := make([]autodiff.Scalar, n)
		for k := range xs {
			xs[k] = autodiff.Seed(autodiff.Real(x[k]), delta(i, k))
		}
		y, err := call(f, xs)
		if err != nil {
			return Derivatives{}, err
		}
		out.Value = y.Value()
		if i < n {
			out.Gradient[i] = tanPart(y).Value()
		}
	}
	return out, nil
}

// Hessian evaluates value, gradient and Hessian with forward-over-reverse
// mode: seed j yields Hessian row j from the reverse sweep of the tangent.
func (e Evaluator) Hessian(f Func, x []float64) (Derivatives, error) {
	n := len(x)
	out := Derivatives{Hessian: make([][]float64, n)}

	for j := 0; j < seeds(n); j++ {
		err := func() error {
			tape := e.Tapes.New()
			defer tape.Release()

			vars := tape.Variables(x)
			xs := make([]autodiff.Scalar, n)
			for k, v := range vars {
				xs[k] = autodiff.Seed(v, delta(j, k))
			}
			y, err := call(f, xs)
			if err != nil {
				return err
			}

			out.Value = y.Value()
			if j == 0 {
				if out.Gradient, err = gradientOf(tape, valPart(y), vars); err != nil {
					return err
				}
			}
			if j < n {
				if out.Hessian[j], err = gradientOf(tape, tanPart(y), vars); err != nil {
					return err
				}
			}
			return nil
		}()
		if err != nil {
			return Derivatives{}, err
		}
	}
	return out, nil
}

// HessianFwd evaluates value, gradient and Hessian with forward-forward mode:
// the seed pair (i, j) yields H[i][j] as the tangent of the tangent.
func (e Evaluator) HessianFwd(f Func, x []float64) (Derivatives, error) {
	n := len(x)
	out := Derivatives{Gradient: make([]float64, n), Hessian: newMatrix(n)}

	if n == 0 {
		y, err := call(f, nil)
		if err != nil {
			return Derivatives{}, err
		}
		out.Value = y.Value()
		return out, nil
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			xs := make([]autodiff.Scalar, n)
			for k := range xs {
				xs[k] = autodiff.Dual{
					Val: autodiff.Seed(autodiff.Real(x[k]), delta(i, k)),
					Tan: autodiff.Seed(autodiff.Real(delta(j, k)), 0),
				}
			}
			y, err := call(f, xs)
			if err != nil {
				return Derivatives{}, err
			}

			out.Value = y.Value()
			out.Gradient[i] = tanPart(valPart(y)).Value()
			hij := tanPart(tanPart(y)).Value()
			out.Hessian[i][j] = hij
			out.Hessian[j][i] = hij
		}
	}
	return out, nil
}

// GradHessian evaluates value, gradient, Hessian and grad-Hessian with
// forward-forward-reverse mode: the seed pair (i, j) yields H[i][j] and,
// from its reverse sweep, the slice ∂H[i][j]/∂x.
func (e Evaluator) GradHessian(f Func, x []float64) (Derivatives, error) {
	n := len(x)
	out := Derivatives{
		Gradient:    make([]float64, n),
		Hessian:     newMatrix(n),
		GradHessian: make([][][]float64, n),
	}
	for i := range out.GradHessian {
		out.GradHessian[i] = newMatrix(n)
	}

	evalPair := func(i, j int) error {
		tape := e.Tapes.New()
		defer tape.Release()

		vars := tape.Variables(x)
		xs := make([]autodiff.Scalar, n)
		for k, v := range vars {
			xs[k] = autodiff.Dual{
				Val: autodiff.Seed(v, delta(i, k)),
				Tan: autodiff.Seed(tape.Constant(delta(j, k)), 0),
			}
		}
		y, err := call(f, xs)
		if err != nil {
			return err
		}

		out.Value = y.Value()
		if n == 0 {
			return nil
		}
		out.Gradient[i] = tanPart(valPart(y)).Value()
		hij := tanPart(tanPart(y))
		out.Hessian[i][j] = hij.Value()
		out.Hessian[j][i] = hij.Value()

		slice, err := gradientOf(tape, hij, vars)
		if err != nil {
			return err
		}
		copy(out.GradHessian[i][j], slice)
		copy(out.GradHessian[j][i], slice)
		return nil
	}

	if n == 0 {
		if err := evalPair(0, 0); err != nil {
			return Derivatives{}, err
		}
		return out, nil
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if err := evalPair(i, j); err != nil {
				return Derivatives{}, err
			}
		}
	}
	return out, nil
}

func delta(i, k int) float64 {
	if i == k {
		return 1
	}
	return 0
}

func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
