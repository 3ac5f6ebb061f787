package harness

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
	"github.com/born-ml/adcheck/internal/check"
	"github.com/born-ml/adcheck/internal/functional"
	"github.com/born-ml/adcheck/internal/serialization"
	"github.com/born-ml/adcheck/internal/tensor"
)

// Func is a function under test. It must be written against autodiff.Scalar
// so the same code runs on reals and on every AD scalar type. Raising is
// signalled by a non-nil error or a panic.
type Func func(args ...tensor.Value) (tensor.Value, error)

// rehydrate rebuilds the argument list with the free arguments read from v
// and the fixed arguments left as given.
func rehydrate(s Scenario, args []tensor.Value, v []autodiff.Scalar) ([]tensor.Value, error) {
	r := serialization.NewReader(v)
	out := make([]tensor.Value, len(args))
	for i, a := range args {
		if !s.Free[i] {
			out[i] = a
			continue
		}
		x, err := r.Read(a)
		if err != nil {
			return nil, &check.InvariantError{Details: fmt.Sprintf("rehydrating argument %d: %v", i, err)}
		}
		out[i] = x
	}
	if r.Remaining() != 0 {
		return nil, &check.InvariantError{Details: fmt.Sprintf("%d unread scalars after rehydrating arguments", r.Remaining())}
	}
	return out, nil
}

// objective builds gᵢ(v) = serialize(f(deserialize(v)))[i]. size is the
// primal output size; any other output size is an invariant violation. A
// negative size (unknown, the primal raised) disables the check and maps
// empty outputs to zero.
func objective(f Func, s Scenario, args []tensor.Value, i, size int) functional.Func {
	return func(v []autodiff.Scalar) (autodiff.Scalar, error) {
		in, err := rehydrate(s, args, v)
		if err != nil {
			return nil, err
		}
		y, err := f(in...)
		if err != nil {
			return nil, err
		}
		flat := serialization.Serialize(y)
		if size >= 0 && len(flat) != size {
			return nil, &check.InvariantError{
				Details: fmt.Sprintf("output has %d scalars, primal output has %d", len(flat), size),
			}
		}
		if i >= len(flat) {
			return autodiff.Real(0), nil
		}
		return flat[i], nil
	}
}

// Objective returns the scalar function the harness differentiates for
// output i of f under s, together with the point to evaluate it at: the
// free arguments of args serialized in order.
func (s Scenario) Objective(f Func, args []tensor.Value, i int) (functional.Func, []float64) {
	return objective(f, s, args, i, -1), serialization.SerializeFloat64(s.FreeArgs(args)...)
}

// realObjective evaluates g on plain reals for finite differences.
func realObjective(g functional.Func) func([]float64) (float64, error) {
	return func(x []float64) (float64, error) {
		y, err := functional.Protect(func() (autodiff.Scalar, error) {
			return g(autodiff.Reals(x))
		})
		if err != nil {
			return 0, err
		}
		return y.Value(), nil
	}
}
