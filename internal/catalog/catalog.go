// Package catalog holds named functions under test together with default
// arguments, for the adcheck command and end-to-end harness tests.
package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/born-ml/adcheck/internal/autodiff"
	"github.com/born-ml/adcheck/internal/harness"
	"github.com/born-ml/adcheck/internal/tensor"
)

// Entry is a named function with default arguments.
type Entry struct {
	Name string
	Doc  string
	Func harness.Func
	Args []tensor.Value // Default arguments; also the prototypes for parsing

	// Elementwise entries accept arguments of any shape.
	Elementwise bool
}

var entries = map[string]Entry{}

func register(e Entry) {
	if _, dup := entries[e.Name]; dup {
		panic("catalog: duplicate entry " + e.Name)
	}
	entries[e.Name] = e
}

// Lookup returns the entry with the given name.
func Lookup(name string) (Entry, error) {
	e, ok := entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown function %q", name)
	}
	return e, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scalarArg(args []tensor.Value, i int) (autodiff.Scalar, error) {
	s, ok := args[i].(autodiff.Scalar)
	if !ok {
		return nil, fmt.Errorf("argument %d: got %T, want scalar", i, args[i])
	}
	return s, nil
}

func init() {
	register(Entry{
		Name: "atan",
		Doc:  "element-wise arc tangent",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			return tensor.Map(args[0], autodiff.Scalar.Atan), nil
		},
		Args:        []tensor.Value{tensor.Float(0.5)},
		Elementwise: true,
	})

	register(Entry{
		Name: "log",
		Doc:  "element-wise natural logarithm; raises for negative input",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			return tensor.Map(args[0], autodiff.Scalar.Log), nil
		},
		Args:        []tensor.Value{tensor.Float(2)},
		Elementwise: true,
	})

	register(Entry{
		Name: "product",
		Doc:  "x·y",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			x, err := scalarArg(args, 0)
			if err != nil {
				return nil, err
			}
			y, err := scalarArg(args, 1)
			if err != nil {
				return nil, err
			}
			return x.Mul(y), nil
		},
		Args: []tensor.Value{tensor.Float(2), tensor.Float(3)},
	})

	register(Entry{
		Name: "quadform",
		Doc:  "aᵀ M a for a vector a and square matrix M",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			a, ok := args[0].(tensor.Vector)
			if !ok {
				return nil, fmt.Errorf("argument 0: got %T, want vector", args[0])
			}
			m, ok := args[1].(tensor.Matrix)
			if !ok {
				return nil, fmt.Errorf("argument 1: got %T, want matrix", args[1])
			}
			if m.Rows() != len(a) || m.Cols() != len(a) {
				return nil, fmt.Errorf("quadform: %dx%d matrix with vector of length %d", m.Rows(), m.Cols(), len(a))
			}
			return tensor.Dot(a, m.MulVec(a)), nil
		},
		Args: []tensor.Value{
			tensor.Vec(1, 1),
			tensor.MustFromRows([][]float64{{1, 2}, {3, 4}}),
		},
	})

	register(Entry{
		Name: "scaled-sin",
		Doc:  "n·sin(x) for an integer n",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			n, ok := args[0].(tensor.Int)
			if !ok {
				return nil, fmt.Errorf("argument 0: got %T, want int", args[0])
			}
			x, err := scalarArg(args, 1)
			if err != nil {
				return nil, err
			}
			return autodiff.Real(float64(n)).Mul(x.Sin()), nil
		},
		Args: []tensor.Value{tensor.Int(3), tensor.Float(math.Pi / 4)},
	})

	register(Entry{
		Name: "normal-kernel",
		Doc:  "log normal density of y with location mu and scale sigma",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			var s [3]autodiff.Scalar
			for i := range s {
				v, err := scalarArg(args, i)
				if err != nil {
					return nil, err
				}
				s[i] = v
			}
			y, mu, sigma := s[0], s[1], s[2]
			z := y.Sub(mu).Div(sigma)
			half := autodiff.Real(0.5)
			return half.Mul(z).Mul(z).Neg().
				Sub(sigma.Log()).
				Sub(autodiff.Real(0.5 * math.Log(2*math.Pi))), nil
		},
		Args: []tensor.Value{tensor.Float(0.3), tensor.Float(-0.2), tensor.Float(1.5)},
	})

	register(Entry{
		Name: "softmax",
		Doc:  "softmax of a vector",
		Func: func(args ...tensor.Value) (tensor.Value, error) {
			x, ok := args[0].(tensor.Vector)
			if !ok {
				return nil, fmt.Errorf("argument 0: got %T, want vector", args[0])
			}
			e := tensor.Map(x, autodiff.Scalar.Exp).(tensor.Vector)
			total := tensor.Sum(e...)
			return tensor.Map(e, func(s autodiff.Scalar) autodiff.Scalar { return s.Div(total) }), nil
		},
		Args: []tensor.Value{tensor.Vec(0.1, -0.4, 0.7)},
	})
}
