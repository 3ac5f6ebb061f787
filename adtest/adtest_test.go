// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package adtest_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/adcheck/adtest"
	"github.com/born-ml/adcheck/autodiff"
	"github.com/born-ml/adcheck/tensor"
)

type fakeT struct {
	failures []string
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.failures = append(f.failures, fmt.Sprintf(format, args...))
}

func atan(args ...tensor.Value) (tensor.Value, error) {
	return tensor.Map(args[0], autodiff.Scalar.Atan), nil
}

func TestExpectAD_Unary(t *testing.T) {
	assert.True(t, adtest.ExpectAD(t, atan, tensor.Float(0.5)))
	assert.True(t, adtest.ExpectAD(t, atan, tensor.Vec(-1, 0, 1)))
}

func TestExpectAD_Binary(t *testing.T) {
	hypot := func(args ...tensor.Value) (tensor.Value, error) {
		x, y := args[0].(autodiff.Scalar), args[1].(autodiff.Scalar)
		return x.Mul(x).Add(y.Mul(y)).Sqrt(), nil
	}
	assert.True(t, adtest.ExpectAD(t, hypot, tensor.Float(3), tensor.Float(4)))
}

func TestExpectAD_Ternary(t *testing.T) {
	// x·tanh(y) + exp(z)/(1 + y²)
	f := func(args ...tensor.Value) (tensor.Value, error) {
		x, y, z := args[0].(autodiff.Scalar), args[1].(autodiff.Scalar), args[2].(autodiff.Scalar)
		one := autodiff.Real(1)
		return x.Mul(y.Tanh()).Add(z.Exp().Div(one.Add(y.Mul(y)))), nil
	}
	report := adtest.ExpectADWithConfig(t, adtest.DefaultConfig(), f,
		tensor.Float(0.7), tensor.Float(-0.3), tensor.Float(0.2))
	assert.Len(t, report.Scenarios, 7)
}

func TestExpectAD_MatrixVector(t *testing.T) {
	// Row sums of cos(M) scaled by v.
	f := func(args ...tensor.Value) (tensor.Value, error) {
		m, v := args[0].(tensor.Matrix), args[1].(tensor.Vector)
		return tensor.Map(m, autodiff.Scalar.Cos).(tensor.Matrix).MulVec(v), nil
	}
	m := tensor.MustFromRows([][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}})
	assert.True(t, adtest.ExpectAD(t, f, m, tensor.Vec(1, -1, 0.5)))
}

func TestExpectAD_IntegerArgument(t *testing.T) {
	power := func(args ...tensor.Value) (tensor.Value, error) {
		x, n := args[0].(autodiff.Scalar), int(args[1].(tensor.Int))
		var acc autodiff.Scalar = autodiff.Real(1)
		for i := 0; i < n; i++ {
			acc = acc.Mul(x)
		}
		return acc, nil
	}
	report := adtest.ExpectADWithConfig(t, adtest.DefaultConfig(), power, tensor.Float(1.1), tensor.Int(4))
	require.Len(t, report.Scenarios, 1)
	assert.Equal(t, "vd", report.Scenarios[0].Name)
}

func TestExpectAD_Raises(t *testing.T) {
	sqrt := func(args ...tensor.Value) (tensor.Value, error) {
		return args[0].(autodiff.Scalar).Sqrt(), nil
	}
	report := adtest.ExpectADWithConfig(t, adtest.DefaultConfig(), sqrt, tensor.Float(-4))

	require.Len(t, report.Scenarios, 1)
	var de *autodiff.DomainError
	require.True(t, errors.As(report.Scenarios[0].Raised, &de))
	assert.Equal(t, -4.0, de.Arg)
}

func TestExpectAD_ReportsFailures(t *testing.T) {
	// Differentiates as if |x| were x.
	broken := func(args ...tensor.Value) (tensor.Value, error) {
		x := args[0].(autodiff.Scalar)
		if _, ok := x.(autodiff.Real); ok {
			return autodiff.Real(math.Abs(x.Value())), nil
		}
		return x, nil
	}

	ft := &fakeT{}
	assert.False(t, adtest.ExpectAD(ft, broken, tensor.Float(-2)))
	assert.NotEmpty(t, ft.failures)
}

func TestExpectAD_Config(t *testing.T) {
	cfg := adtest.DefaultConfig()
	cfg.Tolerances[1].Abs = 0
	cfg.Tolerances[1].Rel = 0

	// Finite differences are not exact, so a zero gradient tolerance fails.
	ft := &fakeT{}
	report := adtest.ExpectADWithConfig(ft, cfg, atan, tensor.Float(0.5))
	assert.True(t, report.Failed())
}
