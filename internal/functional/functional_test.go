package functional

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/adcheck/internal/autodiff"
)

func atan(x []autodiff.Scalar) (autodiff.Scalar, error) {
	return x[0].Atan(), nil
}

// product is x*y*y, so H = [[0, 2y], [2y, 2x]] and ∂³/∂x∂y∂y = 2.
func product(x []autodiff.Scalar) (autodiff.Scalar, error) {
	return x[0].Mul(x[1]).Mul(x[1]), nil
}

func TestModes_Atan(t *testing.T) {
	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			d, err := m.Evaluate(atan, []float64{0.5})
			require.NoError(t, err)

			assert.InDelta(t, math.Atan(0.5), d.Value, 1e-15)
			require.Len(t, d.Gradient, 1)
			assert.InDelta(t, 0.8, d.Gradient[0], 1e-15)

			if m.MaxOrder() >= 2 {
				require.Len(t, d.Hessian, 1)
				assert.InDelta(t, -0.64, d.Hessian[0][0], 1e-14)
			} else {
				assert.Nil(t, d.Hessian)
			}
			if m.MaxOrder() >= 3 {
				// d³ atan = (6x² - 2) / (1+x²)³
				assert.InDelta(t, (6*0.25-2)/math.Pow(1.25, 3), d.GradHessian[0][0][0], 1e-14)
			} else {
				assert.Nil(t, d.GradHessian)
			}
		})
	}
}

func TestModes_Product(t *testing.T) {
	x := []float64{2, 3}
	wantHess := [][]float64{{0, 6}, {6, 4}}

	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			d, err := m.Evaluate(product, x)
			require.NoError(t, err)

			assert.Equal(t, 18.0, d.Value)
			assert.Equal(t, []float64{9, 12}, d.Gradient)
			if m.MaxOrder() >= 2 {
				assert.Equal(t, wantHess, d.Hessian)
			}
			if m.MaxOrder() >= 3 {
				assert.Equal(t, [][]float64{{0, 0}, {0, 2}}, d.GradHessian[0])
				assert.Equal(t, [][]float64{{0, 2}, {2, 0}}, d.GradHessian[1])
			}
		})
	}
}

func TestModes_ConstantObjective(t *testing.T) {
	constant := func([]autodiff.Scalar) (autodiff.Scalar, error) {
		return autodiff.Real(7), nil
	}

	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			d, err := m.Evaluate(constant, []float64{1, 2})
			require.NoError(t, err)
			assert.Equal(t, 7.0, d.Value)
			assert.Equal(t, []float64{0, 0}, d.Gradient)
		})
	}
}

func TestModes_NoInputs(t *testing.T) {
	for _, m := range Modes() {
		d, err := m.Evaluate(func([]autodiff.Scalar) (autodiff.Scalar, error) {
			return autodiff.Real(3), nil
		}, nil)
		require.NoError(t, err, m.String())
		assert.Equal(t, 3.0, d.Value, m.String())
	}
}

func TestModes_RaiseReleasesTapes(t *testing.T) {
	logNeg := func(x []autodiff.Scalar) (autodiff.Scalar, error) {
		return x[0].Log(), nil
	}
	before := autodiff.LiveTapes()

	for _, m := range Modes() {
		_, err := m.Evaluate(logNeg, []float64{-1})
		require.Error(t, err, m.String())
		assert.True(t, errors.Is(err, autodiff.ErrDomain), m.String())

		var raised *RaisedError
		assert.True(t, errors.As(err, &raised), m.String())
	}
	assert.Equal(t, before, autodiff.LiveTapes())
}

func TestModes_ErrorReturn(t *testing.T) {
	errBad := errors.New("bad input")
	f := func([]autodiff.Scalar) (autodiff.Scalar, error) { return nil, errBad }

	for _, m := range Modes() {
		_, err := m.Evaluate(f, []float64{1})
		assert.ErrorIs(t, err, errBad, m.String())
	}
}

func TestProtect(t *testing.T) {
	v, err := Protect(func() (int, error) { return 3, nil })
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = Protect(func() (int, error) { panic("boom") })
	assert.EqualError(t, err, "raised: boom")
	assert.Nil(t, errors.Unwrap(err))
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("sideways")
	assert.Error(t, err)
}
