package finitediff

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/adcheck/internal/parallel"
)

// cubic is f(x, y) = x³y + 2xy² + sin(y).
func cubic(v []float64) (float64, error) {
	x, y := v[0], v[1]
	return x*x*x*y + 2*x*y*y + math.Sin(y), nil
}

func TestGradient(t *testing.T) {
	fx, grad, err := Gradient(cubic, []float64{1.5, -0.5})
	require.NoError(t, err)

	x, y := 1.5, -0.5
	assert.InDelta(t, x*x*x*y+2*x*y*y+math.Sin(y), fx, 0)
	assert.InDelta(t, 3*x*x*y+2*y*y, grad[0], 1e-9)
	assert.InDelta(t, x*x*x+4*x*y+math.Cos(y), grad[1], 1e-9)
}

func TestHessian(t *testing.T) {
	_, _, hess, err := Hessian(cubic, []float64{1.5, -0.5})
	require.NoError(t, err)

	x, y := 1.5, -0.5
	want := [][]float64{
		{6 * x * y, 3*x*x + 4*y},
		{3*x*x + 4*y, 4*x - math.Sin(y)},
	}
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], hess[i][j], 1e-5, "H[%d][%d]", i, j)
		}
	}
	assert.Equal(t, hess[0][1], hess[1][0], "Hessian must be symmetric")
}

func TestGradHessian(t *testing.T) {
	_, _, third, err := GradHessian(cubic, []float64{1.5, -0.5})
	require.NoError(t, err)

	x, y := 1.5, -0.5
	// ∂³f: fxxx = 6y, fxxy = 6x, fxyy = 4, fyyy = -cos(y)
	want := [2][2][2]float64{
		{{6 * y, 6 * x}, {6 * x, 4}},
		{{6 * x, 4}, {4, -math.Cos(y)}},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				assert.InDelta(t, want[i][j][k], third[i][j][k], 1e-4, "T[%d][%d][%d]", i, j, k)
			}
		}
	}
}

func TestAtanScalar(t *testing.T) {
	atan := func(v []float64) (float64, error) { return math.Atan(v[0]), nil }

	fx, hess, third, err := GradHessian(atan, []float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.4636476, fx, 1e-7)
	assert.InDelta(t, -0.64, hess[0][0], 1e-8)
	// d³ atan = (6x² - 2) / (1+x²)³
	assert.InDelta(t, (6*0.25-2)/math.Pow(1.25, 3), third[0][0][0], 1e-6)
}

func TestErrorPropagates(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	f := func(v []float64) (float64, error) {
		calls++
		if v[0] > 1.0005 {
			return 0, errBoom
		}
		return v[0], nil
	}

	_, _, err := Gradient(f, []float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Greater(t, calls, 1)
}

func TestEmptyInput(t *testing.T) {
	constant := func([]float64) (float64, error) { return 4, nil }

	fx, hess, third, err := GradHessian(constant, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, fx)
	assert.Empty(t, hess)
	assert.Empty(t, third)
}

func TestSteps_Custom(t *testing.T) {
	s := Steps{GradientH: 1e-2, HessianH: 1e-2, GradHessianH: 1e-1}
	square := func(v []float64) (float64, error) { return v[0] * v[0], nil }

	_, grad, hess, err := s.Hessian(square, []float64{3})
	require.NoError(t, err)
	assert.InDelta(t, 6, grad[0], 1e-9)
	assert.InDelta(t, 2, hess[0][0], 1e-9)
}

func TestGradHessian_Parallel(t *testing.T) {
	s := DefaultSteps()
	s.Parallel = parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	_, _, want, err := GradHessian(cubic, []float64{1.5, -0.5})
	require.NoError(t, err)
	_, _, got, err := s.GradHessian(cubic, []float64{1.5, -0.5})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	boom := errors.New("boom")
	failing := func(v []float64) (float64, error) {
		if v[0] > 1.51 {
			return 0, boom
		}
		return cubic(v)
	}
	_, _, _, err = s.GradHessian(failing, []float64{1.5, -0.5})
	assert.ErrorIs(t, err, boom)
}

func TestDefaultSteps(t *testing.T) {
	s := DefaultSteps()
	assert.Equal(t, GradientStep, s.GradientH)
	assert.Equal(t, HessianStep, s.HessianH)
	assert.Equal(t, GradHessianStep, s.GradHessianH)
	assert.False(t, s.Parallel.Enabled)
}
