package autodiff_test

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// TestTape_Recording tests that operations on variables are recorded.
func TestTape_Recording(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	x := tape.Variable(2)
	if tape.NumOps() != 1 {
		t.Fatalf("NumOps() = %d after Variable, want 1", tape.NumOps())
	}

	x.Mul(x).Add(autodiff.Real(1))
	if tape.NumOps() != 3 {
		t.Errorf("NumOps() = %d, want 3", tape.NumOps())
	}
}

// TestTape_ConstantsNotRecorded tests that constant-only arithmetic stays off the tape.
func TestTape_ConstantsNotRecorded(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	c := tape.Constant(3)
	y := c.Mul(c).Sin()
	if tape.NumOps() != 0 {
		t.Errorf("NumOps() = %d, want 0", tape.NumOps())
	}
	if want := math.Sin(9); y.Value() != want {
		t.Errorf("Value() = %v, want %v", y.Value(), want)
	}
}

// TestTape_Clear tests tape clearing.
func TestTape_Clear(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	x := tape.Variable(1)
	x.Add(x)
	tape.Clear()

	if tape.NumOps() != 0 {
		t.Errorf("Tape should be empty after Clear(), got %d ops", tape.NumOps())
	}
}

// TestTape_Release tests that released tapes are no longer counted as live.
func TestTape_Release(t *testing.T) {
	before := autodiff.LiveTapes()

	tape := autodiff.NewGradientTape()
	if autodiff.LiveTapes() != before+1 {
		t.Fatalf("LiveTapes() = %d, want %d", autodiff.LiveTapes(), before+1)
	}

	tape.Release()
	tape.Release() // idempotent
	if autodiff.LiveTapes() != before {
		t.Errorf("LiveTapes() = %d after Release, want %d", autodiff.LiveTapes(), before)
	}

	defer func() {
		if recover() == nil {
			t.Error("recording on a released tape should panic")
		}
	}()
	tape.Variable(1)
}

// TestGradient_Product tests d(x*y) = (y, x).
func TestGradient_Product(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	x := tape.Variable(2)
	y := tape.Variable(3)
	z := x.Mul(y).(autodiff.Var)

	grad := tape.Gradient(z, x, y)
	if grad[0] != 3 || grad[1] != 2 {
		t.Errorf("Gradient = %v, want [3 2]", grad)
	}
}

// TestGradient_Accumulation tests that a node used twice accumulates adjoints.
func TestGradient_Accumulation(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	x := tape.Variable(3)
	y := x.Mul(x).Add(x).(autodiff.Var) // x² + x

	grad := tape.Gradient(y, x)
	if grad[0] != 7 {
		t.Errorf("Gradient = %v, want [7]", grad)
	}
}

// TestDual_Forward tests first-order forward mode.
func TestDual_Forward(t *testing.T) {
	x := autodiff.Seed(autodiff.Real(0.5), 1)
	y := x.Atan().(autodiff.Dual)

	if math.Abs(y.Value()-math.Atan(0.5)) > 1e-15 {
		t.Errorf("Value() = %v, want %v", y.Value(), math.Atan(0.5))
	}
	if math.Abs(y.Tan.Value()-0.8) > 1e-15 {
		t.Errorf("Tangent = %v, want 0.8", y.Tan.Value())
	}
}

// TestDual_SecondOrder tests forward-forward: d²(atan)/dx² at 0.5 = -0.64.
func TestDual_SecondOrder(t *testing.T) {
	x := autodiff.Dual{
		Val: autodiff.Seed(autodiff.Real(0.5), 1),
		Tan: autodiff.Seed(autodiff.Real(1), 0),
	}

	y := x.Atan().(autodiff.Dual)
	second := y.Tan.(autodiff.Dual).Tan.Value()
	if math.Abs(second-(-0.64)) > 1e-12 {
		t.Errorf("second derivative = %v, want -0.64", second)
	}
}

// TestDual_OverVar tests forward-over-reverse Hessian of x*y.
func TestDual_OverVar(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	xv, yv := tape.Variable(2), tape.Variable(3)
	x := autodiff.Seed(xv, 1) // direction e_x
	y := autodiff.Seed(yv, 0)

	z := x.Mul(y).(autodiff.Dual)
	row := tape.Gradient(z.Tan.(autodiff.Var), xv, yv)
	if row[0] != 0 || row[1] != 1 {
		t.Errorf("Hessian row = %v, want [0 1]", row)
	}
}

// TestMixedLevels tests that fixed reals combine with AD scalars on either side.
func TestMixedLevels(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	x := tape.Variable(4)
	three := autodiff.Real(3)

	left := three.Mul(x).(autodiff.Var)
	right := x.Div(three).(autodiff.Var)

	if g := tape.Gradient(left, x)[0]; g != 3 {
		t.Errorf("d(3x)/dx = %v, want 3", g)
	}
	if g := tape.Gradient(right, x)[0]; math.Abs(g-1.0/3) > 1e-15 {
		t.Errorf("d(x/3)/dx = %v, want 1/3", g)
	}

	d := autodiff.Seed(autodiff.Real(2), 1)
	sub := three.Sub(d).(autodiff.Dual)
	if sub.Value() != 1 || sub.Tan.Value() != -1 {
		t.Errorf("3 - x = %v, want dual(1, -1)", sub)
	}
}

// TestIncompatibleFamilies tests that Var and Dual{Real} cannot be combined.
func TestIncompatibleFamilies(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	defer func() {
		if recover() == nil {
			t.Error("combining Var with Dual{Real} should panic")
		}
	}()
	tape.Variable(1).Add(autodiff.Seed(autodiff.Real(1), 1))
}

// TestDomainError tests that log and sqrt of negative values panic with *DomainError
// in every scalar family.
func TestDomainError(t *testing.T) {
	tape := autodiff.NewGradientTape()
	defer tape.Release()

	cases := []struct {
		name string
		x    autodiff.Scalar
	}{
		{"real", autodiff.Real(-1)},
		{"var", tape.Variable(-1)},
		{"dual", autodiff.Seed(autodiff.Real(-1), 1)},
		{"dual-var", autodiff.Seed(tape.Variable(-1), 1)},
	}

	for _, c := range cases {
		for _, fn := range []func(autodiff.Scalar) autodiff.Scalar{
			autodiff.Scalar.Log,
			autodiff.Scalar.Sqrt,
		} {
			func() {
				defer func() {
					r := recover()
					err, ok := r.(error)
					if !ok || !errors.Is(err, autodiff.ErrDomain) {
						t.Errorf("%s: recovered %v, want DomainError", c.name, r)
					}
				}()
				fn(c.x)
			}()
		}
	}
}

func TestTapes_CountOwnTapesOnly(t *testing.T) {
	var tapes autodiff.Tapes

	a := tapes.New()
	b := autodiff.NewGradientTape()
	if tapes.Live() != 1 {
		t.Fatalf("Live() = %d, want 1", tapes.Live())
	}

	b.Release()
	if tapes.Live() != 1 {
		t.Errorf("Live() = %d after releasing an untracked tape, want 1", tapes.Live())
	}

	a.Release()
	a.Release()
	if tapes.Live() != 0 {
		t.Errorf("Live() = %d after Release, want 0", tapes.Live())
	}
}

func TestTapes_Nil(t *testing.T) {
	var tapes *autodiff.Tapes

	tape := tapes.New()
	defer tape.Release()
	if tapes.Live() != 0 {
		t.Errorf("Live() = %d for nil Tapes, want 0", tapes.Live())
	}
	x := tape.Variable(2)
	if got := tape.Gradient(x.Mul(x).(autodiff.Var), x)[0]; got != 4 {
		t.Errorf("gradient = %v, want 4", got)
	}
}
