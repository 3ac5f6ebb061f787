package autodiff

import (
	"math"
	"strconv"
)

// Real is the primal scalar: an IEEE-754 binary64 value with no derivative.
type Real float64

// Value returns r as a float64.
func (r Real) Value() float64 { return float64(r) }

// Size returns 1.
func (r Real) Size() int { return 1 }

// Level returns 0.
func (r Real) Level() int { return 0 }

// Const returns c as a Real.
func (r Real) Const(c float64) Scalar { return Real(c) }

// Embed returns the primal value of s as a Real.
func (r Real) Embed(s Scalar) Scalar { return Real(s.Value()) }

// String formats r like a float64.
func (r Real) String() string {
	return strconv.FormatFloat(float64(r), 'g', -1, 64)
}

// Add returns r + o.
func (r Real) Add(o Scalar) Scalar {
	if o.Level() > 0 {
		return o.Embed(r).Add(o)
	}
	return r + Real(o.Value())
}

// Sub returns r - o.
func (r Real) Sub(o Scalar) Scalar {
	if o.Level() > 0 {
		return o.Embed(r).Sub(o)
	}
	return r - Real(o.Value())
}

// Mul returns r * o.
func (r Real) Mul(o Scalar) Scalar {
	if o.Level() > 0 {
		return o.Embed(r).Mul(o)
	}
	return r * Real(o.Value())
}

// Div returns r / o.
func (r Real) Div(o Scalar) Scalar {
	if o.Level() > 0 {
		return o.Embed(r).Div(o)
	}
	return r / Real(o.Value())
}

// Neg returns -r.
func (r Real) Neg() Scalar { return -r }

// Sin returns sin(r).
func (r Real) Sin() Scalar { return Real(math.Sin(float64(r))) }

// Cos returns cos(r).
func (r Real) Cos() Scalar { return Real(math.Cos(float64(r))) }

// Exp returns exp(r).
func (r Real) Exp() Scalar { return Real(math.Exp(float64(r))) }

// Log returns log(r). Panics with *DomainError for r < 0.
func (r Real) Log() Scalar {
	checkNonNegative("log", float64(r))
	return Real(math.Log(float64(r)))
}

// Sqrt returns sqrt(r). Panics with *DomainError for r < 0.
func (r Real) Sqrt() Scalar {
	checkNonNegative("sqrt", float64(r))
	return Real(math.Sqrt(float64(r)))
}

// Atan returns atan(r).
func (r Real) Atan() Scalar { return Real(math.Atan(float64(r))) }

// Tanh returns tanh(r).
func (r Real) Tanh() Scalar { return Real(math.Tanh(float64(r))) }
