package autodiff

import "fmt"

// Dual is a forward-mode scalar: a value and one tangent (directional
// derivative), both of the same inner Scalar type.
//
// The inner type selects the mode:
//   - Dual{Real, Real}: first-order forward
//   - Dual{Var, Var}: forward-over-reverse
//   - Dual{Dual, Dual}: nested forward, to any depth
type Dual struct {
	Val Scalar // Primal (or lower-order) part
	Tan Scalar // Tangent along the seeded direction
}

// NewDual creates a Dual with the given value and tangent. Both parts must be
// of the same scalar family.
func NewDual(val, tan Scalar) Dual {
	if val.Level() != tan.Level() {
		panic(incompatible(val, tan))
	}
	return Dual{Val: val, Tan: tan}
}

// Value returns the innermost primal value.
func (d Dual) Value() float64 { return d.Val.Value() }

// Size returns 1.
func (d Dual) Size() int { return 1 }

// Level returns one more than the level of the inner type.
func (d Dual) Level() int { return d.Val.Level() + 1 }

// String formats d for diagnostics.
func (d Dual) String() string {
	return fmt.Sprintf("dual(%v, %v)", d.Val, d.Tan)
}

// Const returns c as a Dual with zero tangent.
func (d Dual) Const(c float64) Scalar {
	return Dual{Val: d.Val.Const(c), Tan: d.Val.Const(0)}
}

// Embed returns s unchanged when it already is a Dual of this level;
// otherwise s becomes the value part with a zero tangent.
func (d Dual) Embed(s Scalar) Scalar {
	if s.Level() == d.Level() {
		if e, ok := s.(Dual); ok {
			return e
		}
		panic(incompatible(d, s))
	}
	return Dual{Val: d.Val.Embed(s), Tan: d.Val.Const(0)}
}

// operand converts o, already known not to be nested deeper than d, to a Dual.
func (d Dual) operand(o Scalar) Dual {
	return d.Embed(o).(Dual)
}

// Add returns d + o.
func (d Dual) Add(o Scalar) Scalar {
	if o.Level() > d.Level() {
		return o.Embed(d).Add(o)
	}
	e := d.operand(o)
	return Dual{Val: d.Val.Add(e.Val), Tan: d.Tan.Add(e.Tan)}
}

// Sub returns d - o.
func (d Dual) Sub(o Scalar) Scalar {
	if o.Level() > d.Level() {
		return o.Embed(d).Sub(o)
	}
	e := d.operand(o)
	return Dual{Val: d.Val.Sub(e.Val), Tan: d.Tan.Sub(e.Tan)}
}

// Mul returns d * o: (a*b)' = a'b + ab'.
func (d Dual) Mul(o Scalar) Scalar {
	if o.Level() > d.Level() {
		return o.Embed(d).Mul(o)
	}
	e := d.operand(o)
	return Dual{
		Val: d.Val.Mul(e.Val),
		Tan: d.Tan.Mul(e.Val).Add(d.Val.Mul(e.Tan)),
	}
}

// Div returns d / o: (a/b)' = (a' - (a/b)b') / b.
func (d Dual) Div(o Scalar) Scalar {
	if o.Level() > d.Level() {
		return o.Embed(d).Div(o)
	}
	e := d.operand(o)
	q := d.Val.Div(e.Val)
	return Dual{
		Val: q,
		Tan: d.Tan.Sub(q.Mul(e.Tan)).Div(e.Val),
	}
}

// Neg returns -d.
func (d Dual) Neg() Scalar {
	return Dual{Val: d.Val.Neg(), Tan: d.Tan.Neg()}
}

// Sin returns sin(d).
func (d Dual) Sin() Scalar {
	return Dual{Val: d.Val.Sin(), Tan: d.Tan.Mul(d.Val.Cos())}
}

// Cos returns cos(d).
func (d Dual) Cos() Scalar {
	return Dual{Val: d.Val.Cos(), Tan: d.Tan.Mul(d.Val.Sin()).Neg()}
}

// Exp returns exp(d).
func (d Dual) Exp() Scalar {
	y := d.Val.Exp()
	return Dual{Val: y, Tan: d.Tan.Mul(y)}
}

// Log returns log(d). Panics with *DomainError for a negative value.
func (d Dual) Log() Scalar {
	return Dual{Val: d.Val.Log(), Tan: d.Tan.Div(d.Val)}
}

// Sqrt returns sqrt(d). Panics with *DomainError for a negative value.
func (d Dual) Sqrt() Scalar {
	y := d.Val.Sqrt()
	return Dual{Val: y, Tan: d.Tan.Div(y.Add(y))}
}

// Atan returns atan(d): atan'(x) = 1/(1+x²).
func (d Dual) Atan() Scalar {
	one := d.Val.Const(1)
	return Dual{Val: d.Val.Atan(), Tan: d.Tan.Div(one.Add(d.Val.Mul(d.Val)))}
}

// Tanh returns tanh(d): tanh'(x) = 1 - tanh²(x).
func (d Dual) Tanh() Scalar {
	y := d.Val.Tanh()
	one := d.Val.Const(1)
	return Dual{Val: y, Tan: d.Tan.Mul(one.Sub(y.Mul(y)))}
}

// Seed builds a Dual over base with a unit (or zero) tangent of the same family.
func Seed(base Scalar, tangent float64) Dual {
	return Dual{Val: base, Tan: base.Const(tangent)}
}
