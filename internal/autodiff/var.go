package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/adcheck/internal/autodiff/ops"
)

// Var is a reverse-mode scalar: a primal value plus the index of the tape
// node that produced it. A Var with no node (index ops.NoInput) is a constant.
type Var struct {
	tape  *GradientTape
	index int
	val   float64
}

// Value returns the primal value.
func (v Var) Value() float64 { return v.val }

// Size returns 1.
func (v Var) Size() int { return 1 }

// Level returns 1.
func (v Var) Level() int { return 1 }

// Tape returns the tape v is recorded on, or nil for a free constant.
func (v Var) Tape() *GradientTape { return v.tape }

// IsConstant reports whether v carries no derivative.
func (v Var) IsConstant() bool { return v.index < 0 || v.tape == nil }

// String formats v for diagnostics.
func (v Var) String() string {
	return fmt.Sprintf("var(%g)", v.val)
}

// Const returns c as a constant on v's tape.
func (v Var) Const(c float64) Scalar {
	return Var{tape: v.tape, index: ops.NoInput, val: c}
}

// Embed returns s unchanged when it is a Var, otherwise a constant carrying
// its primal value.
func (v Var) Embed(s Scalar) Scalar {
	if w, ok := s.(Var); ok {
		return w
	}
	if s.Level() >= v.Level() {
		panic(incompatible(v, s))
	}
	return v.Const(s.Value())
}

// operand converts o, already known not to be nested deeper than v, to a Var.
func (v Var) operand(o Scalar) Var {
	switch w := o.(type) {
	case Var:
		return w
	case Real:
		return Var{tape: v.tape, index: ops.NoInput, val: float64(w)}
	}
	panic(incompatible(v, o))
}

// tapeOf picks the tape shared by a and b.
func tapeOf(a, b Var) *GradientTape {
	if a.tape != nil {
		return a.tape
	}
	return b.tape
}

// unary records op on v's tape unless v is constant.
func (v Var) unary(val float64, op func(input int) ops.Operation) Scalar {
	if v.IsConstant() {
		return v.Const(val)
	}
	return v.tape.record(op(v.index), val)
}

// binary records op on the shared tape unless both operands are constant.
func binary(a, b Var, val float64, op func(ia, ib int) ops.Operation) Scalar {
	if a.IsConstant() && b.IsConstant() {
		return Var{tape: tapeOf(a, b), index: ops.NoInput, val: val}
	}
	ia, ib := a.index, b.index
	if a.IsConstant() {
		ia = ops.NoInput
	}
	if b.IsConstant() {
		ib = ops.NoInput
	}
	if a.tape != nil && b.tape != nil && a.tape != b.tape && !a.IsConstant() && !b.IsConstant() {
		panic("autodiff: operands recorded on different tapes")
	}
	return tapeOf(a, b).record(op(ia, ib), val)
}

// Add returns v + o.
func (v Var) Add(o Scalar) Scalar {
	if o.Level() > v.Level() {
		return o.Embed(v).Add(o)
	}
	w := v.operand(o)
	return binary(v, w, v.val+w.val, func(a, b int) ops.Operation { return ops.NewAddOp(a, b) })
}

// Sub returns v - o.
func (v Var) Sub(o Scalar) Scalar {
	if o.Level() > v.Level() {
		return o.Embed(v).Sub(o)
	}
	w := v.operand(o)
	return binary(v, w, v.val-w.val, func(a, b int) ops.Operation { return ops.NewSubOp(a, b) })
}

// Mul returns v * o.
func (v Var) Mul(o Scalar) Scalar {
	if o.Level() > v.Level() {
		return o.Embed(v).Mul(o)
	}
	w := v.operand(o)
	return binary(v, w, v.val*w.val, func(a, b int) ops.Operation { return ops.NewMulOp(a, b, v.val, w.val) })
}

// Div returns v / o.
func (v Var) Div(o Scalar) Scalar {
	if o.Level() > v.Level() {
		return o.Embed(v).Div(o)
	}
	w := v.operand(o)
	return binary(v, w, v.val/w.val, func(a, b int) ops.Operation { return ops.NewDivOp(a, b, v.val, w.val) })
}

// Neg returns -v.
func (v Var) Neg() Scalar {
	return v.unary(-v.val, func(i int) ops.Operation { return ops.NewNegOp(i) })
}

// Sin returns sin(v).
func (v Var) Sin() Scalar {
	return v.unary(math.Sin(v.val), func(i int) ops.Operation { return ops.NewSinOp(i, v.val) })
}

// Cos returns cos(v).
func (v Var) Cos() Scalar {
	return v.unary(math.Cos(v.val), func(i int) ops.Operation { return ops.NewCosOp(i, v.val) })
}

// Exp returns exp(v).
func (v Var) Exp() Scalar {
	y := math.Exp(v.val)
	return v.unary(y, func(i int) ops.Operation { return ops.NewExpOp(i, y) })
}

// Log returns log(v). Panics with *DomainError for v < 0.
func (v Var) Log() Scalar {
	checkNonNegative("log", v.val)
	return v.unary(math.Log(v.val), func(i int) ops.Operation { return ops.NewLogOp(i, v.val) })
}

// Sqrt returns sqrt(v). Panics with *DomainError for v < 0.
func (v Var) Sqrt() Scalar {
	checkNonNegative("sqrt", v.val)
	y := math.Sqrt(v.val)
	return v.unary(y, func(i int) ops.Operation { return ops.NewSqrtOp(i, y) })
}

// Atan returns atan(v).
func (v Var) Atan() Scalar {
	return v.unary(math.Atan(v.val), func(i int) ops.Operation { return ops.NewAtanOp(i, v.val) })
}

// Tanh returns tanh(v).
func (v Var) Tanh() Scalar {
	y := math.Tanh(v.val)
	return v.unary(y, func(i int) ops.Operation { return ops.NewTanhOp(i, y) })
}
