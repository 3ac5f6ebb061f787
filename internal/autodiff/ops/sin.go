package ops

import "math"

// SinOp represents the sine operation: y = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
type SinOp struct {
	unaryOp
}

// NewSinOp creates a new SinOp for input x.
func NewSinOp(input int, x float64) *SinOp {
	return &SinOp{unaryOp{input: input, partial: math.Cos(x)}}
}
