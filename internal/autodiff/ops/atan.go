package ops

// AtanOp represents y = atan(x).
//
// Backward pass: d(atan(x))/dx = 1 / (1 + x²).
type AtanOp struct {
	unaryOp
}

// NewAtanOp creates a new AtanOp for input x.
func NewAtanOp(input int, x float64) *AtanOp {
	return &AtanOp{unaryOp{input: input, partial: 1 / (1 + x*x)}}
}
