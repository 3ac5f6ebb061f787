package ops

// ExpOp represents y = exp(x).
//
// Backward pass: d(exp(x))/dx = exp(x) = y, so the op keeps the output value.
type ExpOp struct {
	unaryOp
}

// NewExpOp creates a new ExpOp from the already computed output exp(x).
func NewExpOp(input int, output float64) *ExpOp {
	return &ExpOp{unaryOp{input: input, partial: output}}
}
