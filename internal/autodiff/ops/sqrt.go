package ops

// SqrtOp represents y = sqrt(x).
//
// Backward pass: d(sqrt(x))/dx = 1 / (2*sqrt(x)) = 1 / (2y).
type SqrtOp struct {
	unaryOp
}

// NewSqrtOp creates a new SqrtOp from the already computed output sqrt(x).
func NewSqrtOp(input int, output float64) *SqrtOp {
	return &SqrtOp{unaryOp{input: input, partial: 1 / (2 * output)}}
}
