package ops

// TanhOp represents y = tanh(x).
//
// Backward pass: d(tanh(x))/dx = 1 - tanh²(x) = 1 - y².
type TanhOp struct {
	unaryOp
}

// NewTanhOp creates a new TanhOp from the already computed output tanh(x).
func NewTanhOp(input int, output float64) *TanhOp {
	return &TanhOp{unaryOp{input: input, partial: 1 - output*output}}
}
