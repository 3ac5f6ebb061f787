// Package ops defines the operations recorded on a scalar gradient tape.
//
// Each operation stores the tape indices of its inputs and the local partial
// derivatives evaluated during the forward pass. Backward scales those
// partials by the adjoint of the output (chain rule).
//
// Supported operations:
//   - AddOp, SubOp, NegOp: linear ops (constant partials)
//   - MulOp: d(a*b)/da = b, d(a*b)/db = a
//   - DivOp: d(a/b)/da = 1/b, d(a/b)/db = -a/b²
//   - SinOp, CosOp, ExpOp, LogOp, SqrtOp, AtanOp, TanhOp: unary elementary functions
//   - LeafOp: an independent variable
package ops

// NoInput marks an operand that is a constant and receives no gradient.
const NoInput = -1

// Operation is a node of the scalar computation graph.
type Operation interface {
	// Inputs returns the tape indices of the operands. Constant operands are
	// reported as NoInput.
	Inputs() []int

	// Backward returns the adjoint contribution for each input, given the
	// adjoint of the output.
	//
	// Example for MulOp (a=2, b=3):
	//   outputGrad: 1
	//   returns: [3, 2]
	Backward(outputGrad float64) []float64
}

// unaryOp is a single-input operation with a precomputed partial.
type unaryOp struct {
	input   int
	partial float64
}

func (op *unaryOp) Inputs() []int {
	return []int{op.input}
}

func (op *unaryOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad * op.partial}
}

// binaryOp is a two-input operation with precomputed partials.
type binaryOp struct {
	a, b   int
	da, db float64
}

func (op *binaryOp) Inputs() []int {
	return []int{op.a, op.b}
}

func (op *binaryOp) Backward(outputGrad float64) []float64 {
	return []float64{outputGrad * op.da, outputGrad * op.db}
}
