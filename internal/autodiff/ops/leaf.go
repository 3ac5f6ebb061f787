package ops

// LeafOp is an independent variable. It has no inputs; the tape reads its
// accumulated adjoint as the gradient entry.
type LeafOp struct{}

// NewLeafOp creates a new LeafOp.
func NewLeafOp() *LeafOp {
	return &LeafOp{}
}

// Inputs returns no inputs.
func (op *LeafOp) Inputs() []int {
	return nil
}

// Backward returns no gradients.
func (op *LeafOp) Backward(float64) []float64 {
	return nil
}
