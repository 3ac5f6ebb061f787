package ops

// MulOp represents a * b.
//
// Backward pass:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
type MulOp struct {
	binaryOp
}

// NewMulOp creates a new MulOp from operand indices and primal values.
func NewMulOp(a, b int, aVal, bVal float64) *MulOp {
	return &MulOp{binaryOp{a: a, b: b, da: bVal, db: aVal}}
}
