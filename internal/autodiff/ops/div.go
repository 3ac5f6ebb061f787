package ops

// DivOp represents a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
type DivOp struct {
	binaryOp
}

// NewDivOp creates a new DivOp from operand indices and primal values.
func NewDivOp(a, b int, aVal, bVal float64) *DivOp {
	return &DivOp{binaryOp{a: a, b: b, da: 1 / bVal, db: -aVal / (bVal * bVal)}}
}
