package ops

// AddOp represents a + b.
//
// Backward pass:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
type AddOp struct {
	binaryOp
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b int) *AddOp {
	return &AddOp{binaryOp{a: a, b: b, da: 1, db: 1}}
}
