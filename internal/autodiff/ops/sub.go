package ops

// SubOp represents a - b.
//
// Backward pass:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
type SubOp struct {
	binaryOp
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b int) *SubOp {
	return &SubOp{binaryOp{a: a, b: b, da: 1, db: -1}}
}

// NegOp represents -x.
type NegOp struct {
	unaryOp
}

// NewNegOp creates a new NegOp.
func NewNegOp(input int) *NegOp {
	return &NegOp{unaryOp{input: input, partial: -1}}
}
