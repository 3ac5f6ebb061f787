package ops

import "math"

// CosOp represents the cosine operation: y = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
type CosOp struct {
	unaryOp
}

// NewCosOp creates a new CosOp for input x.
func NewCosOp(input int, x float64) *CosOp {
	return &CosOp{unaryOp{input: input, partial: -math.Sin(x)}}
}
