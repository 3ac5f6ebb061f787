package serialization

import (
	"github.com/born-ml/adcheck/internal/autodiff"
	"github.com/born-ml/adcheck/internal/tensor"
)

// Serialize concatenates the canonical flattening of each value.
// The result length equals the sum of the values' sizes.
func Serialize(vals ...tensor.Value) []autodiff.Scalar {
	n := 0
	for _, v := range vals {
		n += v.Size()
	}
	flat := make([]autodiff.Scalar, 0, n)
	for _, v := range vals {
		flat = tensor.Leaves(flat, v)
	}
	return flat
}

// SerializeFloat64 is like Serialize but returns primal values.
func SerializeFloat64(vals ...tensor.Value) []float64 {
	return autodiff.Values(Serialize(vals...))
}
