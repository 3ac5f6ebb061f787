// Package serialization flattens structured values into a single flat buffer
// of scalars and rebuilds them, possibly with a different scalar type.
//
// Encoding:
//   - scalars contribute themselves
//   - vectors contribute their elements left to right
//   - matrices contribute their elements in column-major order
//   - arrays contribute their elements outer before inner
//   - integers contribute nothing (they are never differentiated)
//
// Example usage:
//
//	// Flatten the real arguments
//	flat := serialization.SerializeFloat64(x, m)
//
//	// Rebuild them over reverse-mode variables
//	tape := autodiff.NewGradientTape()
//	defer tape.Release()
//	r := serialization.NewReader(autodiff.Scalars(tape.Variables(flat)))
//	xv, _ := r.Read(x) // same shape as x, Var elements
//	mv, _ := r.Read(m)
//
// Invariant: Deserialize(Serialize(x), x) is element-wise identical to x.
package serialization
