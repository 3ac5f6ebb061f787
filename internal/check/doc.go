// Package check reconciles AD results with finite-difference estimates.
//
// A comparison of derivative order k passes when
//
//	|ad - fd| <= Abs[k] + Rel[k]·|fd|
//
// Order 0 (value) is the tightest; each extra order loosens the bound because
// finite-difference noise grows like 1/hᵏ. The first failing comparison is
// reported with the mode, order, multi-index and both values.
package check
