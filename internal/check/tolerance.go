package check

import (
	"fmt"
	"math"
)

// Tolerance is an absolute plus relative error bound.
type Tolerance struct {
	Abs float64
	Rel float64
}

// Allows reports whether ad is within the tolerance of the reference fd.
func (t Tolerance) Allows(ad, fd float64) bool {
	if math.IsNaN(ad) || math.IsNaN(fd) {
		return math.IsNaN(ad) && math.IsNaN(fd)
	}
	if math.IsInf(fd, 0) || math.IsInf(ad, 0) {
		return ad == fd
	}
	return math.Abs(ad-fd) <= t.Abs+t.Rel*math.Abs(fd)
}

// Tolerances maps derivative order (0 value, 1 gradient, 2 Hessian,
// 3 grad-Hessian) to its bound.
type Tolerances [4]Tolerance

// DefaultTolerances is the process-wide default table.
var DefaultTolerances = Tolerances{
	{Abs: 1e-8, Rel: 1e-8},
	{Abs: 1e-4, Rel: 1e-4},
	{Abs: 1e-3, Rel: 1e-3},
	{Abs: 1e-2, Rel: 1e-2},
}

// For returns the tolerance of the given order.
func (t Tolerances) For(order int) Tolerance {
	if order < 0 || order >= len(t) {
		panic(fmt.Sprintf("check: no tolerance for derivative order %d", order))
	}
	return t[order]
}
