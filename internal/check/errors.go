package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/adcheck/internal/functional"
)

// Error kinds. Every structured error below matches exactly one of them
// through errors.Is.
var (
	ErrValueMismatch      = errors.New("value mismatch")
	ErrDerivativeMismatch = errors.New("derivative mismatch")
	ErrExceptionMismatch  = errors.New("exception mismatch")
	ErrInternalInvariant  = errors.New("internal invariant violated")
)

// Mismatch is a failed numeric comparison between an AD mode and the
// finite-difference reference.
type Mismatch struct {
	Mode  functional.Mode
	Order int   // 0 value, 1 gradient, 2 Hessian, 3 grad-Hessian
	Index []int // Multi-index into the derivative tensor
	AD    float64
	FD    float64
	Tol   Tolerance
}

// Error implements the error interface.
func (e *Mismatch) Error() string {
	return fmt.Sprintf("%s: mode %s, order %d, index %s: ad = %.17g, finite diff = %.17g (tolerance abs %g, rel %g)",
		e.kind(), e.Mode, e.Order, formatIndex(e.Index), e.AD, e.FD, e.Tol.Abs, e.Tol.Rel)
}

func (e *Mismatch) kind() error {
	if e.Order == 0 {
		return ErrValueMismatch
	}
	return ErrDerivativeMismatch
}

// Is matches ErrValueMismatch for order 0 and ErrDerivativeMismatch otherwise.
func (e *Mismatch) Is(target error) bool {
	return target == e.kind()
}

// ExceptionMismatch reports a mode that disagrees with the primal on whether
// evaluation raises.
type ExceptionMismatch struct {
	Mode         functional.Mode
	PrimalRaised bool
	Err          error // The error on whichever side raised
}

// Error implements the error interface.
func (e *ExceptionMismatch) Error() string {
	if e.PrimalRaised {
		return fmt.Sprintf("%s: primal raised (%v) but mode %s did not", ErrExceptionMismatch, e.Err, e.Mode)
	}
	return fmt.Sprintf("%s: mode %s raised (%v) but primal did not", ErrExceptionMismatch, e.Mode, e.Err)
}

// Is reports whether target is ErrExceptionMismatch.
func (e *ExceptionMismatch) Is(target error) bool {
	return target == ErrExceptionMismatch
}

// Unwrap returns the underlying raised error.
func (e *ExceptionMismatch) Unwrap() error {
	return e.Err
}

// InvariantError reports an inconsistency inside the harness, such as an
// objective whose output size differs from the primal's.
type InvariantError struct {
	Details string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInternalInvariant, e.Details)
}

// Is reports whether target is ErrInternalInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInternalInvariant
}

func formatIndex(index []int) string {
	parts := make([]string, len(index))
	for i, k := range index {
		parts[i] = fmt.Sprint(k)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
