package autodiff

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every *DomainError through errors.Is.
var ErrDomain = errors.New("argument outside function domain")

// DomainError reports an elementary function evaluated outside its domain.
// Scalar methods panic with a *DomainError; the harness recovers it as a
// raised condition of the function under test.
type DomainError struct {
	Func string  // Function name (e.g., "log")
	Arg  float64 // Offending primal argument
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: argument %g outside function domain", e.Func, e.Arg)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func checkNonNegative(fn string, x float64) {
	if x < 0 {
		panic(&DomainError{Func: fn, Arg: x})
	}
}
