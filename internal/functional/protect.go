package functional

import (
	"fmt"

	"github.com/born-ml/adcheck/internal/autodiff"
)

// RaisedError wraps a panic recovered from a function under test.
type RaisedError struct {
	Value any // The recovered panic value
}

// Error implements the error interface.
func (e *RaisedError) Error() string {
	return fmt.Sprintf("raised: %v", e.Value)
}

// Unwrap returns the panic value when it is an error, so errors.Is and
// errors.As see through the wrapper.
func (e *RaisedError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Protect runs fn, converting a panic into a *RaisedError.
func Protect[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result, err = zero, &RaisedError{Value: r}
		}
	}()
	return fn()
}

// call evaluates f on xs under Protect.
func call(f Func, xs []autodiff.Scalar) (autodiff.Scalar, error) {
	return Protect(func() (autodiff.Scalar, error) {
		return f(xs)
	})
}
