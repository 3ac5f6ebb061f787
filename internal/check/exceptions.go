package check

import (
	"errors"

	"github.com/born-ml/adcheck/internal/functional"
)

// ExpectAllThrow runs every mode on f at x after the primal raised primalErr
// and returns one *ExceptionMismatch per mode that did not raise. Only the
// occurrence of an error is compared, never its kind. An *InvariantError
// raised by a mode is returned as is.
func ExpectAllThrow(modes []functional.Mode, f functional.Func, x []float64, primalErr error) []error {
	return ExpectAllThrowWith(functional.Evaluator{}, modes, f, x, primalErr)
}

// ExpectAllThrowWith is like ExpectAllThrow but runs the modes through e.
func ExpectAllThrowWith(e functional.Evaluator, modes []functional.Mode, f functional.Func, x []float64, primalErr error) []error {
	var errs []error
	for _, m := range modes {
		c := EvaluateWith(e, m, f, x)
		var inv *InvariantError
		switch {
		case errors.As(c.Err, &inv):
			errs = append(errs, inv)
		case c.Err == nil:
			errs = append(errs, &ExceptionMismatch{Mode: m, PrimalRaised: true, Err: primalErr})
		}
	}
	return errs
}
