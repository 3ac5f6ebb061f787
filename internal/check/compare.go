package check

import (
	"errors"
	"fmt"

	"github.com/born-ml/adcheck/internal/functional"
)

// Case is the record of one AD evaluation: the artefacts a mode produced for
// a single objective, or the error it raised.
type Case struct {
	Mode functional.Mode
	functional.Derivatives
	Err error
}

// Evaluate runs mode m on f at x and records the outcome.
func Evaluate(m functional.Mode, f functional.Func, x []float64) Case {
	return EvaluateWith(functional.Evaluator{}, m, f, x)
}

// EvaluateWith is like Evaluate but runs the mode through e.
func EvaluateWith(e functional.Evaluator, m functional.Mode, f functional.Func, x []float64) Case {
	d, err := e.Evaluate(m, f, x)
	return Case{Mode: m, Derivatives: d, Err: err}
}

// Compare checks every order the AD case produced against the reference and
// returns the first failing comparison, or nil. Orders missing from either
// side are skipped.
func Compare(ad Case, fd functional.Derivatives, tol Tolerances) error {
	if ad.Err != nil {
		var inv *InvariantError
		if errors.As(ad.Err, &inv) {
			return inv
		}
		return &ExceptionMismatch{Mode: ad.Mode, PrimalRaised: false, Err: ad.Err}
	}

	c := comparer{mode: ad.Mode, tol: tol}
	c.scalar(0, nil, ad.Value, fd.Value)
	if ad.Gradient != nil && fd.Gradient != nil {
		if err := sameLen(len(ad.Gradient), len(fd.Gradient), "gradient"); err != nil {
			return err
		}
		for i := range fd.Gradient {
			c.scalar(1, []int{i}, ad.Gradient[i], fd.Gradient[i])
		}
	}
	if ad.Hessian != nil && fd.Hessian != nil {
		if err := sameLen(len(ad.Hessian), len(fd.Hessian), "Hessian"); err != nil {
			return err
		}
		for i := range fd.Hessian {
			for j := range fd.Hessian[i] {
				c.scalar(2, []int{i, j}, ad.Hessian[i][j], fd.Hessian[i][j])
			}
		}
	}
	if ad.GradHessian != nil && fd.GradHessian != nil {
		if err := sameLen(len(ad.GradHessian), len(fd.GradHessian), "grad-Hessian"); err != nil {
			return err
		}
		for i := range fd.GradHessian {
			for j := range fd.GradHessian[i] {
				for k := range fd.GradHessian[i][j] {
					c.scalar(3, []int{i, j, k}, ad.GradHessian[i][j][k], fd.GradHessian[i][j][k])
				}
			}
		}
	}
	if c.first != nil {
		return c.first
	}
	return nil
}

// comparer keeps the first failing comparison.
type comparer struct {
	mode  functional.Mode
	tol   Tolerances
	first *Mismatch
}

func (c *comparer) scalar(order int, index []int, ad, fd float64) {
	if c.first != nil {
		return
	}
	tol := c.tol.For(order)
	if !tol.Allows(ad, fd) {
		c.first = &Mismatch{Mode: c.mode, Order: order, Index: index, AD: ad, FD: fd, Tol: tol}
	}
}

func sameLen(ad, fd int, what string) error {
	if ad != fd {
		return &InvariantError{Details: fmt.Sprintf("%s has %d entries in AD but %d in finite differences", what, ad, fd)}
	}
	return nil
}
