// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package adtest checks automatic differentiation against finite
// differences from ordinary Go tests.
//
// A function under test is written once against autodiff.Scalar. ExpectAD
// evaluates it under every combination of differentiated and fixed
// arguments and under every AD mode, and compares values, gradients,
// Hessians and gradients of Hessians with finite-difference estimates. When
// the function raises (returns an error or panics) on the given arguments,
// every AD mode must raise as well.
//
// Example:
//
//	func TestProduct(t *testing.T) {
//	    mul := func(args ...tensor.Value) (tensor.Value, error) {
//	        x := args[0].(autodiff.Scalar)
//	        y := args[1].(autodiff.Scalar)
//	        return x.Mul(y), nil
//	    }
//	    adtest.ExpectAD(t, mul, tensor.Float(2), tensor.Float(3))
//	}
package adtest

import (
	"github.com/stretchr/testify/assert"

	"github.com/born-ml/adcheck/internal/harness"
	"github.com/born-ml/adcheck/tensor"
)

// Func is a function under test. Raising is signalled by a non-nil error or
// a panic.
type Func = harness.Func

// Config controls tolerances, finite-difference steps, the modes checked
// and logging.
type Config = harness.Config

// Report summarizes a check.
type Report = harness.Report

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return harness.DefaultConfig()
}

// ExpectAD checks f at args under the default configuration. Each failure
// is reported through t.Errorf and the check continues. It returns true
// when nothing failed.
func ExpectAD(t assert.TestingT, f Func, args ...tensor.Value) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return !ExpectADWithConfig(t, DefaultConfig(), f, args...).Failed()
}

// ExpectADWithConfig is like ExpectAD with an explicit configuration and
// returns the full report.
func ExpectADWithConfig(t assert.TestingT, cfg Config, f Func, args ...tensor.Value) *Report {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return harness.Run(t, cfg, f, args...)
}
