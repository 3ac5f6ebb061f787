// Package harness drives the AD equivalence check: for every scenario of
// free and fixed arguments and every output coordinate it compares all AD
// modes with finite differences, or, when the primal raises, checks that
// every AD mode raises too.
package harness

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"

	"github.com/born-ml/adcheck/internal/autodiff"
	"github.com/born-ml/adcheck/internal/check"
	"github.com/born-ml/adcheck/internal/finitediff"
	"github.com/born-ml/adcheck/internal/functional"
	"github.com/born-ml/adcheck/internal/serialization"
	"github.com/born-ml/adcheck/internal/tensor"
)

// Config controls a harness run.
type Config struct {
	Tolerances check.Tolerances
	Steps      finitediff.Steps
	Modes      []functional.Mode
	FailFast   bool // Stop after the first failing scenario
	Verbose    bool // Trace scenarios through Logf

	// Logf receives trace output when Verbose is set. When nil, the
	// TestingT's Logf is used if it has one.
	Logf func(format string, args ...any)
}

// DefaultConfig returns the default configuration: every mode, default
// tolerances and step sizes.
func DefaultConfig() Config {
	return Config{
		Tolerances: check.DefaultTolerances,
		Steps:      finitediff.DefaultSteps(),
		Modes:      functional.Modes(),
	}
}

// ScenarioResult summarizes one scenario.
type ScenarioResult struct {
	Name     string
	Outputs  int     // Output size of the primal
	Raised   error   // Primal error, if it raised
	Failures []error // Reported failures, in order
	Skipped  []Skip  // Derivative orders left unchecked
}

// Skip is a derivative order of one output that was not checked because its
// finite differences raised, typically near a domain boundary.
type Skip struct {
	Output int
	Order  int
	Err    error
}

// Report summarizes a Run.
type Report struct {
	Scenarios []ScenarioResult
}

// Failed reports whether any scenario failed.
func (r *Report) Failed() bool {
	for _, s := range r.Scenarios {
		if len(s.Failures) > 0 {
			return true
		}
	}
	return false
}

// Failures returns every reported failure.
func (r *Report) Failures() []error {
	var out []error
	for _, s := range r.Scenarios {
		out = append(out, s.Failures...)
	}
	return out
}

type tHelper interface {
	Helper()
}

type tLogger interface {
	Logf(format string, args ...any)
}

// Run checks f on args under every scenario and reports each failure to t.
func Run(t assert.TestingT, cfg Config, f Func, args ...tensor.Value) *Report {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	r := &runner{t: t, cfg: cfg, f: f, args: args}
	return r.run()
}

type runner struct {
	t    assert.TestingT
	cfg  Config
	f    Func
	args []tensor.Value
}

func (r *runner) run() *Report {
	report := &Report{}
	if len(r.args) == 0 {
		err := &check.InvariantError{Details: "no arguments to differentiate"}
		r.t.Errorf("%v", err)
		report.Scenarios = append(report.Scenarios, ScenarioResult{Failures: []error{err}})
		return report
	}

	scenarios := Scenarios(r.args)
	if len(scenarios) == 0 {
		r.logf("no scenario has a differentiable argument; nothing to check")
	}
	for _, s := range scenarios {
		res := r.scenario(s)
		for _, err := range res.Failures {
			r.t.Errorf("scenario %q: %v\narguments:\n%s", s.Name, err, dump(r.args))
		}
		report.Scenarios = append(report.Scenarios, res)
		if r.cfg.FailFast && len(res.Failures) > 0 {
			break
		}
	}
	return report
}

func (r *runner) scenario(s Scenario) (res ScenarioResult) {
	res.Name = s.Name
	ev := functional.Evaluator{Tapes: &autodiff.Tapes{}}
	defer func() {
		if leaked := ev.Tapes.Live(); leaked != 0 {
			res.Failures = append(res.Failures, &check.InvariantError{
				Details: fmt.Sprintf("%d gradient tapes not released", leaked),
			})
		}
	}()

	x := serialization.SerializeFloat64(s.FreeArgs(r.args)...)

	y, err := functional.Protect(func() (tensor.Value, error) {
		return r.f(r.args...)
	})
	if err != nil {
		res.Raised = err
		r.logf("scenario %s: primal raised (%v); expecting every mode to raise", s.Name, err)
		res.Failures = check.ExpectAllThrowWith(ev, r.cfg.Modes, objective(r.f, s, r.args, 0, -1), x, err)
		return res
	}

	res.Outputs, err = outputSize(y)
	if err != nil {
		res.Failures = append(res.Failures, err)
		return res
	}
	r.logf("scenario %s: %d free scalars, %d outputs", s.Name, len(x), res.Outputs)

	for i := 0; i < res.Outputs; i++ {
		g := objective(r.f, s, r.args, i, res.Outputs)
		ref, skipped, err := r.reference(s, i, g, x)
		if err != nil {
			res.Failures = append(res.Failures, err)
			continue
		}
		res.Skipped = append(res.Skipped, skipped...)
		res.Failures = append(res.Failures, r.output(ev, i, g, x, ref)...)
	}
	return res
}

// output checks one output coordinate under every mode.
func (r *runner) output(ev functional.Evaluator, i int, g functional.Func, x []float64, ref functional.Derivatives) []error {
	var failures []error
	for _, m := range r.cfg.Modes {
		c := check.EvaluateWith(ev, m, g, x)
		if err := check.Compare(c, ref, r.cfg.Tolerances); err != nil {
			failures = append(failures, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return failures
}

// reference computes the finite-difference estimates for output i. Orders
// whose finite differences raise at a perturbed point are left out of the
// reference and returned as skips.
func (r *runner) reference(s Scenario, i int, g functional.Func, x []float64) (functional.Derivatives, []Skip, error) {
	fg := realObjective(g)

	fx, err := fg(x)
	if err != nil {
		var inv *check.InvariantError
		if errors.As(err, &inv) {
			return functional.Derivatives{}, nil, fmt.Errorf("output %d: %w", i, inv)
		}
		return functional.Derivatives{}, nil, fmt.Errorf("output %d: objective raised (%v) but primal did not: %w", i, err, check.ErrInternalInvariant)
	}
	ref := functional.Derivatives{Value: fx}

	var skipped []Skip
	skip := func(from int, err error) {
		for k := from; k <= 3; k++ {
			if r.needsOrder(k) {
				skipped = append(skipped, Skip{Output: i, Order: k, Err: err})
			}
		}
		r.logf("scenario %s output %d: orders %d and up not checked: %v", s.Name, i, from, err)
	}

	if _, grad, hess, err := r.cfg.Steps.Hessian(fg, x); err == nil {
		ref.Gradient, ref.Hessian = grad, hess
	} else if _, grad, gerr := r.cfg.Steps.Gradient(fg, x); gerr == nil {
		ref.Gradient = grad
		skip(2, err)
	} else {
		skip(1, gerr)
	}

	if r.needsOrder(3) && ref.Hessian != nil {
		if _, _, third, err := r.cfg.Steps.GradHessian(fg, x); err == nil {
			ref.GradHessian = third
		} else {
			skip(3, err)
		}
	}
	return ref, skipped, nil
}

func (r *runner) needsOrder(k int) bool {
	for _, m := range r.cfg.Modes {
		if m.MaxOrder() >= k {
			return true
		}
	}
	return false
}

func (r *runner) logf(format string, args ...any) {
	if !r.cfg.Verbose {
		return
	}
	if r.cfg.Logf != nil {
		r.cfg.Logf(format, args...)
		return
	}
	if l, ok := r.t.(tLogger); ok {
		l.Logf(format, args...)
	}
}

// outputSize validates the primal output and returns its size.
func outputSize(y tensor.Value) (n int, err error) {
	_, err = functional.Protect(func() (struct{}, error) {
		n = len(serialization.Serialize(y))
		return struct{}{}, nil
	})
	if err != nil {
		return 0, &check.InvariantError{Details: fmt.Sprintf("unsupported output %T", y)}
	}
	return n, nil
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

func dump(args []tensor.Value) string {
	return dumper.Sdump(args)
}
