package autodiff

import (
	"sync/atomic"

	"github.com/born-ml/adcheck/internal/autodiff/ops"
)

// liveTapes counts tapes that were created and not yet released.
var liveTapes atomic.Int64

// LiveTapes returns the number of tapes created with NewGradientTape that have
// not been released, process-wide. Use Tapes to count the tapes of one caller.
func LiveTapes() int64 {
	return liveTapes.Load()
}

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic differentiation.
//
// A tape is single-threaded. Acquire it, defer Release, evaluate, read gradients:
//
//	tape := NewGradientTape()
//	defer tape.Release()
//	x := tape.Variable(2)
//	y := x.Mul(x)
//	grad := tape.Gradient(y, x) // [4]
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	released   bool
	owner      *Tapes
}

// Tapes hands out gradient tapes and counts the ones not yet released, so a
// caller can check its own evaluations for leaks while other goroutines use
// tapes too. A nil *Tapes hands out untracked tapes. It is safe for
// concurrent use.
type Tapes struct {
	live atomic.Int64
}

// New creates a gradient tape tracked by p.
func (p *Tapes) New() *GradientTape {
	t := NewGradientTape()
	if p != nil {
		t.owner = p
		p.live.Add(1)
	}
	return t
}

// Live returns the number of tapes from p that have not been released.
func (p *Tapes) Live() int64 {
	if p == nil {
		return 0
	}
	return p.live.Load()
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	liveTapes.Add(1)
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64), // Pre-allocate for common case
	}
}

// Variable records an independent variable with primal value x.
func (t *GradientTape) Variable(x float64) Var {
	return t.record(ops.NewLeafOp(), x)
}

// Variables records one independent variable per element of xs.
func (t *GradientTape) Variables(xs []float64) []Var {
	vars := make([]Var, len(xs))
	for i, x := range xs {
		vars[i] = t.Variable(x)
	}
	return vars
}

// Constant returns a Var bound to this tape that carries no derivative.
func (t *GradientTape) Constant(x float64) Var {
	return Var{tape: t, index: ops.NoInput, val: x}
}

// record appends op and returns the Var for its output.
func (t *GradientTape) record(op ops.Operation, val float64) Var {
	if t.released {
		panic("autodiff: tape used after Release")
	}
	t.operations = append(t.operations, op)
	return Var{tape: t, index: len(t.operations) - 1, val: val}
}

// Backward computes the adjoint of every recorded node with respect to y by
// walking the tape in reverse.
//
// Algorithm:
//  1. Seed the adjoint of y with 1
//  2. Walk operations in reverse order, starting at y
//  3. For each operation, push adjoint contributions to its inputs (chain rule)
//  4. Contributions accumulate when a node is used multiple times
//
// The tape is left intact, so Backward may run several times for different
// outputs recorded on the same tape.
func (t *GradientTape) Backward(y Var) []float64 {
	adj := make([]float64, len(t.operations))
	if y.index < 0 || y.tape != t {
		return adj
	}
	adj[y.index] = 1

	for i := y.index; i >= 0; i-- {
		if adj[i] == 0 {
			continue
		}
		op := t.operations[i]
		grads := op.Backward(adj[i])
		for j, input := range op.Inputs() {
			if input == ops.NoInput || j >= len(grads) {
				continue
			}
			adj[input] += grads[j]
		}
	}
	return adj
}

// Gradient returns dy/dx for each x, in order.
func (t *GradientTape) Gradient(y Var, xs ...Var) []float64 {
	adj := t.Backward(y)
	grad := make([]float64, len(xs))
	for i, x := range xs {
		if x.index >= 0 && x.tape == t {
			grad[i] = adj[x.index]
		}
	}
	return grad
}

// Clear resets the tape, removing all recorded operations.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// Release frees the recorded operations and marks the tape as no longer live.
// Further recording panics. Release is idempotent.
func (t *GradientTape) Release() {
	if t.released {
		return
	}
	t.released = true
	t.operations = nil
	liveTapes.Add(-1)
	if t.owner != nil {
		t.owner.live.Add(-1)
	}
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}
