package harness

import (
	"strings"

	"github.com/born-ml/adcheck/internal/tensor"
)

// Scenario is one choice of free (differentiated) and fixed arguments.
type Scenario struct {
	Name string // One letter per argument: 'v' free, 'd' fixed (e.g. "vd")
	Free []bool
}

// FreeArgs returns the free arguments in order.
func (s Scenario) FreeArgs(args []tensor.Value) []tensor.Value {
	var out []tensor.Value
	for i, a := range args {
		if s.Free[i] {
			out = append(out, a)
		}
	}
	return out
}

// Scenarios enumerates the non-empty subsets of args as free sets, from all
// free down to only the last argument free. Arguments with no scalar leaves
// (integers, empty containers) are always fixed; subsets that differ only in
// such positions collapse to one scenario, and subsets with nothing left to
// differentiate are dropped.
//
// For two real arguments the scenarios are "vv", "vd" and "dv".
func Scenarios(args []tensor.Value) []Scenario {
	n := len(args)
	seen := make(map[string]bool)
	var out []Scenario

	for mask := (1 << n) - 1; mask > 0; mask-- {
		free := make([]bool, n)
		var name strings.Builder
		hasFree := false
		for i := 0; i < n; i++ {
			bit := mask&(1<<(n-1-i)) != 0
			free[i] = bit && args[i].Size() > 0
			if free[i] {
				hasFree = true
				name.WriteByte('v')
			} else {
				name.WriteByte('d')
			}
		}
		if !hasFree || seen[name.String()] {
			continue
		}
		seen[name.String()] = true
		out = append(out, Scenario{Name: name.String(), Free: free})
	}
	return out
}
