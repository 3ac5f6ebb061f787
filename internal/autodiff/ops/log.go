package ops

// LogOp represents natural logarithm.
//
// Forward:
//
//	output = log(input)
//
// Backward:
//
//	∂L/∂input = ∂L/∂output * (1 / input)
type LogOp struct {
	unaryOp
}

// NewLogOp creates a new log operation. Callers reject negative inputs before
// recording; at zero the partial is +Inf, matching log's pole.
func NewLogOp(input int, x float64) *LogOp {
	return &LogOp{unaryOp{input: input, partial: 1 / x}}
}
