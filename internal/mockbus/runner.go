package mockbus

import "github.com/tcl125/fredbridge/internal/dro"

// Step is one cadence tick of mock bus traffic: the FC80 command byte that
// was issued, and the FCF0/FCF1 reply the engine produced for it.
type Step struct {
	CmdFC80      byte
	StatusFCF0   byte
	ResponseFCF1 byte
}

// Runner couples an Engine with a cadence index, yielding one Step per
// call to Step(). The cadence index wraps modulo len(dro.Cadence), so over
// any contiguous window of 10*N steps every cadence byte appears exactly N
// times, in order.
type Runner struct {
	engine Engine
	index  int
}

// NewRunner returns a Runner with a fresh Engine at tick 0 and cadence
// index 0.
func NewRunner() *Runner {
	return &Runner{}
}

// Engine exposes the embedded synthesiser, e.g. for tests that want to
// compare a reassembled snapshot against ground truth.
func (r *Runner) Engine() *Engine { return &r.engine }

// Step advances the engine by one tick, reads the next cadence byte, and
// queries the engine for its reply.
func (r *Runner) Step() Step {
	r.engine.StepTelemetry()
	cmd := dro.Cadence[r.index]
	r.index = (r.index + 1) % len(dro.Cadence)
	reply := r.engine.OnCommand(cmd)
	return Step{CmdFC80: cmd, StatusFCF0: reply.StatusFCF0, ResponseFCF1: reply.ResponseFCF1}
}
