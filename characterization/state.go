package characterization

import (
	"fmt"
)

// State is the lifecycle state of a Controller.
type State int

// The states of a Controller. Converged and Exhausted are terminal.
const (
	Uninitialized State = iota
	Iterating
	Converged
	Exhausted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stage names one step of an iteration.
type Stage string

// The stages of an iteration, in execution order.
const (
	StageSchedule Stage = "schedule"
	StageEmit     Stage = "emit"
	StageSimulate Stage = "simulate"
	StageAnalyze  Stage = "analyze"
	StageRecord   Stage = "record"
)

// StageError reports which stage of which iteration failed.
type StageError struct {
	Stage     Stage
	Iteration int
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("iteration %d: %s failed: %v", e.Iteration, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
