package hooking

import "github.com/sarchlab/tsuho/stimulus"

// Positions invoked by a characterization run.
var (
	// HookPosIterationStart is invoked before the schedule of an iteration is
	// built. The item is an IterationStart.
	HookPosIterationStart = &HookPos{Name: "IterationStart"}

	// HookPosBaseline is invoked once the baseline delays are established.
	// The item is a []Baseline.
	HookPosBaseline = &HookPos{Name: "Baseline"}

	// HookPosObservation is invoked for every delay judged against the
	// baseline. The item is an Observation.
	HookPosObservation = &HookPos{Name: "Observation"}

	// HookPosNonMonotonic is invoked when a stop passes after an earlier stop
	// of the same sweep has failed. The item is an Observation.
	HookPosNonMonotonic = &HookPos{Name: "NonMonotonic"}

	// HookPosIterationEnd is invoked after the intervals of an iteration are
	// updated. The item is an IterationEnd.
	HookPosIterationEnd = &HookPos{Name: "IterationEnd"}

	// HookPosTerminated is invoked when a run stops iterating. The item is a
	// Termination.
	HookPosTerminated = &HookPos{Name: "Terminated"}

	// HookPosStageStart is invoked when a stage of an iteration begins. The
	// item is a StageStart.
	HookPosStageStart = &HookPos{Name: "StageStart"}

	// HookPosStageEnd is invoked when a stage of an iteration ends. The item
	// is a StageEnd.
	HookPosStageEnd = &HookPos{Name: "StageEnd"}
)

// IterationStart announces a new iteration.
type IterationStart struct {
	Figure    string
	Iteration int
}

// Baseline is the reference delay of one probe edge.
type Baseline struct {
	Key   stimulus.Key
	Delay float64
}

// Observation is one delay measured at one stop.
type Observation struct {
	Figure    string
	Iteration int
	Key       stimulus.Key
	Cycle     int
	Stop      float64
	Delay     float64
	Pass      bool
}

// IntervalReport is the search interval of one probe edge after an
// iteration. An open bound has not been constrained by any observation.
type IntervalReport struct {
	Key       stimulus.Key
	Lower     float64
	Upper     float64
	LowerOpen bool
	UpperOpen bool
}

// Mid returns the center of the interval.
func (r IntervalReport) Mid() float64 {
	return (r.Lower + r.Upper) / 2
}

// HalfWidth returns half of the interval width.
func (r IntervalReport) HalfWidth() float64 {
	return (r.Upper - r.Lower) / 2
}

// IterationEnd summarizes a finished iteration.
type IterationEnd struct {
	Figure    string
	Iteration int
	Intervals []IntervalReport
	Precision float64
}

// Termination reports how a run ended.
type Termination struct {
	Figure     string
	State      string
	Iterations int
	Precision  float64
}

// StageStart marks the beginning of a stage.
type StageStart struct {
	ID    string
	Stage string
}

// StageEnd marks the end of a stage.
type StageEnd struct {
	ID string
}
