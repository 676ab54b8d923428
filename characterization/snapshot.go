package characterization

import (
	"sort"

	"github.com/sarchlab/tsuho/hooking"
)

// Snapshot is a consistent view of a run in progress.
type Snapshot struct {
	Name            string
	ID              string
	Figure          string
	State           string
	Iteration       int
	MaxIterations   int
	Precision       float64
	HasPrecision    bool
	TargetPrecision float64
	ThresholdRatio  float64
	Intervals       []hooking.IntervalReport
	Baselines       []hooking.Baseline
}

// Snapshot captures the current state of the run.
func (c *Controller) Snapshot() Snapshot {
	c.lock.RLock()
	defer c.lock.RUnlock()

	s := Snapshot{
		Name:            c.name,
		ID:              c.id,
		Figure:          c.Figure(),
		State:           c.state.String(),
		Iteration:       c.iteration,
		MaxIterations:   c.maxIterations,
		Precision:       c.precision,
		HasPrecision:    c.hasPrecision,
		TargetPrecision: c.targetPrecision,
		ThresholdRatio:  c.thresholdRatio,
		Intervals:       c.reports(c.scheduler.Timing.DefaultInterval()),
	}

	for k, d := range c.baseline {
		s.Baselines = append(s.Baselines, hooking.Baseline{Key: k, Delay: d})
	}
	sort.Slice(s.Baselines, func(i, j int) bool {
		return s.Baselines[i].Key.String() < s.Baselines[j].Key.String()
	})

	return s
}
