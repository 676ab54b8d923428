package characterization

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/sarchlab/tsuho/artifact"
	"github.com/sarchlab/tsuho/deck"
	"github.com/sarchlab/tsuho/delay"
	"github.com/sarchlab/tsuho/hooking"
	"github.com/sarchlab/tsuho/stimulus"
)

// Result is the outcome of a finished run. Margins holds the lower bound of
// every probe edge, labeled with the figure of the run.
type Result struct {
	State      State
	Iterations int
	Precision  float64
	Margins    artifact.Table
}

// A Controller owns the search intervals of one characterization and runs
// iterations until the intervals are narrow enough or the iteration budget is
// spent.
//
// A stop is assumed to pass only if all smaller stops of the same sweep pass.
// A sweep stops updating an interval at its first failing stop. Passing stops
// seen after that are reported at HookPosNonMonotonic and otherwise ignored.
type Controller struct {
	hooking.HookableBase

	name string
	id   string

	scheduler stimulus.Scheduler
	probes    []stimulus.Probe
	emitter   Emitter
	simulator Simulator
	analyzer  Analyzer

	thresholdRatio  float64
	maxIterations   int
	targetPrecision float64
	artifactPath    string

	lock         sync.RWMutex
	state        State
	iteration    int
	precision    float64
	hasPrecision bool
	intervals    map[stimulus.Key]*span
	baseline     map[stimulus.Key]float64

	// pending holds hook invocations queued while the lock is held.
	pending []hooking.HookCtx
}

// Name returns the name of the run.
func (c *Controller) Name() string {
	return c.name
}

// ID returns the unique ID of the run.
func (c *Controller) ID() string {
	return c.id
}

// Figure returns the metric characterized by the run, "Tsu" or "Tho".
func (c *Controller) Figure() string {
	return c.scheduler.Strategy.Figure()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.state
}

// Iteration returns the number of completed iterations.
func (c *Controller) Iteration() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.iteration
}

// MaxIterations returns the iteration budget.
func (c *Controller) MaxIterations() int {
	return c.maxIterations
}

// Precision returns the width of the widest interval after the last
// iteration. The second return value is false before the first iteration.
func (c *Controller) Precision() (float64, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.precision, c.hasPrecision
}

// Run iterates until the target precision is reached or the iteration budget
// is exhausted. Any stage failure aborts the run.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	for c.shouldContinue() {
		if err := c.Step(ctx); err != nil {
			return Result{}, err
		}
	}

	c.lock.Lock()
	if c.hasPrecision && c.precision <= c.targetPrecision {
		c.state = Converged
	} else {
		c.state = Exhausted
	}
	res := Result{
		State:      c.state,
		Iterations: c.iteration,
		Precision:  c.precision,
		Margins:    c.margins(),
	}
	c.lock.Unlock()

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    hooking.HookPosTerminated,
		Item: hooking.Termination{
			Figure:     c.Figure(),
			State:      res.State.String(),
			Iterations: res.Iterations,
			Precision:  res.Precision,
		},
	})

	return res, nil
}

func (c *Controller) shouldContinue() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.iteration >= c.maxIterations {
		return false
	}

	return !c.hasPrecision || c.precision > c.targetPrecision
}

// Step runs a single iteration.
func (c *Controller) Step(ctx context.Context) error {
	iteration := c.Iteration()

	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "iteration %d", iteration)
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    hooking.HookPosIterationStart,
		Item:   hooking.IterationStart{Figure: c.Figure(), Iteration: iteration},
	})

	results, sched, err := c.simulate(ctx, iteration)
	if err != nil {
		return err
	}

	c.lock.Lock()
	c.state = Iterating
	if iteration == 0 {
		c.establishBaseline(results)
	}
	c.update(iteration, results)
	c.precision = c.maxWidth(sched.Timing.DefaultInterval())
	c.hasPrecision = true
	precision := c.precision
	margins := c.margins()
	reports := c.reports(sched.Timing.DefaultInterval())
	pending := c.pending
	c.pending = nil
	c.lock.Unlock()

	for _, hookCtx := range pending {
		c.InvokeHook(hookCtx)
	}

	err = c.stage(iteration, StageRecord, func() error {
		return c.record(margins)
	})
	if err != nil {
		return err
	}

	c.lock.Lock()
	c.iteration++
	c.lock.Unlock()

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    hooking.HookPosIterationEnd,
		Item: hooking.IterationEnd{
			Figure:    c.Figure(),
			Iteration: iteration,
			Intervals: reports,
			Precision: precision,
		},
	})

	return nil
}

// simulate runs the schedule, emit, simulate and analyze stages. The first
// iteration sweeps the default intervals including their bounds. Later
// iterations sweep the interior of the current intervals.
func (c *Controller) simulate(
	ctx context.Context,
	iteration int,
) ([]delay.ProbeResult, *stimulus.Schedule, error) {
	var sched *stimulus.Schedule
	err := c.stage(iteration, StageSchedule, func() error {
		var err error
		intervals, inclusive := c.sweepIntervals()
		sched, err = c.scheduler.Build(c.probes, intervals, inclusive)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var d deck.Deck
	err = c.stage(iteration, StageEmit, func() error {
		var err error
		d, err = c.emitter.Emit(sched)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var dumpPath string
	err = c.stage(iteration, StageSimulate, func() error {
		var err error
		dumpPath, err = c.simulator.Simulate(ctx, d)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var results []delay.ProbeResult
	err = c.stage(iteration, StageAnalyze, func() error {
		var err error
		results, err = c.analyzer.Analyze(dumpPath, sched)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return results, sched, nil
}

func (c *Controller) stage(iteration int, s Stage, f func() error) error {
	id := fmt.Sprintf("%s.%d.%s", c.id, iteration, s)

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    hooking.HookPosStageStart,
		Item:   hooking.StageStart{ID: id, Stage: string(s)},
	})

	err := f()

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    hooking.HookPosStageEnd,
		Item:   hooking.StageEnd{ID: id},
	})

	if err != nil {
		return &StageError{Stage: s, Iteration: iteration, Err: err}
	}

	return nil
}

func (c *Controller) sweepIntervals() (map[stimulus.Key]stimulus.Interval, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.iteration == 0 {
		return nil, true
	}

	def := c.scheduler.Timing.DefaultInterval()
	intervals := make(map[stimulus.Key]stimulus.Interval, len(c.intervals))
	for k, s := range c.intervals {
		intervals[k] = s.effective(def)
	}

	return intervals, false
}

// establishBaseline takes the delay of the most relaxed measured stop of every
// probe edge as its reference. Probe edges without any measurement get no
// baseline.
func (c *Controller) establishBaseline(results []delay.ProbeResult) {
	var baselines []hooking.Baseline

	for _, r := range results {
		for _, e := range stimulus.Edges {
			points := r.Points(e)
			if len(points) == 0 {
				continue
			}

			k := stimulus.Key{Probe: r.Probe, Edge: e}
			c.baseline[k] = points[0].Delay
			baselines = append(baselines,
				hooking.Baseline{Key: k, Delay: points[0].Delay})
		}
	}

	c.queueHook(hooking.HookPosBaseline, baselines)
}

func (c *Controller) update(iteration int, results []delay.ProbeResult) {
	for _, r := range results {
		for _, e := range stimulus.Edges {
			k := stimulus.Key{Probe: r.Probe, Edge: e}

			s, known := c.intervals[k]
			base, ok := c.baseline[k]
			if !known || !ok {
				continue
			}

			c.judge(iteration, s, k, r, e, base*c.thresholdRatio)
		}
	}
}

func (c *Controller) judge(
	iteration int,
	s *span,
	k stimulus.Key,
	r delay.ProbeResult,
	e stimulus.Edge,
	limit float64,
) {
	failed := false

	for cycle, slot := range r.Slots(e) {
		if !slot.Valid {
			continue
		}

		o := hooking.Observation{
			Figure:    c.Figure(),
			Iteration: iteration,
			Key:       k,
			Cycle:     cycle,
			Stop:      r.Stops.Of(e)[cycle],
			Delay:     slot.Delay,
			Pass:      slot.Delay < limit,
		}
		c.queueHook(hooking.HookPosObservation, o)

		switch {
		case failed && o.Pass:
			c.queueHook(hooking.HookPosNonMonotonic, o)
		case failed:
		case o.Pass:
			s.raiseLower(o.Stop)
		default:
			s.lowerUpper(o.Stop)
			failed = true
		}
	}
}

func (c *Controller) queueHook(pos *hooking.HookPos, item interface{}) {
	c.pending = append(c.pending, hooking.HookCtx{Domain: c, Pos: pos, Item: item})
}

func (c *Controller) maxWidth(def stimulus.Interval) float64 {
	width := 0.0
	for _, p := range c.probes {
		for _, e := range stimulus.Edges {
			w := c.intervals[stimulus.Key{Probe: p.Name, Edge: e}].width(def)
			if w > width {
				width = w
			}
		}
	}

	return width
}

// margins returns the lower bounds of all probe edges. Open lower bounds are
// reported as the default lower bound.
func (c *Controller) margins() artifact.Table {
	def := c.scheduler.Timing.DefaultInterval()

	table := make(artifact.Table, 0, 2*len(c.probes))
	for _, p := range c.probes {
		for _, e := range stimulus.Edges {
			k := stimulus.Key{Probe: p.Name, Edge: e}
			table = append(table, artifact.Record{
				Key:   k.Label(c.Figure()),
				Value: c.intervals[k].effective(def).Lower,
			})
		}
	}

	return table
}

func (c *Controller) reports(def stimulus.Interval) []hooking.IntervalReport {
	reports := make([]hooking.IntervalReport, 0, 2*len(c.probes))
	for _, p := range c.probes {
		for _, e := range stimulus.Edges {
			k := stimulus.Key{Probe: p.Name, Edge: e}
			s := c.intervals[k]
			intv := s.effective(def)
			reports = append(reports, hooking.IntervalReport{
				Key:       k,
				Lower:     intv.Lower,
				Upper:     intv.Upper,
				LowerOpen: !s.lower.set,
				UpperOpen: !s.upper.set,
			})
		}
	}

	return reports
}

func (c *Controller) record(margins artifact.Table) error {
	if c.artifactPath == "" {
		return nil
	}

	err := artifact.WriteFile(c.artifactPath, margins)

	return errors.Wrapf(err, "write %s", c.artifactPath)
}
