// Package delay extracts the propagation delay of every simulated cycle from
// the probe-point waveforms.
package delay

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/sarchlab/tsuho/stimulus"
	"github.com/sarchlab/tsuho/waveform"
)

// A Slot holds the propagation delay measured in one cycle. Cycles without a
// valid crossing have an empty slot.
type Slot struct {
	Delay float64
	Valid bool
}

// A Point pairs a tested stop with the delay measured for it.
type Point struct {
	Stop  float64
	Delay float64
}

// ProbeResult is the outcome of one simulation round for one probe.
type ProbeResult struct {
	Probe string
	Stops stimulus.Stops
	Rise  []Slot
	Fall  []Slot
}

// Slots returns the per-cycle slots of one edge direction.
func (r ProbeResult) Slots(e stimulus.Edge) []Slot {
	if e == stimulus.Rise {
		return r.Rise
	}

	return r.Fall
}

// Points returns the measured (stop, delay) pairs of one edge direction in
// ascending cycle order. Cycles without a measurement are left out.
func (r ProbeResult) Points(e stimulus.Edge) []Point {
	stops := r.Stops.Of(e)

	var points []Point
	for cycle, s := range r.Slots(e) {
		if !s.Valid {
			continue
		}

		points = append(points, Point{Stop: stops[cycle], Delay: s.Delay})
	}

	return points
}

// CycleRangeError reports a crossing that does not fall into any simulated
// cycle. The schedule and the simulation disagree if this happens.
type CycleRangeError struct {
	Probe     string
	Time      float64
	Cycle     int
	NumCycles int
}

func (e *CycleRangeError) Error() string {
	return fmt.Sprintf(
		"probe %s: crossing at %gs lies in cycle %d, outside [0, %d)",
		e.Probe, e.Time, e.Cycle, e.NumCycles)
}

// Signals returns the names of the signals the analysis of a schedule needs.
func Signals(sched *stimulus.Schedule) []string {
	names := make([]string, 0, 2*len(sched.Probes))
	for _, ps := range sched.Probes {
		names = append(names, ps.Probe.Terminal, ps.Probe.ProbePoint)
	}

	return names
}

// AnalyzeDump parses a PSF ASCII dump and analyzes it.
func AnalyzeDump(
	r io.Reader,
	sched *stimulus.Schedule,
	threshold float64,
) ([]ProbeResult, error) {
	waves, err := waveform.Parse(r, Signals(sched))
	if err != nil {
		return nil, errors.Wrap(err, "parse waveform dump")
	}

	return Analyze(waves, sched, threshold)
}

// Analyze measures the propagation delays of all probes of a schedule.
func Analyze(
	waves *waveform.Waves,
	sched *stimulus.Schedule,
	threshold float64,
) ([]ProbeResult, error) {
	results := make([]ProbeResult, 0, len(sched.Probes))

	for _, ps := range sched.Probes {
		trace, err := waves.Trace(ps.Probe.ProbePoint)
		if err != nil {
			return nil, errors.Wrapf(err, "probe %s", ps.Probe.Name)
		}

		r, err := analyzeProbe(trace, ps, sched.Timing, threshold)
		if err != nil {
			return nil, err
		}

		results = append(results, r)
	}

	return results, nil
}

// analyzeProbe assigns every crossing of the probe point to its cycle. Negative
// delays and rising transitions after the cycle's falling reference edge stem
// from glitches or partial transitions and are dropped. Of the remaining
// crossings the latest one in a cycle is the settled one.
func analyzeProbe(
	trace waveform.Trace,
	ps stimulus.ProbeSchedule,
	timing stimulus.Timing,
	threshold float64,
) (ProbeResult, error) {
	numCycles := timing.NumSteps
	r := ProbeResult{
		Probe: ps.Probe.Name,
		Stops: ps.Stops,
		Rise:  make([]Slot, numCycles),
		Fall:  make([]Slot, numCycles),
	}

	for c := range waveform.Crossings(trace, threshold) {
		cycle := int(math.Floor(c.Time / timing.CycleLength()))
		if cycle < 0 || cycle >= numCycles {
			return ProbeResult{}, &CycleRangeError{
				Probe:     ps.Probe.Name,
				Time:      c.Time,
				Cycle:     cycle,
				NumCycles: numCycles,
			}
		}

		dir := c.Direction
		if ps.Probe.Inverted {
			dir = dir.Flip()
		}

		edge := stimulus.Fall
		if dir == waveform.Rising {
			edge = stimulus.Rise
		}

		tpd := c.Time - ps.Edges.Of(edge)[cycle]
		if tpd < 0 {
			continue
		}

		if edge == stimulus.Rise && c.Time >= ps.Edges.Fall[cycle] {
			continue
		}

		slots := r.Slots(edge)
		if !slots[cycle].Valid || slots[cycle].Delay < tpd {
			slots[cycle] = Slot{Delay: tpd, Valid: true}
		}
	}

	return r, nil
}
