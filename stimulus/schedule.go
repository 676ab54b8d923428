package stimulus

import "fmt"

// A ProbeSchedule is the stimulus of one probe for one simulation round.
type ProbeSchedule struct {
	Probe  Probe
	Stops  Stops
	Pulses []Pulse
	Edges  ReferenceEdges
}

// A Schedule holds the stimuli of all probes simulated together in one round.
type Schedule struct {
	Figure string
	Timing Timing
	Probes []ProbeSchedule
}

// Find returns the schedule of the named probe.
func (s *Schedule) Find(name string) (ProbeSchedule, bool) {
	for _, ps := range s.Probes {
		if ps.Probe.Name == name {
			return ps, true
		}
	}

	return ProbeSchedule{}, false
}

// A Scheduler turns search intervals into stimulus schedules.
type Scheduler struct {
	Timing   Timing
	Strategy Strategy
}

// BuildProbe samples the rise and fall intervals of a probe and generates the
// pulses and reference edges for them.
func (s Scheduler) BuildProbe(
	probe Probe,
	rise, fall Interval,
	inclusive bool,
) (ProbeSchedule, error) {
	for _, intv := range []Interval{rise, fall} {
		if err := intv.Validate(); err != nil {
			return ProbeSchedule{}, fmt.Errorf("probe %s: %w", probe.Name, err)
		}
	}

	ps := ProbeSchedule{
		Probe: probe,
		Stops: Stops{
			Rise: rise.Stops(s.Timing.NumSteps, inclusive),
			Fall: fall.Stops(s.Timing.NumSteps, inclusive),
		},
	}

	pulses, err := s.Strategy.Pulses(probe, ps.Stops)
	if err != nil {
		return ProbeSchedule{}, fmt.Errorf("probe %s: %w", probe.Name, err)
	}
	ps.Pulses = pulses

	edges, err := s.Strategy.Edges(probe, pulses)
	if err != nil {
		return ProbeSchedule{}, fmt.Errorf("probe %s: %w", probe.Name, err)
	}

	if len(edges.Rise) != s.Timing.NumSteps ||
		len(edges.Fall) != s.Timing.NumSteps {
		return ProbeSchedule{}, fmt.Errorf(
			"probe %s: %d rise and %d fall reference edges for %d cycles",
			probe.Name, len(edges.Rise), len(edges.Fall), s.Timing.NumSteps)
	}
	ps.Edges = edges

	return ps, nil
}

// Build generates the schedule of all probes. Intervals missing from the map
// are replaced by the default interval.
func (s Scheduler) Build(
	probes []Probe,
	intervals map[Key]Interval,
	inclusive bool,
) (*Schedule, error) {
	sched := &Schedule{
		Figure: s.Strategy.Figure(),
		Timing: s.Timing,
	}

	for _, p := range probes {
		rise := s.intervalOf(intervals, Key{Probe: p.Name, Edge: Rise})
		fall := s.intervalOf(intervals, Key{Probe: p.Name, Edge: Fall})

		ps, err := s.BuildProbe(p, rise, fall, inclusive)
		if err != nil {
			return nil, err
		}

		sched.Probes = append(sched.Probes, ps)
	}

	return sched, nil
}

func (s Scheduler) intervalOf(intervals map[Key]Interval, k Key) Interval {
	if intv, ok := intervals[k]; ok {
		return intv
	}

	return s.Timing.DefaultInterval()
}
