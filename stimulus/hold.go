package stimulus

import "fmt"

// SetupTimes maps setup-time labels such as "Tsu_RA_rise" to the measured
// offset of the stimulus edge relative to the clock edge, in seconds.
type SetupTimes map[string]float64

// Lookup returns the setup time of one probe edge.
func (t SetupTimes) Lookup(probe string, e Edge) (float64, error) {
	key := Key{Probe: probe, Edge: e}.Label("Tsu")

	v, ok := t[key]
	if !ok {
		return 0, fmt.Errorf("setup time %s not found", key)
	}

	return v, nil
}

// HoldStrategy applies the stimulus from the measured setup time up to the
// tested hold stop. A repeating safe pulse restores the latched value in the
// cycle after each test.
type HoldStrategy struct {
	Timing     Timing
	SetupTimes SetupTimes
}

// NewHoldStrategy creates a HoldStrategy that depends on the results of a
// setup characterization.
func NewHoldStrategy(timing Timing, setupTimes SetupTimes) HoldStrategy {
	return HoldStrategy{Timing: timing, SetupTimes: setupTimes}
}

// Figure returns "Tho".
func (s HoldStrategy) Figure() string {
	return "Tho"
}

// Pulses generates the safe pulse followed by the application pulses. A stop
// too close to the setup time leaves no room for a full transition; no pulse
// is generated for it and the cycle yields no measurement.
func (s HoldStrategy) Pulses(probe Probe, stops Stops) ([]Pulse, error) {
	tsuRise, tsuFall, err := s.setupTimesOf(probe)
	if err != nil {
		return nil, err
	}

	start, width := s.Timing.Window(probe)
	period := s.Timing.Period

	pulses := []Pulse{{
		Start:      start + period,
		End:        start + width + period,
		StartClock: start,
		EndClock:   start + width,
		HasClock:   true,
		Repeat:     true,
	}}

	for step := 0; step < s.Timing.NumSteps; step++ {
		ckRise := s.Timing.CycleStart(step) + start
		ckFall := ckRise + width

		if p, ok := s.applicationPulse(
			ckRise+tsuRise, ckRise-stops.Rise[step], false,
		); ok {
			pulses = append(pulses, p)
		}

		if p, ok := s.applicationPulse(
			ckFall+tsuFall, ckFall-stops.Fall[step], true,
		); ok {
			pulses = append(pulses, p)
		}
	}

	return pulses, nil
}

func (s HoldStrategy) applicationPulse(
	start, end float64,
	inverted bool,
) (Pulse, bool) {
	if !(start < end-s.Timing.PinSlew) {
		return Pulse{}, false
	}

	return Pulse{Start: start, End: end, Inverted: inverted}, true
}

// Edges returns the nominal clock edges for clock-relative probes and the
// setup-time edges otherwise. The pulses are not consulted since cycles may
// lack application pulses.
func (s HoldStrategy) Edges(probe Probe, _ []Pulse) (ReferenceEdges, error) {
	start, width := s.Timing.Window(probe)

	var rise, fall float64
	if !probe.RelativeToClock {
		var err error
		rise, fall, err = s.setupTimesOf(probe)
		if err != nil {
			return ReferenceEdges{}, err
		}
	}

	edges := ReferenceEdges{
		Rise: make([]float64, s.Timing.NumSteps),
		Fall: make([]float64, s.Timing.NumSteps),
	}
	for i := 0; i < s.Timing.NumSteps; i++ {
		cycle := s.Timing.CycleStart(i)
		edges.Rise[i] = cycle + start + rise
		edges.Fall[i] = cycle + start + width + fall
	}

	return edges, nil
}

func (s HoldStrategy) setupTimesOf(probe Probe) (rise, fall float64, err error) {
	rise, err = s.SetupTimes.Lookup(probe.Name, Rise)
	if err != nil {
		return 0, 0, err
	}

	fall, err = s.SetupTimes.Lookup(probe.Name, Fall)
	if err != nil {
		return 0, 0, err
	}

	return rise, fall, nil
}
