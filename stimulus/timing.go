package stimulus

const (
	cycleInPeriods = 14

	innerStartInPeriods = 3
	innerWidthInPeriods = 4
	outerStartInPeriods = 1
	outerWidthInPeriods = 10
)

// Timing holds the time base shared by all the probes of one simulation.
type Timing struct {
	// Period is the clock period T.
	Period float64

	// NumSteps is the number of cycles simulated, one per stop.
	NumSteps int

	// PinSlew is the transition time of the stimulus edges.
	PinSlew float64
}

// CycleLength returns the time allotted to the test of one stop.
func (t Timing) CycleLength() float64 {
	return cycleInPeriods * t.Period
}

// CycleStart returns the time at which the given cycle begins.
func (t Timing) CycleStart(cycle int) float64 {
	return float64(cycle) * t.CycleLength()
}

// SimulationTime returns the transient stop time needed to cover all cycles.
func (t Timing) SimulationTime() float64 {
	return float64(t.NumSteps)*t.CycleLength() + t.Period
}

// Window returns the nominal offset of the critical clock edge within a cycle
// and the nominal width of the stimulus pulse for the probe.
func (t Timing) Window(p Probe) (start, width float64) {
	if p.Outer {
		return outerStartInPeriods * t.Period, outerWidthInPeriods * t.Period
	}

	return innerStartInPeriods * t.Period, innerWidthInPeriods * t.Period
}

// DefaultInterval returns the interval searched before anything is known, one
// clock half-period on either side of the edge.
func (t Timing) DefaultInterval() Interval {
	return Interval{Lower: -t.Period / 2, Upper: t.Period / 2}
}
