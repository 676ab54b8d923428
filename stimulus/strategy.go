package stimulus

// Stops holds the offsets tested for the rising and falling edge of a probe,
// one per cycle.
type Stops struct {
	Rise []float64
	Fall []float64
}

// Of returns the stops of one edge direction.
func (s Stops) Of(e Edge) []float64 {
	if e == Rise {
		return s.Rise
	}

	return s.Fall
}

// ReferenceEdges holds, for every cycle, the time from which the propagation
// delay of a rising or falling transition is measured.
type ReferenceEdges struct {
	Rise []float64
	Fall []float64
}

// Of returns the reference edges of one edge direction.
func (r ReferenceEdges) Of(e Edge) []float64 {
	if e == Rise {
		return r.Rise
	}

	return r.Fall
}

// A Strategy decides how the stops of a probe turn into stimulus pulses and
// which edges serve as the propagation delay reference.
type Strategy interface {
	// Figure returns the metric label of the characterized quantity.
	Figure() string

	// Pulses generates the pulses applied to the probe's terminal.
	Pulses(probe Probe, stops Stops) ([]Pulse, error)

	// Edges returns the reference edges of the probe, given the pulses that
	// Pulses generated for it.
	Edges(probe Probe, pulses []Pulse) (ReferenceEdges, error)
}
