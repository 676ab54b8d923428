package stimulus

import "fmt"

// A Pulse is one window during which a stimulus source drives its terminal.
type Pulse struct {
	Start float64
	End   float64

	// StartClock and EndClock are the clock edges the pulse is tested
	// against. They are only meaningful if HasClock is set.
	StartClock float64
	EndClock   float64
	HasClock   bool

	// Inverted pulses drive the terminal towards the negative supply.
	Inverted bool

	// Repeat marks a pulse that recurs once per cycle.
	Repeat bool
}

// Width returns the duration of the pulse.
func (p Pulse) Width() float64 {
	return p.End - p.Start
}

// Validate checks the ordering of the pulse edges.
func (p Pulse) Validate() error {
	if !(p.Start < p.End) {
		return fmt.Errorf("pulse ends at %g, not after its start %g",
			p.End, p.Start)
	}

	if p.HasClock && !(p.StartClock < p.EndClock) {
		return fmt.Errorf("pulse clock window [%g, %g] is empty",
			p.StartClock, p.EndClock)
	}

	return nil
}
