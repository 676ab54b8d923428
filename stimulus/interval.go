package stimulus

import "fmt"

// An Interval is a candidate range of timing offsets, in seconds.
type Interval struct {
	Lower float64
	Upper float64
}

// Width returns the extent of the interval.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Validate checks that the lower bound does not exceed the upper bound.
func (i Interval) Validate() error {
	if i.Lower > i.Upper {
		return fmt.Errorf("interval [%g, %g] has lower bound above upper bound",
			i.Lower, i.Upper)
	}

	return nil
}

// Exclusive shrinks the interval by one step at each end so that the stops
// sampled from it do not repeat its bounds.
func (i Interval) Exclusive(numSteps int) Interval {
	shrink := i.Width() / float64(numSteps+1)

	return Interval{Lower: i.Lower + shrink, Upper: i.Upper - shrink}
}

// Stops samples numSteps evenly spaced offsets from the interval. In inclusive
// mode the first and last stops equal the bounds.
func (i Interval) Stops(numSteps int, inclusive bool) []float64 {
	if numSteps < 2 {
		panic("at least two stops are required")
	}

	if !inclusive {
		i = i.Exclusive(numSteps)
	}

	step := i.Width() / float64(numSteps-1)
	stops := make([]float64, numSteps)
	for n := range stops {
		stops[n] = i.Lower + float64(n)*step
	}
	stops[numSteps-1] = i.Upper

	return stops
}
