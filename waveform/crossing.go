// Package waveform reads simulated waveforms and locates the times at which
// they cross a voltage threshold.
package waveform

import "iter"

// Direction tells whether a crossing goes up or down.
type Direction int

// The directions of a crossing.
const (
	Falling Direction = -1
	Rising  Direction = 1
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	return -d
}

func (d Direction) String() string {
	if d == Rising {
		return "rising"
	}

	return "falling"
}

// A Crossing is the interpolated time at which a trace passes a threshold.
type Crossing struct {
	Time      float64
	Direction Direction
}

func lerp(v, a, b, x, y float64) float64 {
	f := (v - a) / (b - a)
	return x*(1-f) + y*f
}

// Crossings yields the threshold crossings of a trace in chronological order.
// A sample exactly at the threshold counts as being above it. The sequence
// holds no state between iterations and can be ranged over repeatedly.
func Crossings(points Trace, threshold float64) iter.Seq[Crossing] {
	return func(yield func(Crossing) bool) {
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]

			var c Crossing
			switch {
			case a.Value < threshold && b.Value >= threshold:
				c = Crossing{
					Time:      lerp(threshold, a.Value, b.Value, a.Time, b.Time),
					Direction: Rising,
				}
			case b.Value < threshold && a.Value >= threshold:
				c = Crossing{
					Time:      lerp(threshold, b.Value, a.Value, b.Time, a.Time),
					Direction: Falling,
				}
			default:
				continue
			}

			if !yield(c) {
				return
			}
		}
	}
}
