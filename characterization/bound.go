package characterization

import "github.com/sarchlab/tsuho/stimulus"

// bound is an interval bound that may not have been observed yet.
type bound struct {
	value float64
	set   bool
}

// span is the search interval of one probe edge. Open bounds fall back to the
// default interval.
type span struct {
	lower bound
	upper bound
}

// raiseLower moves the lower bound up to v if v is above it.
func (s *span) raiseLower(v float64) {
	if !s.lower.set || s.lower.value < v {
		s.lower = bound{value: v, set: true}
	}
}

// lowerUpper moves the upper bound down to v if v is below it.
func (s *span) lowerUpper(v float64) {
	if !s.upper.set || s.upper.value > v {
		s.upper = bound{value: v, set: true}
	}
}

// effective substitutes the default bounds for open ones.
func (s span) effective(def stimulus.Interval) stimulus.Interval {
	intv := def
	if s.lower.set {
		intv.Lower = s.lower.value
	}
	if s.upper.set {
		intv.Upper = s.upper.value
	}

	return intv
}

// width is the extent of the interval. As long as a bound is open, nothing
// has been learned and the default width applies.
func (s span) width(def stimulus.Interval) float64 {
	if !s.lower.set || !s.upper.set {
		return def.Width()
	}

	return s.upper.value - s.lower.value
}
