// Package stimulus builds the pulse schedules that sweep the stimulus edges of
// each probed signal across a candidate timing window.
package stimulus

// A Probe describes one signal under test. The stimulus is injected at the
// Terminal and the propagation delay is observed at the ProbePoint.
type Probe struct {
	Name       string
	Terminal   string
	ProbePoint string

	// Inverted flips the interpretation of rising and falling transitions
	// observed at the probe point.
	Inverted bool

	// RelativeToClock selects the clock edges, rather than the stimulus edges,
	// as the reference for propagation delays.
	RelativeToClock bool

	// Outer selects the wide pulse template used for enable-type signals.
	Outer bool
}

// DefaultProbes returns the probes of the read/write ports of a memory macro.
// A fresh slice is returned on every call.
func DefaultProbes() []Probe {
	return []Probe{
		{
			Name:       "RE",
			Terminal:   "RE",
			ProbePoint: "X.XRWCKG.X0.n1",
			Inverted:   true,
			Outer:      true,
		},
		{
			Name:            "RA",
			Terminal:        "RA",
			ProbePoint:      "X.nRA0",
			RelativeToClock: true,
		},
		{
			Name:       "WE",
			Terminal:   "WE",
			ProbePoint: "X.XRWCKG.X1.n1",
			Inverted:   true,
			Outer:      true,
		},
		{
			Name:       "WA",
			Terminal:   "WA",
			ProbePoint: "X.XAD.XCKG0.n1",
		},
		{
			Name:            "WD",
			Terminal:        "WD",
			ProbePoint:      "X.nWD0",
			RelativeToClock: true,
		},
	}
}

// FindProbe returns the probe with the given name.
func FindProbe(probes []Probe, name string) (Probe, bool) {
	for _, p := range probes {
		if p.Name == name {
			return p, true
		}
	}

	return Probe{}, false
}
