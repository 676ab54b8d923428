package stimulus

// SetupStrategy moves the leading and trailing stimulus edges of every cycle
// relative to the clock edges they are latched by.
type SetupStrategy struct {
	Timing Timing
}

// Figure returns "Tsu".
func (s SetupStrategy) Figure() string {
	return "Tsu"
}

// Pulses generates one pulse per cycle. The pulse rises at the tested rise
// stop relative to the critical clock edge and falls at the tested fall stop
// relative to the end of the nominal window.
func (s SetupStrategy) Pulses(probe Probe, stops Stops) ([]Pulse, error) {
	start, width := s.Timing.Window(probe)

	pulses := make([]Pulse, 0, s.Timing.NumSteps)
	for step := 0; step < s.Timing.NumSteps; step++ {
		rise := stops.Rise[step]
		fall := stops.Fall[step]
		ck := s.Timing.CycleStart(step) + start

		p := Pulse{
			Start:      ck + rise,
			End:        ck + width + fall,
			StartClock: ck,
			EndClock:   ck + width,
			HasClock:   true,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}

		pulses = append(pulses, p)
	}

	return pulses, nil
}

// Edges returns the clock edges for clock-relative probes and the pulse edges
// otherwise.
func (s SetupStrategy) Edges(
	probe Probe,
	pulses []Pulse,
) (ReferenceEdges, error) {
	edges := ReferenceEdges{
		Rise: make([]float64, 0, len(pulses)),
		Fall: make([]float64, 0, len(pulses)),
	}

	for _, p := range pulses {
		if probe.RelativeToClock {
			edges.Rise = append(edges.Rise, p.StartClock)
			edges.Fall = append(edges.Fall, p.EndClock)
		} else {
			edges.Rise = append(edges.Rise, p.Start)
			edges.Fall = append(edges.Fall, p.End)
		}
	}

	return edges, nil
}
