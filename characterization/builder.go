package characterization

import (
	"github.com/rs/xid"

	"github.com/sarchlab/tsuho/stimulus"
)

// A Builder can build Controllers.
type Builder struct {
	timing          stimulus.Timing
	strategy        stimulus.Strategy
	probes          []stimulus.Probe
	emitter         Emitter
	simulator       Simulator
	analyzer        Analyzer
	thresholdRatio  float64
	maxIterations   int
	targetPrecision float64
	artifactPath    string
}

// MakeBuilder creates a builder with the default search parameters.
func MakeBuilder() Builder {
	return Builder{
		timing:          stimulus.Timing{Period: 5e-9, NumSteps: 3},
		probes:          stimulus.DefaultProbes(),
		thresholdRatio:  1.05,
		maxIterations:   10,
		targetPrecision: 1e-12,
	}
}

// WithTiming sets the clock period, the number of stops per sweep, and the
// pin transition time.
func (b Builder) WithTiming(t stimulus.Timing) Builder {
	b.timing = t
	return b
}

// WithStrategy sets how stops turn into stimulus pulses.
func (b Builder) WithStrategy(s stimulus.Strategy) Builder {
	b.strategy = s
	return b
}

// WithProbes sets the probes to characterize.
func (b Builder) WithProbes(probes []stimulus.Probe) Builder {
	b.probes = probes
	return b
}

// WithEmitter sets the deck emitter.
func (b Builder) WithEmitter(e Emitter) Builder {
	b.emitter = e
	return b
}

// WithSimulator sets the simulator.
func (b Builder) WithSimulator(s Simulator) Builder {
	b.simulator = s
	return b
}

// WithAnalyzer sets the waveform analyzer.
func (b Builder) WithAnalyzer(a Analyzer) Builder {
	b.analyzer = a
	return b
}

// WithThresholdRatio sets the factor by which a delay may exceed the
// baseline before the stop counts as failing.
func (b Builder) WithThresholdRatio(r float64) Builder {
	b.thresholdRatio = r
	return b
}

// WithMaxIterations sets the iteration budget.
func (b Builder) WithMaxIterations(n int) Builder {
	b.maxIterations = n
	return b
}

// WithTargetPrecision sets the interval width at which the run converges.
func (b Builder) WithTargetPrecision(p float64) Builder {
	b.targetPrecision = p
	return b
}

// WithArtifact sets the file the margins are written to after every
// iteration. Nothing is written if the path is empty.
func (b Builder) WithArtifact(path string) Builder {
	b.artifactPath = path
	return b
}

// Build creates a Controller.
func (b Builder) Build(name string) *Controller {
	b.parametersMustBeValid()

	c := &Controller{
		name: name,
		id:   xid.New().String(),
		scheduler: stimulus.Scheduler{
			Timing:   b.timing,
			Strategy: b.strategy,
		},
		probes:          append([]stimulus.Probe(nil), b.probes...),
		emitter:         b.emitter,
		simulator:       b.simulator,
		analyzer:        b.analyzer,
		thresholdRatio:  b.thresholdRatio,
		maxIterations:   b.maxIterations,
		targetPrecision: b.targetPrecision,
		artifactPath:    b.artifactPath,
		intervals:       make(map[stimulus.Key]*span),
		baseline:        make(map[stimulus.Key]float64),
	}

	for _, p := range c.probes {
		for _, e := range stimulus.Edges {
			c.intervals[stimulus.Key{Probe: p.Name, Edge: e}] = &span{}
		}
	}

	return c
}

func (b Builder) parametersMustBeValid() {
	if b.strategy == nil {
		panic("strategy is not set")
	}

	if b.emitter == nil {
		panic("emitter is not set")
	}

	if b.simulator == nil {
		panic("simulator is not set")
	}

	if b.analyzer == nil {
		panic("analyzer is not set")
	}

	if len(b.probes) == 0 {
		panic("no probes to characterize")
	}

	seen := make(map[string]bool)
	for _, p := range b.probes {
		if seen[p.Name] {
			panic("duplicated probe " + p.Name)
		}
		seen[p.Name] = true
	}

	if b.timing.Period <= 0 {
		panic("clock period must be positive")
	}

	if b.timing.NumSteps < 2 {
		panic("at least two stops per sweep are required")
	}

	if b.thresholdRatio <= 1 {
		panic("threshold ratio must be greater than 1")
	}

	if b.maxIterations <= 0 {
		panic("max iterations must be positive")
	}

	if b.targetPrecision < 0 {
		panic("target precision must not be negative")
	}
}
