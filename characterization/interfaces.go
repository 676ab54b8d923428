// Package characterization drives the schedule, simulate, analyze loop that
// narrows the setup and hold margins of every probe down to a target
// precision.
package characterization

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/sarchlab/tsuho/deck"
	"github.com/sarchlab/tsuho/delay"
	"github.com/sarchlab/tsuho/stimulus"
)

// An Emitter renders a stimulus schedule into simulator input.
type Emitter interface {
	Emit(sched *stimulus.Schedule) (deck.Deck, error)
}

// A Simulator runs a deck and returns the path of the waveform dump. The call
// blocks until the simulation completes.
type Simulator interface {
	Simulate(ctx context.Context, d deck.Deck) (string, error)
}

// An Analyzer extracts the propagation delays of a schedule from a waveform
// dump.
type Analyzer interface {
	Analyze(dumpPath string, sched *stimulus.Schedule) ([]delay.ProbeResult, error)
}

// DumpAnalyzer reads PSF ASCII dumps and detects transitions at a fixed
// voltage threshold.
type DumpAnalyzer struct {
	Threshold float64
}

// Analyze parses the dump file and measures the delays.
func (a DumpAnalyzer) Analyze(
	dumpPath string,
	sched *stimulus.Schedule,
) ([]delay.ProbeResult, error) {
	f, err := os.Open(dumpPath)
	if err != nil {
		return nil, errors.Wrap(err, "open waveform dump")
	}
	defer f.Close()

	return delay.AnalyzeDump(f, sched, a.Threshold)
}
