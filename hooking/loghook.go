package hooking

import (
	"log"

	"github.com/sarchlab/tsuho/stimulus"
)

// LogHookBase provides the common logic for all LogHooks.
type LogHookBase struct {
	*log.Logger
}

// ProgressLogger prints the progress of a characterization run.
type ProgressLogger struct {
	LogHookBase
}

// NewProgressLogger creates a ProgressLogger that writes to the logger.
func NewProgressLogger(logger *log.Logger) *ProgressLogger {
	return &ProgressLogger{LogHookBase: LogHookBase{Logger: logger}}
}

// Func prints the item of the hook context.
func (h *ProgressLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosBaseline:
		h.logBaseline(ctx.Item.([]Baseline))
	case HookPosIterationEnd:
		h.logIteration(ctx.Item.(IterationEnd))
	case HookPosNonMonotonic:
		h.logNonMonotonic(ctx.Item.(Observation))
	case HookPosTerminated:
		t := ctx.Item.(Termination)
		h.Printf("Finished after %d iterations (%s), precision = %.4gps",
			t.Iterations, t.State, ps(t.Precision))
	}
}

func (h *ProgressLogger) logBaseline(baselines []Baseline) {
	h.Printf("Baseline Tpd:")
	for _, b := range baselines {
		h.Printf("  %s: %.4gps", b.Key.Label("Tpd"), ps(b.Delay))
	}
}

func (h *ProgressLogger) logIteration(it IterationEnd) {
	h.Printf("Iteration %d:", it.Iteration)

	for _, probe := range probesOf(it.Intervals) {
		rise, _ := find(it.Intervals, stimulus.Key{Probe: probe, Edge: stimulus.Rise})
		fall, _ := find(it.Intervals, stimulus.Key{Probe: probe, Edge: stimulus.Fall})
		h.Printf("  %s: %s rise = %.4gps ±%.4gps, fall = %.4gps ±%.4gps",
			probe, it.Figure,
			ps(rise.Mid()), ps(rise.HalfWidth()),
			ps(fall.Mid()), ps(fall.HalfWidth()))
	}

	h.Printf("  precision = %.4gps", ps(it.Precision))
}

func (h *ProgressLogger) logNonMonotonic(o Observation) {
	h.Printf("warning: %s passes at %.4gps after an earlier failure "+
		"in iteration %d (Tpd = %.4gps)",
		o.Key, ps(o.Stop), o.Iteration, ps(o.Delay))
}

func ps(seconds float64) float64 {
	return seconds * 1e12
}

func probesOf(reports []IntervalReport) []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range reports {
		if !seen[r.Key.Probe] {
			seen[r.Key.Probe] = true
			names = append(names, r.Key.Probe)
		}
	}

	return names
}

func find(reports []IntervalReport, key stimulus.Key) (IntervalReport, bool) {
	for _, r := range reports {
		if r.Key == key {
			return r, true
		}
	}

	return IntervalReport{}, false
}
