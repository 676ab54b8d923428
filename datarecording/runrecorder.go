package datarecording

import (
	"context"

	"github.com/sarchlab/tsuho/hooking"
)

// Tables written by a RunRecorder.
const (
	ObservationTable = "observations"
	IntervalTable    = "intervals"
)

// ObservationEntry is one propagation delay judged against the baseline.
type ObservationEntry struct {
	RunID     string
	Figure    string
	Iteration int
	Probe     string
	Edge      string
	Cycle     int
	Stop      float64
	Delay     float64
	Pass      bool
}

// IntervalEntry is the search interval of a probe edge after an iteration.
type IntervalEntry struct {
	RunID     string
	Figure    string
	Iteration int
	Probe     string
	Edge      string
	Lower     float64
	Upper     float64
	LowerOpen bool
	UpperOpen bool
	Precision float64
}

// RunRecorder is a hook that stores the observations and intervals of
// characterization runs.
type RunRecorder struct {
	recorder DataRecorder
	runID    string
}

// NewRunRecorder creates the run tables in the recorder.
func NewRunRecorder(recorder DataRecorder, runID string) *RunRecorder {
	recorder.CreateTable(ObservationTable, ObservationEntry{})
	recorder.CreateTable(IntervalTable, IntervalEntry{})

	return &RunRecorder{recorder: recorder, runID: runID}
}

// Func records observations as they are made and flushes at the end of each
// iteration.
func (r *RunRecorder) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosObservation:
		o := ctx.Item.(hooking.Observation)
		r.recorder.InsertData(ObservationTable, ObservationEntry{
			RunID:     r.runID,
			Figure:    o.Figure,
			Iteration: o.Iteration,
			Probe:     o.Key.Probe,
			Edge:      o.Key.Edge.String(),
			Cycle:     o.Cycle,
			Stop:      o.Stop,
			Delay:     o.Delay,
			Pass:      o.Pass,
		})
	case hooking.HookPosIterationEnd:
		it := ctx.Item.(hooking.IterationEnd)
		for _, intv := range it.Intervals {
			r.recorder.InsertData(IntervalTable, IntervalEntry{
				RunID:     r.runID,
				Figure:    it.Figure,
				Iteration: it.Iteration,
				Probe:     intv.Key.Probe,
				Edge:      intv.Key.Edge.String(),
				Lower:     intv.Lower,
				Upper:     intv.Upper,
				LowerOpen: intv.LowerOpen,
				UpperOpen: intv.UpperOpen,
				Precision: it.Precision,
			})
		}
		r.recorder.Flush()
	}
}

// MapRunTables maps the tables written by RunRecorder and the execution
// information onto the reader.
func MapRunTables(reader DataReader) {
	reader.MapTable(ExecInfoTable, ExecInfo{})
	reader.MapTable(ObservationTable, ObservationEntry{})
	reader.MapTable(IntervalTable, IntervalEntry{})
}

// FinalIntervals returns the intervals of the last iteration of every run and
// figure, ordered by run, figure, probe and edge.
func FinalIntervals(
	ctx context.Context,
	reader DataReader,
) ([]*IntervalEntry, error) {
	results, _, err := reader.Query(ctx, IntervalTable, QueryParams{
		Where: "Iteration = (SELECT MAX(i.Iteration) FROM " + IntervalTable +
			" i WHERE i.RunID = " + IntervalTable + ".RunID AND i.Figure = " +
			IntervalTable + ".Figure)",
		OrderBy: "RunID, Figure, Probe, Edge DESC",
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*IntervalEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(*IntervalEntry))
	}

	return entries, nil
}
