package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/tsuho/hooking"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string
	Name       string
	StartTime  time.Time
	Total      uint64
	Finished   uint64
	InProgress uint64
}

type progressBarState struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (b *ProgressBar) state() progressBarState {
	b.Lock()
	defer b.Unlock()

	return progressBarState{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// ProgressHook advances a progress bar as a run iterates. The bar counts
// iterations and is removed when the run terminates.
type ProgressHook struct {
	monitor *Monitor
	bar     *ProgressBar
}

// NewProgressHook creates a progress bar for a run with the given iteration
// budget.
func (m *Monitor) NewProgressHook(name string, maxIterations int) *ProgressHook {
	return &ProgressHook{
		monitor: m,
		bar:     m.CreateProgressBar(name, uint64(maxIterations)),
	}
}

// Func updates the progress bar.
func (h *ProgressHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosIterationStart:
		h.bar.IncrementInProgress(1)
	case hooking.HookPosIterationEnd:
		h.bar.MoveInProgressToFinished(1)
	case hooking.HookPosTerminated:
		h.monitor.CompleteProgressBar(h.bar)
	}
}
