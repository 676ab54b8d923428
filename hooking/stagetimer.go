package hooking

import (
	"sync"
	"time"
)

// TimeTeller can tell the current time in seconds.
type TimeTeller interface {
	Now() float64
}

type wallClock struct {
	origin time.Time
}

// NewWallClock returns a TimeTeller that counts seconds since its creation.
func NewWallClock() TimeTeller {
	return wallClock{origin: time.Now()}
}

func (c wallClock) Now() float64 {
	return time.Since(c.origin).Seconds()
}

type stage struct {
	name  string
	start float64
}

// StageTimer collects the total and average time spent in each stage of an
// iteration, such as simulate or analyze.
type StageTimer struct {
	timeTeller TimeTeller

	lock     sync.Mutex
	inflight map[string]stage
	total    map[string]float64
	count    map[string]uint64
}

// NewStageTimer creates a new StageTimer.
func NewStageTimer(timeTeller TimeTeller) *StageTimer {
	return &StageTimer{
		timeTeller: timeTeller,
		inflight:   make(map[string]stage),
		total:      make(map[string]float64),
		count:      make(map[string]uint64),
	}
}

// Func records the start and end of stages.
func (t *StageTimer) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosStageStart:
		t.StartStage(ctx.Item.(StageStart))
	case HookPosStageEnd:
		t.EndStage(ctx.Item.(StageEnd))
	}
}

// StartStage records the stage start time.
func (t *StageTimer) StartStage(s StageStart) {
	now := t.timeTeller.Now()

	t.lock.Lock()
	t.inflight[s.ID] = stage{name: s.Stage, start: now}
	t.lock.Unlock()
}

// EndStage records the end of the stage. Unknown IDs are ignored.
func (t *StageTimer) EndStage(s StageEnd) {
	now := t.timeTeller.Now()

	t.lock.Lock()
	defer t.lock.Unlock()

	st, ok := t.inflight[s.ID]
	if !ok {
		return
	}

	t.total[st.name] += now - st.start
	t.count[st.name]++

	delete(t.inflight, s.ID)
}

// TotalTime returns the time spent in all completed instances of a stage.
func (t *StageTimer) TotalTime(name string) float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.total[name]
}

// AverageTime returns the mean duration of a stage. It is zero if the stage
// never completed.
func (t *StageTimer) AverageTime(name string) float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.count[name] == 0 {
		return 0
	}

	return t.total[name] / float64(t.count[name])
}

// Count returns how many times a stage completed.
func (t *StageTimer) Count(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.count[name]
}
