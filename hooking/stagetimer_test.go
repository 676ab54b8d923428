package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubTimeTeller struct {
	now float64
}

func (t *stubTimeTeller) Now() float64 {
	return t.now
}

var _ = Describe("StageTimer", func() {
	var (
		timeTeller *stubTimeTeller
		t          *StageTimer
	)

	BeforeEach(func() {
		timeTeller = &stubTimeTeller{}
		t = NewStageTimer(timeTeller)
	})

	It("should accumulate time per stage", func() {
		timeTeller.now = 1
		t.Func(HookCtx{Pos: HookPosStageStart,
			Item: StageStart{ID: "0.simulate", Stage: "simulate"}})
		timeTeller.now = 4
		t.Func(HookCtx{Pos: HookPosStageEnd, Item: StageEnd{ID: "0.simulate"}})

		timeTeller.now = 5
		t.StartStage(StageStart{ID: "1.simulate", Stage: "simulate"})
		timeTeller.now = 6
		t.EndStage(StageEnd{ID: "1.simulate"})

		Expect(t.TotalTime("simulate")).To(Equal(4.0))
		Expect(t.AverageTime("simulate")).To(Equal(2.0))
		Expect(t.Count("simulate")).To(Equal(uint64(2)))
	})

	It("should ignore unknown stage ends", func() {
		t.EndStage(StageEnd{ID: "nope"})

		Expect(t.Count("analyze")).To(BeZero())
		Expect(t.AverageTime("analyze")).To(BeZero())
	})

	It("should tell wall clock time", func() {
		c := NewWallClock()

		Expect(c.Now()).To(BeNumerically(">=", 0))
	})
})
