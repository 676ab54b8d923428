package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tsuho/characterization"
	"github.com/sarchlab/tsuho/hooking"
)

type fakeRun struct {
	snapshot characterization.Snapshot
}

func (r *fakeRun) Name() string {
	return r.snapshot.Name
}

func (r *fakeRun) Snapshot() characterization.Snapshot {
	return r.snapshot
}

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		router http.Handler
	)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		m = NewMonitor()
		m.profileDuration = 10 * time.Millisecond
		router = m.router()

		m.RegisterRun(&fakeRun{snapshot: characterization.Snapshot{
			Name:      "setup",
			Figure:    "Tsu",
			State:     "Iterating",
			Iteration: 2,
			Precision: 1.25e-9,
		}})
		m.RegisterRun(&fakeRun{snapshot: characterization.Snapshot{
			Name:   "hold",
			Figure: "Th",
			State:  "Uninitialized",
		}})
	})

	It("should reject privileged ports", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should list runs by name", func() {
		rec := get("/api/runs")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var runs []runSummary
		Expect(json.Unmarshal(rec.Body.Bytes(), &runs)).To(Succeed())
		Expect(runs).To(HaveLen(2))
		Expect(runs[0].Name).To(Equal("hold"))
		Expect(runs[1].Name).To(Equal("setup"))
		Expect(runs[1].Figure).To(Equal("Tsu"))
		Expect(runs[1].Iteration).To(Equal(2))
		Expect(runs[1].Precision).To(Equal(1.25e-9))
	})

	It("should serialize a single run", func() {
		rec := get("/api/run/setup")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should answer 404 for an unknown run", func() {
		rec := get("/api/run/nothing")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(Equal("Run not found"))
	})

	It("should report resource usage", func() {
		rec := get("/api/resource")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should collect a profile", func() {
		rec := get("/api/profile")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should track progress through hooks", func() {
		h := m.NewProgressHook("setup", 10)

		rec := get("/api/progress")
		var bars []progressBarState
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("setup"))
		Expect(bars[0].Total).To(Equal(uint64(10)))

		h.Func(hooking.HookCtx{Pos: hooking.HookPosIterationStart})
		Expect(h.bar.InProgress).To(Equal(uint64(1)))

		h.Func(hooking.HookCtx{Pos: hooking.HookPosIterationEnd})
		Expect(h.bar.InProgress).To(Equal(uint64(0)))
		Expect(h.bar.Finished).To(Equal(uint64(1)))

		h.Func(hooking.HookCtx{Pos: hooking.HookPosTerminated})

		rec = get("/api/progress")
		bars = nil
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(BeEmpty())
	})
})
