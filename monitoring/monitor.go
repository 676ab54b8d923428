// Package monitoring serves the state of running characterizations over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/tsuho/characterization"
)

// A Run is a characterization whose state can be inspected.
type Run interface {
	Name() string
	Snapshot() characterization.Snapshot
}

// Monitor turns a characterization into a server that reports its progress.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration

	runsLock sync.Mutex
	runs     []Run

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{profileDuration: time.Second}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterRun registers a run to be monitored.
func (m *Monitor) RegisterRun(r Run) {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	m.runs = append(m.runs, r)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring characterization with %s\n", url)

	go func() {
		err := http.Serve(listener, m.router())
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/runs", m.listRuns)
	r.HandleFunc("/api/run/{name}", m.runDetails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

type runSummary struct {
	Name      string  `json:"name"`
	Figure    string  `json:"figure"`
	State     string  `json:"state"`
	Iteration int     `json:"iteration"`
	Precision float64 `json:"precision"`
}

func (m *Monitor) listRuns(w http.ResponseWriter, _ *http.Request) {
	m.runsLock.Lock()
	summaries := make([]runSummary, 0, len(m.runs))
	for _, r := range m.runs {
		s := r.Snapshot()
		summaries = append(summaries, runSummary{
			Name:      s.Name,
			Figure:    s.Figure,
			State:     s.State,
			Iteration: s.Iteration,
			Precision: s.Precision,
		})
	}
	m.runsLock.Unlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	writeJSON(w, summaries)
}

func (m *Monitor) runDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	run := m.findRunOr404(w, name)
	if run == nil {
		return
	}

	snapshot := run.Snapshot()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&snapshot)
	serializer.SetMaxDepth(4)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findRunOr404(w http.ResponseWriter, name string) Run {
	m.runsLock.Lock()
	defer m.runsLock.Unlock()

	for _, r := range m.runs {
		if r.Name() == name {
			return r
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Run not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressBarState, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.state())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memorySize, err := proc.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
