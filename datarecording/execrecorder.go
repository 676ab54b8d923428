package datarecording

import (
	"os"
	"strings"
	"time"
)

// ExecInfo is one property of the recorded program execution.
type ExecInfo struct {
	Property string
	Value    string
}

// ExecInfoTable is the table that holds ExecInfo entries.
const ExecInfoTable = "exec_info"

const timeLayout = "2006-01-02 15:04:05.000000000"

// Records program execution
type execRecorder struct {
	tablename string
	recorder  DataRecorder
	entries   []ExecInfo
}

// Start log current execution.
func (e *execRecorder) Start() {
	e.entries = append(e.entries,
		ExecInfo{"Start Time", time.Now().Format(timeLayout)},
		ExecInfo{"Command", strings.Join(os.Args, " ")},
	)

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	e.entries = append(e.entries, ExecInfo{"Working Directory", cwd})
}

// End writes data into SQLite along with program exit time.
func (e *execRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(e.tablename, entry)
	}

	e.recorder.InsertData(e.tablename,
		ExecInfo{"End Time", time.Now().Format(timeLayout)})

	e.entries = nil
}

// newExecRecorderWithWriter creates a new ExecRecorder with given writer
func newExecRecorderWithWriter(writer *sqliteWriter) *execRecorder {
	e := &execRecorder{
		tablename: ExecInfoTable,
		recorder:  writer,
	}

	e.recorder.CreateTable(e.tablename, ExecInfo{})

	return e
}
