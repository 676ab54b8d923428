package waveform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Sample is the value of a signal at one point in time.
type Sample struct {
	Time  float64
	Value float64
}

// A Trace is the chronologically ordered samples of one signal.
type Trace []Sample

// SignalMissingError reports a signal that was requested but never appeared
// in the dump.
type SignalMissingError struct {
	Name string
}

func (e *SignalMissingError) Error() string {
	return fmt.Sprintf("signal %q not found in waveform dump", e.Name)
}

// Waves holds the traces of the signals extracted from a dump.
type Waves struct {
	traces map[string]Trace
	seen   map[string]bool
}

// Trace returns the samples of the named signal.
func (w *Waves) Trace(name string) (Trace, error) {
	if !w.seen[name] {
		return nil, &SignalMissingError{Name: name}
	}

	return w.traces[name], nil
}

// Names returns the signals that were found in the dump.
func (w *Waves) Names() []string {
	names := make([]string, 0, len(w.seen))
	for n := range w.seen {
		names = append(names, n)
	}

	return names
}

const (
	valueMarker = "VALUE"
	endMarker   = "END"
	timeSignal  = "time"
)

// Parse reads a PSF ASCII transient dump. Everything before the VALUE marker
// is skipped. A dump without a VALUE section or without the closing END
// marker is rejected. Each following line holds a quoted signal name and a value; a
// "time" entry sets the time of the values after it. Only the named signals
// are retained.
func Parse(r io.Reader, names []string) (*Waves, error) {
	w := &Waves{
		traces: make(map[string]Trace, len(names)),
		seen:   make(map[string]bool, len(names)),
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNo := 0
	foundValues := false
	for scanner.Scan() {
		lineNo++
		if strings.TrimSpace(scanner.Text()) == valueMarker {
			foundValues = true
			break
		}
	}

	if !foundValues {
		if err := scanner.Err(); err != nil {
			return nil, err
		}

		return nil, fmt.Errorf("no %s section in waveform dump", valueMarker)
	}

	haveTime := false
	time := 0.0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == endMarker {
			return w, nil
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: malformed value %q", lineNo, line)
		}

		name := strings.Trim(fields[0], "\"")
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if name == timeSignal {
			time = value
			haveTime = true
			continue
		}

		if !wanted[name] {
			continue
		}

		if !haveTime {
			return nil, fmt.Errorf("line %d: value of %s precedes any time",
				lineNo, name)
		}

		w.seen[name] = true
		w.traces[name] = append(w.traces[name], Sample{Time: time, Value: value})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("waveform dump truncated after line %d: no %s",
		lineNo, endMarker)
}

// ParseFile reads a PSF ASCII dump from a file.
func ParseFile(path string, names []string) (*Waves, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, names)
}
