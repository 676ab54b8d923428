// Package artifact reads and writes the key-value CSV files that carry timing
// margins between characterization runs.
package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// A Record is one labeled value, such as "Tsu_RA_rise" and its seconds.
type Record struct {
	Key   string
	Value float64
}

// A Table is an ordered list of records.
type Table []Record

// Map returns the records indexed by key. Later records win over earlier ones
// with the same key.
func (t Table) Map() map[string]float64 {
	m := make(map[string]float64, len(t))
	for _, r := range t {
		m[r.Key] = r.Value
	}

	return m
}

// Lookup returns the value of the first record with the key.
func (t Table) Lookup(key string) (float64, bool) {
	for _, r := range t {
		if r.Key == key {
			return r.Value, true
		}
	}

	return 0, false
}

// Read parses "key,value" lines.
func Read(r io.Reader) (Table, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = 2
	rd.TrimLeadingSpace = true

	var t Table
	for {
		row, err := rd.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", row[0], err)
		}

		t = append(t, Record{Key: row[0], Value: v})
	}
}

// ReadFile reads a table from a file.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Write emits the table as "key,value" lines.
func Write(w io.Writer, t Table) error {
	wr := csv.NewWriter(w)
	for _, r := range t {
		err := wr.Write([]string{r.Key, strconv.FormatFloat(r.Value, 'g', -1, 64)})
		if err != nil {
			return err
		}
	}

	wr.Flush()

	return wr.Error()
}

// WriteFile replaces the file with the table. The content is written to a
// temporary file first so that readers never observe a partial table.
func WriteFile(path string, t Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
