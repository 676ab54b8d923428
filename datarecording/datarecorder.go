// Package datarecording stores the observations of characterization runs in
// an SQLite database.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table with given filename
	CreateTable(tableName string, sampleEntry any)

	// InsertData writes a same-type entry into table that already exists
	InsertData(tableName string, entry any)

	// ListTables returns a slice containing names of all tables
	ListTables() []string

	// Flush flushes all the buffered entries into database
	Flush()

	// Close records the end of the execution, flushes, and closes the
	// database.
	Close()
}

// NewDataRecorder creates a DataRecorder that writes to <path>.sqlite3. A
// random name is used if path is empty. The execution information is
// recorded in the exec_info table.
func NewDataRecorder(path string) DataRecorder {
	w := &sqliteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	w.Init()

	w.exec = newExecRecorderWithWriter(w)
	w.exec.Start()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewDataRecorderWithDB creates a new DataRecorder with a given database.
func NewDataRecorderWithDB(db *sql.DB) DataRecorder {
	w := &sqliteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	columns    []string
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database
type sqliteWriter struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
	exec       *execRecorder
	closed     bool
}

// Init establishes a connection to the database.
func (t *sqliteWriter) Init() {
	if t.dbName == "" {
		t.dbName = "tsuho_" + xid.New().String()
	}

	filename := t.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

// columnType returns the SQLite storage class of a field kind. It returns an
// empty string for kinds that cannot be recorded.
func columnType(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "REAL"
	case reflect.String:
		return "TEXT"
	default:
		return ""
	}
}

func columnDefinitions(entry any) ([]string, error) {
	structType := reflect.TypeOf(entry)
	if structType == nil || structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("entry of type %T is not a struct", entry)
	}

	defs := make([]string, 0, structType.NumField())
	for _, f := range structs.Fields(entry) {
		sqlType := columnType(f.Kind())
		if sqlType == "" {
			return nil, fmt.Errorf("field %s of kind %s cannot be recorded",
				f.Name(), f.Kind())
		}

		defs = append(defs, f.Name()+" "+sqlType)
	}

	return defs, nil
}

func (t *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	defs, err := columnDefinitions(sampleEntry)
	if err != nil {
		panic(err)
	}

	if _, exists := t.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	t.mustExecute(fmt.Sprintf("CREATE TABLE %s (\n\t%s\n);",
		tableName, strings.Join(defs, ",\n\t")))

	t.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		columns:    structs.Names(sampleEntry),
	}
}

func (t *sqliteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry of type %T does not match table %s",
			entry, tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

func (t *sqliteWriter) ListTables() []string {
	tables := make([]string, 0, len(t.tables))
	for table := range t.tables {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

// Flush writes the buffered entries of all tables in one transaction.
func (t *sqliteWriter) Flush() {
	if t.entryCount == 0 || t.closed {
		return
	}

	tx, err := t.Begin()
	if err != nil {
		panic(err)
	}

	for _, name := range t.ListTables() {
		table := t.tables[name]
		if len(table.entries) == 0 {
			continue
		}

		err = insertAll(tx, name, table)
		if err != nil {
			_ = tx.Rollback()
			panic(err)
		}

		table.entries = nil
	}

	err = tx.Commit()
	if err != nil {
		panic(err)
	}

	t.entryCount = 0
}

func insertAll(tx *sql.Tx, name string, table *table) error {
	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(table.columns)), ", ")

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(table.columns, ", "), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, entry := range table.entries {
		_, err = stmt.Exec(structs.Values(entry)...)
		if err != nil {
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}

	return nil
}

func (t *sqliteWriter) Close() {
	if t.closed {
		return
	}

	if t.exec != nil {
		t.exec.End()
	}

	t.Flush()
	t.closed = true

	err := t.DB.Close()
	if err != nil {
		panic(err)
	}
}

func (t *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}
