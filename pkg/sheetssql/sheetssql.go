package sheetssql

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Backend is the record store: named collections of rows, header included.
// Row and column indices are 1-based.
type Backend interface {
	ReadAll(ctx context.Context, collection string) ([][]interface{}, error)
	AppendRows(ctx context.Context, collection string, rows [][]interface{}) error
	DeleteRow(ctx context.Context, collection string, row int) error
	OverwriteCell(ctx context.Context, collection string, row, col int, value interface{}) error
	// EnsureExists creates the collection with header when absent, and writes
	// the header into an existing but empty collection.
	EnsureExists(ctx context.Context, collection string, header []interface{}) error
}

// Column defines a column by its header text
type Column struct {
	Name     string
	Required bool
}

// TableSchema defines the structure of a table
type TableSchema struct {
	Name string
	// HeaderRow is the 1-based row holding column names; data starts on the row after
	HeaderRow int
	Columns   []Column
}

func (t TableSchema) headerRow() int {
	if t.HeaderRow < 1 {
		return 1
	}
	return t.HeaderRow
}

// Header returns the column names in declaration order
func (t TableSchema) Header() []interface{} {
	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Name
	}
	return header
}

// SchemaError reports a required column missing from a table. It is fatal for the pass.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q is missing required column %q", e.Table, e.Column)
}

// DB maps typed rows onto a Backend
type DB struct {
	backend Backend

	mu      sync.Mutex
	headers map[string]map[string]int
}

// NewDB creates a new tabular database over backend
func NewDB(backend Backend) *DB {
	return &DB{
		backend: backend,
		headers: make(map[string]map[string]int),
	}
}

// Backend returns the underlying record store
func (db *DB) Backend() Backend {
	return db.backend
}

// EnsureTable creates the table if needed and checks its required columns
func (db *DB) EnsureTable(ctx context.Context, table TableSchema) error {
	if err := db.backend.EnsureExists(ctx, table.Name, table.Header()); err != nil {
		return fmt.Errorf("failed to ensure table %s: %w", table.Name, err)
	}

	values, err := db.backend.ReadAll(ctx, table.Name)
	if err != nil {
		return fmt.Errorf("failed to read table %s: %w", table.Name, err)
	}

	_, err = db.indexHeader(table, values)
	return err
}

// DeleteRows removes the given rows. Indices are de-duplicated and applied
// highest first so earlier deletions never shift later ones; rows at or above
// the header are ignored.
func (db *DB) DeleteRows(ctx context.Context, table TableSchema, rows []int) error {
	seen := make(map[int]bool, len(rows))
	ordered := make([]int, 0, len(rows))
	for _, r := range rows {
		if r <= table.headerRow() || seen[r] {
			continue
		}
		seen[r] = true
		ordered = append(ordered, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	for _, r := range ordered {
		if err := db.backend.DeleteRow(ctx, table.Name, r); err != nil {
			return fmt.Errorf("failed to delete row %d from %s: %w", r, table.Name, err)
		}
	}
	return nil
}

// indexHeader maps header names to 0-based positions, checks required
// columns and caches the result for later writes
func (db *DB) indexHeader(table TableSchema, values [][]interface{}) (map[string]int, error) {
	index := make(map[string]int)
	if len(values) >= table.headerRow() {
		for i, cell := range values[table.headerRow()-1] {
			name := cellString(cell)
			if _, dup := index[name]; name != "" && !dup {
				index[name] = i
			}
		}
	}

	for _, col := range table.Columns {
		if _, ok := index[col.Name]; col.Required && !ok {
			return nil, &SchemaError{Table: table.Name, Column: col.Name}
		}
	}

	db.mu.Lock()
	db.headers[table.Name] = index
	db.mu.Unlock()

	return index, nil
}

// header returns the cached header index, reading the table when not cached
func (db *DB) header(ctx context.Context, table TableSchema) (map[string]int, error) {
	db.mu.Lock()
	index, ok := db.headers[table.Name]
	db.mu.Unlock()
	if ok {
		return index, nil
	}

	values, err := db.backend.ReadAll(ctx, table.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table.Name, err)
	}
	return db.indexHeader(table, values)
}
