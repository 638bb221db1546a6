package sheetssql

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps collections in memory. It backs tests and dry runs.
type MemoryBackend struct {
	mu     sync.Mutex
	tables map[string][][]interface{}
}

// NewMemoryBackend creates an empty in-memory record store
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: make(map[string][][]interface{})}
}

// Seed replaces a collection's rows, header included
func (m *MemoryBackend) Seed(collection string, rows ...[]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[collection] = copyRows(rows)
}

// Rows returns a copy of a collection's rows, nil if absent
func (m *MemoryBackend) Rows(collection string) [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[collection]
	if !ok {
		return nil
	}
	return copyRows(rows)
}

func (m *MemoryBackend) ReadAll(ctx context.Context, collection string) ([][]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q not found", collection)
	}
	return copyRows(rows), nil
}

func (m *MemoryBackend) AppendRows(ctx context.Context, collection string, rows [][]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.tables[collection]
	if !ok {
		return fmt.Errorf("collection %q not found", collection)
	}
	m.tables[collection] = append(existing, copyRows(rows)...)
	return nil
}

func (m *MemoryBackend) DeleteRow(ctx context.Context, collection string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[collection]
	if !ok {
		return fmt.Errorf("collection %q not found", collection)
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("row %d out of range for %q (%d rows)", row, collection, len(rows))
	}
	m.tables[collection] = append(rows[:row-1], rows[row:]...)
	return nil
}

func (m *MemoryBackend) OverwriteCell(ctx context.Context, collection string, row, col int, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[collection]
	if !ok {
		return fmt.Errorf("collection %q not found", collection)
	}
	if row < 1 || row > len(rows) || col < 1 {
		return fmt.Errorf("cell (%d,%d) out of range for %q", row, col, collection)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = value
	return nil
}

func (m *MemoryBackend) EnsureExists(ctx context.Context, collection string, header []interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rows, ok := m.tables[collection]; ok && len(rows) > 0 {
		return nil
	}
	m.tables[collection] = copyRows([][]interface{}{header})
	return nil
}

func copyRows(rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = append([]interface{}(nil), row...)
	}
	return out
}
