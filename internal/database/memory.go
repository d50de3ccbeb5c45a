package database

import (
	"context"
	"sync"
)

// MemoryWorksheet keeps rows in process memory. It backs the page when the
// configured store is unreachable.
type MemoryWorksheet struct {
	mu   sync.Mutex
	rows [][]any
}

func NewMemoryWorksheet(rows ...[]any) *MemoryWorksheet {
	m := &MemoryWorksheet{}
	for _, r := range rows {
		m.rows = append(m.rows, copyRow(r))
	}
	return m
}

func (m *MemoryWorksheet) Values(ctx context.Context) ([][]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]any, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, copyRow(r))
	}
	return out, nil
}

func (m *MemoryWorksheet) AppendRow(ctx context.Context, row []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, copyRow(row))
	return nil
}

func (m *MemoryWorksheet) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = nil
	return nil
}

func (m *MemoryWorksheet) Find(ctx context.Context, value string, column int) ([]Cell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return findIn(m.rows, value, column), nil
}

func (m *MemoryWorksheet) DeleteRow(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 1 || index > len(m.rows) {
		return ErrRowOutOfRange
	}
	m.rows = append(m.rows[:index-1], m.rows[index:]...)
	return nil
}

func (m *MemoryWorksheet) Close() error { return nil }

func copyRow(r []any) []any {
	out := make([]any, len(r))
	copy(out, r)
	return out
}
