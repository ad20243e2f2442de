// internal/storage/bar/memory.go
package bar

import (
	"context"
	"sort"
	"sync"

	"github.com/finsig/finsig/internal/core"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory bar store ordered by timestamp.
type MemoryStore struct {
	records []Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save adds a bar, keeping the slice sorted by timestamp. Bars sharing a
// timestamp keep their insertion order.
func (m *MemoryStore) Save(ctx context.Context, b core.Bar) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(b), nil
}

// SaveBulk adds many bars under one lock acquisition.
func (m *MemoryStore) SaveBulk(ctx context.Context, bars []core.Bar) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]Record, 0, len(bars))
	for _, b := range bars {
		records = append(records, m.insert(b))
	}
	return records, nil
}

// insert places the record after any existing record with an equal or
// earlier timestamp. Callers hold the write lock.
func (m *MemoryStore) insert(b core.Bar) Record {
	rec := Record{ID: uuid.NewString(), Bar: b}

	pos := sort.Search(len(m.records), func(i int) bool {
		return m.records[i].Timestamp.After(b.Timestamp)
	})

	m.records = append(m.records, Record{})
	copy(m.records[pos+1:], m.records[pos:])
	m.records[pos] = rec
	return rec
}

// List returns a copy of all records in timestamp order.
func (m *MemoryStore) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Record, len(m.records))
	copy(result, m.records)
	return result, nil
}

// Bars returns all stored bars in timestamp order.
func (m *MemoryStore) Bars(ctx context.Context) ([]core.Bar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]core.Bar, len(m.records))
	for i, rec := range m.records {
		result[i] = rec.Bar
	}
	return result, nil
}

// Count returns the number of stored records.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// DeleteAll removes every record.
func (m *MemoryStore) DeleteAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.records)
	m.records = nil
	return n, nil
}
