package receipt

import (
	"context"
	"fmt"
	"sync"
)

// MemoryDB implements the DB interface with a process-local map. Records are
// lost when the process exits.
type MemoryDB struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryDB creates an empty MemoryDB
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		records: make(map[string]*Record),
	}
}

// SaveReceipt stores a copy of record
func (m *MemoryDB) SaveReceipt(ctx context.Context, record *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := cloneRecord(record)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[c.ID] = c
	return nil
}

// GetReceipt returns a copy of the record stored under id
func (m *MemoryDB) GetReceipt(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	record, ok := m.records[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReceiptNotFound, id)
	}
	return cloneRecord(record), nil
}

// Len returns the number of stored records
func (m *MemoryDB) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close is a no-op
func (m *MemoryDB) Close() error {
	return nil
}

func cloneRecord(r *Record) *Record {
	return &Record{
		ID:        r.ID,
		Receipt:   r.Receipt.Clone(),
		CreatedAt: r.CreatedAt,
	}
}
