package store

import (
	"context"
	"sync"

	"github.com/zhubert/chatter/internal/chat"
	perrors "github.com/zhubert/chatter/internal/errors"
)

// MemoryStore keeps records in memory. Used for --ephemeral runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]chat.Record
	closed  bool
}

// NewMemory creates an empty MemoryStore.
func NewMemory(records ...chat.Record) *MemoryStore {
	m := &MemoryStore{records: make(map[string]chat.Record, len(records))}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

// Fetch implements Store.
func (m *MemoryStore) Fetch(ctx context.Context) ([]chat.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, perrors.StorageClosed("store.Fetch")
	}

	out := make([]chat.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	chat.SortNewestFirst(out)
	return out, nil
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, r chat.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return perrors.StorageClosed("store.Save")
	}
	m.records[r.ID] = r
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return perrors.StorageClosed("store.Delete")
	}
	if _, ok := m.records[id]; !ok {
		return perrors.MessageNotFound(id)
	}
	delete(m.records, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
