package store

import (
	"context"
	"sync"

	"covidboard/internal/dataset"
)

// InMemorySnapshotStore keeps the one live table behind a RWMutex. Readers
// grab the pointer; the admin reload swaps it atomically.
type InMemorySnapshotStore struct {
	mu    sync.RWMutex
	table *dataset.Table
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{}
}

func (s *InMemorySnapshotStore) Current(_ context.Context) (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrNotLoaded
	}
	return s.table, nil
}

func (s *InMemorySnapshotStore) Replace(_ context.Context, table *dataset.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	return nil
}
