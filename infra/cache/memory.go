// Package cache provides snapshot stores for the exchange-rate cache: an
// in-process store for single-instance deployments and tests, and a Redis
// store for fleets that should share one refresh.
package cache

import (
	"context"
	"sync"

	"github.com/tripmena/backend/pkg/exchange"
)

// MemoryStore keeps the current snapshot in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *exchange.Snapshot
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored snapshot, or (nil, nil) when none has been set.
func (s *MemoryStore) Get(_ context.Context) (*exchange.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, nil
}

// Set replaces the stored snapshot wholesale.
func (s *MemoryStore) Set(_ context.Context, snap *exchange.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	return nil
}
