package gate

import (
	"context"
	"sync"
	"time"

	"github.com/fiesta-events/backend/internal/models"
)

// MemoryStore is an in-memory gate store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	state models.GateState
}

// NewMemoryStore creates a gate store in the default open state.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current gate state.
func (s *MemoryStore) Get(_ context.Context) (models.GateState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

// Set overwrites the gate state.
func (s *MemoryStore) Set(_ context.Context, closed bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.GateState{IsClosed: closed, LastUpdated: &at}
	return nil
}
