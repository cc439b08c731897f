package activity

import (
	"context"
	"slices"
	"sync"
)

// MemoryStorage keeps events in memory for tests and local development.
// Safe for concurrent use.
type MemoryStorage struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryStorage returns an empty in-memory event storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store appends the event.
func (s *MemoryStorage) Store(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// StoreBatch appends all events.
func (s *MemoryStorage) StoreBatch(ctx context.Context, events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

// Events returns a copy of everything stored so far.
func (s *MemoryStorage) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}
