package testutil

import (
	"context"
	"fmt"
	"sync"
)

// InMemorySequenceStore implements sequence.Repository with a mutex-guarded
// counter per (company, prefix, date code).
type InMemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewInMemorySequenceStore creates a new in-memory sequence store
func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		counters: make(map[string]int64),
	}
}

func (s *InMemorySequenceStore) Next(ctx context.Context, companyID, prefix, dateCode string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s/%s/%s", companyID, prefix, dateCode)
	s.counters[key]++
	return s.counters[key], nil
}

// Clear resets all counters
func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]int64)
}
