package memory

import (
	"context"
	"sync"
	"time"

	"github.com/avdeev/module-certification/internal/core/port"
)

// DuplicateStore keeps the last submission timestamp per duplicate key in
// process memory. Stale entries are removed by Sweep.
type DuplicateStore struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// NewDuplicateStore constructs an empty in-memory store.
func NewDuplicateStore() *DuplicateStore {
	return &DuplicateStore{last: make(map[string]time.Time)}
}

// LastSubmission returns the recorded timestamp for the key, if any.
func (s *DuplicateStore) LastSubmission(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.last[key]
	return at, ok, nil
}

// RecordSubmission stores the timestamp for the key.
func (s *DuplicateStore) RecordSubmission(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last[key] = at
	return nil
}

// Sweep removes every record older than the cutoff.
func (s *DuplicateStore) Sweep(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, at := range s.last {
		if at.Before(cutoff) {
			delete(s.last, key)
		}
	}

	return nil
}

// Len reports the number of tracked keys. Intended for tests and metrics.
func (s *DuplicateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.last)
}

var _ port.DuplicateStore = (*DuplicateStore)(nil)
