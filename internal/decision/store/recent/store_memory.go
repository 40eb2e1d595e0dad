package recent

import (
	"context"
	"sync"
	"time"

	"fairgate/internal/decision"
)

type memoryEntry struct {
	record    *decision.Record
	expiresAt time.Time
}

// InMemoryStore is a TTL-evicting map cache for tests and single-node runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   func() time.Time
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

func (s *InMemoryStore) Get(_ context.Context, caseID, action string) (*decision.Record, error) {
	s.mu.RLock()
	entry, ok := s.entries[cacheKey(caseID, action)]
	s.mu.RUnlock()
	if !ok || s.clock().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.record, nil
}

func (s *InMemoryStore) Put(_ context.Context, record *decision.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cacheKey(record.CaseID, record.ProposedAction)] = memoryEntry{
		record:    record,
		expiresAt: s.clock().Add(s.ttl),
	}
	return nil
}

func cacheKey(caseID, action string) string {
	return caseID + "|" + action
}
