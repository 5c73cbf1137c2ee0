package runlog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agentica-go/agentica/core"
)

// InMemoryStore is a process-local RunStore keeping records in a map guarded
// by an RWMutex. Records are values, so callers get copies automatically.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]core.RunRecord
}

// NewInMemoryStore returns an empty in-memory run store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string]core.RunRecord)}
}

// Save stores (or overwrites) the record under its ID.
func (s *InMemoryStore) Save(rec core.RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("run record requires an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rec.ID] = rec
	return nil
}

// Get returns the record with the given ID or ErrNotFound.
func (s *InMemoryStore) Get(id string) (core.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.runs[id]
	if !ok {
		return core.RunRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns records ordered most recent first (by StartedAt, ties broken
// by ID). A limit <= 0 returns everything.
func (s *InMemoryStore) List(limit int) ([]core.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]core.RunRecord, 0, len(s.runs))
	for _, rec := range s.runs {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].StartedAt.Equal(recs[j].StartedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].StartedAt.After(recs[j].StartedAt)
	})
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	return recs, nil
}

// Delete removes the record if present or returns ErrNotFound.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return ErrNotFound
	}
	delete(s.runs, id)
	return nil
}
