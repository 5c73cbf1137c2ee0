package experience

import (
	"sync"

	"github.com/agentica-go/agentica/core"
)

// InMemoryStore is a process-local ExperienceStore keeping one append-only
// transition list per session. Learning agents append transitions as they
// act and replay the whole episode later for training.
//
// Concurrency: protected by RWMutex. Reads return defensive copies so
// callers can iterate while writers keep appending.
type InMemoryStore struct {
	mu       sync.RWMutex
	episodes map[string][]core.Transition // sessionID -> ordered transitions
}

// NewInMemoryStore creates a new in-memory experience store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		episodes: make(map[string][]core.Transition),
	}
}

// Append records one transition at the end of the session's episode.
func (s *InMemoryStore) Append(sessionID string, t core.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episodes[sessionID] = append(s.episodes[sessionID], t)
	return nil
}

// Episode returns a copy of all transitions recorded for the session, in
// append order. Unknown sessions yield an empty episode, not an error.
func (s *InMemoryStore) Episode(sessionID string) ([]core.Transition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	episode := s.episodes[sessionID]
	result := make([]core.Transition, len(episode))
	copy(result, episode)
	return result, nil
}

// Len returns the number of transitions recorded for the session.
func (s *InMemoryStore) Len(sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.episodes[sessionID]), nil
}

// Clear discards the session's recorded transitions.
func (s *InMemoryStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.episodes, sessionID)
	return nil
}
