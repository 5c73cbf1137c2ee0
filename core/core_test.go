package core

import (
	"context"
)

type testLogger struct{}

func (l testLogger) Debug(string, ...interface{}) {}
func (l testLogger) Info(string, ...interface{})  {}
func (l testLogger) Warn(string, ...interface{})  {}
func (l testLogger) Error(string, ...interface{}) {}

type rcMockSessionStore struct {
	applied map[string]map[string]interface{}
}

func (s *rcMockSessionStore) Get(id string) (*Session, error)       { return NewSession(id), nil }
func (s *rcMockSessionStore) Create(id string) (*Session, error)    { return NewSession(id), nil }
func (s *rcMockSessionStore) AppendEvent(id string, ev Event) error { return nil }
func (s *rcMockSessionStore) ApplyDelta(id string, delta map[string]interface{}) error {
	if s.applied == nil {
		s.applied = map[string]map[string]interface{}{}
	}
	cp := map[string]interface{}{}
	for k, v := range delta {
		cp[k] = v
	}
	s.applied[id] = cp
	return nil
}

type rcMockExperienceStore struct {
	transitions map[string][]Transition
}

func (e *rcMockExperienceStore) Append(sid string, t Transition) error {
	if e.transitions == nil {
		e.transitions = map[string][]Transition{}
	}
	e.transitions[sid] = append(e.transitions[sid], t)
	return nil
}

func (e *rcMockExperienceStore) Episode(sid string) ([]Transition, error) {
	if e.transitions == nil {
		return []Transition{}, nil
	}
	return append([]Transition{}, e.transitions[sid]...), nil
}

func (e *rcMockExperienceStore) Len(sid string) (int, error) {
	if e.transitions == nil {
		return 0, nil
	}
	return len(e.transitions[sid]), nil
}

func (e *rcMockExperienceStore) Clear(sid string) error {
	delete(e.transitions, sid)
	return nil
}

func newRunContextForTest() (*RunContext, chan Event) {
	emit := make(chan Event, 5)
	resume := make(chan struct{}, 5)
	sess := NewSession("sess-x")
	sStore := &rcMockSessionStore{}
	eStore := &rcMockExperienceStore{}
	return NewRunContext(context.Background(), "sess-x", "run-x", AgentInfo{Name: "Agent1", Type: "test"}, Content{}, 0, emit, resume, sess, sStore, eStore, testLogger{}), emit
}
