package core

import (
	"context"
	"fmt"

	"maps"

	"github.com/agentica-go/agentica/logging"
)

// RunContext carries execution state & helpers for an agent run.
// It encapsulates the mutable, per-run execution scope passed to an
// Agent's Run method. It aggregates:
//   - The ambient cancellation Context
//   - Identifiers (SessionID, RunID, Agent info)
//   - Input user Content
//   - Emission / resumption coordination channels
//   - Backing services (session, experience) for persistence concerns
//   - A working Session snapshot and pending StateDelta to commit
//   - Branch label for hierarchical flows
//
// State mutations performed via SetState accumulate in StateDelta until
// CommitStateDelta or EmitEvent applies them. Cloning produces an isolated
// delta buffer while keeping references to underlying services.
type RunContext struct {
	Context          context.Context
	SessionID, RunID string
	Agent            AgentInfo
	UserContent      Content
	MaxSteps         int
	Emit             chan<- Event
	Resume           <-chan struct{}
	SessionStore     SessionStore
	ExperienceStore  ExperienceStore
	Limiter          *StepLimiter
	Session          *Session
	StateDelta       map[string]any
	Branch           string

	*loggerAdapter
}

// NewRunContext constructs a RunContext with an empty state delta.
func NewRunContext(
	ctx context.Context,
	sessionID, runID string,
	agent AgentInfo,
	userContent Content,
	maxSteps int,
	emit chan<- Event,
	resume <-chan struct{},
	sess *Session,
	sessionStore SessionStore,
	experienceStore ExperienceStore,
	logger logging.Logger,
) *RunContext {
	return &RunContext{
		Context:         ctx,
		SessionID:       sessionID,
		RunID:           runID,
		Agent:           agent,
		UserContent:     userContent,
		MaxSteps:        maxSteps,
		Emit:            emit,
		Resume:          resume,
		Session:         sess,
		SessionStore:    sessionStore,
		ExperienceStore: experienceStore,
		Limiter:         NewStepLimiter(maxSteps),
		StateDelta:      map[string]any{},
		loggerAdapter:   newLoggerAdapter(logger),
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// GetState returns a staged (delta) value if present, else the persisted session value.
func (rc *RunContext) GetState(k string) (any, bool) {
	if v, ok := rc.StateDelta[k]; ok {
		return v, true
	}

	if rc.Session != nil {
		return rc.Session.GetState(k)
	}

	return nil, false
}

// SetState stages a state mutation in the in-memory delta buffer.
func (rc *RunContext) SetState(k string, v any) { rc.StateDelta[k] = v }

// ApplyStateDelta merges all pairs from d into the staged StateDelta.
func (rc *RunContext) ApplyStateDelta(d map[string]any) {
	maps.Copy(rc.StateDelta, d)
}

// RecordTransition appends a learning transition to the ExperienceStore.
func (rc *RunContext) RecordTransition(t Transition) error {
	if rc.ExperienceStore == nil {
		return fmt.Errorf("experience store not configured")
	}

	return rc.ExperienceStore.Append(rc.SessionID, t)
}

// Transitions returns the transitions recorded for this session so far.
func (rc *RunContext) Transitions() ([]Transition, error) {
	if rc.ExperienceStore == nil {
		return []Transition{}, nil
	}

	return rc.ExperienceStore.Episode(rc.SessionID)
}

// RefreshSession reloads the session snapshot from the SessionStore.
func (rc *RunContext) RefreshSession() error {
	if rc.SessionStore == nil {
		return fmt.Errorf("session store not configured")
	}

	s, err := rc.SessionStore.Get(rc.SessionID)
	if err != nil {
		return err
	}

	rc.Session = s

	return nil
}

// CommitStateDelta persists the accumulated StateDelta then clears the buffer.
func (rc *RunContext) CommitStateDelta() error {
	if len(rc.StateDelta) == 0 {
		return nil
	}

	if rc.SessionStore == nil {
		return fmt.Errorf("session store not configured")
	}

	if err := rc.SessionStore.ApplyDelta(rc.SessionID, rc.StateDelta); err != nil {
		return err
	}

	rc.StateDelta = map[string]any{}

	return nil
}

// GetSessionHistory returns all historical events for the session.
func (rc *RunContext) GetSessionHistory() []Event {
	if rc.Session == nil {
		return []Event{}
	}

	return rc.Session.GetEvents()
}

// GetAgentName returns the logical agent name for this run.
func (rc *RunContext) GetAgentName() string { return rc.Agent.Name }

// GetAgentType returns a categorization label for the agent.
func (rc *RunContext) GetAgentType() string { return rc.Agent.Type }

// Clone returns a shallow copy with a deep-copied delta buffer.
func (rc *RunContext) Clone() *RunContext {
	c := &RunContext{
		Context:         rc.Context,
		SessionID:       rc.SessionID,
		RunID:           rc.RunID,
		Agent:           rc.Agent,
		UserContent:     rc.UserContent,
		MaxSteps:        rc.MaxSteps,
		Emit:            rc.Emit,
		Resume:          rc.Resume,
		SessionStore:    rc.SessionStore,
		ExperienceStore: rc.ExperienceStore,
		Limiter:         rc.Limiter,
		Session:         rc.Session,
		StateDelta:      map[string]any{},
		Branch:          rc.Branch,
		loggerAdapter:   rc.loggerAdapter,
	}

	maps.Copy(c.StateDelta, rc.StateDelta)

	return c
}

// WithBranch clones the context and sets the Branch label.
func (rc *RunContext) WithBranch(b string) *RunContext {
	c := rc.Clone()
	c.Branch = b
	return c
}

// NewChildContext derives a context for a nested / child execution path.
func (rc *RunContext) NewChildContext(emit chan<- Event, resume <-chan struct{}, branch string) *RunContext {
	finalBranch := rc.Branch
	if branch != "" {
		finalBranch = branch
	}

	return &RunContext{
		Context:         rc.Context,
		SessionID:       rc.SessionID,
		RunID:           rc.RunID,
		Agent:           rc.Agent,
		UserContent:     rc.UserContent,
		MaxSteps:        rc.MaxSteps,
		Emit:            emit,
		Resume:          resume,
		SessionStore:    rc.SessionStore,
		ExperienceStore: rc.ExperienceStore,
		Limiter:         rc.Limiter,
		Session:         rc.Session,
		StateDelta:      map[string]any{}, // fresh buffer
		Branch:          finalBranch,
		loggerAdapter:   rc.loggerAdapter,
	}
}

// EmitEvent merges the pending StateDelta into the event, stamps the branch
// label when one is set, and emits it.
func (rc *RunContext) EmitEvent(ev Event) error {
	if rc.Branch != "" && ev.Branch == nil {
		b := rc.Branch
		ev.Branch = &b
	}

	if len(rc.StateDelta) > 0 {
		if ev.Actions.StateDelta == nil {
			delta := map[string]any{}
			maps.Copy(delta, rc.StateDelta)
			ev.Actions.StateDelta = delta
		} else {
			maps.Copy(ev.Actions.StateDelta, rc.StateDelta)
		}
	}

	select {
	case <-rc.Context.Done():
		return rc.Context.Err()
	case rc.Emit <- ev:
	}

	rc.StateDelta = map[string]any{}

	return nil
}

// EmitText emits a single-line narration event authored by the given agent.
func (rc *RunContext) EmitText(author, text string) error {
	ev := NewMessageEvent(author, text)
	ev.RunID = rc.RunID
	return rc.EmitEvent(ev)
}

// EmitStep emits a percept→action decision step bound to this run.
func (rc *RunContext) EmitStep(author string, p Percept, a Action, rationale string) error {
	ev := NewStepEvent(author, p, a, rationale)
	ev.RunID = rc.RunID
	return rc.EmitEvent(ev)
}

// WaitForResume blocks until Resume signals or context cancellation.
func (rc *RunContext) WaitForResume() error {
	if rc.Resume == nil {
		return nil
	}

	select {
	case <-rc.Resume:
		return nil
	case <-rc.Context.Done():
		return rc.Context.Err()
	}
}
