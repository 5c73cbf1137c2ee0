package core

import (
	"time"

	"github.com/google/uuid"
)

// EventActions encodes side-effects or orchestration signals attached to an Event.
// All fields are optional pointers / maps so absence can be distinguished from zero values.
// The engine interprets these after persistence (see engine.applyEventActions).
type EventActions struct {
	StateDelta      map[string]any `json:"state_delta,omitempty"`
	TransferToAgent *string        `json:"transfer_to_agent,omitempty"`
	Escalate        *bool          `json:"escalate,omitempty"`
}

// Event is the primary unit of communication between agents, the engine and
// external clients. After emission it should be treated as immutable. It
// captures:
//   - Correlation (RunID, ID, Author)
//   - Demo content (optional role-based Parts: text, percepts, actions, data)
//   - Orchestration directives (Actions)
//   - Error / interruption metadata
//   - High precision UTC timestamp
//
// Content may be nil for control or error-only events. Timestamp uses a native
// time.Time (UTC). Use helper methods (e.g. UnixSeconds) if numeric forms are
// needed for metrics or legacy clients.
type Event struct {
	ID             string            `json:"id"`
	RunID          string            `json:"run_id"`
	Author         string            `json:"author"`
	Actions        EventActions      `json:"actions"`
	Branch         *string           `json:"branch,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Content        *Content          `json:"content,omitempty"`
	Partial        *bool             `json:"partial,omitempty"`
	ErrorCode      *string           `json:"error_code,omitempty"`
	ErrorMessage   *string           `json:"error_message,omitempty"`
	CustomMetadata map[string]string `json:"custom_metadata,omitempty"`
}

// NewEvent creates a bare event authored by 'author' bound to a run.
// Prefer helper constructors for common semantic categories (message, percept, action).
func NewEvent(runID, author string) Event {
	return Event{
		ID:        NewID(),
		RunID:     runID,
		Author:    author,
		Timestamp: time.Now().UTC(),
		Actions:   EventActions{},
	}
}

// NewMessageEvent creates a non-user agent message event with a single text part.
// Author can be an agent name or system identifier.
func NewMessageEvent(author, message string) Event {
	e := NewEvent("", author)
	e.Content = &Content{Role: "agent", Parts: []Part{TextPart{Text: message}}}
	return e
}

// NewUserMessageEvent creates a user-authored text message event.
func NewUserMessageEvent(runID, message string) Event {
	e := NewEvent(runID, "user")
	e.Content = &Content{Role: "user", Parts: []Part{TextPart{Text: message}}}
	return e
}

// NewUserContentEvent creates a user-authored event with arbitrary Content.
// Useful for cases where the Content is not just a simple text message.
func NewUserContentEvent(runID string, content *Content) Event {
	e := NewEvent(runID, "user")
	e.Content = content
	return e
}

// NewPerceptEvent records a sensor reading observed by an agent.
func NewPerceptEvent(author string, p Percept) Event {
	e := NewEvent("", author)
	e.Content = &Content{Role: "agent", Parts: []Part{PerceptPart{Percept: p}}}
	return e
}

// NewActionEvent records an actuator command selected by an agent, with an
// optional one-line rationale from its decision procedure.
func NewActionEvent(author string, a Action, rationale string) Event {
	e := NewEvent("", author)
	e.Content = &Content{Role: "agent", Parts: []Part{ActionPart{Action: a, Rationale: rationale}}}
	return e
}

// NewStepEvent records a full decision step: the percept observed and the
// action it produced, as one event.
func NewStepEvent(author string, p Percept, a Action, rationale string) Event {
	e := NewEvent("", author)
	e.Content = &Content{Role: "agent", Parts: []Part{
		PerceptPart{Percept: p},
		ActionPart{Action: a, Rationale: rationale},
	}}
	return e
}

// NewDataEvent records a structured payload (metrics, status snapshots).
func NewDataEvent(author string, data map[string]any) Event {
	e := NewEvent("", author)
	e.Content = &Content{Role: "agent", Parts: []Part{DataPart{Data: data}}}
	return e
}

// NewErrorEvent records a terminal failure with code and message.
func NewErrorEvent(runID, author, code, message string) Event {
	e := NewEvent(runID, author)
	e.ErrorCode = &code
	e.ErrorMessage = &message
	return e
}

// NewID generates a new unique identifier for events.
//
// This function creates a UUID-based unique identifier that can be used
// for event tracking and correlation throughout the framework.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }

// IsPartial reports whether this event represents a streaming / incomplete
// fragment that will be followed by additional events composing the final turn.
func (e Event) IsPartial() bool { return e.Partial != nil && *e.Partial }

// GetPercepts returns any Percept parts contained within the event content
// preserving their original order.
func (e Event) GetPercepts() []Percept {
	if e.Content == nil {
		return nil
	}
	var percepts []Percept
	for _, p := range e.Content.Parts {
		if pp, ok := p.(PerceptPart); ok {
			percepts = append(percepts, pp.Percept)
		}
	}
	return percepts
}

// GetActions returns any Action parts contained within the event content
// preserving their original order.
func (e Event) GetActions() []Action {
	if e.Content == nil {
		return nil
	}
	var actions []Action
	for _, p := range e.Content.Parts {
		if ap, ok := p.(ActionPart); ok {
			actions = append(actions, ap.Action)
		}
	}
	return actions
}

// Text concatenates all text parts of the event content, joined by newlines.
// Returns "" for events without textual content.
func (e Event) Text() string {
	if e.Content == nil {
		return ""
	}
	return e.Content.Text()
}

// IsError reports whether the event carries error metadata.
func (e Event) IsError() bool { return e.ErrorCode != nil || e.ErrorMessage != nil }

// UnixSeconds returns the timestamp as fractional seconds since Unix epoch.
// Useful for metrics & numeric serialization paths.
func (e Event) UnixSeconds() float64 { return float64(e.Timestamp.UnixNano()) / 1e9 }
