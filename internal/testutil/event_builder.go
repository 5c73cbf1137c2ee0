package testutil

import (
	"github.com/agentica-go/agentica/core"
)

// EventBuilder provides a fluent helper for constructing events in tests.
// Example:
//
//	ev := NewEventBuilder().Author("vacuum").Run("run-1").AgentText("done").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type EventBuilder struct {
	author      string
	runID       string
	id          string
	role        string
	textParts   []string
	customParts []core.Part
	partial     *bool
	actions     core.EventActions
	branch      *string
	errCode     *string
	errMessage  *string
}

// NewEventBuilder creates a builder with default author "agent".
func NewEventBuilder() *EventBuilder { return &EventBuilder{author: "agent"} }

// Author sets the author name for the event (chainable).
func (b *EventBuilder) Author(a string) *EventBuilder { b.author = a; return b }

// Run sets the run ID associated with the event (chainable).
func (b *EventBuilder) Run(id string) *EventBuilder { b.runID = id; return b }

// ID overrides the auto-generated event ID (chainable). Use mainly in tests
// where determinism matters.
func (b *EventBuilder) ID(id string) *EventBuilder { b.id = id; return b }

// Branch sets the branch label for hierarchical execution paths (chainable).
func (b *EventBuilder) Branch(br string) *EventBuilder { b.branch = &br; return b }

// Partial marks the event as a partial fragment (chainable).
func (b *EventBuilder) Partial(p bool) *EventBuilder { b.partial = &p; return b }

// UserText appends a user role text part and sets role to user (chainable).
func (b *EventBuilder) UserText(t string) *EventBuilder {
	b.role = "user"
	b.textParts = append(b.textParts, t)
	return b
}

// AgentText appends an agent role text part (chainable).
func (b *EventBuilder) AgentText(t string) *EventBuilder {
	b.role = "agent"
	b.textParts = append(b.textParts, t)
	return b
}

// Step appends a percept part and an action part describing one decision
// step (chainable).
func (b *EventBuilder) Step(p core.Percept, a core.Action, rationale string) *EventBuilder {
	b.customParts = append(b.customParts,
		core.PerceptPart{Percept: p},
		core.ActionPart{Action: a, Rationale: rationale},
	)
	return b
}

// Data appends a structured data part (chainable).
func (b *EventBuilder) Data(data map[string]any) *EventBuilder {
	b.customParts = append(b.customParts, core.DataPart{Data: data})
	return b
}

// AddPart appends a custom content part (chainable).
func (b *EventBuilder) AddPart(p core.Part) *EventBuilder {
	b.customParts = append(b.customParts, p)
	return b
}

// StateDelta records a state mutation on the event's actions (chainable).
func (b *EventBuilder) StateDelta(key string, val any) *EventBuilder {
	if b.actions.StateDelta == nil {
		b.actions.StateDelta = map[string]any{}
	}
	b.actions.StateDelta[key] = val
	return b
}

// Escalate sets the Escalate action flag (chainable).
func (b *EventBuilder) Escalate() *EventBuilder { t := true; b.actions.Escalate = &t; return b }

// Transfer sets the target agent for a transfer action (chainable).
func (b *EventBuilder) Transfer(to string) *EventBuilder { b.actions.TransferToAgent = &to; return b }

// Error attaches error metadata to the event (chainable).
func (b *EventBuilder) Error(code, message string) *EventBuilder {
	b.errCode = &code
	b.errMessage = &message
	return b
}

// Build constructs the core.Event value.
func (b *EventBuilder) Build() core.Event {
	ev := core.NewEvent(b.runID, b.author)
	if b.id != "" {
		ev.ID = b.id
	}
	if b.branch != nil {
		ev.Branch = b.branch
	}
	if b.partial != nil {
		ev.Partial = b.partial
	}
	if b.errCode != nil {
		ev.ErrorCode = b.errCode
		ev.ErrorMessage = b.errMessage
	}
	ev.Actions = b.actions

	parts := make([]core.Part, 0, len(b.textParts)+len(b.customParts))
	for _, t := range b.textParts {
		parts = append(parts, core.TextPart{Text: t})
	}
	parts = append(parts, b.customParts...)
	if len(parts) > 0 {
		role := b.role
		if role == "" {
			role = "agent"
		}
		ev.Content = &core.Content{Role: role, Parts: parts}
	}

	return ev
}
