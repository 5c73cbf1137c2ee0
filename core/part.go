package core

import "strings"

// Part represents a polymorphic segment of role-based content. Concrete part
// types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment, the narration lines the demos
// print as they run.
type TextPart struct {
	Text     string         // Plain UTF-8 text
	Metadata map[string]any // Optional producer-provided metadata
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// DataPart is a structured data segment (e.g., metrics, status snapshots).
type DataPart struct {
	Data     map[string]any // Structured key/value payload
	Metadata map[string]any
}

// isPart implements the Part interface for DataPart.
func (DataPart) isPart() {}

// PerceptPart wraps a sensor reading as a content part.
type PerceptPart struct {
	Percept  Percept
	Metadata map[string]any
}

// isPart implements the Part interface for PerceptPart.
func (PerceptPart) isPart() {}

// ActionPart wraps a selected actuator command as a content part. Rationale
// optionally carries the one-line reason the decision procedure gave.
type ActionPart struct {
	Action    Action
	Rationale string
	Metadata  map[string]any
}

// isPart implements the Part interface for ActionPart.
func (ActionPart) isPart() {}

// Content holds role + ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"` // Conversation role (user, assistant, agent, system,...)
	Parts []Part `json:"parts"`          // Ordered heterogeneous parts
}

// Text concatenates all text parts, joined by newlines. Returns "" when
// no part is textual.
func (c Content) Text() string {
	var lines []string
	for _, p := range c.Parts {
		if tp, ok := p.(TextPart); ok {
			lines = append(lines, tp.Text)
		}
	}
	return strings.Join(lines, "\n")
}
