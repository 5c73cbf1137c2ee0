package core

import (
	"fmt"
	"sort"
	"strings"
)

// Percept is a single sensor reading delivered to an agent at one step.
// Location names where the reading was taken (a room, a grid cell, an agent
// id); Signals carries the raw sensor values keyed by signal name. Percepts
// are value types and safe to copy.
type Percept struct {
	Location string         `json:"location,omitempty"`
	Signals  map[string]any `json:"signals,omitempty"`
}

// NewPercept constructs a percept for a location with the given signals.
func NewPercept(location string, signals map[string]any) Percept {
	if signals == nil {
		signals = map[string]any{}
	}
	return Percept{Location: location, Signals: signals}
}

// Bool returns the named signal as a bool (false when absent or mistyped).
func (p Percept) Bool(key string) bool {
	v, ok := p.Signals[key].(bool)
	return ok && v
}

// Int returns the named signal as an int. JSON round-trips deliver numbers
// as float64, so both int and float64 are accepted.
func (p Percept) Int(key string) int {
	switch v := p.Signals[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Float returns the named signal as a float64 (0 when absent or mistyped).
func (p Percept) Float(key string) float64 {
	switch v := p.Signals[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// String renders a compact single-line form for logs and demo output,
// e.g. "A{dirty:true}". Signal keys are sorted for stable output.
func (p Percept) String() string {
	if len(p.Signals) == 0 {
		return p.Location
	}
	keys := make([]string, 0, len(p.Signals))
	for k := range p.Signals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s:%v", k, p.Signals[k]))
	}
	return fmt.Sprintf("%s{%s}", p.Location, strings.Join(pairs, ", "))
}

// Action is an actuator command selected by an agent's decision procedure.
// Name identifies the command (Suck, MoveRight, Cool, ...); Target optionally
// names what it applies to (a room, a position, another agent); Params carries
// any structured arguments.
type Action struct {
	Name   string         `json:"name"`
	Target string         `json:"target,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// NewAction constructs an action with the given name.
func NewAction(name string) Action { return Action{Name: name} }

// WithTarget returns a copy of the action with Target set.
func (a Action) WithTarget(target string) Action {
	a.Target = target
	return a
}

// WithParam returns a copy of the action with one parameter set. The Params
// map is copied so shared actions do not alias mutations.
func (a Action) WithParam(key string, value any) Action {
	params := make(map[string]any, len(a.Params)+1)
	for k, v := range a.Params {
		params[k] = v
	}
	params[key] = value
	a.Params = params
	return a
}

// String renders the action for logs and demo output, e.g. "MoveRight→B".
func (a Action) String() string {
	if a.Target == "" {
		return a.Name
	}
	return fmt.Sprintf("%s→%s", a.Name, a.Target)
}
