package agent

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
)

// Rule is one condition→action entry in a reflex agent's rule table.
// Rules are consulted in order; the first matching condition wins.
type Rule struct {
	Name      string
	Condition func(p core.Percept) bool
	Action    func(p core.Percept) core.Action
	Rationale string
}

// ReflexAgent maps each percept directly to an action through an ordered
// rule table. It keeps no memory of past percepts, which is the defining
// property of the simple reflex architecture: identical percepts always
// produce identical actions.
type ReflexAgent struct {
	BaseAgent
	rules    []Rule
	percepts []core.Percept
}

// ReflexOption customizes a ReflexAgent.
type ReflexOption func(a *ReflexAgent)

// WithPerceptScript sets the percept sequence Run feeds through the rule
// table.
func WithPerceptScript(percepts ...core.Percept) ReflexOption {
	return func(a *ReflexAgent) { a.percepts = percepts }
}

// NewReflexAgent creates a reflex agent with the given rule table.
func NewReflexAgent(name string, rules []Rule, opts ...ReflexOption) *ReflexAgent {
	a := &ReflexAgent{
		BaseAgent: NewBaseAgent(name),
		rules:     rules,
	}
	a.SetType("reflex")
	a.SetDescription("Simple reflex agent mapping percepts directly to actions")
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Decide returns the action and rationale of the first rule whose condition
// matches the percept. An unmatched percept is an error: a reflex agent has
// no fallback behavior.
func (a *ReflexAgent) Decide(p core.Percept) (core.Action, string, error) {
	for _, rule := range a.rules {
		if rule.Condition(p) {
			return rule.Action(p), rule.Rationale, nil
		}
	}

	return core.Action{}, "", fmt.Errorf("reflex agent %s: no rule matches percept %s", a.Name(), p)
}

// Run feeds the configured percept script through the rule table, emitting
// one decision step per percept.
func (a *ReflexAgent) Run(rc *core.RunContext) error {
	for _, p := range a.percepts {
		if err := rc.Limiter.Increment(); err != nil {
			return err
		}

		action, rationale, err := a.Decide(p)
		if err != nil {
			return err
		}

		rc.LogDebug("agent %s maps percept %s to action %s", a.Name(), p, action)
		if err := rc.EmitStep(a.Name(), p, action, rationale); err != nil {
			return err
		}
	}

	return rc.EmitText(a.Name(), fmt.Sprintf("processed %d percepts", len(a.percepts)))
}

// VacuumRules returns the ordered rule table for the two-room vacuum world:
// dirty → Suck; clean in A → MoveRight; clean in B → MoveLeft.
func VacuumRules() []Rule {
	return []Rule{
		{
			Name:      "suck_dirt",
			Condition: func(p core.Percept) bool { return p.Bool(env.SignalDirty) },
			Action: func(p core.Percept) core.Action {
				return core.NewAction(env.ActionSuck).WithTarget(p.Location)
			},
			Rationale: "current location is dirty",
		},
		{
			Name:      "leave_clean_a",
			Condition: func(p core.Percept) bool { return p.Location == env.RoomA },
			Action: func(core.Percept) core.Action {
				return core.NewAction(env.ActionMoveRight).WithTarget(env.RoomB)
			},
			Rationale: "room A is clean, moving right",
		},
		{
			Name:      "leave_clean_b",
			Condition: func(p core.Percept) bool { return p.Location == env.RoomB },
			Action: func(core.Percept) core.Action {
				return core.NewAction(env.ActionMoveLeft).WithTarget(env.RoomA)
			},
			Rationale: "room B is clean, moving left",
		},
	}
}

// NewVacuumReflexAgent creates the canonical vacuum reflex agent: the
// two-room rule table driven by the four-step percept script.
func NewVacuumReflexAgent(name string) *ReflexAgent {
	return NewReflexAgent(name, VacuumRules(), WithPerceptScript(env.VacuumPerceptScript()...))
}
