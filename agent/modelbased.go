package agent

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
)

// RoomCondition captures the agent's belief about one room. Rooms start
// Unknown and become Clean or Dirty as percepts arrive.
type RoomCondition string

// Room belief states used by the model-based agent.
const (
	ConditionUnknown RoomCondition = "Unknown"
	ConditionClean   RoomCondition = "Clean"
	ConditionDirty   RoomCondition = "Dirty"
)

// ModelBasedAgent maintains an internal model of the world, updated from
// each percept before its rules are consulted. The model lets it reason
// about rooms it is not currently observing and shut down once every room
// is known clean, something a pure reflex agent cannot do.
type ModelBasedAgent struct {
	BaseAgent
	world    *env.VacuumWorld
	model    map[string]RoomCondition
	maxSteps int
}

// ModelBasedOption customizes a ModelBasedAgent.
type ModelBasedOption func(a *ModelBasedAgent)

// WithWorld sets the vacuum world the agent runs against.
func WithWorld(w *env.VacuumWorld) ModelBasedOption {
	return func(a *ModelBasedAgent) { a.world = w }
}

// WithModelStepBudget caps the number of decide/act cycles Run performs
// before giving up (default 10).
func WithModelStepBudget(n int) ModelBasedOption {
	return func(a *ModelBasedAgent) { a.maxSteps = n }
}

// NewModelBasedAgent creates a model-based vacuum agent. The default world
// has room A dirty and room B already clean, giving the canonical
// three-decision run: Suck, MoveRight, Shutdown.
func NewModelBasedAgent(name string, opts ...ModelBasedOption) *ModelBasedAgent {
	a := &ModelBasedAgent{
		BaseAgent: NewBaseAgent(name),
		maxSteps:  10,
	}
	a.SetType("model_based")
	a.SetDescription("Model-based reflex agent tracking room conditions in an internal world model")
	for _, opt := range opts {
		opt(a)
	}
	if a.world == nil {
		a.world = env.NewVacuumWorld(env.WithCleanRooms(env.RoomB))
	}

	a.model = make(map[string]RoomCondition, len(a.world.Rooms()))
	for _, room := range a.world.Rooms() {
		a.model[room] = ConditionUnknown
	}

	return a
}

// Model returns a copy of the agent's current world model.
func (a *ModelBasedAgent) Model() map[string]RoomCondition {
	m := make(map[string]RoomCondition, len(a.model))
	for k, v := range a.model {
		m[k] = v
	}

	return m
}

// UpdateModel records the observed condition of a room.
func (a *ModelBasedAgent) UpdateModel(room string, clean bool) {
	if clean {
		a.model[room] = ConditionClean
	} else {
		a.model[room] = ConditionDirty
	}
}

// allKnownClean reports whether every modeled room is verified clean.
func (a *ModelBasedAgent) allKnownClean() bool {
	for _, c := range a.model {
		if c != ConditionClean {
			return false
		}
	}

	return true
}

// Decide updates the model from the percept, then picks an action: dirt is
// cleaned immediately, a fully clean model triggers shutdown, otherwise the
// agent moves toward the other room.
func (a *ModelBasedAgent) Decide(p core.Percept) (core.Action, string) {
	dirty := p.Bool(env.SignalDirty)
	a.UpdateModel(p.Location, !dirty)

	switch {
	case dirty:
		return core.NewAction(env.ActionSuck).WithTarget(p.Location), "current room is dirty"
	case a.allKnownClean():
		return core.NewAction(env.ActionShutdown), "all rooms verified clean"
	case p.Location == env.RoomA:
		return core.NewAction(env.ActionMoveRight).WithTarget(env.RoomB), "room B not verified clean yet"
	default:
		return core.NewAction(env.ActionMoveLeft).WithTarget(env.RoomA), "room A not verified clean yet"
	}
}

// Run drives the decide/act cycle against the world until the agent shuts
// down or exhausts its step budget.
func (a *ModelBasedAgent) Run(rc *core.RunContext) error {
	for step := 0; step < a.maxSteps; step++ {
		if err := rc.Limiter.Increment(); err != nil {
			return err
		}

		p := a.world.Percept()
		action, rationale := a.Decide(p)

		rc.LogDebug("agent %s decided %s from percept %s", a.Name(), action, p)
		if err := rc.EmitStep(a.Name(), p, action, rationale); err != nil {
			return err
		}

		if err := a.world.Apply(action); err != nil {
			return err
		}

		if action.Name == env.ActionShutdown {
			rc.SetState("world_model", a.Model())
			return rc.EmitText(a.Name(), fmt.Sprintf("shut down after %d steps, all rooms clean", step+1))
		}
	}

	return fmt.Errorf("model-based agent %s: no shutdown within %d steps", a.Name(), a.maxSteps)
}
