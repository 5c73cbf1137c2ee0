package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
)

// stepParts extracts the percept, action, and rationale from a step event.
func stepParts(t *testing.T, ev core.Event) (core.Percept, core.Action, string) {
	t.Helper()
	require.NotNil(t, ev.Content)

	var p core.Percept
	var a core.Action
	var rationale string
	for _, part := range ev.Content.Parts {
		switch v := part.(type) {
		case core.PerceptPart:
			p = v.Percept
		case core.ActionPart:
			a = v.Action
			rationale = v.Rationale
		}
	}
	return p, a, rationale
}

func TestVacuumRules_CanonicalScript(t *testing.T) {
	agent := NewReflexAgent("vacuum", VacuumRules())

	want := []struct {
		location string
		dirty    bool
		action   string
		target   string
	}{
		{env.RoomA, true, env.ActionSuck, env.RoomA},
		{env.RoomA, false, env.ActionMoveRight, env.RoomB},
		{env.RoomB, true, env.ActionSuck, env.RoomB},
		{env.RoomB, false, env.ActionMoveLeft, env.RoomA},
	}

	script := env.VacuumPerceptScript()
	require.Len(t, script, len(want))

	for i, w := range want {
		p := script[i]
		assert.Equal(t, w.location, p.Location)
		assert.Equal(t, w.dirty, p.Bool(env.SignalDirty))

		action, rationale, err := agent.Decide(p)
		require.NoError(t, err)
		assert.Equal(t, w.action, action.Name)
		assert.Equal(t, w.target, action.Target)
		assert.NotEmpty(t, rationale)
	}
}

func TestReflexAgent_DeterministicDecisions(t *testing.T) {
	agent := NewReflexAgent("vacuum", VacuumRules())
	p := core.NewPercept(env.RoomA, map[string]any{env.SignalDirty: true})

	first, _, err := agent.Decide(p)
	require.NoError(t, err)
	second, _, err := agent.Decide(p)
	require.NoError(t, err)

	// no internal state: identical percepts yield identical actions
	assert.Equal(t, first, second)
}

func TestReflexAgent_FirstMatchWins(t *testing.T) {
	calls := []string{}
	rules := []Rule{
		{
			Name:      "first",
			Condition: func(core.Percept) bool { calls = append(calls, "first"); return true },
			Action:    func(core.Percept) core.Action { return core.NewAction("First") },
			Rationale: "always matches",
		},
		{
			Name:      "second",
			Condition: func(core.Percept) bool { calls = append(calls, "second"); return true },
			Action:    func(core.Percept) core.Action { return core.NewAction("Second") },
			Rationale: "never reached",
		},
	}

	agent := NewReflexAgent("ordered", rules)
	action, _, err := agent.Decide(core.NewPercept("anywhere", nil))

	require.NoError(t, err)
	assert.Equal(t, "First", action.Name)
	assert.Equal(t, []string{"first"}, calls, "later rules must not be evaluated")
}

func TestReflexAgent_NoMatchingRule(t *testing.T) {
	agent := NewReflexAgent("vacuum", VacuumRules())
	p := core.NewPercept("garage", map[string]any{env.SignalDirty: false})

	_, _, err := agent.Decide(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rule matches")
}

func TestReflexAgent_Run(t *testing.T) {
	agent := NewVacuumReflexAgent("vacuum")
	rc, emit := newTestRunContext(0)

	require.NoError(t, agent.Run(rc))

	events := drainEvents(emit)
	require.Len(t, events, 5) // four decision steps plus the summary

	wantActions := []string{env.ActionSuck, env.ActionMoveRight, env.ActionSuck, env.ActionMoveLeft}
	for i, name := range wantActions {
		_, action, rationale := stepParts(t, events[i])
		assert.Equal(t, name, action.Name)
		assert.NotEmpty(t, rationale)
		assert.Equal(t, "vacuum", events[i].Author)
	}

	assert.Equal(t, "processed 4 percepts", events[4].Text())
}

func TestReflexAgent_Run_StepLimit(t *testing.T) {
	agent := NewVacuumReflexAgent("vacuum")
	rc, _ := newTestRunContext(2)

	err := agent.Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded max steps")
}

func TestReflexAgent_RulesDriveLiveWorld(t *testing.T) {
	// Running the rule table against a live world with both rooms dirty
	// reproduces the canonical script and leaves the world clean.
	world := env.NewVacuumWorld()
	agent := NewReflexAgent("vacuum", VacuumRules())

	var actions []string
	for i := 0; i < 4; i++ {
		action, _, err := agent.Decide(world.Percept())
		require.NoError(t, err)
		actions = append(actions, action.Name)
		require.NoError(t, world.Apply(action))
	}

	assert.Equal(t, []string{env.ActionSuck, env.ActionMoveRight, env.ActionSuck, env.ActionMoveLeft}, actions)
	assert.True(t, world.AllClean())
}
