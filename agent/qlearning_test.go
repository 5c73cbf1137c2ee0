package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
)

func TestQLearningAgent_Defaults(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	assert.Equal(t, 5, agent.States())
	assert.Equal(t, 4, agent.Actions())

	for s := 0; s < 5; s++ {
		for a := 0; a < 4; a++ {
			assert.Zero(t, agent.QValue(s, a))
		}
	}
}

func TestQLearningAgent_FirstUpdate(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	// zero table: target = 10 + 0.9*0, update = 0.9*0 + 0.1*10
	newQ, err := agent.Learn(1, 2, 10, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, newQ, 1e-9)
	assert.InDelta(t, 1.0, agent.QValue(1, 2), 1e-9)
}

func TestQLearningAgent_UpdateUsesBestNextAction(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	_, err := agent.Learn(3, 1, 20, 3) // Q(3,1) = 2.0
	require.NoError(t, err)

	// target = 5 + 0.9*max Q(3,·) = 5 + 1.8 = 6.8; Q(0,0) = 0.68
	newQ, err := agent.Learn(0, 0, 5, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.68, newQ, 1e-9)
}

func TestQLearningAgent_BoundsChecking(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	_, err := agent.Learn(-1, 0, 1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state -1 out of range [0,5)")

	_, err = agent.Learn(0, 9, 1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 9 out of range [0,4)")

	_, err = agent.Learn(0, 0, 1, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next state 7 out of range [0,5)")
}

func TestQLearningAgent_ReplayCanonicalExperience(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	require.NoError(t, agent.Replay(nil, CanonicalExperience()))

	// hand-computed values after the seven sequential updates
	assert.InDelta(t, 1.0, agent.QValue(1, 2), 1e-9)
	assert.InDelta(t, 0.5, agent.QValue(3, 1), 1e-9)
	assert.InDelta(t, -0.11, agent.QValue(2, 0), 1e-9)
	assert.InDelta(t, 1.5, agent.QValue(4, 3), 1e-9)
	assert.InDelta(t, 0.8, agent.QValue(0, 2), 1e-9)
	assert.InDelta(t, 1.335, agent.QValue(1, 1), 1e-9)
	assert.InDelta(t, 0.42015, agent.QValue(3, 0), 1e-9)

	stats := agent.Stats()
	assert.Equal(t, 7, stats.Updates)
	assert.InDelta(t, 51.0, stats.TotalReward, 1e-9)
	assert.InDelta(t, 51.0/7.0, stats.AverageReward, 1e-9)

	// greedy policy over the learned table
	assert.Equal(t, []int{2, 1, 1, 1, 3}, agent.Policy())
}

func TestQLearningAgent_ReplayRecordsTransitions(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)
	rc, emit := newTestRunContext(0)

	require.NoError(t, agent.Replay(rc, CanonicalExperience()))

	recorded, err := rc.Transitions()
	require.NoError(t, err)
	assert.Len(t, recorded, 7)
	assert.Equal(t, CanonicalExperience(), recorded)

	events := drainEvents(emit)
	require.Len(t, events, 7)

	first, ok := events[0].Content.Parts[0].(core.DataPart)
	require.True(t, ok)
	assert.Equal(t, 1, first.Data["state"])
	assert.Equal(t, 2, first.Data["action"])
	assert.InDelta(t, 0.0, first.Data["q_before"].(float64), 1e-9)
	assert.InDelta(t, 1.0, first.Data["q_after"].(float64), 1e-9)
}

func TestQLearningAgent_ReplayBadTransition(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	err := agent.Replay(nil, []core.Transition{{State: 99, Action: 0, Reward: 1, NextState: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replay transition 1")
}

func TestQLearningAgent_ChooseActionGreedy(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	_, err := agent.Learn(0, 1, 10, 0)
	require.NoError(t, err)

	// exploit mode never explores
	for i := 0; i < 10; i++ {
		assert.Equal(t, 1, agent.ChooseAction(0, false))
	}

	// an all-zero row breaks ties on the lowest action index
	assert.Equal(t, 0, agent.ChooseAction(2, false))
}

func TestQLearningAgent_ChooseActionExplores(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4, WithEpsilon(1.0), WithSeed(7))

	// with ε=1 every choice is random but always within the action space
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		a := agent.ChooseAction(0, true)
		require.GreaterOrEqual(t, a, 0)
		require.Less(t, a, 4)
		seen[a] = true
	}
	assert.Greater(t, len(seen), 1, "exploration should hit more than one action")
}

func TestQLearningAgent_SARSAUpdate(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4, WithAlgorithm(SARSA))

	_, err := agent.Learn(2, 3, 10, 2) // Q(2,3) = 1.0
	require.NoError(t, err)

	// on-policy target uses the chosen next action, not the max:
	// target = 5 + 0.9*Q(2,0) = 5; Q(0,1) = 0.5
	newQ := agent.learnSARSA(0, 1, 5, 2, 0)
	assert.InDelta(t, 0.5, newQ, 1e-9)

	// had it used the max (Q(2,3)=1.0) the result would differ
	offPolicy, err := agent.Learn(0, 2, 5, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.59, offPolicy, 1e-9)
}

func TestQLearningAgent_TrainDimensionMismatch(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)

	_, err := agent.Train(nil, env.NewWindyGrid(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid is 70x4 but table is 5x4")
}

func TestQLearningAgent_TrainLineGridLearnsRight(t *testing.T) {
	world := env.NewLineGrid(5)
	agent := NewQLearningAgent("learner", world.States(), world.Actions(), WithSeed(1))

	rewards, err := agent.Train(nil, world, 200)
	require.NoError(t, err)
	require.Len(t, rewards, 200)

	// the greedy policy walks straight toward the goal from every
	// non-terminal cell
	policy := agent.Policy()
	for s := 0; s < 4; s++ {
		assert.Equalf(t, env.Right, policy[s], "state %d should move right", s)
	}

	// the value of moving right grows along the corridor toward the goal
	assert.Greater(t, agent.QValue(3, env.Right), agent.QValue(0, env.Right))
}

func TestQLearningAgent_TrainSARSALineGrid(t *testing.T) {
	world := env.NewLineGrid(5)
	agent := NewQLearningAgent("learner", world.States(), world.Actions(),
		WithAlgorithm(SARSA), WithSeed(3))

	rewards, err := agent.Train(nil, world, 200)
	require.NoError(t, err)
	require.Len(t, rewards, 200)

	policy := agent.Policy()
	for s := 0; s < 4; s++ {
		assert.Equalf(t, env.Right, policy[s], "state %d should move right", s)
	}
}

func TestQLearningAgent_QTableCopyIsolation(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)
	_, err := agent.Learn(1, 2, 10, 3)
	require.NoError(t, err)

	table := agent.QTable()
	table.Set(1, 2, 42)

	assert.InDelta(t, 1.0, agent.QValue(1, 2), 1e-9)
}

func TestQLearningAgent_FormatQTable(t *testing.T) {
	agent := NewQLearningAgent("learner", 2, 2)

	_, err := agent.Learn(0, 1, 10, 0)
	require.NoError(t, err)

	formatted := agent.FormatQTable()
	assert.Contains(t, formatted, "1.000")
	assert.Contains(t, formatted, "0.000")
}

func TestQLearningAgent_Run(t *testing.T) {
	agent := NewQLearningAgent("learner", 5, 4)
	rc, emit := newTestRunContext(0)

	require.NoError(t, agent.Run(rc))

	events := drainEvents(emit)
	require.Len(t, events, 10) // banner, seven replays, stats, summary

	assert.Equal(t, "training on 7 recorded experiences (α=0.1 γ=0.9 ε=0.2)", events[0].Text())

	stats, ok := events[8].Content.Parts[0].(core.DataPart)
	require.True(t, ok)
	assert.Equal(t, 7, stats.Data["updates"])
	assert.Equal(t, []int{2, 1, 1, 1, 3}, stats.Data["policy"])

	assert.Equal(t, "learned from 7 updates, total reward 51.0", events[9].Text())
	assert.Equal(t, []int{2, 1, 1, 1, 3}, events[9].Actions.StateDelta["policy"])
}
