package agent

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
)

// Algorithm selects the temporal-difference update rule used during
// episode training.
type Algorithm string

// Supported learning algorithms.
const (
	QLearning Algorithm = "q"     // off-policy: target uses the best next-state action
	SARSA     Algorithm = "sarsa" // on-policy: target uses the action actually taken next
)

// LearningStats summarizes the learning performed so far.
type LearningStats struct {
	Updates       int
	TotalReward   float64
	AverageReward float64
}

// QLearningAgent learns state-action values from experience using tabular
// temporal-difference updates:
//
//	Q(s,a) ← (1−α)·Q(s,a) + α·(r + γ·max_a' Q(s',a'))
//
// The table is a dense states×actions matrix, zero-initialized. Action
// selection is ε-greedy during training and purely greedy when exploiting.
type QLearningAgent struct {
	BaseAgent
	states    int
	actions   int
	alpha     float64
	gamma     float64
	epsilon   float64
	algorithm Algorithm
	q         *mat.Dense
	rng       *rand.Rand

	updates     int
	totalReward float64
}

// QLearningOption customizes a QLearningAgent.
type QLearningOption func(a *QLearningAgent)

// WithAlpha sets the learning rate (default 0.1).
func WithAlpha(alpha float64) QLearningOption {
	return func(a *QLearningAgent) { a.alpha = alpha }
}

// WithGamma sets the discount factor (default 0.9).
func WithGamma(gamma float64) QLearningOption {
	return func(a *QLearningAgent) { a.gamma = gamma }
}

// WithEpsilon sets the exploration rate (default 0.2).
func WithEpsilon(epsilon float64) QLearningOption {
	return func(a *QLearningAgent) { a.epsilon = epsilon }
}

// WithAlgorithm selects the episode-training update rule (default QLearning).
func WithAlgorithm(alg Algorithm) QLearningOption {
	return func(a *QLearningAgent) { a.algorithm = alg }
}

// WithSeed seeds the exploration source, making training reproducible.
func WithSeed(seed int64) QLearningOption {
	return func(a *QLearningAgent) { a.rng = rand.New(rand.NewSource(seed)) }
}

// NewQLearningAgent creates a learning agent over a states×actions table.
func NewQLearningAgent(name string, states, actions int, opts ...QLearningOption) *QLearningAgent {
	a := &QLearningAgent{
		BaseAgent: NewBaseAgent(name),
		states:    states,
		actions:   actions,
		alpha:     0.1,
		gamma:     0.9,
		epsilon:   0.2,
		algorithm: QLearning,
		q:         mat.NewDense(states, actions, nil),
	}
	a.SetType("learning")
	a.SetDescription("Learning agent improving a tabular Q-function from experience")
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(1))
	}

	return a
}

// States returns the size of the state space.
func (a *QLearningAgent) States() int { return a.states }

// Actions returns the size of the action space.
func (a *QLearningAgent) Actions() int { return a.actions }

// QValue returns the current estimate for one state-action pair.
func (a *QLearningAgent) QValue(state, action int) float64 { return a.q.At(state, action) }

// QTable returns a copy of the Q-table.
func (a *QLearningAgent) QTable() *mat.Dense { return mat.DenseCopyOf(a.q) }

// Stats returns the learning counters accumulated so far.
func (a *QLearningAgent) Stats() LearningStats {
	s := LearningStats{Updates: a.updates, TotalReward: a.totalReward}
	if a.updates > 0 {
		s.AverageReward = a.totalReward / float64(a.updates)
	}

	return s
}

// checkBounds validates a state-action pair against the table dimensions.
func (a *QLearningAgent) checkBounds(state, action int) error {
	if state < 0 || state >= a.states {
		return fmt.Errorf("state %d out of range [0,%d)", state, a.states)
	}
	if action < 0 || action >= a.actions {
		return fmt.Errorf("action %d out of range [0,%d)", action, a.actions)
	}

	return nil
}

// Learn applies one Q-learning update and returns the new Q(s,a).
func (a *QLearningAgent) Learn(state, action int, reward float64, next int) (float64, error) {
	if err := a.checkBounds(state, action); err != nil {
		return 0, err
	}
	if next < 0 || next >= a.states {
		return 0, fmt.Errorf("next state %d out of range [0,%d)", next, a.states)
	}

	target := reward + a.gamma*mat.Max(a.q.RowView(next))

	return a.update(state, action, reward, target), nil
}

// learnSARSA applies the on-policy update whose target uses the action
// actually selected in the next state.
func (a *QLearningAgent) learnSARSA(state, action int, reward float64, next, nextAction int) float64 {
	target := reward + a.gamma*a.q.At(next, nextAction)

	return a.update(state, action, reward, target)
}

// update blends the target into the current estimate and tracks counters.
func (a *QLearningAgent) update(state, action int, reward, target float64) float64 {
	newQ := (1-a.alpha)*a.q.At(state, action) + a.alpha*target
	a.q.Set(state, action, newQ)
	a.updates++
	a.totalReward += reward

	return newQ
}

// ChooseAction selects an action for the state: with probability ε a random
// one (when exploring), otherwise the greedy argmax. Ties keep the lowest
// action index.
func (a *QLearningAgent) ChooseAction(state int, explore bool) int {
	if explore && a.rng.Float64() < a.epsilon {
		return a.rng.Intn(a.actions)
	}

	return floats.MaxIdx(a.q.RawRowView(state))
}

// Policy extracts the greedy action for every state.
func (a *QLearningAgent) Policy() []int {
	policy := make([]int, a.states)
	for s := 0; s < a.states; s++ {
		policy[s] = floats.MaxIdx(a.q.RawRowView(s))
	}

	return policy
}

// Replay applies the Q-learning update to each recorded transition in
// order. When rc is non-nil every transition is persisted to the
// experience store and narrated as an event.
func (a *QLearningAgent) Replay(rc *core.RunContext, transitions []core.Transition) error {
	for i, t := range transitions {
		before := a.q.At(t.State, t.Action)
		newQ, err := a.Learn(t.State, t.Action, t.Reward, t.NextState)
		if err != nil {
			return fmt.Errorf("replay transition %d: %w", i+1, err)
		}

		if rc == nil {
			continue
		}

		if err := rc.Limiter.Increment(); err != nil {
			return err
		}
		if err := rc.RecordTransition(t); err != nil {
			return err
		}

		ev := core.NewDataEvent(a.Name(), map[string]any{
			"state":      t.State,
			"action":     t.Action,
			"reward":     t.Reward,
			"next_state": t.NextState,
			"q_before":   before,
			"q_after":    newQ,
		})
		ev.RunID = rc.RunID
		if err := rc.EmitEvent(ev); err != nil {
			return err
		}
	}

	return nil
}

// Train runs ε-greedy episodes against the grid, updating the table with
// the configured algorithm, and returns the total reward per episode. Each
// episode starts at the grid's start state and ends at the goal or after
// maxEpisodeSteps moves.
func (a *QLearningAgent) Train(rc *core.RunContext, world *env.Grid, episodes int) ([]float64, error) {
	if world.States() != a.states || world.Actions() != a.actions {
		return nil, fmt.Errorf("grid is %dx%d but table is %dx%d",
			world.States(), world.Actions(), a.states, a.actions)
	}

	rewards := make([]float64, episodes)
	for ep := 0; ep < episodes; ep++ {
		rewards[ep] = a.runEpisode(world)

		if rc != nil {
			rc.LogDebug("agent %s finished episode %d with reward %.1f", a.Name(), ep+1, rewards[ep])
		}
	}

	if rc != nil {
		ev := core.NewDataEvent(a.Name(), map[string]any{
			"episodes":  episodes,
			"algorithm": string(a.algorithm),
			"epsilon":   a.epsilon,
		})
		ev.RunID = rc.RunID
		if err := rc.EmitEvent(ev); err != nil {
			return rewards, err
		}
	}

	return rewards, nil
}

const maxEpisodeSteps = 1000

// runEpisode plays one episode and returns its total reward.
func (a *QLearningAgent) runEpisode(world *env.Grid) float64 {
	var total float64
	state := world.Start()
	action := a.ChooseAction(state, true)

	for step := 0; step < maxEpisodeSteps; step++ {
		if a.algorithm == SARSA {
			next, reward, done := world.Step(state, action)
			nextAction := a.ChooseAction(next, true)
			a.learnSARSA(state, action, reward, next, nextAction)
			total += reward
			state, action = next, nextAction
			if done {
				break
			}

			continue
		}

		act := a.ChooseAction(state, true)
		next, reward, done := world.Step(state, act)
		// Bounds hold by construction, Train validated the grid.
		_, _ = a.Learn(state, act, reward, next)
		total += reward
		state = next
		if done {
			break
		}
	}

	return total
}

// FormatQTable renders the Q-table with three-decimal cells for display.
func (a *QLearningAgent) FormatQTable() string {
	return fmt.Sprintf("%.3f", mat.Formatted(a.q, mat.Prefix(""), mat.Squeeze()))
}

// Run replays the canonical experience list, then reports the learned
// statistics and greedy policy.
func (a *QLearningAgent) Run(rc *core.RunContext) error {
	if err := rc.EmitText(a.Name(), fmt.Sprintf("training on %d recorded experiences (α=%.1f γ=%.1f ε=%.1f)",
		len(CanonicalExperience()), a.alpha, a.gamma, a.epsilon)); err != nil {
		return err
	}

	if err := a.Replay(rc, CanonicalExperience()); err != nil {
		return err
	}

	stats := a.Stats()
	ev := core.NewDataEvent(a.Name(), map[string]any{
		"updates":        stats.Updates,
		"total_reward":   stats.TotalReward,
		"average_reward": stats.AverageReward,
		"policy":         a.Policy(),
	})
	ev.RunID = rc.RunID
	if err := rc.EmitEvent(ev); err != nil {
		return err
	}

	rc.SetState("policy", a.Policy())

	return rc.EmitText(a.Name(), fmt.Sprintf("learned from %d updates, total reward %.1f", stats.Updates, stats.TotalReward))
}

// CanonicalExperience returns the fixed transition list the learning demo
// replays: seven hand-picked experiences over a 5-state, 4-action table.
func CanonicalExperience() []core.Transition {
	return []core.Transition{
		{State: 1, Action: 2, Reward: 10, NextState: 3},
		{State: 3, Action: 1, Reward: 5, NextState: 4},
		{State: 2, Action: 0, Reward: -2, NextState: 1},
		{State: 4, Action: 3, Reward: 15, NextState: 0},
		{State: 0, Action: 2, Reward: 8, NextState: 2},
		{State: 1, Action: 1, Reward: 12, NextState: 4},
		{State: 3, Action: 0, Reward: 3, NextState: 1},
	}
}
