package agent

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/env"
)

// Action names emitted by the goal-based agent while navigating a corridor.
const (
	ActionMoveForward  = "MoveForward"
	ActionMoveBackward = "MoveBackward"
	ActionJumpForward  = "JumpForward"
	ActionJumpBackward = "JumpBackward"
)

// PlanStatus classifies the outcome of a single planning step.
type PlanStatus string

// Planning step outcomes.
const (
	PlanGoalReached PlanStatus = "goal_reached" // already at the goal
	PlanAdvance     PlanStatus = "advance"      // one cell toward the goal
	PlanDetour      PlanStatus = "detour"       // next cell blocked, jumping over
	PlanBlocked     PlanStatus = "blocked"      // standing on an obstacle, jumping off
)

// PlanDecision is the result of one PlanStep call: the chosen status, the
// corresponding action (zero-valued when the goal is reached), the position
// after applying it, and a human-readable rationale.
type PlanDecision struct {
	Status    PlanStatus
	Action    core.Action
	Next      int
	Rationale string
}

// GoalAgent plans toward a numeric goal position on a one-dimensional
// corridor. The planner is a greedy single-step heuristic: move one cell
// toward the goal, or jump two cells when the direct path is blocked. Goals
// can be changed mid-run, which resets planning.
type GoalAgent struct {
	BaseAgent
	corridor *env.Corridor
	goal     int
	start    int
	budget   int
	history  []string
}

// GoalOption customizes a GoalAgent.
type GoalOption func(a *GoalAgent)

// WithCorridor sets the corridor the agent navigates (default length 100,
// no obstacles).
func WithCorridor(c *env.Corridor) GoalOption {
	return func(a *GoalAgent) { a.corridor = c }
}

// WithStartPosition sets the position ExecutePlan starts from during Run.
func WithStartPosition(pos int) GoalOption {
	return func(a *GoalAgent) { a.start = pos }
}

// WithPlanBudget caps the number of plan steps per execution (default 20).
func WithPlanBudget(n int) GoalOption {
	return func(a *GoalAgent) { a.budget = n }
}

// NewGoalAgent creates a goal-based agent aiming for the given corridor
// position.
func NewGoalAgent(name string, goal int, opts ...GoalOption) *GoalAgent {
	a := &GoalAgent{
		BaseAgent: NewBaseAgent(name),
		goal:      goal,
		budget:    20,
	}
	a.SetType("goal")
	a.SetDescription("Goal-based agent planning paths toward a target position")
	for _, opt := range opts {
		opt(a)
	}
	if a.corridor == nil {
		a.corridor = env.NewCorridor(100)
	}

	return a
}

// Goal returns the agent's current target position.
func (a *GoalAgent) Goal() int { return a.goal }

// SetGoal replaces the target position and resets planning.
func (a *GoalAgent) SetGoal(goal int) {
	a.history = append(a.history, fmt.Sprintf("GoalChange:%d", goal))
	a.goal = goal
}

// SetStart replaces the position the next Run starts from, e.g. to continue
// from where a previous leg ended.
func (a *GoalAgent) SetStart(pos int) { a.start = pos }

// History returns the labels of every planning decision taken so far.
func (a *GoalAgent) History() []string {
	h := make([]string, len(a.history))
	copy(h, a.history)

	return h
}

// PlanStep decides the next move from the given position: done at the goal,
// a two-cell jump when blocked (either standing on an obstacle or facing
// one), otherwise one cell toward the goal.
func (a *GoalAgent) PlanStep(pos int) PlanDecision {
	if pos == a.goal {
		a.history = append(a.history, "GoalAchieved")
		return PlanDecision{
			Status:    PlanGoalReached,
			Next:      pos,
			Rationale: fmt.Sprintf("goal %d reached", a.goal),
		}
	}

	forward := pos < a.goal

	if a.corridor.Blocked(pos) {
		a.history = append(a.history, "AvoidObstacle")
		return a.jump(pos, forward, "current position is blocked, jumping off the obstacle")
	}

	next := pos - 1
	if forward {
		next = pos + 1
	}

	if a.corridor.Blocked(next) {
		a.history = append(a.history, "PathBlocked")
		return a.jump(pos, forward, fmt.Sprintf("position %d is blocked, jumping over", next))
	}

	name := ActionMoveBackward
	label := "MoveBackward"
	if forward {
		name = ActionMoveForward
		label = "MoveForward"
	}
	a.history = append(a.history, label)

	return PlanDecision{
		Status:    PlanAdvance,
		Action:    core.NewAction(name).WithParam("to", next),
		Next:      a.corridor.Clamp(next),
		Rationale: fmt.Sprintf("distance to goal: %d", abs(a.goal-pos)),
	}
}

// jump builds the two-cell detour decision in the goal direction.
func (a *GoalAgent) jump(pos int, forward bool, rationale string) PlanDecision {
	name := ActionJumpBackward
	next := pos - 2
	if forward {
		name = ActionJumpForward
		next = pos + 2
	}

	status := PlanDetour
	if a.corridor.Blocked(pos) {
		status = PlanBlocked
	}

	return PlanDecision{
		Status:    status,
		Action:    core.NewAction(name).WithParam("to", a.corridor.Clamp(next)),
		Next:      a.corridor.Clamp(next),
		Rationale: rationale,
	}
}

// ExecutePlan runs the planner from start until the goal is reached or the
// step budget is exhausted, emitting one step event per decision when rc is
// non-nil. It returns the final position and the number of steps taken.
func (a *GoalAgent) ExecutePlan(rc *core.RunContext, start int) (final, steps int, err error) {
	pos := a.corridor.Clamp(start)

	for steps = 0; pos != a.goal && steps < a.budget; steps++ {
		d := a.PlanStep(pos)

		if rc != nil {
			if err := rc.Limiter.Increment(); err != nil {
				return pos, steps, err
			}

			p := core.NewPercept("corridor", map[string]any{
				"position": pos,
				"goal":     a.goal,
				"distance": abs(a.goal - pos),
			})
			rc.LogDebug("agent %s at position %d planned %s", a.Name(), pos, d.Status)
			if err := rc.EmitStep(a.Name(), p, d.Action, d.Rationale); err != nil {
				return pos, steps, err
			}
		}

		pos = d.Next
	}

	return pos, steps, nil
}

// Run executes the configured scenario and narrates the outcome. Failing
// to reach the goal within the budget is reported, not an error: the demo
// shows the bounded-planning property either way.
func (a *GoalAgent) Run(rc *core.RunContext) error {
	final, steps, err := a.ExecutePlan(rc, a.start)
	if err != nil {
		return err
	}

	rc.SetState("final_position", final)
	if final == a.goal {
		return rc.EmitText(a.Name(), fmt.Sprintf("goal %d reached in %d steps", a.goal, steps))
	}

	return rc.EmitText(a.Name(), fmt.Sprintf("stopped at %d after %d steps without reaching goal %d", final, steps, a.goal))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
