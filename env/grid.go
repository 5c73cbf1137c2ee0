package env

// Movement actions for grid environments, indexed so they double as
// Q-table column indices.
const (
	Up = iota
	Right
	Down
	Left
)

// GridActions is the size of the grid action space.
const GridActions = 4

var gridActionNames = [GridActions]string{"Up", "Right", "Down", "Left"}

// ActionName returns a printable name for a grid action index.
func ActionName(a int) string {
	if a < 0 || a >= GridActions {
		return "Unknown"
	}

	return gridActionNames[a]
}

// Grid is a bounded rectangular world addressed by integer state index
// (row*cols + col). Moves off the edge leave the agent in place. An
// optional per-column wind pushes the agent toward row 0 after each move,
// as in the classic windy gridworld task.
type Grid struct {
	rows, cols  int
	start, goal int
	wind        []int
	stepReward  float64
	goalReward  float64
}

// GridOption customizes grid construction.
type GridOption func(g *Grid)

// WithStart sets the episode start cell.
func WithStart(row, col int) GridOption {
	return func(g *Grid) { g.start = g.StateAt(row, col) }
}

// WithGoal sets the terminal goal cell.
func WithGoal(row, col int) GridOption {
	return func(g *Grid) { g.goal = g.StateAt(row, col) }
}

// WithWind sets the per-column upward wind strengths. The slice must have
// one entry per column; anything else disables wind.
func WithWind(perColumn ...int) GridOption {
	return func(g *Grid) { g.wind = perColumn }
}

// WithRewards overrides the per-step and goal-entry rewards.
func WithRewards(step, goal float64) GridOption {
	return func(g *Grid) {
		g.stepReward = step
		g.goalReward = goal
	}
}

// NewGrid creates a rows×cols grid. Defaults: start at the top-left cell,
// goal at the bottom-right cell, no wind, -1 per step and +10 for entering
// the goal.
func NewGrid(rows, cols int, opts ...GridOption) *Grid {
	g := &Grid{
		rows:       rows,
		cols:       cols,
		start:      0,
		stepReward: -1,
		goalReward: 10,
	}
	g.goal = g.StateAt(rows-1, cols-1)
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewLineGrid creates a 1×cells corridor grid: start at cell 0, goal at the
// last cell. With five cells this matches the learning demo's 5-state,
// 4-action table; vertical moves bump against the walls.
func NewLineGrid(cells int) *Grid {
	return NewGrid(1, cells)
}

// NewWindyGrid creates the classic 7×10 windy gridworld: start (3,0), goal
// (3,7), upward winds 0,0,0,1,1,1,2,2,1,0 and -1 reward per step until the
// goal is reached.
func NewWindyGrid() *Grid {
	return NewGrid(7, 10,
		WithStart(3, 0),
		WithGoal(3, 7),
		WithWind(0, 0, 0, 1, 1, 1, 2, 2, 1, 0),
		WithRewards(-1, 0),
	)
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// States returns the size of the state space.
func (g *Grid) States() int { return g.rows * g.cols }

// Actions returns the size of the action space.
func (g *Grid) Actions() int { return GridActions }

// Start returns the episode start state.
func (g *Grid) Start() int { return g.start }

// Goal returns the terminal goal state.
func (g *Grid) Goal() int { return g.goal }

// StateAt converts grid coordinates to a state index.
func (g *Grid) StateAt(row, col int) int { return row*g.cols + col }

// Coords converts a state index back to grid coordinates.
func (g *Grid) Coords(state int) (row, col int) { return state / g.cols, state % g.cols }

// Step advances the environment by one action and returns the next state,
// the reward received, and whether the episode ended. Stepping from the
// goal is a no-op. Actions outside the action space leave the position
// unchanged but still cost a step.
func (g *Grid) Step(state, action int) (next int, reward float64, done bool) {
	if state == g.goal {
		return state, 0, true
	}

	row, col := g.Coords(state)
	switch action {
	case Up:
		row--
	case Right:
		col++
	case Down:
		row++
	case Left:
		col--
	}

	row = clampInt(row, 0, g.rows-1)
	col = clampInt(col, 0, g.cols-1)

	// Wind displaces from the landing column toward row 0.
	if len(g.wind) == g.cols {
		row = clampInt(row-g.wind[col], 0, g.rows-1)
	}

	next = g.StateAt(row, col)
	if next == g.goal {
		return next, g.goalReward, true
	}

	return next, g.stepReward, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
