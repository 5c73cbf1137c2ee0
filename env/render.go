package env

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Renderer turns world snapshots into terminal-friendly strings. Colors can
// be disabled for plain output (tests, non-TTY sinks).
type Renderer struct {
	au aurora.Aurora
}

// NewRenderer creates a renderer; pass false to strip ANSI colors.
func NewRenderer(colors bool) *Renderer {
	return &Renderer{au: aurora.NewAurora(colors)}
}

// VacuumWorld renders the two rooms with dirt markers and the agent's
// position, e.g. "[A @ dirty] [B clean]".
func (r *Renderer) VacuumWorld(w *VacuumWorld) string {
	var b strings.Builder
	for i, room := range w.Rooms() {
		if i > 0 {
			b.WriteByte(' ')
		}

		marker := r.au.Green("clean")
		if w.Dirty(room) {
			marker = r.au.Red("dirty")
		}

		if w.Location() == room {
			fmt.Fprintf(&b, "[%s %s %s]", r.au.Bold(room), r.au.Yellow("@"), marker)
		} else {
			fmt.Fprintf(&b, "[%s %s]", r.au.Bold(room), marker)
		}
	}

	return b.String()
}

// Corridor renders a window of the corridor around the agent and goal:
// '#' obstacle, 'A' agent, 'G' goal, '.' free cell. The window extends two
// cells beyond the agent/goal span, clamped to the corridor bounds.
func (r *Renderer) Corridor(c *Corridor, pos, goal int) string {
	lo := c.Clamp(min(pos, goal) - 2)
	hi := c.Clamp(max(pos, goal) + 2)

	var b strings.Builder
	fmt.Fprintf(&b, "%3d ", lo)
	for p := lo; p <= hi; p++ {
		switch {
		case p == pos:
			b.WriteString(r.au.Bold(r.au.Green("A")).String())
		case p == goal:
			b.WriteString(r.au.Yellow("G").String())
		case c.Blocked(p):
			b.WriteString(r.au.Red("#").String())
		default:
			b.WriteByte('.')
		}
	}
	fmt.Fprintf(&b, " %d", hi)

	return b.String()
}

// Grid renders the full grid with one cell per state: the agent in green,
// the goal in yellow, other cells in blue, separated by '|'.
func (r *Renderer) Grid(g *Grid, state int) string {
	var b strings.Builder
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			s := g.StateAt(row, col)
			cell := fmt.Sprintf("%3d ", s)
			switch s {
			case state:
				b.WriteString(r.au.Green(cell).String())
			case g.Goal():
				b.WriteString(r.au.Yellow(cell).String())
			default:
				b.WriteString(r.au.Blue(cell).String())
			}
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}

	return b.String()
}
