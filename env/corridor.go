package env

import "sort"

// Corridor is a one-dimensional world of integer positions 0..Length()
// with a set of blocked positions. The goal-based agent plans moves along
// it one cell at a time, detouring around obstacles.
type Corridor struct {
	length    int
	obstacles map[int]bool
}

// NewCorridor creates a corridor spanning positions 0..length with the
// given obstacle positions. Obstacles outside the corridor are ignored.
func NewCorridor(length int, obstacles ...int) *Corridor {
	c := &Corridor{length: length, obstacles: map[int]bool{}}
	for _, o := range obstacles {
		if o >= 0 && o <= length {
			c.obstacles[o] = true
		}
	}

	return c
}

// Length returns the highest valid position.
func (c *Corridor) Length() int { return c.length }

// Blocked reports whether the given position holds an obstacle.
func (c *Corridor) Blocked(pos int) bool { return c.obstacles[pos] }

// InBounds reports whether the position lies on the corridor.
func (c *Corridor) InBounds(pos int) bool { return pos >= 0 && pos <= c.length }

// Clamp projects a position back onto the corridor.
func (c *Corridor) Clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > c.length {
		return c.length
	}

	return pos
}

// AddObstacle blocks a position mid-run. Out-of-bounds positions are
// ignored.
func (c *Corridor) AddObstacle(pos int) {
	if c.InBounds(pos) {
		c.obstacles[pos] = true
	}
}

// Obstacles returns the blocked positions in ascending order.
func (c *Corridor) Obstacles() []int {
	obs := make([]int, 0, len(c.obstacles))
	for o := range c.obstacles {
		obs = append(obs, o)
	}
	sort.Ints(obs)

	return obs
}
