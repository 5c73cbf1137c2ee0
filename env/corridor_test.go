package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorridor_Construction(t *testing.T) {
	c := NewCorridor(100, 85, 90, 95, 200, -5)

	assert.Equal(t, 100, c.Length())
	assert.Equal(t, []int{85, 90, 95}, c.Obstacles(), "out-of-bounds obstacles are dropped")
	assert.True(t, c.Blocked(85))
	assert.False(t, c.Blocked(86))
}

func TestCorridor_Bounds(t *testing.T) {
	c := NewCorridor(50)

	assert.True(t, c.InBounds(0))
	assert.True(t, c.InBounds(50))
	assert.False(t, c.InBounds(-1))
	assert.False(t, c.InBounds(51))

	assert.Equal(t, 0, c.Clamp(-3))
	assert.Equal(t, 50, c.Clamp(64))
	assert.Equal(t, 25, c.Clamp(25))
}

func TestCorridor_AddObstacle(t *testing.T) {
	c := NewCorridor(10)

	c.AddObstacle(4)
	c.AddObstacle(99)

	assert.True(t, c.Blocked(4))
	assert.Equal(t, []int{4}, c.Obstacles())
}
