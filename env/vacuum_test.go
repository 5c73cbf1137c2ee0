package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentica-go/agentica/core"
)

func TestVacuumWorld_Defaults(t *testing.T) {
	w := NewVacuumWorld()

	assert.Equal(t, RoomA, w.Location())
	assert.True(t, w.Dirty(RoomA))
	assert.True(t, w.Dirty(RoomB))
	assert.False(t, w.AllClean())
	assert.Equal(t, []string{"A", "B"}, w.Rooms())
}

func TestVacuumWorld_Options(t *testing.T) {
	w := NewVacuumWorld(WithCleanRooms(RoomB), WithAgentAt(RoomB))

	assert.Equal(t, RoomB, w.Location())
	assert.True(t, w.Dirty(RoomA))
	assert.False(t, w.Dirty(RoomB))

	// Unknown rooms are ignored.
	w2 := NewVacuumWorld(WithAgentAt("C"), WithCleanRooms("C"))
	assert.Equal(t, RoomA, w2.Location())
}

func TestVacuumWorld_Percept(t *testing.T) {
	w := NewVacuumWorld(WithCleanRooms(RoomA))

	p := w.Percept()
	assert.Equal(t, RoomA, p.Location)
	assert.False(t, p.Bool(SignalDirty))
}

func TestVacuumWorld_Apply(t *testing.T) {
	w := NewVacuumWorld()

	require.NoError(t, w.Apply(core.NewAction(ActionSuck)))
	assert.False(t, w.Dirty(RoomA))

	require.NoError(t, w.Apply(core.NewAction(ActionMoveRight)))
	assert.Equal(t, RoomB, w.Location())

	require.NoError(t, w.Apply(core.NewAction(ActionSuck)))
	assert.True(t, w.AllClean())

	require.NoError(t, w.Apply(core.NewAction(ActionMoveLeft)))
	assert.Equal(t, RoomA, w.Location())

	require.NoError(t, w.Apply(core.NewAction(ActionShutdown)))
	assert.Equal(t, RoomA, w.Location())

	err := w.Apply(core.NewAction("Fly"))
	assert.ErrorContains(t, err, "unknown action")
}

func TestVacuumPerceptScript(t *testing.T) {
	script := VacuumPerceptScript()

	require.Len(t, script, 4)
	assert.Equal(t, RoomA, script[0].Location)
	assert.True(t, script[0].Bool(SignalDirty))
	assert.Equal(t, RoomA, script[1].Location)
	assert.False(t, script[1].Bool(SignalDirty))
	assert.Equal(t, RoomB, script[2].Location)
	assert.True(t, script[2].Bool(SignalDirty))
	assert.Equal(t, RoomB, script[3].Location)
	assert.False(t, script[3].Bool(SignalDirty))
}
