package env

import (
	"fmt"
	"sort"

	"github.com/agentica-go/agentica/core"
)

// Room identifiers for the two-room vacuum world.
const (
	RoomA = "A"
	RoomB = "B"
)

// Action names understood by VacuumWorld.Apply. The reflex and model-based
// agents emit exactly these.
const (
	ActionSuck      = "Suck"
	ActionMoveLeft  = "MoveLeft"
	ActionMoveRight = "MoveRight"
	ActionShutdown  = "Shutdown"
)

// SignalDirty is the percept signal carrying the current room's dirt status.
const SignalDirty = "dirty"

// VacuumWorld models the classic two-room vacuum environment: rooms A and B,
// each either clean or dirty, with a single agent occupying one room at a
// time. Moving right always lands in B, moving left in A.
type VacuumWorld struct {
	dirt     map[string]bool
	location string
}

// VacuumOption customizes the initial world configuration.
type VacuumOption func(w *VacuumWorld)

// WithCleanRooms marks the given rooms clean at start (both rooms default
// to dirty).
func WithCleanRooms(rooms ...string) VacuumOption {
	return func(w *VacuumWorld) {
		for _, r := range rooms {
			if _, ok := w.dirt[r]; ok {
				w.dirt[r] = false
			}
		}
	}
}

// WithAgentAt places the agent in the given room at start (default A).
func WithAgentAt(room string) VacuumOption {
	return func(w *VacuumWorld) {
		if _, ok := w.dirt[room]; ok {
			w.location = room
		}
	}
}

// NewVacuumWorld creates a world with both rooms dirty and the agent in
// room A.
func NewVacuumWorld(opts ...VacuumOption) *VacuumWorld {
	w := &VacuumWorld{
		dirt:     map[string]bool{RoomA: true, RoomB: true},
		location: RoomA,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Location returns the room the agent currently occupies.
func (w *VacuumWorld) Location() string { return w.location }

// Dirty reports whether the given room currently has dirt.
func (w *VacuumWorld) Dirty(room string) bool { return w.dirt[room] }

// AllClean reports whether every room is clean.
func (w *VacuumWorld) AllClean() bool {
	for _, d := range w.dirt {
		if d {
			return false
		}
	}

	return true
}

// Rooms returns the room identifiers in stable order.
func (w *VacuumWorld) Rooms() []string {
	rooms := make([]string, 0, len(w.dirt))
	for r := range w.dirt {
		rooms = append(rooms, r)
	}
	sort.Strings(rooms)

	return rooms
}

// Percept returns the agent's current observation: its room and that room's
// dirt status.
func (w *VacuumWorld) Percept() core.Percept {
	return core.NewPercept(w.location, map[string]any{SignalDirty: w.dirt[w.location]})
}

// Apply executes an action against the world. Shutdown is accepted and
// leaves the world unchanged; unknown actions are rejected.
func (w *VacuumWorld) Apply(a core.Action) error {
	switch a.Name {
	case ActionSuck:
		w.dirt[w.location] = false
	case ActionMoveRight:
		w.location = RoomB
	case ActionMoveLeft:
		w.location = RoomA
	case ActionShutdown:
	default:
		return fmt.Errorf("vacuum world: unknown action %q", a.Name)
	}

	return nil
}

// VacuumPerceptScript returns the canonical four-step percept sequence used
// by the reflex demo: dirty A, clean A, dirty B, clean B.
func VacuumPerceptScript() []core.Percept {
	return []core.Percept{
		core.NewPercept(RoomA, map[string]any{SignalDirty: true}),
		core.NewPercept(RoomA, map[string]any{SignalDirty: false}),
		core.NewPercept(RoomB, map[string]any{SignalDirty: true}),
		core.NewPercept(RoomB, map[string]any{SignalDirty: false}),
	}
}
