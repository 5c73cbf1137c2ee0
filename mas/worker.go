package mas

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// State tracks what a warehouse participant is currently doing.
type State string

// Participant states.
const (
	StateIdle     State = "idle"
	StateWorking  State = "working"
	StateMoving   State = "moving"
	StateCharging State = "charging"
	StateWaiting  State = "waiting"
)

// Participant roles.
const (
	RolePicker      = "Picker"
	RoleTransport   = "Transport"
	RoleCoordinator = "Coordinator"
)

// Battery thresholds, in percent. Workers below ChargingThreshold compete
// for a charging station at the end of a tick; Drain warns below
// WarningThreshold.
const (
	FullBattery       = 100
	ChargingThreshold = 30
	WarningThreshold  = 20
)

// moveCost is the battery cost of one relocation.
const moveCost = 2

// Point is a warehouse floor position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the position as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Metrics counts one participant's activity.
type Metrics struct {
	TasksCompleted   int `json:"tasks_completed"`
	MessagesSent     int `json:"messages_sent"`
	MessagesReceived int `json:"messages_received"`
	Collaborations   int `json:"collaborations"`
}

// WorkerStatus is a point-in-time snapshot for status reporting.
type WorkerStatus struct {
	ID       string  `json:"id"`
	Role     string  `json:"role"`
	State    State   `json:"state"`
	Battery  int     `json:"battery"`
	Position Point   `json:"position"`
	Metrics  Metrics `json:"metrics"`
}

// Worker is the shared core embedded by every warehouse participant: an
// identity, a floor position, a battery, an inbox, and activity counters.
// It is not safe for concurrent use; the System delivers messages
// sequentially.
type Worker struct {
	id       string
	role     string
	position Point
	state    State
	battery  int
	inbox    []Message
	metrics  Metrics
}

// NewWorker creates a worker core at the given position, idle with a full
// battery.
func NewWorker(id, role string, position Point) Worker {
	return Worker{
		id:       id,
		role:     role,
		position: position,
		state:    StateIdle,
		battery:  FullBattery,
	}
}

// ID returns the participant's unique identifier.
func (w *Worker) ID() string { return w.id }

// Role returns the participant's role name.
func (w *Worker) Role() string { return w.role }

// Position returns the current floor position.
func (w *Worker) Position() Point { return w.position }

// State returns the current activity state.
func (w *Worker) State() State { return w.state }

// SetState transitions the participant to a new activity state.
func (w *Worker) SetState(s State) { w.state = s }

// Battery returns the remaining charge in percent.
func (w *Worker) Battery() int { return w.battery }

// Metrics returns a copy of the activity counters.
func (w *Worker) Metrics() Metrics { return w.metrics }

// Status captures a snapshot for reporting.
func (w *Worker) Status() WorkerStatus {
	return WorkerStatus{
		ID:       w.id,
		Role:     w.role,
		State:    w.state,
		Battery:  w.battery,
		Position: w.position,
		Metrics:  w.metrics,
	}
}

// Receive queues a message for the next tick.
func (w *Worker) Receive(msg Message) {
	w.inbox = append(w.inbox, msg)
	w.metrics.MessagesReceived++
}

// TakeInbox removes and returns all queued messages in arrival order.
func (w *Worker) TakeInbox() []Message {
	msgs := w.inbox
	w.inbox = nil
	return msgs
}

// Send routes a message from this worker through the system.
func (w *Worker) Send(rc *core.RunContext, sys *System, receiver string, t MessageType, content map[string]any) error {
	w.metrics.MessagesSent++
	return sys.Route(rc, NewMessage(w.id, receiver, t, content))
}

// Drain consumes battery charge, clamped at zero, and warns once the level
// falls under the warning threshold.
func (w *Worker) Drain(rc *core.RunContext, amount int) {
	w.battery = max(0, w.battery-amount)
	if w.battery < WarningThreshold {
		rc.LogWarn("agent %s battery low: %d%%", w.id, w.battery)
	}
}

// Recharge restores a full battery and marks the worker as charging.
func (w *Worker) Recharge() {
	w.battery = FullBattery
	w.state = StateCharging
}

// MoveTo relocates the worker, spending the move cost.
func (w *Worker) MoveTo(rc *core.RunContext, target Point) {
	w.state = StateMoving
	rc.LogDebug("agent %s moving from %s to %s", w.id, w.position, target)
	w.position = target
	w.Drain(rc, moveCost)
}

// CompleteTask records one finished task.
func (w *Worker) CompleteTask() { w.metrics.TasksCompleted++ }

// recordCollaboration counts one accepted collaboration.
func (w *Worker) recordCollaboration() { w.metrics.Collaborations++ }
