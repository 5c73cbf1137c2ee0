package mas

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// PickerCapacity is how many items a picker can carry at once.
const PickerCapacity = 10

// Picker retrieves order items from warehouse shelves. It accepts a pick
// request only while idle and with enough spare carrying capacity;
// otherwise the request is rejected and the order stays with whoever sent
// it.
type Picker struct {
	Worker
	capacity int
	load     int
}

// NewPicker creates a picker at the given position.
func NewPicker(id string, position Point) *Picker {
	return &Picker{
		Worker:   NewWorker(id, RolePicker, position),
		capacity: PickerCapacity,
	}
}

// Capacity returns the carrying capacity in items.
func (p *Picker) Capacity() int { return p.capacity }

// Load returns the number of items currently carried.
func (p *Picker) Load() int { return p.load }

// Handle dispatches one message to the picker's behavior.
func (p *Picker) Handle(rc *core.RunContext, sys *System, msg Message) error {
	switch msg.Type {
	case MsgPickRequest:
		return p.handlePick(rc, msg)
	case MsgCollaborationRequest:
		return p.handleCollaboration(rc, msg)
	default:
		rc.LogDebug("agent %s ignoring %s from %s", p.ID(), msg.Type, msg.Sender)
		return nil
	}
}

// handlePick retrieves the requested items from the shelf location.
func (p *Picker) handlePick(rc *core.RunContext, msg Message) error {
	items, _ := msg.Content["items"].([]string)
	shelf, _ := msg.Content["location"].(Point)
	orderID, _ := msg.Content["order_id"].(string)

	if err := rc.EmitText(p.ID(), fmt.Sprintf("pick request for %s: %d items at %s", orderID, len(items), shelf)); err != nil {
		return err
	}

	if p.State() != StateIdle || p.load+len(items) > p.capacity {
		return rc.EmitText(p.ID(), fmt.Sprintf("cannot pick for %s: busy or capacity exceeded", orderID))
	}

	p.SetState(StateWorking)
	p.MoveTo(rc, shelf)
	p.load += len(items)
	p.Drain(rc, len(items))
	p.SetState(StateIdle)
	p.CompleteTask()

	return rc.EmitText(p.ID(), fmt.Sprintf("picked %d items at %s", len(items), shelf))
}

// handleCollaboration accepts a collaboration offer when idle.
func (p *Picker) handleCollaboration(rc *core.RunContext, msg Message) error {
	if p.State() != StateIdle {
		rc.LogDebug("agent %s declining collaboration from %s", p.ID(), msg.Sender)
		return nil
	}

	p.recordCollaboration()
	rc.LogInfo("agent %s accepting collaboration from %s", p.ID(), msg.Sender)

	return nil
}
