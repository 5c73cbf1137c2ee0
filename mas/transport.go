package mas

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// TransportCapacity is how many items a transport can carry at once.
const TransportCapacity = 50

// Transport carries picked items from a shelf to a delivery dock. It
// accepts a transport request only while idle and when the shipment fits
// its capacity.
type Transport struct {
	Worker
	capacity int
	load     int
}

// NewTransport creates a transport at the given position.
func NewTransport(id string, position Point) *Transport {
	return &Transport{
		Worker:   NewWorker(id, RoleTransport, position),
		capacity: TransportCapacity,
	}
}

// Capacity returns the carrying capacity in items.
func (t *Transport) Capacity() int { return t.capacity }

// Load returns the number of items currently loaded.
func (t *Transport) Load() int { return t.load }

// Handle dispatches one message to the transport's behavior.
func (t *Transport) Handle(rc *core.RunContext, sys *System, msg Message) error {
	switch msg.Type {
	case MsgTransportRequest:
		return t.handleTransport(rc, msg)
	case MsgPickupReady:
		rc.LogInfo("agent %s notified that pickup is ready at %s", t.ID(), msg.Sender)
		return nil
	default:
		rc.LogDebug("agent %s ignoring %s from %s", t.ID(), msg.Type, msg.Sender)
		return nil
	}
}

// handleTransport hauls a shipment from the pickup point to the delivery
// dock.
func (t *Transport) handleTransport(rc *core.RunContext, msg Message) error {
	pickup, _ := msg.Content["pickup_location"].(Point)
	delivery, _ := msg.Content["delivery_location"].(Point)
	count, _ := msg.Content["item_count"].(int)
	orderID, _ := msg.Content["order_id"].(string)

	if err := rc.EmitText(t.ID(), fmt.Sprintf("transport request for %s: %d items", orderID, count)); err != nil {
		return err
	}

	if t.State() != StateIdle || count > t.capacity {
		return rc.EmitText(t.ID(), fmt.Sprintf("cannot transport for %s: busy or capacity exceeded", orderID))
	}

	t.SetState(StateWorking)
	t.MoveTo(rc, pickup)
	t.load += count
	rc.LogDebug("agent %s loaded %d items at %s", t.ID(), count, pickup)
	t.MoveTo(rc, delivery)
	t.load -= count
	t.SetState(StateIdle)
	t.CompleteTask()

	return rc.EmitText(t.ID(), fmt.Sprintf("delivered %d items to %s", count, delivery))
}
