package mas

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// Priority ranks how urgently an order should be fulfilled.
type Priority string

// Order priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Order is a customer order awaiting fulfillment.
type Order struct {
	ID       string   `json:"id"`
	Items    []string `json:"items"`
	Priority Priority `json:"priority"`
}

// String renders the order for logs, e.g. "ORD_001 (3 items, high priority)".
func (o Order) String() string {
	return fmt.Sprintf("%s (%d items, %s priority)", o.ID, len(o.Items), o.Priority)
}

// DefaultChargingStations is the number of shared charging stations.
const DefaultChargingStations = 3

// Coordinator allocates incoming orders to idle workers and arbitrates the
// shared charging stations. Allocation needs both an idle picker and an
// idle transport; orders that cannot be placed are queued. A granted
// station stays taken, so late requesters wait when demand exceeds supply.
type Coordinator struct {
	Worker
	stations int
	free     int
	pending  []Order
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(c *Coordinator)

// WithChargingStations sets the number of shared charging stations
// (default 3).
func WithChargingStations(n int) CoordinatorOption {
	return func(c *Coordinator) {
		c.stations = n
		c.free = n
	}
}

// NewCoordinator creates the coordinator at the center of the floor.
func NewCoordinator(id string, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		Worker:   NewWorker(id, RoleCoordinator, Point{X: 5, Y: 5}),
		stations: DefaultChargingStations,
		free:     DefaultChargingStations,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Stations returns the total number of charging stations.
func (c *Coordinator) Stations() int { return c.stations }

// FreeStations returns how many charging stations remain unallocated.
func (c *Coordinator) FreeStations() int { return c.free }

// PendingOrders returns a copy of the orders queued for lack of idle
// workers.
func (c *Coordinator) PendingOrders() []Order {
	pending := make([]Order, len(c.pending))
	copy(pending, c.pending)
	return pending
}

// Handle dispatches one message to the coordinator's behavior.
func (c *Coordinator) Handle(rc *core.RunContext, sys *System, msg Message) error {
	switch msg.Type {
	case MsgOrderRequest:
		order, ok := msg.Content["order"].(Order)
		if !ok {
			return fmt.Errorf("order request from %s carries no order", msg.Sender)
		}
		return c.allocate(rc, sys, order)
	case MsgResourceRequest:
		return c.arbitrateStation(rc, sys, msg)
	case MsgStatusUpdate:
		rc.LogInfo("agent %s noted status update from %s", c.ID(), msg.Sender)
		return nil
	default:
		rc.LogDebug("agent %s ignoring %s from %s", c.ID(), msg.Type, msg.Sender)
		return nil
	}
}

// allocate pairs an order with the first idle picker and transport, or
// queues it when either is unavailable.
func (c *Coordinator) allocate(rc *core.RunContext, sys *System, order Order) error {
	picker := sys.FirstIdle(RolePicker)
	transport := sys.FirstIdle(RoleTransport)
	if picker == nil || transport == nil {
		c.pending = append(c.pending, order)
		return rc.EmitText(c.ID(), fmt.Sprintf("queuing %s: no idle picker and transport available", order.ID))
	}

	shelf := sys.RandomLocation()
	dock := sys.RandomLocation()

	if err := c.Send(rc, sys, picker.ID(), MsgPickRequest, map[string]any{
		"order_id": order.ID,
		"items":    order.Items,
		"location": shelf,
	}); err != nil {
		return err
	}

	if err := c.Send(rc, sys, transport.ID(), MsgTransportRequest, map[string]any{
		"order_id":          order.ID,
		"pickup_location":   shelf,
		"delivery_location": dock,
		"item_count":        len(order.Items),
	}); err != nil {
		return err
	}

	return rc.EmitText(c.ID(), fmt.Sprintf("assigned %s to %s and %s", order.ID, picker.ID(), transport.ID()))
}

// arbitrateStation grants a charging station to the requester if one is
// free; otherwise the requester waits.
func (c *Coordinator) arbitrateStation(rc *core.RunContext, sys *System, msg Message) error {
	requester, ok := sys.Participant(msg.Sender)
	if !ok {
		return fmt.Errorf("resource request from unknown agent %s", msg.Sender)
	}

	if c.free == 0 {
		requester.SetState(StateWaiting)
		return rc.EmitText(c.ID(), fmt.Sprintf("no charging stations available, %s waits", requester.ID()))
	}

	c.free--
	requester.Recharge()

	return rc.EmitText(c.ID(), fmt.Sprintf("allocated charging station to %s", requester.ID()))
}
