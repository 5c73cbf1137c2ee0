package mas

import (
	"fmt"

	"github.com/agentica-go/agentica/agent"
	"github.com/agentica-go/agentica/core"
)

// DefaultOrders returns the demo order book: three orders of mixed
// priority and size.
func DefaultOrders() []Order {
	return []Order{
		{ID: "ORD_001", Items: []string{"item1", "item2", "item3"}, Priority: PriorityHigh},
		{ID: "ORD_002", Items: []string{"item4", "item5"}, Priority: PriorityNormal},
		{ID: "ORD_003", Items: []string{"item6", "item7", "item8", "item9"}, Priority: PriorityLow},
	}
}

// NewDefaultWarehouse builds the demo floor: a coordinator in the center,
// two pickers, and two transports.
func NewDefaultWarehouse(opts ...SystemOption) *System {
	sys := NewSystem(opts...)
	participants := []Participant{
		NewCoordinator("COORD_01"),
		NewPicker("PICKER_01", Point{X: 2, Y: 3}),
		NewPicker("PICKER_02", Point{X: 7, Y: 8}),
		NewTransport("TRANSPORT_01", Point{X: 1, Y: 1}),
		NewTransport("TRANSPORT_02", Point{X: 9, Y: 9}),
	}
	for _, p := range participants {
		// IDs are distinct by construction
		_ = sys.Add(p)
	}

	return sys
}

// WarehouseAgent adapts a warehouse System to the core.Agent contract.
// Each Run processes the next order from the book: it announces the order,
// ticks the system so messages flow, and drains batteries for the work
// period. Once the book is empty, Run emits a final status report and an
// escalation, which stops a driving LoopAgent.
type WarehouseAgent struct {
	agent.BaseAgent
	system *System
	orders []Order
	next   int
}

// WarehouseOption customizes a WarehouseAgent.
type WarehouseOption func(a *WarehouseAgent)

// WithSystem replaces the default warehouse floor.
func WithSystem(sys *System) WarehouseOption {
	return func(a *WarehouseAgent) { a.system = sys }
}

// WithOrders replaces the default order book.
func WithOrders(orders ...Order) WarehouseOption {
	return func(a *WarehouseAgent) { a.orders = orders }
}

// NewWarehouseAgent creates the multi-agent warehouse demo agent.
func NewWarehouseAgent(name string, opts ...WarehouseOption) *WarehouseAgent {
	a := &WarehouseAgent{
		BaseAgent: agent.NewBaseAgent(name),
		orders:    DefaultOrders(),
	}
	a.SetType("multi_agent")
	a.SetDescription("Multi-agent warehouse fulfilling orders through message passing")
	for _, opt := range opts {
		opt(a)
	}
	if a.system == nil {
		a.system = NewDefaultWarehouse()
	}

	return a
}

// System returns the underlying warehouse system.
func (a *WarehouseAgent) System() *System { return a.system }

// Orders returns a copy of the order book.
func (a *WarehouseAgent) Orders() []Order {
	orders := make([]Order, len(a.orders))
	copy(orders, a.orders)
	return orders
}

// Run processes the next order, or reports and escalates when none remain.
func (a *WarehouseAgent) Run(rc *core.RunContext) error {
	if a.next >= len(a.orders) {
		return a.finish(rc)
	}

	if err := rc.Limiter.Increment(); err != nil {
		return err
	}

	order := a.orders[a.next]
	a.next++
	rc.LogInfo("agent %s processing order %d of %d", a.Name(), a.next, len(a.orders))

	if err := a.system.ProcessOrder(rc, order); err != nil {
		return err
	}
	if err := a.system.Tick(rc); err != nil {
		return err
	}
	a.system.DrainAll(rc)

	m := a.system.Metrics()
	ev := core.NewDataEvent(a.Name(), map[string]any{
		"tick":             m.Ticks,
		"orders_processed": m.OrdersProcessed,
		"total_messages":   m.TotalMessages,
	})
	ev.RunID = rc.RunID

	return rc.EmitEvent(ev)
}

// finish emits the final system status, then escalates to stop the
// driving loop.
func (a *WarehouseAgent) finish(rc *core.RunContext) error {
	statuses := a.system.Status()
	m := a.system.Metrics()

	var completed int
	for _, st := range statuses {
		completed += st.Metrics.TasksCompleted
	}

	rc.SetState("warehouse_status", statuses)

	ev := core.NewDataEvent(a.Name(), map[string]any{
		"agents":           len(statuses),
		"status":           statuses,
		"orders_processed": m.OrdersProcessed,
		"total_messages":   m.TotalMessages,
		"tasks_completed":  completed,
	})
	ev.RunID = rc.RunID
	if err := rc.EmitEvent(ev); err != nil {
		return err
	}

	summary := fmt.Sprintf("simulation complete: %d orders, %d messages, %d tasks finished",
		m.OrdersProcessed, m.TotalMessages, completed)
	esc := agent.CreateEscalationEvent(rc.RunID, a.Name(), &core.Content{
		Role:  "agent",
		Parts: []core.Part{core.TextPart{Text: summary}},
	})

	return rc.EmitEvent(esc)
}
