package mas

import (
	"fmt"
	"math/rand"

	"github.com/agentica-go/agentica/core"
)

// SystemAuthor is the event author used for system-level narration such as
// incoming orders and the charging competition.
const SystemAuthor = "warehouse"

// Participant is the contract every registered warehouse agent satisfies.
// Worker provides everything except Handle, which each role implements
// with its own message dispatch.
type Participant interface {
	ID() string
	Role() string
	Position() Point
	State() State
	SetState(State)
	Battery() int
	Drain(rc *core.RunContext, amount int)
	Recharge()
	Metrics() Metrics
	Status() WorkerStatus
	Receive(Message)
	TakeInbox() []Message
	Send(rc *core.RunContext, sys *System, receiver string, t MessageType, content map[string]any) error
	Handle(rc *core.RunContext, sys *System, msg Message) error
}

// SystemMetrics counts system-wide activity.
type SystemMetrics struct {
	TotalMessages   int `json:"total_messages"`
	OrdersProcessed int `json:"orders_processed"`
	Ticks           int `json:"ticks"`
}

// System is the warehouse communication infrastructure: it registers
// participants, routes messages between them, and advances the simulation
// one tick at a time. Delivery is sequential in registration order, so the
// coordinator registered first handles an order before the workers it
// messages see their requests, all within the same tick.
type System struct {
	participants []Participant
	byID         map[string]Participant
	coordinator  *Coordinator
	log          []Message
	metrics      SystemMetrics
	rng          *rand.Rand
}

// SystemOption customizes a System.
type SystemOption func(s *System)

// WithSeed seeds the source used for shelf and dock placement and battery
// drain, making the simulation reproducible.
func WithSeed(seed int64) SystemOption {
	return func(s *System) { s.rng = rand.New(rand.NewSource(seed)) }
}

// NewSystem creates an empty warehouse system.
func NewSystem(opts ...SystemOption) *System {
	s := &System{byID: map[string]Participant{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}

	return s
}

// Add registers a participant. The first coordinator added becomes the
// system's coordinator.
func (s *System) Add(p Participant) error {
	if _, exists := s.byID[p.ID()]; exists {
		return fmt.Errorf("participant %s already registered", p.ID())
	}

	s.participants = append(s.participants, p)
	s.byID[p.ID()] = p
	if c, ok := p.(*Coordinator); ok && s.coordinator == nil {
		s.coordinator = c
	}

	return nil
}

// Coordinator returns the registered coordinator, or nil.
func (s *System) Coordinator() *Coordinator { return s.coordinator }

// Participants returns the registered participants in registration order.
func (s *System) Participants() []Participant {
	participants := make([]Participant, len(s.participants))
	copy(participants, s.participants)
	return participants
}

// Participant looks up a participant by ID.
func (s *System) Participant(id string) (Participant, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// FirstIdle returns the first registered idle participant with the given
// role, or nil.
func (s *System) FirstIdle(role string) Participant {
	for _, p := range s.participants {
		if p.Role() == role && p.State() == StateIdle {
			return p
		}
	}

	return nil
}

// MessageLog returns a copy of every message routed so far.
func (s *System) MessageLog() []Message {
	log := make([]Message, len(s.log))
	copy(log, s.log)
	return log
}

// Metrics returns the system-wide counters.
func (s *System) Metrics() SystemMetrics { return s.metrics }

// RandomLocation picks a shelf or dock position on the warehouse floor.
func (s *System) RandomLocation() Point {
	return Point{X: 1 + s.rng.Intn(10), Y: 1 + s.rng.Intn(10)}
}

// Route logs and delivers a message. Broadcast goes to every participant
// except the sender; a direct message to an unknown receiver is an error.
func (s *System) Route(rc *core.RunContext, msg Message) error {
	s.log = append(s.log, msg)
	s.metrics.TotalMessages++

	if msg.Receiver == Broadcast {
		for _, p := range s.participants {
			if p.ID() != msg.Sender {
				p.Receive(msg)
			}
		}
		rc.LogDebug("broadcast %s from %s", msg.Type, msg.Sender)

		return nil
	}

	p, ok := s.byID[msg.Receiver]
	if !ok {
		return fmt.Errorf("route %s: unknown receiver %s", msg.Type, msg.Receiver)
	}
	p.Receive(msg)
	rc.LogDebug("routed %s from %s to %s", msg.Type, msg.Sender, msg.Receiver)

	return nil
}

// ProcessOrder announces an order and hands it to the coordinator. The
// allocation happens on the next Tick.
func (s *System) ProcessOrder(rc *core.RunContext, order Order) error {
	if s.coordinator == nil {
		return fmt.Errorf("process order %s: no coordinator registered", order.ID)
	}

	s.metrics.OrdersProcessed++
	if err := rc.EmitText(SystemAuthor, fmt.Sprintf("new order received: %s", order)); err != nil {
		return err
	}

	return s.Route(rc, NewMessage(SystemAuthor, s.coordinator.ID(), MsgOrderRequest, map[string]any{"order": order}))
}

// Tick delivers every queued message in registration order, then resolves
// the charging-station competition among drained workers.
func (s *System) Tick(rc *core.RunContext) error {
	s.metrics.Ticks++

	for _, p := range s.participants {
		for _, msg := range p.TakeInbox() {
			if err := p.Handle(rc, s, msg); err != nil {
				return err
			}
		}
	}

	return s.resolveCharging(rc)
}

// resolveCharging lets every worker under the charging threshold request a
// station. The coordinator grants them in request order until none are
// left; the rest wait.
func (s *System) resolveCharging(rc *core.RunContext) error {
	var low []Participant
	for _, p := range s.participants {
		if p.Role() != RoleCoordinator && p.Battery() < ChargingThreshold {
			low = append(low, p)
		}
	}
	if len(low) == 0 || s.coordinator == nil {
		return nil
	}

	if err := rc.EmitText(SystemAuthor, fmt.Sprintf("%d agents need charging, competing for %d free stations",
		len(low), s.coordinator.FreeStations())); err != nil {
		return err
	}

	for _, p := range low {
		if err := p.Send(rc, s, s.coordinator.ID(), MsgResourceRequest, map[string]any{
			"resource": "charging_station",
		}); err != nil {
			return err
		}
	}

	for _, msg := range s.coordinator.TakeInbox() {
		if err := s.coordinator.Handle(rc, s, msg); err != nil {
			return err
		}
	}

	return nil
}

// DrainAll simulates one working period: every worker loses a random 5 to
// 15 charge. The coordinator does not run on battery.
func (s *System) DrainAll(rc *core.RunContext) {
	for _, p := range s.participants {
		if p.Role() == RoleCoordinator {
			continue
		}
		p.Drain(rc, 5+s.rng.Intn(11))
	}
}

// Status snapshots every participant for reporting, in registration order.
func (s *System) Status() []WorkerStatus {
	statuses := make([]WorkerStatus, 0, len(s.participants))
	for _, p := range s.participants {
		statuses = append(statuses, p.Status())
	}

	return statuses
}
