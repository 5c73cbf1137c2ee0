package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agentica-go/agentica/core"
	"github.com/agentica-go/agentica/experience"
	"github.com/agentica-go/agentica/logging"
)

// MockAgent for testing composite agents
type MockAgent struct {
	mock.Mock
	name string
}

func NewMockAgent(name string) *MockAgent {
	return &MockAgent{name: name}
}

func (m *MockAgent) Name() string { return m.name }

func (m *MockAgent) Run(rc *core.RunContext) error {
	args := m.Called(rc)
	return args.Error(0)
}

func (m *MockAgent) Start(rc *core.RunContext) error {
	args := m.Called(rc)
	return args.Error(0)
}

func (m *MockAgent) Stop(rc *core.RunContext) error {
	args := m.Called(rc)
	return args.Error(0)
}

func (m *MockAgent) SubAgents() []core.Agent {
	args := m.Called()
	return args.Get(0).([]core.Agent)
}

func (m *MockAgent) SetSubAgents(children ...core.Agent) error {
	args := m.Called(children)
	return args.Error(0)
}

func (m *MockAgent) Parent() core.Agent {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(core.Agent)
}

func (m *MockAgent) FindAgent(name string) core.Agent {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(core.Agent)
}

func (m *MockAgent) Description() string {
	args := m.Called()
	return args.String(0)
}

// newTestRunContext builds a RunContext with buffered channels and an
// in-memory experience store, suitable for driving agents directly.
func newTestRunContext(maxSteps int) (*core.RunContext, chan core.Event) {
	emit := make(chan core.Event, 100)
	resume := make(chan struct{}, 100)
	sess := core.NewSession("test-session")
	rc := core.NewRunContext(
		context.Background(), "test-session", "test-run",
		core.AgentInfo{Name: "test", Type: "test"},
		core.Content{}, maxSteps,
		emit, resume, sess, nil, experience.NewInMemoryStore(), logging.NoOpLogger{},
	)
	return rc, emit
}

// drainEvents collects everything currently buffered on the emit channel.
func drainEvents(emit chan core.Event) []core.Event {
	var events []core.Event
	for {
		select {
		case ev := <-emit:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// BaseAgent test cases

func TestBaseAgent_Identity(t *testing.T) {
	base := NewBaseAgent("Vacuum")

	assert.Equal(t, "Vacuum", base.Name())
	assert.Equal(t, "Agent Vacuum", base.Description())

	base.SetDescription("cleans two rooms")
	assert.Equal(t, "cleans two rooms", base.Description())
}

func TestBaseAgent_StartStopLifecycle(t *testing.T) {
	base := NewBaseAgent("Lifecycle")
	rc, _ := newTestRunContext(0)

	assert.NoError(t, base.Start(rc))
	assert.Error(t, base.Start(rc), "second start must fail while running")

	assert.NoError(t, base.Stop(rc))
	assert.Error(t, base.Stop(rc), "second stop must fail once stopped")

	// restartable after a clean stop
	assert.NoError(t, base.Start(rc))
	assert.NoError(t, base.Stop(rc))
}

func TestBaseAgent_HierarchyWiring(t *testing.T) {
	leaf := NewReflexAgent("leaf", VacuumRules())
	mid := NewSequentialAgent("mid", leaf)
	root := NewSequentialAgent("root", mid)

	assert.Len(t, root.SubAgents(), 1)
	assert.Equal(t, "mid", root.SubAgents()[0].Name())

	// parents are wired bottom-up by SetSubAgents
	assert.NotNil(t, leaf.Parent())
	assert.Equal(t, "mid", leaf.Parent().Name())
	assert.Equal(t, "root", mid.Parent().Name())
	assert.Nil(t, root.Parent())
}

func TestBaseAgent_FindAgent(t *testing.T) {
	leaf := NewReflexAgent("leaf", VacuumRules())
	mid := NewSequentialAgent("mid", leaf)
	root := NewSequentialAgent("root", mid)

	assert.Equal(t, "root", root.FindAgent("root").Name())
	assert.Equal(t, "mid", root.FindAgent("mid").Name())
	assert.Equal(t, "leaf", root.FindAgent("leaf").Name())
	assert.Nil(t, root.FindAgent("missing"))
}

func TestBaseAgent_SetSubAgentsReassign(t *testing.T) {
	a := NewReflexAgent("a", VacuumRules())
	b := NewReflexAgent("b", VacuumRules())
	root := NewSequentialAgent("root", a)

	assert.NoError(t, root.SetSubAgents(b))

	assert.Len(t, root.SubAgents(), 1)
	assert.Equal(t, "b", root.SubAgents()[0].Name())
	assert.Nil(t, a.Parent(), "replaced child loses its parent link")
	assert.Equal(t, "root", b.Parent().Name())
}

func TestBaseAgent_SubAgentsCopyIsolation(t *testing.T) {
	a := NewReflexAgent("a", VacuumRules())
	root := NewSequentialAgent("root", a)

	children := root.SubAgents()
	children[0] = nil

	assert.NotNil(t, root.SubAgents()[0], "mutating the returned slice must not affect the agent")
}
