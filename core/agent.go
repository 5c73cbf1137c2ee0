package core

// Agent defines the core interface that all agents in Agentica must implement.
//
// Agents are the primary processing units in the framework. Each of the
// classical architectures (reflex, model-based, goal-based, utility-based,
// learning, supervisor, multi-agent coordinator) implements Run as its demo
// loop: perceive, decide, act, emit events describing every step.
//
// The Agent interface supports both simple single-agent demos and
// hierarchical workflows through the sub-agent management methods.
//
// Implementations must:
//   - Respect context cancellation for graceful shutdown
//   - Emit events through the provided RunContext
//   - Handle the async resume mechanism properly
//   - Manage their lifecycle through Start/Stop methods
type Agent interface {
	Name() string
	Start(rc *RunContext) error
	Stop(rc *RunContext) error
	Run(rc *RunContext) error
	SetSubAgents(children ...Agent) error
	SubAgents() []Agent
	Parent() Agent
	FindAgent(name string) Agent
	Description() string
}

// AgentInfo carries identifying details about an agent used in contexts & events.
// Name is the external identifier; Type categorizes the architecture
// (e.g. "reflex", "model_based", "supervisor").
type AgentInfo struct{ Name, Type string }
