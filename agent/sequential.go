package agent

import (
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// SequentialAgent coordinates the execution of multiple child agents in
// order. The same RunContext is passed to every child, so session state
// accumulated by one agent is visible to the next. Execution stops at the
// first error.
//
// The CLI uses it to chain the architecture demos into a single run.
type SequentialAgent struct {
	BaseAgent
	children []core.Agent
}

// NewSequentialAgent creates a sequential execution coordinator over the
// given children.
func NewSequentialAgent(name string, children ...core.Agent) *SequentialAgent {
	a := &SequentialAgent{
		BaseAgent: NewBaseAgent(name),
		children:  children,
	}
	a.SetType("sequential")
	a.SetDescription("Runs child agents one after another with shared session state")
	_ = a.SetSubAgents(children...)

	return a
}

// Run implements core.Agent. It executes each child in order; errors stop
// further processing immediately.
func (a *SequentialAgent) Run(rc *core.RunContext) error {
	for _, child := range a.children {
		rc.LogDebug("sequential agent %s running child %s", a.Name(), child.Name())
		if err := child.Run(rc); err != nil {
			return fmt.Errorf("sequential execution failed at agent %s: %w", child.Name(), err)
		}
	}

	return nil
}
