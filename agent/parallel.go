package agent

import (
	"fmt"
	"sync"

	"github.com/agentica-go/agentica/core"
)

// ParallelAgent coordinates the concurrent execution of multiple child
// agents. Each child receives a cloned context with its own branch path and
// pending-delta buffer, so siblings cannot clobber each other's staged
// state while still sharing the session snapshot and emit channel.
//
// Siblings keep running when one fails; the first error is returned after
// all complete.
type ParallelAgent struct {
	BaseAgent
	children []core.Agent
}

// NewParallelAgent creates a parallel execution coordinator over the given
// children.
func NewParallelAgent(name string, children ...core.Agent) *ParallelAgent {
	a := &ParallelAgent{
		BaseAgent: NewBaseAgent(name),
		children:  children,
	}
	a.SetType("parallel")
	a.SetDescription("Runs child agents concurrently with branch-isolated state")
	_ = a.SetSubAgents(children...)

	return a
}

// branchCtxFor clones the parent context and assigns the child its own
// hierarchical branch path ("Parent.Child").
func (a *ParallelAgent) branchCtxFor(rc *core.RunContext, child core.Agent) *core.RunContext {
	suffix := fmt.Sprintf("%s.%s", a.Name(), child.Name())

	return rc.WithBranch(buildBranchPath(rc.Branch, suffix))
}

// Run implements core.Agent, launching all children concurrently and
// waiting for every one to finish.
func (a *ParallelAgent) Run(rc *core.RunContext) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(a.children))

	for _, child := range a.children {
		wg.Add(1)
		go func(c core.Agent) {
			defer wg.Done()

			branchCtx := a.branchCtxFor(rc, c)
			if err := c.Run(branchCtx); err != nil {
				errCh <- fmt.Errorf("parallel execution failed for agent %s: %w", c.Name(), err)
			}
		}(child)
	}

	wg.Wait()
	close(errCh)

	if len(errCh) > 0 {
		return <-errCh
	}

	return nil
}
