package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentica-go/agentica/core"
)

// ErrEscalated is returned when a child agent signals escalation.
var ErrEscalated = errors.New("child agent escalated")

// LoopAgent coordinates the repeated execution of a child agent.
//
// It drives iterative workflows such as simulation ticks, polling, and
// convergence checks. Termination is controlled by a maximum iteration
// count, an optional predicate over the child's text output, an optional
// interval between iterations, and escalation events raised by the child.
//
// The same RunContext is passed to every iteration, so the child agent
// accumulates session state across loop executions.
type LoopAgent struct {
	BaseAgent
	child       core.Agent        // child agent to execute repeatedly
	maxIters    int               // maximum number of iterations allowed
	interval    time.Duration     // delay between iterations
	stopOnError bool              // stop the loop on child errors
	predicate   func(string) bool // termination condition over child output
}

// LoopOption configures a LoopAgent.
type LoopOption func(*LoopAgent)

// WithMaxIters sets the maximum number of iterations for the loop.
//
// The loop terminates after this many iterations even if no other
// termination condition is met.
func WithMaxIters(n int) LoopOption {
	return func(l *LoopAgent) { l.maxIters = n }
}

// WithInterval sets the delay between loop iterations. Zero means no delay.
func WithInterval(d time.Duration) LoopOption {
	return func(l *LoopAgent) { l.interval = d }
}

// WithPredicate sets a termination condition evaluated after each iteration.
//
// The predicate receives the concatenated text output of the events the
// child emitted during that iteration and returns true to stop the loop.
//
// Example:
//
//	WithPredicate(func(output string) bool {
//	    return strings.Contains(output, "COMPLETE")
//	})
func WithPredicate(pred func(string) bool) LoopOption {
	return func(l *LoopAgent) { l.predicate = pred }
}

// WithContinueOnError keeps the loop running when an iteration fails.
// Failed iterations are logged and skipped instead of aborting the loop.
func WithContinueOnError() LoopOption {
	return func(l *LoopAgent) { l.stopOnError = false }
}

// NewLoopAgent constructs a looping coordinator around a child agent.
// Defaults: 100 iterations, no interval, stop on first error.
func NewLoopAgent(name string, child core.Agent, opts ...LoopOption) *LoopAgent {
	la := &LoopAgent{
		BaseAgent:   NewBaseAgent(name),
		child:       child,
		maxIters:    100,
		interval:    0,
		stopOnError: true,
	}

	la.SetType("loop")
	for _, o := range opts {
		o(la)
	}

	_ = la.SetSubAgents(child)

	return la
}

// Run executes the child agent repeatedly according to configuration.
//
// Each iteration routes the child's events through an intercepting channel
// so escalation flags can be detected before the events reach the parent
// context. If a child event carries Escalate=true the loop forwards the
// event and stops with a nil error. The predicate, when set, is evaluated
// against the text output of each iteration.
func (l *LoopAgent) Run(rc *core.RunContext) error {
	for i := 0; i < l.maxIters; i++ {
		select {
		case <-rc.Done():
			return rc.Err()
		default:
		}

		rc.LogDebug("loop agent %s starting iteration %d", l.Name(), i+1)

		output, childErr := l.runChildIteration(rc)

		if errors.Is(childErr, ErrEscalated) {
			rc.LogInfo("loop agent %s stopped by escalation at iteration %d", l.Name(), i+1)
			return nil
		}

		if childErr != nil {
			if l.stopOnError {
				return fmt.Errorf("loop iteration %d failed for agent %s: %w", i+1, l.child.Name(), childErr)
			}
			rc.LogWarn("loop agent %s iteration %d failed, continuing: %v", l.Name(), i+1, childErr)
		}

		if l.predicate != nil && l.predicate(output) {
			rc.LogDebug("loop agent %s stopped by predicate at iteration %d", l.Name(), i+1)
			return nil
		}

		if l.interval > 0 && i < l.maxIters-1 {
			select {
			case <-rc.Done():
				return rc.Err()
			case <-time.After(l.interval):
			}
		}
	}

	rc.LogDebug("loop agent %s completed all %d iterations", l.Name(), l.maxIters)

	return nil
}

// runChildIteration executes the child once, intercepting its emitted events
// to detect escalation flags and to collect text output for the predicate.
// Intercepted events are forwarded to the parent context unchanged.
func (l *LoopAgent) runChildIteration(rc *core.RunContext) (string, error) {
	interceptChan := make(chan core.Event, 10)
	resumeChan := make(chan struct{}, 10)
	childCtx := rc.NewChildContext(interceptChan, resumeChan, rc.Branch)

	done := make(chan error, 1)

	go func() {
		done <- l.child.Run(childCtx)
	}()

	var out strings.Builder
	escalated := false

	forward := func(event core.Event) error {
		if event.Actions.Escalate != nil && *event.Actions.Escalate {
			escalated = true
		}
		if txt := event.Text(); txt != "" {
			out.WriteString(txt)
			out.WriteString("\n")
		}
		if err := rc.EmitEvent(event); err != nil {
			return err
		}
		// Resume signal for children that block on WaitForResume.
		select {
		case resumeChan <- struct{}{}:
		default:
		}
		return nil
	}

	for {
		select {
		case event := <-interceptChan:
			if err := forward(event); err != nil {
				return out.String(), err
			}
			if escalated {
				err := <-done
				if err != nil {
					return out.String(), err
				}
				return out.String(), ErrEscalated
			}

		case err := <-done:
			// Child finished. Drain events still buffered in the intercept
			// channel before reporting the result.
			for {
				select {
				case event := <-interceptChan:
					if ferr := forward(event); ferr != nil {
						return out.String(), ferr
					}
				default:
					if err == nil && escalated {
						return out.String(), ErrEscalated
					}
					return out.String(), err
				}
			}

		case <-rc.Done():
			return out.String(), rc.Err()
		}
	}
}

// CreateEscalationEvent constructs an event that signals escalation to the
// enclosing loop or coordinator. Agents emit it when they determine the
// current workflow should stop and control should return to a higher level.
func CreateEscalationEvent(runID, author string, content *core.Content) core.Event {
	escalate := true
	ev := core.NewEvent(runID, author)
	ev.Actions.Escalate = &escalate
	ev.Content = content
	return ev
}
