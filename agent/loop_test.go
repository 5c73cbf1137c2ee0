package agent

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/agentica-go/agentica/core"
)

// escalatingChildAgent emits events and escalates after a configured number
// of runs, exercising the loop's escalation monitoring.
type escalatingChildAgent struct {
	BaseAgent
	runCount   int
	escalateOn int
}

func newEscalatingChildAgent(name string, escalateOn int) *escalatingChildAgent {
	return &escalatingChildAgent{
		BaseAgent:  NewBaseAgent(name),
		escalateOn: escalateOn,
	}
}

func (t *escalatingChildAgent) Run(rc *core.RunContext) error {
	t.runCount++

	ev := core.NewEvent(rc.RunID, t.Name())
	if t.runCount >= t.escalateOn {
		escalate := true
		ev.Actions.Escalate = &escalate
		ev.Content = &core.Content{
			Role:  "agent",
			Parts: []core.Part{core.TextPart{Text: "task exceeds my capabilities, escalating"}},
		}
	} else {
		ev.Content = &core.Content{
			Role:  "agent",
			Parts: []core.Part{core.TextPart{Text: fmt.Sprintf("working on iteration %d", t.runCount)}},
		}
	}

	if err := rc.EmitEvent(ev); err != nil {
		return err
	}

	return rc.WaitForResume()
}

// countingChildAgent emits one narration per run and never escalates.
type countingChildAgent struct {
	BaseAgent
	runCount int
	failWith error
}

func newCountingChildAgent(name string) *countingChildAgent {
	return &countingChildAgent{BaseAgent: NewBaseAgent(name)}
}

func (t *countingChildAgent) Run(rc *core.RunContext) error {
	t.runCount++
	if t.failWith != nil {
		return t.failWith
	}

	if err := rc.EmitText(t.Name(), fmt.Sprintf("progress %d", t.runCount)); err != nil {
		return err
	}

	return rc.WaitForResume()
}

func TestLoopAgent_EscalationHandling(t *testing.T) {
	tests := []struct {
		name               string
		escalateOn         int // 0 means never
		maxIters           int
		expectedIterations int
		shouldEscalate     bool
	}{
		{
			name:               "escalates on iteration 2",
			escalateOn:         2,
			maxIters:           5,
			expectedIterations: 2,
			shouldEscalate:     true,
		},
		{
			name:               "never escalates, completes all iterations",
			escalateOn:         0,
			maxIters:           3,
			expectedIterations: 3,
			shouldEscalate:     false,
		},
		{
			name:               "escalates immediately",
			escalateOn:         1,
			maxIters:           5,
			expectedIterations: 1,
			shouldEscalate:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var child core.Agent
			var runCount func() int
			if tt.escalateOn > 0 {
				c := newEscalatingChildAgent("escalator", tt.escalateOn)
				child = c
				runCount = func() int { return c.runCount }
			} else {
				c := newCountingChildAgent("regular")
				child = c
				runCount = func() int { return c.runCount }
			}

			loopAgent := NewLoopAgent("TestLoop", child, WithMaxIters(tt.maxIters))
			rc, emit := newTestRunContext(0)

			err := loopAgent.Run(rc)
			if err != nil {
				t.Errorf("loop agent returned unexpected error: %v", err)
			}

			events := drainEvents(emit)
			if len(events) != tt.expectedIterations {
				t.Errorf("expected %d events, got %d", tt.expectedIterations, len(events))
			}

			if tt.shouldEscalate && len(events) > 0 {
				last := events[len(events)-1]
				if last.Actions.Escalate == nil || !*last.Actions.Escalate {
					t.Error("expected last event to carry the escalation flag")
				}
			}

			if runCount() != tt.expectedIterations {
				t.Errorf("expected child to run %d times, ran %d times", tt.expectedIterations, runCount())
			}
		})
	}
}

func TestLoopAgent_PredicateTermination(t *testing.T) {
	child := newCountingChildAgent("worker")
	loopAgent := NewLoopAgent("TestLoop", child,
		WithMaxIters(10),
		WithPredicate(func(output string) bool {
			return strings.Contains(output, "progress 3")
		}),
	)

	rc, emit := newTestRunContext(0)

	if err := loopAgent.Run(rc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if child.runCount != 3 {
		t.Errorf("expected predicate to stop the loop after 3 iterations, got %d", child.runCount)
	}
	if events := drainEvents(emit); len(events) != 3 {
		t.Errorf("expected 3 forwarded events, got %d", len(events))
	}
}

func TestLoopAgent_StopOnErrorDefault(t *testing.T) {
	child := newCountingChildAgent("worker")
	child.failWith = errors.New("boom")

	loopAgent := NewLoopAgent("TestLoop", child, WithMaxIters(5))
	rc, _ := newTestRunContext(0)

	err := loopAgent.Run(rc)
	if err == nil {
		t.Fatal("expected the first child error to stop the loop")
	}
	if !errors.Is(err, child.failWith) {
		t.Errorf("expected wrapped child error, got %v", err)
	}
	if child.runCount != 1 {
		t.Errorf("expected a single iteration, got %d", child.runCount)
	}
}

func TestLoopAgent_ContinueOnError(t *testing.T) {
	child := newCountingChildAgent("worker")
	child.failWith = errors.New("boom")

	loopAgent := NewLoopAgent("TestLoop", child, WithMaxIters(3), WithContinueOnError())
	rc, _ := newTestRunContext(0)

	if err := loopAgent.Run(rc); err != nil {
		t.Fatalf("expected failures to be skipped, got %v", err)
	}
	if child.runCount != 3 {
		t.Errorf("expected all 3 iterations despite errors, got %d", child.runCount)
	}
}

func TestCreateEscalationEvent(t *testing.T) {
	author := "TestAgent"
	runID := "test-run-123"
	content := &core.Content{
		Role:  "agent",
		Parts: []core.Part{core.TextPart{Text: "cannot complete task, escalating"}},
	}

	event := CreateEscalationEvent(runID, author, content)

	if event.Author != author {
		t.Errorf("expected author %s, got %s", author, event.Author)
	}
	if event.RunID != runID {
		t.Errorf("expected run id %s, got %s", runID, event.RunID)
	}
	if event.Actions.Escalate == nil || !*event.Actions.Escalate {
		t.Error("expected escalation flag to be set")
	}
	if event.Content != content {
		t.Error("expected content to match provided content")
	}
	if event.ID == "" {
		t.Error("expected event to have generated ID")
	}
	if event.Timestamp.IsZero() {
		t.Error("expected event to have generated timestamp")
	}
}
