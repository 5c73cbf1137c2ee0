package engine

import (
	"context"
	"fmt"

	"github.com/agentica-go/agentica/core"
)

// CallbackType names a lifecycle point where callbacks fire.
type CallbackType string

const (
	// CallbackBeforeAgent fires before an agent starts; an error aborts the run.
	CallbackBeforeAgent CallbackType = "before_agent"

	// CallbackAfterAgent fires once per run after the agent and the event
	// pipeline have finished, with the completed run record attached.
	CallbackAfterAgent CallbackType = "after_agent"

	// CallbackOnError fires when a run ends with an error, before after_agent.
	CallbackOnError CallbackType = "on_error"

	// CallbackOnStateChange fires before a state delta is applied to the
	// session store; an error rejects the delta and terminates the run.
	CallbackOnStateChange CallbackType = "on_state_change"
)

// CallbackContext carries the data a callback can inspect. Fields that are
// not relevant to the firing point are zero.
type CallbackContext struct {
	// RunContext is the execution scope of the run that fired the callback.
	RunContext *core.RunContext

	// Event is the event being processed (set for on_state_change).
	Event *core.Event

	// Agent is the name of the agent owning the run.
	Agent string

	// Type is the lifecycle point that fired.
	Type CallbackType

	// Record is the run record: complete for after_agent and on_error,
	// still in progress for the earlier points.
	Record *core.RunRecord

	// Err is the run error (set for on_error, and for after_agent when the
	// run failed).
	Err error
}

// Callback hooks into the run lifecycle. Implementations run synchronously
// on the run's goroutines, so they should be fast and must not panic.
type Callback interface {
	Type() CallbackType
	Execute(ctx context.Context, cc *CallbackContext) error
}

// FunctionCallback adapts a plain function to the Callback interface.
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, cc *CallbackContext) error
}

// NewFunctionCallback wraps fn as a callback firing at the given point.
func NewFunctionCallback(t CallbackType, fn func(ctx context.Context, cc *CallbackContext) error) *FunctionCallback {
	return &FunctionCallback{callbackType: t, fn: fn}
}

// Type returns the lifecycle point this callback handles.
func (c *FunctionCallback) Type() CallbackType { return c.callbackType }

// Execute calls the wrapped function.
func (c *FunctionCallback) Execute(ctx context.Context, cc *CallbackContext) error {
	return c.fn(ctx, cc)
}

// CallbackManager routes lifecycle points to registered callbacks in
// registration order. Register everything before starting runs; execution is
// not synchronized against concurrent registration.
type CallbackManager struct {
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager returns an empty manager.
func NewCallbackManager() *CallbackManager {
	return &CallbackManager{callbacks: make(map[CallbackType][]Callback)}
}

// Register adds a callback under its declared type.
func (cm *CallbackManager) Register(cb Callback) {
	cm.callbacks[cb.Type()] = append(cm.callbacks[cb.Type()], cb)
}

// Execute runs all callbacks of the given type, stopping at the first error.
func (cm *CallbackManager) Execute(ctx context.Context, t CallbackType, cc *CallbackContext) error {
	for _, cb := range cm.callbacks[t] {
		if err := cb.Execute(ctx, cc); err != nil {
			return err
		}
	}
	return nil
}

// StateValidationCallback vets session state deltas before they are applied.
// An error from the validator rejects the change and fails the run.
type StateValidationCallback struct {
	validator func(delta map[string]any) error
}

// NewStateValidationCallback builds an on_state_change callback around the
// given validator function.
func NewStateValidationCallback(validator func(delta map[string]any) error) *StateValidationCallback {
	return &StateValidationCallback{validator: validator}
}

// Type returns CallbackOnStateChange.
func (c *StateValidationCallback) Type() CallbackType { return CallbackOnStateChange }

// Execute validates the event's state delta.
func (c *StateValidationCallback) Execute(_ context.Context, cc *CallbackContext) error {
	if c.validator == nil || cc.Event == nil || cc.Event.Actions.StateDelta == nil {
		return nil
	}
	return c.validator(cc.Event.Actions.StateDelta)
}

// RunRecorder persists completed run records to a core.RunStore. Register it
// with an engine and every run, successful or failed, lands in run history.
type RunRecorder struct {
	store    core.RunStore
	scenario string
}

// RunRecorderOptions configures a RunRecorder.
type RunRecorderOptions struct {
	// Scenario labels every recorded run that does not carry its own label.
	Scenario string
}

// NewRunRecorder builds an after_agent callback recording runs to store.
func NewRunRecorder(store core.RunStore, optFns ...func(o *RunRecorderOptions)) *RunRecorder {
	opts := RunRecorderOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RunRecorder{store: store, scenario: opts.Scenario}
}

// Type returns CallbackAfterAgent.
func (r *RunRecorder) Type() CallbackType { return CallbackAfterAgent }

// Execute saves the completed run record.
func (r *RunRecorder) Execute(_ context.Context, cc *CallbackContext) error {
	if cc.Record == nil {
		return nil
	}
	rec := *cc.Record
	if rec.Scenario == "" {
		rec.Scenario = r.scenario
	}
	if err := r.store.Save(rec); err != nil {
		return fmt.Errorf("record run %s: %w", rec.ID, err)
	}
	return nil
}
