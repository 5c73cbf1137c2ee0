// Package engine provides the concrete core.Engine implementation: a
// registry of named agents plus the run lifecycle around them.
//
// Invoke starts one agent run on its own goroutine and returns streaming
// event and error channels. A second goroutine drives the event pipeline:
// state deltas are validated and applied to the session store, non-partial
// events are appended to session history and forwarded to the caller, and a
// resume signal lets waiting agents continue. When the run finishes the
// engine assembles a core.RunRecord and fires the lifecycle callbacks; a
// registered RunRecorder persists the record to a core.RunStore.
//
// Callbacks hook four points: before_agent, after_agent, on_error and
// on_state_change. An error from a before_agent callback aborts the run
// before the agent starts; an error from an on_state_change callback rejects
// the delta and terminates the run.
package engine
