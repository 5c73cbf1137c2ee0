// Package core provides the foundational domain types, interfaces and execution
// contexts used by Agentica. It defines the core abstractions for:
//
//   - Agents (units of autonomous / orchestrated work)
//   - Percepts and Actions (the sensor/actuator vocabulary of every demo)
//   - Sessions (stateful run containers with event history)
//   - Events (immutable step + orchestration records)
//   - RunContext (scoped execution state with staged state deltas)
//   - Pluggable stores for session state, learning experience and run history
//
// The package intentionally keeps implementation concerns (persistence, engine
// orchestration, concrete agents) out of scope, exposing small interfaces to
// enable custom backends and extensions. All exported identifiers include
// concise documentation to aid discoverability and external consumption.
package core
