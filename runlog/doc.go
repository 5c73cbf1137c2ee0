// Package runlog contains concrete implementations of the core.RunStore.
//
// The canonical RunStore interface and the RunRecord type live in the core
// package to keep domain contracts central. Implementation packages like this
// one provide storage backends that can be swapped without touching calling
// code: the in-memory store suits demos and tests, the SQLite store keeps run
// history across CLI invocations.
//
// Callers should depend on the core interface rather than concrete types so
// they can substitute alternative persistence layers in tests or production.
package runlog
