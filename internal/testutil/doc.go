// Package testutil contains fluent builders used across tests to cut the
// boilerplate of constructing core model objects (sessions, events with
// percept/action/data parts). The builders stay dependency-free so plain
// testing packages can use them too. Not intended for production use.
package testutil
