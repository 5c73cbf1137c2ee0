// Package env provides the toy environments the architecture demos run
// against: a two-room vacuum world, a one-dimensional corridor with
// obstacles, and a bounded rectangular grid with optional per-column wind
// for the learning demos.
//
// Environments are small in-memory structs meant for use from a single
// goroutine. They expose percepts as core.Percept values and accept
// core.Action values, so agents stay decoupled from world internals. A Renderer turns world snapshots into
// ANSI-colored terminal output for the example programs.
package env
