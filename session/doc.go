// Package session contains concrete SessionStore implementations. The
// Session struct and the store interface live in the core package so that
// agents and the engine depend on contracts, not on storage. Pick an
// implementation at wiring time; the in-memory store below suits demos and
// tests, and further backends can be added in sub-packages without touching
// calling code.
package session
