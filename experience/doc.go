// Package experience contains concrete ExperienceStore implementations. The
// store interface and Transition type reside in the core package. Import
// github.com/agentica-go/agentica/core and depend on core.ExperienceStore in
// your code; select an implementation (like the in-memory store below) at
// wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (replay buffers with eviction, disk-backed logs, etc.) to be
// added without introducing dependency cycles.
package experience
