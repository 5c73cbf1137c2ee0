// Package mas implements the multi-agent warehouse: a coordinator, picker,
// and transport workers that fulfill orders by exchanging typed messages
// through a central router. Pickers retrieve items from shelves, transports
// carry them to the dock, and the coordinator allocates work and arbitrates
// the shared charging stations that drained workers compete for.
//
// The simulation is deliberately sequential. Messages accumulate in per-agent
// inboxes and System.Tick delivers them in registration order, so every run
// over the same orders and seed produces the same trace. WarehouseAgent wraps
// a System as a core.Agent that processes one order per invocation, which
// lets an agent.LoopAgent drive the simulation tick by tick.
package mas
