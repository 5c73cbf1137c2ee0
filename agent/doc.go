// Package agent contains the classical agent architectures and the
// composition utilities that coordinate them. The package covers three
// concerns:
//
//  1. Base lifecycle + hierarchy plumbing (BaseAgent)
//  2. Concrete architectures (ReflexAgent, ModelBasedAgent, GoalAgent,
//     UtilityAgent, QLearningAgent, SupervisorAgent)
//  3. Coordination patterns (SequentialAgent, ParallelAgent, LoopAgent)
//
// Design principles:
//   - Minimal hidden global state, explicit wiring via Engine/RunContext
//   - Composability: agents can nest arbitrarily using SetSubAgents / FindAgent
//   - Observability: decisions are emitted as events carrying the percept,
//     the chosen action and a human-readable rationale
//   - Extensibility: embed BaseAgent; only implement Run plus any custom API
//
// Execution model:
//   - An agent's Run receives a *core.RunContext (shared or cloned)
//   - Composite agents (parallel / sequential / loop) coordinate child Runs
//   - Decision agents observe environments from the env package and emit
//     step events through the run context
//
// The package intentionally keeps persistence, environments and model
// integrations in their respective packages to avoid cyclic deps.
package agent
