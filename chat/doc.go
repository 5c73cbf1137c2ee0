// Package chat implements a conversational agent that calls tools through a
// prompt-embedded protocol rather than a native function-calling API.
//
// The agent renders its registered tool descriptions into the instruction
// and asks the model to reply with a small JSON decision:
//
//	{"tool_choice": "basic_calculator", "tool_input": {"num1": 2, "num2": 3, "operation": "add"}}
//
// A tool_choice of "none" means the model answers directly and tool_input
// carries the answer. The agent parses the decision, dispatches to the
// chosen tool with schema validation, and emits the tool result (or the
// direct answer) as the reply. Because the protocol lives entirely in the
// prompt, it works against any chat-completion backend, including
// OpenAI-compatible local endpoints.
package chat
