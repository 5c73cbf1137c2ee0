// Package tool implements the callable capabilities the chatbot demo
// dispatches to: a tool contract with schema-validated arguments,
// consistent error codes, and the two built-ins (basic_calculator and
// reverse_string).
package tool

import (
	"context"
	"fmt"

	"github.com/agentica-go/agentica/internal/util"
)

// Error codes carried by ToolError.
const (
	// CodeValidation marks schema or argument mismatches.
	CodeValidation = "VALIDATION_ERROR"
	// CodeExecution marks failures inside the tool implementation.
	CodeExecution = "EXECUTION_ERROR"
)

// Tool defines a callable capability the chat agent can dispatch to.
//
// Implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions,
//     since both are rendered into the model's instruction
//   - Define a minimal JSON schema for parameters
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. The chat agent embeds it in the instruction so the model
	// knows when to pick the tool.
	Description() string

	// Parameters returns a JSON-schema-like map describing the expected
	// arguments, used for validation before execution.
	Parameters() map[string]any

	// Call executes the tool with already-parsed arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed
// information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
