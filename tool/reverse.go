package tool

import (
	"context"
	"fmt"
)

// NewReverseString returns the reverse_string tool. The chat protocol
// sends its input as a bare string, which the chat agent wraps under the
// "input" key before dispatch.
func NewReverseString() *FunctionTool {
	return NewFunctionTool(
		"reverse_string",
		"Reverse the given string. Input format: just the text to be reversed as a string.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"input": map[string]any{"type": "string", "description": "Text to reverse"},
			},
			"required": []string{"input"},
		},
		reverseString,
	)
}

func reverseString(_ context.Context, args map[string]any) (any, error) {
	input, ok := args["input"].(string)
	if !ok {
		return nil, NewToolError("reverse_string", "input must be a string", CodeValidation)
	}

	// reverse by runes so multi-byte characters survive
	runes := []rune(input)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return fmt.Sprintf("The reversed string is: %s", string(runes)), nil
}
