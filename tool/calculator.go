package tool

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// operationNames lists the supported calculator operations in the order
// they are reported when an unknown operation is requested.
var operationNames = []string{
	"add", "plus", "subtract", "minus", "multiply", "times",
	"divide", "floor_divide", "modulus", "power",
	"lt", "le", "eq", "ne", "ge", "gt",
}

// NewCalculator returns the basic_calculator tool: a numeric operation on
// two numbers. Models frequently send numerals as strings, so the
// operands are coerced rather than type-checked by the schema.
func NewCalculator() *FunctionTool {
	return NewFunctionTool(
		"basic_calculator",
		`Perform a numeric operation on two numbers. Input format: {"num1": number, "num2": number, "operation": "add/subtract/multiply/divide"}.`,
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"num1":      map[string]any{"description": "First operand"},
				"num2":      map[string]any{"description": "Second operand"},
				"operation": map[string]any{"type": "string", "description": "Operation to apply, e.g. add, subtract, multiply, divide"},
			},
			"required": []string{"num1", "num2", "operation"},
		},
		calculate,
	)
}

func calculate(_ context.Context, args map[string]any) (any, error) {
	num1, err := toNumber("num1", args["num1"])
	if err != nil {
		return nil, err
	}
	num2, err := toNumber("num2", args["num2"])
	if err != nil {
		return nil, err
	}
	operation, _ := args["operation"].(string)
	operation = strings.ToLower(strings.TrimSpace(operation))

	result, err := apply(operation, num1, num2)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("The answer is: %s", result), nil
}

func apply(operation string, a, b float64) (string, error) {
	switch operation {
	case "add", "plus":
		return formatNumber(a + b), nil
	case "subtract", "minus":
		return formatNumber(a - b), nil
	case "multiply", "times":
		return formatNumber(a * b), nil
	case "divide":
		if b == 0 {
			return "", divisionByZero()
		}
		return formatNumber(a / b), nil
	case "floor_divide":
		if b == 0 {
			return "", divisionByZero()
		}
		return formatNumber(math.Floor(a / b)), nil
	case "modulus":
		if b == 0 {
			return "", divisionByZero()
		}
		return formatNumber(math.Mod(a, b)), nil
	case "power":
		return formatNumber(math.Pow(a, b)), nil
	case "lt":
		return strconv.FormatBool(a < b), nil
	case "le":
		return strconv.FormatBool(a <= b), nil
	case "eq":
		return strconv.FormatBool(a == b), nil
	case "ne":
		return strconv.FormatBool(a != b), nil
	case "ge":
		return strconv.FormatBool(a >= b), nil
	case "gt":
		return strconv.FormatBool(a > b), nil
	default:
		return "", NewToolError("basic_calculator",
			fmt.Sprintf("unsupported operation %q, supported operations are: %s",
				operation, strings.Join(operationNames, ", ")),
			CodeValidation)
	}
}

func divisionByZero() *ToolError {
	return NewToolError("basic_calculator", "division by zero is not allowed", CodeExecution)
}

// toNumber coerces the operand shapes models actually produce: JSON
// numbers, Go ints and numeric strings.
func toNumber(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, NewToolError("basic_calculator",
		fmt.Sprintf("%s must be a number, got %v", field, v), CodeValidation)
}

// formatNumber renders with at most six decimals, trimming trailing
// zeros, so 20.000000 prints as 20 and 1/3 as 0.333333.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
