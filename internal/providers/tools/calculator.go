package tools

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/sandevgo/sagebot/internal/core"
)

var exprRe = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*([-+*/])\s*(-?\d+(?:\.\d+)?)\s*$`)

// Calculator evaluates a single binary arithmetic expression. Anything more
// elaborate is rejected rather than parsed.
type Calculator struct{}

func (c *Calculator) Name() string        { return "calculator" }
func (c *Calculator) Description() string { return "Perform mathematical calculations" }

func (c *Calculator) Parameters() map[string]core.ParamSpec {
	return map[string]core.ParamSpec{
		"expression": {
			Type:        "string",
			Description: "Mathematical expression to evaluate",
		},
	}
}

func (c *Calculator) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	expression, _ := params["expression"].(string)
	if expression == "" {
		return nil, errors.New("expression parameter is required")
	}

	match := exprRe.FindStringSubmatch(expression)
	if match == nil {
		return nil, fmt.Errorf("unsupported expression: %q", expression)
	}

	left, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parse operand: %w", err)
	}
	right, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return nil, fmt.Errorf("parse operand: %w", err)
	}

	var result float64
	switch match[2] {
	case "+":
		result = left + right
	case "-":
		result = left - right
	case "*":
		result = left * right
	case "/":
		if right == 0 {
			return nil, errors.New("division by zero")
		}
		result = left / right
	}

	return map[string]any{
		"expression": expression,
		"result":     strconv.FormatFloat(result, 'f', -1, 64),
		"type":       "calculation",
	}, nil
}
