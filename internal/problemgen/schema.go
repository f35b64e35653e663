package problemgen

import (
	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/llm"
)

// BatchSchema is the structured output requested from the model.
var BatchSchema = &llm.Schema{
	Name:        "exercise-batch",
	Description: "Two-digit addition and subtraction exercises for a worksheet",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercises": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"first": map[string]any{
							"type":        "integer",
							"minimum":     exercise.MinOperand,
							"maximum":     exercise.MaxOperand,
							"description": "First operand; for subtraction the larger number",
						},
						"second": map[string]any{
							"type":        "integer",
							"minimum":     exercise.MinOperand,
							"maximum":     exercise.MaxOperand,
							"description": "Second operand",
						},
						"operator": map[string]any{
							"type": "string",
							"enum": []any{"+", "-"},
						},
						"result": map[string]any{
							"type":        "integer",
							"description": "The correct result",
						},
					},
					"required":             []any{"first", "second", "operator", "result"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"exercises"},
		"additionalProperties": false,
	},
}
