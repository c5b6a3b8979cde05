package diagnosis

import "github.com/morepeace/manyora/internal/llm"

// NotesSchema defines the JSON schema for diagnostic note generation.
var NotesSchema = &llm.Schema{
	Name:        "diagnostic-notes",
	Description: "Remediation notes derived from a learner's quiz answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"notes": map[string]any{
				"type":        "array",
				"description": "Exactly three short, actionable remediation notes",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"notes"},
		"additionalProperties": false,
	},
}
