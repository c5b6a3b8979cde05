package quizgen

import "github.com/morepeace/manyora/internal/llm"

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A four-question multiple-choice quiz over a study summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Four answer choices",
							"items":       map[string]any{"type": "string"},
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"tier": map[string]any{
							"type":        "integer",
							"description": "Difficulty tier from 1 (easiest) to 3 (hardest)",
						},
						"concept": map[string]any{
							"type":        "string",
							"description": "Short concept tag this question tests, e.g. 'Fractions'",
						},
						"examiner_tip": map[string]any{
							"type":        "string",
							"description": "One-line tip on how examiners mark this kind of question",
						},
					},
					"required": []any{
						"question", "options", "correct_index",
						"tier", "concept", "examiner_tip",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
