package lessons

import "github.com/morepeace/manyora/internal/llm"

// SummarySchema defines the JSON schema for study summary generation.
// Every field is required: an incomplete summary fails the session rather
// than rendering with holes.
var SummarySchema = &llm.Schema{
	Name:        "study-summary",
	Description: "A structured study summary of uploaded revision material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short topic title for the material (3-8 words)",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Clear revision summary of the material (5-8 sentences)",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"Foundation", "Intermediate", "Advanced"},
			},
			"key_terms": map[string]any{
				"type":        "array",
				"description": "The most important terms or formulas in the material",
				"items":       map[string]any{"type": "string"},
			},
			"prerequisites": map[string]any{
				"type":        "array",
				"description": "Topics the learner should already know",
				"items":       map[string]any{"type": "string"},
			},
			"next_topic": map[string]any{
				"type":        "string",
				"description": "The topic to study next after mastering this one",
			},
			"real_world_use": map[string]any{
				"type":        "string",
				"description": "One concrete real-world application of this topic",
			},
			"examiner_notes": map[string]any{
				"type":        "string",
				"description": "What examiners look for when this topic is assessed",
			},
		},
		"required": []any{
			"title", "summary", "difficulty", "key_terms", "prerequisites",
			"next_topic", "real_world_use", "examiner_notes",
		},
		"additionalProperties": false,
	},
}
