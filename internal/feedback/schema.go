package feedback

import "github.com/sebastianahumada1/studyapp/internal/llm"

// FeedbackSchema defines the JSON schema for reasoning feedback responses.
// All three fields are required, so a response missing any of them fails
// validation and the item is treated as failed.
var FeedbackSchema = &llm.Schema{
	Name:        "reasoning-feedback",
	Description: "Feedback on a student's written reasoning for a practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"technique1_feedback": map[string]any{
				"type":        "string",
				"description": "Feedback on how clearly the student explained the concept in their own words",
			},
			"technique2_feedback": map[string]any{
				"type":        "string",
				"description": "Feedback on gaps or leaps in the student's step-by-step justification",
			},
			"overall_feedback": map[string]any{
				"type":        "string",
				"description": "Overall assessment of the reasoning and one concrete suggestion",
			},
		},
		"required":             []any{"technique1_feedback", "technique2_feedback", "overall_feedback"},
		"additionalProperties": false,
	},
}
