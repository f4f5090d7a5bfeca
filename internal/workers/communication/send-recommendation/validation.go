package sendrecommendation

import (
	"dogmatch-workers/internal/common/validation"
	"dogmatch-workers/internal/workers/recommendation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"recipientId", "recommendation"},
		Properties: map[string]validation.Property{
			"recipientId": {
				Type:      "string",
				MinLength: validation.Int(1),
				MaxLength: validation.Int(100),
			},
			"recommendation": {
				Type:        "object",
				Description: "Output of recommend-breed",
				Required:    []string{"breed", "compatibilityScore"},
				Properties: map[string]validation.Property{
					"breed":              recommendation.BreedProperty(),
					"compatibilityScore": {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(100)},
					"matchReasons":       {Type: "array", Items: &validation.Property{Type: "string"}},
					"similarBreeds":      {Type: "array"},
				},
			},
			"priority": {
				Type: "string",
				Enum: []string{"low", "normal", PriorityHigh},
			},
		},
	}
}
