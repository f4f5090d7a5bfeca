package searchbreeds

import "dogmatch-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"query": {
				Type:        "string",
				Description: "Free text matched against name, description and temperament",
				MaxLength:   validation.Int(200),
			},
			"filters": {
				Type: "object",
				Properties: map[string]validation.Property{
					"size":             {Type: "string"},
					"breedGroup":       {Type: "string"},
					"shedding":         {Type: "string"},
					"healthRisk":       {Type: "string"},
					"goodWithChildren": {Type: "boolean"},
					"maxExerciseHours": {Type: "number", Minimum: validation.Float(0)},
					"minIntelligence":  {Type: "integer", Minimum: validation.Float(0), Maximum: validation.Float(10)},
					"sortBy": {
						Type: "string",
						Enum: []string{"", "name", "intelligence", "friendliness", "exerciseNeeds"},
					},
				},
			},
			"pagination": {
				Type: "object",
				Properties: map[string]validation.Property{
					"from": {Type: "integer", Minimum: validation.Float(0)},
					"size": {Type: "integer", Minimum: validation.Float(0)},
				},
			},
		},
	}
}
