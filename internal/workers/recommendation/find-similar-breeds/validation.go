package findsimilarbreeds

import "dogmatch-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"breedName"},
		Properties: map[string]validation.Property{
			"breedName": {
				Type:        "string",
				Description: "Catalog breed to compare against",
				MinLength:   validation.Int(1),
				MaxLength:   validation.Int(100),
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum number of similar breeds",
				Minimum:     validation.Float(1),
			},
		},
	}
}
