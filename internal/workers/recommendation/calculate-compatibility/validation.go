package calculatecompatibility

import (
	"dogmatch-workers/internal/common/validation"
	"dogmatch-workers/internal/workers/recommendation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"preferences"},
		Properties: map[string]validation.Property{
			"preferences": recommendation.PreferencesProperty(),
			"breedName": {
				Type:        "string",
				Description: "Catalog breed to score",
				MinLength:   validation.Int(1),
				MaxLength:   validation.Int(100),
			},
			"breed": recommendation.BreedProperty(),
		},
	}
}
