package recommendbreed

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
			"userId": {
				Type:        "string",
				Description: "Caller-supplied user identifier, logged only",
				MaxLength:   validation.Int(100),
			},
			"skipCache": {
				Type:        "boolean",
				Description: "Bypass the result cache",
			},
		},
	}
}
