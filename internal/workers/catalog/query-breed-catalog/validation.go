package querybreedcatalog

import "dogmatch-workers/internal/common/validation"

// GetInputSchema leaves queryType open so unknown types fail as
// INVALID_QUERY_TYPE.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"queryType"},
		Properties: map[string]validation.Property{
			"queryType": {
				Type:        "string",
				Description: "One of all_breeds, breed_by_name, breeds_by_group, breeds_by_size",
				MinLength:   validation.Int(1),
			},
			"breedName":  {Type: "string", MaxLength: validation.Int(100)},
			"breedGroup": {Type: "string"},
			"size":       {Type: "string"},
		},
	}
}
