// Package recommendation holds what the recommendation workers share.
package recommendation

import "dogmatch-workers/internal/common/validation"

// PreferencesProperty describes the shape of a preferences object. Ranges
// and enum values are left to scoring.ValidatePreferences so that bad
// values surface as INVALID_PREFERENCES rather than a schema failure.
func PreferencesProperty() validation.Property {
	return validation.Property{
		Type:        "object",
		Description: "User preferences for every comparable breed trait",
		Required: []string{
			"size", "exerciseHours", "goodWithChildren", "intelligence",
			"trainingDifficulty", "shedding", "healthRisk", "breedGroup", "friendliness",
		},
		Properties: map[string]validation.Property{
			"size":               {Type: "string"},
			"exerciseHours":      {Type: "number"},
			"goodWithChildren":   {Type: "boolean"},
			"intelligence":       {Type: "integer"},
			"trainingDifficulty": {Type: "integer"},
			"shedding":           {Type: "string"},
			"healthRisk":         {Type: "string"},
			"breedGroup":         {Type: "string"},
			"friendliness":       {Type: "integer"},
			"lifeExpectancy":     {Type: "integer"},
			"averageWeight":      {Type: "number"},
		},
	}
}

// BreedProperty describes an inline breed record.
func BreedProperty() validation.Property {
	return validation.Property{
		Type:        "object",
		Description: "Breed record",
		Required:    []string{"name", "size", "shedding", "healthRisk", "breedGroup"},
		Properties: map[string]validation.Property{
			"name":               {Type: "string", MinLength: validation.Int(1)},
			"size":               {Type: "string"},
			"exerciseNeeds":      {Type: "number"},
			"goodWithChildren":   {Type: "boolean"},
			"intelligence":       {Type: "integer"},
			"trainingDifficulty": {Type: "integer"},
			"shedding":           {Type: "string"},
			"healthRisk":         {Type: "string"},
			"breedGroup":         {Type: "string"},
			"friendliness":       {Type: "integer"},
		},
	}
}
