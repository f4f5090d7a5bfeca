package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preferencesSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"preferences"},
		Properties: map[string]Property{
			"preferences": {
				Type:     "object",
				Required: []string{"size", "exerciseHours"},
				Properties: map[string]Property{
					"size":          {Type: "string", Enum: []string{"Small", "Medium", "Large", "Giant"}},
					"exerciseHours": {Type: "number", Minimum: Float(0), Maximum: Float(4)},
				},
			},
			"limit": {Type: "integer", Minimum: Float(1)},
		},
	}
}

// ==========================
// ValidateInput Tests
// ==========================

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name       string
		input      map[string]interface{}
		valid      bool
		errorField string
		errorCode  string
	}{
		{
			name: "valid input",
			input: map[string]interface{}{
				"preferences": map[string]interface{}{"size": "Small", "exerciseHours": 1.5},
			},
			valid: true,
		},
		{
			name:       "missing top-level field",
			input:      map[string]interface{}{},
			errorField: "preferences",
			errorCode:  "REQUIRED",
		},
		{
			name: "missing nested field",
			input: map[string]interface{}{
				"preferences": map[string]interface{}{"size": "Small"},
			},
			errorField: "preferences.exerciseHours",
			errorCode:  "REQUIRED",
		},
		{
			name: "enum violation",
			input: map[string]interface{}{
				"preferences": map[string]interface{}{"size": "Huge", "exerciseHours": 1.0},
			},
			errorField: "preferences.size",
			errorCode:  "ENUM",
		},
		{
			name: "maximum violation",
			input: map[string]interface{}{
				"preferences": map[string]interface{}{"size": "Small", "exerciseHours": 9.0},
			},
			errorField: "preferences.exerciseHours",
			errorCode:  "NUMBER_LTE",
		},
		{
			name: "wrong type",
			input: map[string]interface{}{
				"preferences": "Small dog please",
			},
			errorField: "preferences",
			errorCode:  "INVALID_TYPE",
		},
		{
			name: "integral float accepted as integer",
			input: map[string]interface{}{
				"preferences": map[string]interface{}{"size": "Small", "exerciseHours": 1.0},
				"limit":       float64(3),
			},
			valid: true,
		},
		{
			name: "extra variables allowed",
			input: map[string]interface{}{
				"preferences": map[string]interface{}{"size": "Small", "exerciseHours": 1.0},
				"requestId":   "abc",
			},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, preferencesSchema())
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.valid {
				assert.Empty(t, result.Errors)
				return
			}
			require.True(t, result.HasErrors(tt.errorField), result.GetErrorMessages())
			errs := result.GetErrorsForField(tt.errorField)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.errorCode, errs[0].Code)
		})
	}
}

func TestValidateInput_ClosedSchema(t *testing.T) {
	schema := JSONSchema{
		Type:                 "object",
		Properties:           map[string]Property{"name": {Type: "string"}},
		AdditionalProperties: Closed(),
	}

	assert.True(t, ValidateInput(map[string]interface{}{"name": "Beagle"}, schema).Valid)
	assert.False(t, ValidateInput(map[string]interface{}{"name": "Beagle", "x": 1}, schema).Valid)
}

func TestValidateInput_NilInput(t *testing.T) {
	result := ValidateInput(nil, preferencesSchema())
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("preferences"))
}

func TestValidateJSON(t *testing.T) {
	schema := JSONSchema{
		Type:     "object",
		Required: []string{"breeds"},
		Properties: map[string]Property{
			"breeds": {Type: "array", MinItems: Int(1), Items: &Property{Type: "string"}},
		},
	}

	assert.True(t, ValidateJSON([]byte(`{"breeds":["Beagle"]}`), schema).Valid)
	assert.False(t, ValidateJSON([]byte(`{"breeds":[]}`), schema).Valid)
	assert.False(t, ValidateJSON([]byte(`{"breeds":[1]}`), schema).Valid)
	assert.False(t, ValidateJSON([]byte(`not json`), schema).Valid)
}

// ==========================
// Helper Tests
// ==========================

func TestValidateActivityNaming(t *testing.T) {
	assert.NoError(t, ValidateActivityNaming("dogmatch.breed.recommend"))
	assert.Error(t, ValidateActivityNaming("recommend-breed"))
	assert.Error(t, ValidateActivityNaming("DogMatch.Breed.Recommend"))
}

func TestGetSchemaFromJSON(t *testing.T) {
	schema, err := GetSchemaFromJSON(`{"type":"object","required":["breedName"],"properties":{"breedName":{"type":"string","minLength":1}}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"breedName"}, schema.Required)
	require.NotNil(t, schema.Properties["breedName"].MinLength)
	assert.Equal(t, 1, *schema.Properties["breedName"].MinLength)

	result := ValidateInput(map[string]interface{}{"breedName": ""}, schema)
	assert.False(t, result.Valid)
	assert.Equal(t, "STRING_GTE", result.Errors[0].Code)
}
