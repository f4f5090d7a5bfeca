package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"dogmatch-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActivity() registry.Activity {
	return registry.Activity{
		ID:          "rank-shelters",
		DisplayName: "Rank Shelters",
		Description: "Orders shelters by distance",
		Category:    registry.CategoryRecommendation,
		TaskType:    "rank-shelters",
		Timeout:     "2m",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"postalCode"},
			"properties": map[string]interface{}{
				"postalCode": map[string]interface{}{"type": "string", "description": "Adopter postal code"},
				"radius":     map[string]interface{}{"type": "integer"},
				"mode":       map[string]interface{}{"type": "string", "enum": []interface{}{"drive", "walk"}},
				"shelterId":  map[string]interface{}{"type": "string"},
			},
		},
		OutputSchema: map[string]interface{}{
			"properties": map[string]interface{}{
				"shelters": map[string]interface{}{"type": "array"},
			},
		},
		ErrorCodes: []string{"INPUT_VALIDATION_FAILED"},
	}
}

// ==========================
// Schema Mapping
// ==========================

func TestSchemaFields(t *testing.T) {
	fields := schemaFields(testActivity().InputSchema)
	require.Len(t, fields, 4)

	assert.Equal(t, "mode", fields[0].JSONName)
	assert.Equal(t, []string{"drive", "walk"}, fields[0].Enum)
	assert.Equal(t, "PostalCode", fields[1].Name)
	assert.Equal(t, "Adopter postal code", fields[1].Description)
	assert.Equal(t, "int", fields[2].GoType)
	assert.Equal(t, "ShelterID", fields[3].Name)

	assert.Empty(t, schemaFields(nil))
	assert.Equal(t, []string{"postalCode"}, schemaRequired(testActivity().InputSchema))
}

func TestTimeoutExpr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2m", "2 * time.Minute"},
		{"15s", "15 * time.Second"},
		{"1500ms", "1500 * time.Millisecond"},
		{"bogus", "10 * time.Second"},
		{"", "10 * time.Second"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, timeoutExpr(tt.in))
		})
	}
}

// ==========================
// Generate
// ==========================

func TestGenerate_WritesFormattedPackage(t *testing.T) {
	root := t.TempDir()

	written, err := Generate(testActivity(), root, false)
	require.NoError(t, err)
	require.Len(t, written, len(files))

	dir := filepath.Join(root, "recommendation", "rank-shelters")
	handler, err := os.ReadFile(filepath.Join(dir, "handler.go"))
	require.NoError(t, err)
	assert.Contains(t, string(handler), "package rankshelters")
	assert.Contains(t, string(handler), `const TaskType = "rank-shelters"`)
	assert.Contains(t, string(handler), "camunda.NewJobRunner(TaskType")

	cfg, err := os.ReadFile(filepath.Join(dir, "config.go"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "2 * time.Minute")

	schema, err := os.ReadFile(filepath.Join(dir, "validation.go"))
	require.NoError(t, err)
	assert.Contains(t, string(schema), `Required: []string{"postalCode"}`)
	assert.Contains(t, string(schema), `Enum: []string{"drive", "walk"}`)

	test, err := os.ReadFile(filepath.Join(dir, "handler_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(test), "INPUT_VALIDATION_FAILED")
}

func TestGenerate_RefusesToOverwrite(t *testing.T) {
	root := t.TempDir()
	_, err := Generate(testActivity(), root, false)
	require.NoError(t, err)

	_, err = Generate(testActivity(), root, false)
	assert.ErrorContains(t, err, "already exists")

	_, err = Generate(testActivity(), root, true)
	assert.NoError(t, err)
}

func TestRootCmd_UnknownActivity(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--activity", "nope", "--registry", "../../../configs/activity-registry.json", "--output", t.TempDir()})

	err := cmd.Execute()
	assert.ErrorIs(t, err, registry.ErrActivityNotFound)
}
