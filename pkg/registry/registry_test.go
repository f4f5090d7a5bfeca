package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activity(id string) Activity {
	return Activity{
		ID:                   id,
		DisplayName:          "Activity " + id,
		Category:             CategoryRecommendation,
		TaskType:             id,
		ImplementationStatus: StatusPlanned,
		Timeout:              "10s",
	}
}

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{
		"recommend-breed", "calculate-compatibility", "find-similar-breeds",
		"query-breed-catalog", "search-breeds", "send-recommendation",
	} {
		_, err := reg.FindByTaskType(taskType)
		assert.NoError(t, err, taskType)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")

	reg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.NoError(t, reg.Add(activity("recommend-breed")))
	require.NoError(t, SaveRegistry(reg, path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)
	require.Len(t, loaded.Activities, 1)
	assert.Equal(t, "recommend-breed", loaded.Activities[0].TaskType)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadRegistry(bad)
	assert.Error(t, err)
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	reg := &ActivityRegistry{}
	require.NoError(t, reg.Add(activity("search-breeds")))
	err := reg.Add(activity("search-breeds"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		field   string
		value   string
		wantErr bool
		check   func(t *testing.T, a *Activity)
	}{
		{field: "status", value: StatusVerified, check: func(t *testing.T, a *Activity) { assert.Equal(t, StatusVerified, a.ImplementationStatus) }},
		{field: "status", value: "shipped", wantErr: true},
		{field: "retries", value: "3", check: func(t *testing.T, a *Activity) { assert.Equal(t, 3, a.Retries) }},
		{field: "retries", value: "-1", wantErr: true},
		{field: "timeout", value: "45s", check: func(t *testing.T, a *Activity) { assert.Equal(t, "45s", a.Timeout) }},
		{field: "timeout", value: "soon", wantErr: true},
		{field: "colour", value: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			reg := &ActivityRegistry{Activities: []Activity{activity("find-similar-breeds")}}
			err := reg.Update("find-similar-breeds", tt.field, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			a, _ := reg.Find("find-similar-breeds")
			tt.check(t, a)
		})
	}

	reg := &ActivityRegistry{}
	assert.ErrorIs(t, reg.Update("nope", "status", StatusPlanned), ErrActivityNotFound)
}

func TestValidate(t *testing.T) {
	dupTask := activity("b")
	dupTask.TaskType = "a"
	badTask := activity("c")
	badTask.TaskType = "Search_Breeds"
	noName := activity("d")
	noName.DisplayName = ""

	tests := []struct {
		name    string
		acts    []Activity
		wantErr string
	}{
		{name: "empty", acts: nil, wantErr: "no activities"},
		{name: "duplicate id", acts: []Activity{activity("a"), activity("a")}, wantErr: "duplicate activity ID"},
		{name: "duplicate task type", acts: []Activity{activity("a"), dupTask}, wantErr: "duplicate task type"},
		{name: "not kebab-case", acts: []Activity{badTask}, wantErr: "kebab-case"},
		{name: "missing display name", acts: []Activity{noName}, wantErr: "DisplayName"},
		{name: "valid", acts: []Activity{activity("a"), activity("b")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ActivityRegistry{Activities: tt.acts}).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
