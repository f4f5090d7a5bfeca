package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferences(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(p *UserPreferences)
		expectedField string
	}{
		{name: "valid", mutate: func(p *UserPreferences) {}},
		{name: "optional fields omitted", mutate: func(p *UserPreferences) { p.LifeExpectancy = 0; p.AverageWeight = 0 }},
		{name: "boundary values", mutate: func(p *UserPreferences) {
			p.ExerciseHours = 4
			p.Intelligence = 10
			p.TrainingDifficulty = 1
			p.Friendliness = 1
		}},
		{name: "unknown size", mutate: func(p *UserPreferences) { p.Size = "Huge" }, expectedField: "size"},
		{name: "missing size", mutate: func(p *UserPreferences) { p.Size = "" }, expectedField: "size"},
		{name: "negative exercise", mutate: func(p *UserPreferences) { p.ExerciseHours = -0.5 }, expectedField: "exerciseHours"},
		{name: "exercise above range", mutate: func(p *UserPreferences) { p.ExerciseHours = 4.01 }, expectedField: "exerciseHours"},
		{name: "NaN exercise", mutate: func(p *UserPreferences) { p.ExerciseHours = math.NaN() }, expectedField: "exerciseHours"},
		{name: "infinite exercise", mutate: func(p *UserPreferences) { p.ExerciseHours = math.Inf(1) }, expectedField: "exerciseHours"},
		{name: "intelligence zero", mutate: func(p *UserPreferences) { p.Intelligence = 0 }, expectedField: "intelligence"},
		{name: "training eleven", mutate: func(p *UserPreferences) { p.TrainingDifficulty = 11 }, expectedField: "trainingDifficulty"},
		{name: "unknown shedding", mutate: func(p *UserPreferences) { p.Shedding = "Extreme" }, expectedField: "shedding"},
		{name: "moderate is not a health risk", mutate: func(p *UserPreferences) { p.HealthRisk = "Moderate" }, expectedField: "healthRisk"},
		{name: "unknown group", mutate: func(p *UserPreferences) { p.BreedGroup = "Companion" }, expectedField: "breedGroup"},
		{name: "friendliness negative", mutate: func(p *UserPreferences) { p.Friendliness = -3 }, expectedField: "friendliness"},
		{name: "life expectancy too long", mutate: func(p *UserPreferences) { p.LifeExpectancy = 45 }, expectedField: "lifeExpectancy"},
		{name: "NaN weight", mutate: func(p *UserPreferences) { p.AverageWeight = math.NaN() }, expectedField: "averageWeight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePreferences()
			tt.mutate(&p)

			err := ValidatePreferences(p)
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var invalid *InvalidPreferencesError
			require.ErrorAs(t, err, &invalid)
			require.Len(t, invalid.Violations, 1)
			assert.Equal(t, tt.expectedField, invalid.Violations[0].Field)
			assert.Contains(t, err.Error(), tt.expectedField)
		})
	}
}

func TestValidatePreferences_ReportsEveryViolation(t *testing.T) {
	p := samplePreferences()
	p.Size = "Tiny"
	p.Intelligence = 42
	p.BreedGroup = ""

	var invalid *InvalidPreferencesError
	require.ErrorAs(t, ValidatePreferences(p), &invalid)

	fields := make([]string, 0, len(invalid.Violations))
	for _, v := range invalid.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"size", "intelligence", "breedGroup"}, fields)
}

func TestValidateBreed(t *testing.T) {
	b := breedLike("Border Collie", samplePreferences())
	assert.NoError(t, ValidateBreed(b))

	b.Name = ""
	b.Shedding = "Sometimes"

	var invalid *InvalidBreedError
	require.ErrorAs(t, ValidateBreed(b), &invalid)
	assert.Len(t, invalid.Violations, 2)
}

func TestValidateCatalog(t *testing.T) {
	catalog := sampleCatalog()
	assert.NoError(t, ValidateCatalog(catalog))

	catalog[1].Intelligence = 0
	var invalid *InvalidBreedError
	require.ErrorAs(t, ValidateCatalog(catalog), &invalid)
	assert.Equal(t, "Perfect Match", invalid.Name)
}

func TestParseEnums(t *testing.T) {
	size, err := ParseSize(" large ")
	require.NoError(t, err)
	assert.Equal(t, SizeLarge, size)

	_, err = ParseSize("enormous")
	assert.Error(t, err)

	shed, err := ParseShedding("LOW")
	require.NoError(t, err)
	assert.Equal(t, SheddingLow, shed)

	risk, err := ParseHealthRisk("Moderate")
	require.NoError(t, err)
	assert.Equal(t, HealthRiskMedium, risk)

	risk, err = ParseHealthRisk("high")
	require.NoError(t, err)
	assert.Equal(t, HealthRiskHigh, risk)

	group, err := ParseBreedGroup("non-sporting")
	require.NoError(t, err)
	assert.Equal(t, GroupNonSporting, group)

	group, err = ParseBreedGroup("NonSporting")
	require.NoError(t, err)
	assert.Equal(t, GroupNonSporting, group)

	_, err = ParseBreedGroup("Companion")
	assert.Error(t, err)
}
