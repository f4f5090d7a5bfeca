package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func samplePreferences() UserPreferences {
	return UserPreferences{
		Size:               SizeMedium,
		ExerciseHours:      2,
		GoodWithChildren:   true,
		Intelligence:       7,
		TrainingDifficulty: 5,
		Shedding:           SheddingModerate,
		HealthRisk:         HealthRiskMedium,
		BreedGroup:         GroupSporting,
		Friendliness:       8,
		LifeExpectancy:     12,
		AverageWeight:      25,
	}
}

// breedLike copies every comparable trait of p into a breed.
func breedLike(name string, p UserPreferences) Breed {
	return Breed{
		Name:               name,
		Size:               p.Size,
		ExerciseNeeds:      p.ExerciseHours,
		GoodWithChildren:   p.GoodWithChildren,
		Intelligence:       p.Intelligence,
		TrainingDifficulty: p.TrainingDifficulty,
		Shedding:           p.Shedding,
		HealthRisk:         p.HealthRisk,
		BreedGroup:         p.BreedGroup,
		Friendliness:       p.Friendliness,
		LifeExpectancy:     p.LifeExpectancy,
		AverageWeight:      p.AverageWeight,
		Description:        "a breed used in tests",
		Temperament:        []string{"Calm"},
	}
}

func sampleCatalog() []Breed {
	p := samplePreferences()

	lab := breedLike("Labrador Retriever", p)
	lab.Size = SizeLarge
	lab.TrainingDifficulty = 4
	lab.Friendliness = 10

	beagle := breedLike("Beagle", p)
	beagle.Size = SizeSmall
	beagle.ExerciseNeeds = 1.5
	beagle.Intelligence = 6
	beagle.HealthRisk = HealthRiskLow
	beagle.BreedGroup = GroupHound
	beagle.Friendliness = 9

	return []Breed{lab, breedLike("Perfect Match", p), beagle}
}

// ==========================
// Compatibility Tests
// ==========================

func TestComputeCompatibility(t *testing.T) {
	p := samplePreferences()

	tests := []struct {
		name     string
		mutate   func(b *Breed)
		expected int
	}{
		{name: "identical traits", mutate: func(b *Breed) {}, expected: 100},
		{name: "size mismatch", mutate: func(b *Breed) { b.Size = SizeGiant }, expected: 85},
		{name: "exercise off by one hour", mutate: func(b *Breed) { b.ExerciseNeeds = 3 }, expected: 95},
		{name: "exercise off by half an hour", mutate: func(b *Breed) { b.ExerciseNeeds = 2.5 }, expected: 98},
		{name: "not good with children", mutate: func(b *Breed) { b.GoodWithChildren = false }, expected: 75},
		{name: "intelligence off by three", mutate: func(b *Breed) { b.Intelligence = 10 }, expected: 97},
		{name: "training off by four", mutate: func(b *Breed) { b.TrainingDifficulty = 1 }, expected: 96},
		{name: "shedding mismatch", mutate: func(b *Breed) { b.Shedding = SheddingHigh }, expected: 92},
		{name: "health risk mismatch", mutate: func(b *Breed) { b.HealthRisk = HealthRiskHigh }, expected: 93},
		{name: "group mismatch", mutate: func(b *Breed) { b.BreedGroup = GroupToy }, expected: 95},
		{name: "friendliness is not scored", mutate: func(b *Breed) { b.Friendliness = 1 }, expected: 100},
		{
			name: "every penalty at once",
			mutate: func(b *Breed) {
				b.Size = SizeSmall
				b.ExerciseNeeds = 0
				b.GoodWithChildren = false
				b.Intelligence = 1
				b.TrainingDifficulty = 10
				b.Shedding = SheddingHigh
				b.HealthRisk = HealthRiskHigh
				b.BreedGroup = GroupToy
			},
			// 100 - 15 - 10 - 25 - 6 - 5 - 8 - 7 - 5
			expected: 19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := breedLike("candidate", p)
			tt.mutate(&b)
			assert.Equal(t, tt.expected, ComputeCompatibility(p, b))
		})
	}
}

func TestComputeCompatibility_ChildrenPenaltyIsOneSided(t *testing.T) {
	p := samplePreferences()
	p.GoodWithChildren = false

	b := breedLike("family dog", samplePreferences())
	b.GoodWithChildren = true

	assert.Equal(t, 100, ComputeCompatibility(p, b))
}

func TestComputeCompatibility_Clamping(t *testing.T) {
	p := samplePreferences()

	tests := []struct {
		name   string
		mutate func(b *Breed)
	}{
		{name: "huge exercise", mutate: func(b *Breed) { b.ExerciseNeeds = 1e12 }},
		{name: "positive infinity", mutate: func(b *Breed) { b.ExerciseNeeds = math.Inf(1) }},
		{name: "negative infinity", mutate: func(b *Breed) { b.ExerciseNeeds = math.Inf(-1) }},
		{name: "NaN exercise", mutate: func(b *Breed) { b.ExerciseNeeds = math.NaN() }},
		{name: "extreme intelligence", mutate: func(b *Breed) { b.Intelligence = math.MinInt }},
		{name: "extreme training", mutate: func(b *Breed) { b.TrainingDifficulty = math.MaxInt }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := breedLike("adversarial", p)
			tt.mutate(&b)
			score := ComputeCompatibility(p, b)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
			assert.Equal(t, 0, score)
		})
	}
}

// ==========================
// Similarity Tests
// ==========================

func TestComputeSimilarity(t *testing.T) {
	base := breedLike("base", samplePreferences())

	tests := []struct {
		name     string
		mutate   func(b *Breed)
		expected int
	}{
		{name: "same breed", mutate: func(b *Breed) {}, expected: 100},
		{name: "size only", mutate: func(b *Breed) { b.Size = SizeLarge }, expected: 85},
		{name: "exercise one hour", mutate: func(b *Breed) { b.ExerciseNeeds = 1 }, expected: 95},
		{name: "children differ", mutate: func(b *Breed) { b.GoodWithChildren = false }, expected: 90},
		{name: "intelligence off by two", mutate: func(b *Breed) { b.Intelligence = 9 }, expected: 96},
		{name: "shedding differs", mutate: func(b *Breed) { b.Shedding = SheddingLow }, expected: 90},
		{name: "group differs", mutate: func(b *Breed) { b.BreedGroup = GroupTerrier }, expected: 90},
		{name: "health risk is not compared", mutate: func(b *Breed) { b.HealthRisk = HealthRiskHigh }, expected: 100},
		{name: "training is not compared", mutate: func(b *Breed) { b.TrainingDifficulty = 10 }, expected: 100},
		{name: "NaN clamps to zero", mutate: func(b *Breed) { b.ExerciseNeeds = math.NaN() }, expected: 0},
		{name: "infinite clamps to zero", mutate: func(b *Breed) { b.ExerciseNeeds = math.Inf(1) }, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := breedLike("other", samplePreferences())
			tt.mutate(&other)
			assert.Equal(t, tt.expected, ComputeSimilarity(base, other))
			assert.Equal(t, tt.expected, ComputeSimilarity(other, base))
		})
	}
}

// ==========================
// Match Reason Tests
// ==========================

func TestGenerateMatchReasons(t *testing.T) {
	tests := []struct {
		name     string
		prefs    UserPreferences
		breed    func(p UserPreferences) Breed
		expected []string
	}{
		{
			name:  "three reasons for an identical moderate breed",
			prefs: samplePreferences(),
			breed: func(p UserPreferences) Breed { return breedLike("twin", p) },
			expected: []string{
				"Ideal medium size for you",
				"Compatible exercise needs",
				"Excellent with children",
			},
		},
		{
			name: "truncated to the first four",
			prefs: func() UserPreferences {
				p := samplePreferences()
				p.Size = SizeSmall
				p.ExerciseHours = 1
				return p
			}(),
			breed: func(p UserPreferences) Breed {
				b := breedLike("all rounder", p)
				b.Intelligence = 9
				b.Shedding = SheddingLow
				b.Friendliness = 10
				return b
			},
			expected: []string{
				"Ideal small size for you",
				"Compatible exercise needs",
				"Excellent with children",
				"High intelligence and easy to train",
			},
		},
		{
			name:  "later reasons surface when earlier ones fail",
			prefs: samplePreferences(),
			breed: func(p UserPreferences) Breed {
				b := breedLike("shy genius", p)
				b.Size = SizeGiant
				b.GoodWithChildren = false
				b.Intelligence = 8
				b.Shedding = SheddingLow
				b.Friendliness = 9
				return b
			},
			expected: []string{
				"Compatible exercise needs",
				"High intelligence and easy to train",
				"Low shedding",
				"Extremely friendly and sociable",
			},
		},
		{
			name:  "exercise boundary is inclusive",
			prefs: samplePreferences(),
			breed: func(p UserPreferences) Breed {
				b := breedLike("boundary", p)
				b.Size = SizeLarge
				b.GoodWithChildren = false
				b.ExerciseNeeds = 2.5
				return b
			},
			expected: []string{"Compatible exercise needs"},
		},
		{
			name:  "no reasons",
			prefs: samplePreferences(),
			breed: func(p UserPreferences) Breed {
				b := breedLike("mismatch", p)
				b.Size = SizeGiant
				b.ExerciseNeeds = 4
				b.GoodWithChildren = false
				return b
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := GenerateMatchReasons(tt.prefs, tt.breed(tt.prefs))
			assert.Equal(t, tt.expected, reasons)
			assert.LessOrEqual(t, len(reasons), ReasonLimit)
		})
	}
}

// ==========================
// Recommend Tests
// ==========================

func TestRecommend_PicksIdenticalBreed(t *testing.T) {
	p := samplePreferences()

	result, err := Recommend(p, sampleCatalog())
	require.NoError(t, err)

	assert.Equal(t, "Perfect Match", result.BestMatch.Name)
	assert.Equal(t, 100, result.CompatibilityScore)
	assert.Equal(t, ComputeCompatibility(p, result.BestMatch), result.CompatibilityScore)
	assert.Equal(t, []string{
		"Ideal medium size for you",
		"Compatible exercise needs",
		"Excellent with children",
	}, result.MatchReasons)

	require.Len(t, result.SimilarBreeds, 2)
	assert.Equal(t, "Labrador Retriever", result.SimilarBreeds[0].Breed.Name)
	assert.Equal(t, 85, result.SimilarBreeds[0].SimilarityScore)
	assert.Equal(t, "Beagle", result.SimilarBreeds[1].Breed.Name)
	// 100 - 15 - 2.5 - 2 - 10 = 70.5
	assert.Equal(t, 71, result.SimilarBreeds[1].SimilarityScore)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	result, err := Recommend(samplePreferences(), nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = Recommend(samplePreferences(), []Breed{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestRecommend_InvalidPreferences(t *testing.T) {
	p := samplePreferences()
	p.ExerciseHours = 7

	result, err := Recommend(p, sampleCatalog())
	assert.Nil(t, result)

	var invalid *InvalidPreferencesError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Violations, 1)
	assert.Equal(t, "exerciseHours", invalid.Violations[0].Field)
}

func TestRecommend_TieKeepsCatalogOrder(t *testing.T) {
	p := samplePreferences()
	catalog := []Breed{breedLike("First", p), breedLike("Second", p), breedLike("Third", p)}

	result, err := Recommend(p, catalog)
	require.NoError(t, err)

	assert.Equal(t, "First", result.BestMatch.Name)
	require.Len(t, result.SimilarBreeds, 2)
	assert.Equal(t, "Second", result.SimilarBreeds[0].Breed.Name)
	assert.Equal(t, "Third", result.SimilarBreeds[1].Breed.Name)
}

func TestRecommend_SingleBreed(t *testing.T) {
	p := samplePreferences()
	only := breedLike("Only", p)
	only.Size = SizeGiant

	result, err := Recommend(p, []Breed{only})
	require.NoError(t, err)

	assert.Equal(t, "Only", result.BestMatch.Name)
	assert.Equal(t, 85, result.CompatibilityScore)
	assert.NotNil(t, result.SimilarBreeds)
	assert.Empty(t, result.SimilarBreeds)
}

func TestRecommend_SimilarBreedsBounds(t *testing.T) {
	p := samplePreferences()

	for n := 1; n <= 9; n++ {
		t.Run(fmt.Sprintf("catalog of %d", n), func(t *testing.T) {
			catalog := make([]Breed, n)
			for i := range catalog {
				b := breedLike(fmt.Sprintf("breed-%d", i), p)
				b.Intelligence = 1 + i%10
				catalog[i] = b
			}

			result, err := Recommend(p, catalog)
			require.NoError(t, err)

			expected := n - 1
			if expected > SimilarLimit {
				expected = SimilarLimit
			}
			assert.Len(t, result.SimilarBreeds, expected)

			for i, s := range result.SimilarBreeds {
				assert.NotEqual(t, result.BestMatch.Name, s.Breed.Name)
				assert.GreaterOrEqual(t, s.SimilarityScore, 0)
				assert.LessOrEqual(t, s.SimilarityScore, 100)
				if i > 0 {
					assert.GreaterOrEqual(t, result.SimilarBreeds[i-1].SimilarityScore, s.SimilarityScore)
				}
			}
		})
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	p := samplePreferences()
	catalog := sampleCatalog()

	first, err := Recommend(p, catalog)
	require.NoError(t, err)
	second, err := Recommend(p, catalog)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestSimilarTo_OutOfRangeTarget(t *testing.T) {
	assert.Empty(t, SimilarTo(sampleCatalog(), -1, SimilarLimit))
	assert.Empty(t, SimilarTo(sampleCatalog(), 3, SimilarLimit))
}

func TestBestMatch_EmptyCatalog(t *testing.T) {
	idx, score := BestMatch(samplePreferences(), nil)
	assert.Equal(t, -1, idx)
	assert.Equal(t, -1, score)
}
