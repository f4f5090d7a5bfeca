package scoring

import (
	"math"
	"sort"
	"strings"
)

const (
	maxScore = 100

	// SimilarLimit caps RecommendationResult.SimilarBreeds.
	SimilarLimit = 5
	// ReasonLimit caps RecommendationResult.MatchReasons.
	ReasonLimit = 4
)

// Compatibility penalties.
const (
	sizePenalty          = 15.0
	exercisePerHour      = 5.0
	childrenPenalty      = 25.0
	intelligencePerPoint = 1.0
	trainingPerPoint     = 1.0
	sheddingPenalty      = 8.0
	healthRiskPenalty    = 7.0
	groupPenalty         = 5.0
)

// Similarity penalties. Deliberately not the compatibility weights.
const (
	simSizePenalty          = 15.0
	simExercisePerHour      = 5.0
	simChildrenPenalty      = 10.0
	simIntelligencePerPoint = 2.0
	simSheddingPenalty      = 10.0
	simGroupPenalty         = 10.0
)

// ComputeCompatibility scores how well breed b matches preferences p, in [0,100].
func ComputeCompatibility(p UserPreferences, b Breed) int {
	score := float64(maxScore)

	if p.Size != b.Size {
		score -= sizePenalty
	}
	score -= exercisePerHour * math.Abs(p.ExerciseHours-b.ExerciseNeeds)
	if p.GoodWithChildren && !b.GoodWithChildren {
		score -= childrenPenalty
	}
	score -= intelligencePerPoint * absDiff(p.Intelligence, b.Intelligence)
	score -= trainingPerPoint * absDiff(p.TrainingDifficulty, b.TrainingDifficulty)
	if p.Shedding != b.Shedding {
		score -= sheddingPenalty
	}
	if p.HealthRisk != b.HealthRisk {
		score -= healthRiskPenalty
	}
	if p.BreedGroup != b.BreedGroup {
		score -= groupPenalty
	}

	return clamp(score)
}

// ComputeSimilarity scores how alike two breeds are, in [0,100]. It is
// symmetric in its arguments.
func ComputeSimilarity(a, b Breed) int {
	score := float64(maxScore)

	if a.Size != b.Size {
		score -= simSizePenalty
	}
	score -= simExercisePerHour * math.Abs(a.ExerciseNeeds-b.ExerciseNeeds)
	if a.GoodWithChildren != b.GoodWithChildren {
		score -= simChildrenPenalty
	}
	score -= simIntelligencePerPoint * absDiff(a.Intelligence, b.Intelligence)
	if a.Shedding != b.Shedding {
		score -= simSheddingPenalty
	}
	if a.BreedGroup != b.BreedGroup {
		score -= simGroupPenalty
	}

	return clamp(score)
}

type reasonRule struct {
	holds func(p UserPreferences, b Breed) bool
	text  func(p UserPreferences, b Breed) string
}

func fixed(s string) func(UserPreferences, Breed) string {
	return func(UserPreferences, Breed) string { return s }
}

// Order matters: when more than ReasonLimit rules hold, the earliest win.
var reasonRules = []reasonRule{
	{
		holds: func(p UserPreferences, b Breed) bool { return p.Size == b.Size },
		text: func(_ UserPreferences, b Breed) string {
			return "Ideal " + strings.ToLower(string(b.Size)) + " size for you"
		},
	},
	{
		holds: func(p UserPreferences, b Breed) bool { return math.Abs(p.ExerciseHours-b.ExerciseNeeds) <= 0.5 },
		text:  fixed("Compatible exercise needs"),
	},
	{
		holds: func(p UserPreferences, b Breed) bool { return p.GoodWithChildren && b.GoodWithChildren },
		text:  fixed("Excellent with children"),
	},
	{
		holds: func(_ UserPreferences, b Breed) bool { return b.Intelligence >= 8 },
		text:  fixed("High intelligence and easy to train"),
	},
	{
		holds: func(_ UserPreferences, b Breed) bool { return b.Shedding == SheddingLow },
		text:  fixed("Low shedding"),
	},
	{
		holds: func(_ UserPreferences, b Breed) bool { return b.Friendliness >= 9 },
		text:  fixed("Extremely friendly and sociable"),
	},
}

// GenerateMatchReasons explains why b suits p, at most ReasonLimit entries.
func GenerateMatchReasons(p UserPreferences, b Breed) []string {
	reasons := make([]string, 0, ReasonLimit)
	for _, r := range reasonRules {
		if len(reasons) == ReasonLimit {
			break
		}
		if r.holds(p, b) {
			reasons = append(reasons, r.text(p, b))
		}
	}
	return reasons
}

// BestMatch returns the catalog index with the highest compatibility score.
// Ties keep the earliest entry. It returns -1 for an empty catalog.
func BestMatch(p UserPreferences, catalog []Breed) (int, int) {
	best, bestScore := -1, -1
	for i, b := range catalog {
		if s := ComputeCompatibility(p, b); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}

// SimilarTo ranks every catalog entry except catalog[target] by similarity
// to it, highest first, keeping catalog order among equal scores.
func SimilarTo(catalog []Breed, target, limit int) []SimilarBreed {
	if target < 0 || target >= len(catalog) {
		return []SimilarBreed{}
	}

	ranked := make([]SimilarBreed, 0, len(catalog)-1)
	for i, b := range catalog {
		if i == target {
			continue
		}
		ranked = append(ranked, SimilarBreed{
			Breed:           b,
			SimilarityScore: ComputeSimilarity(catalog[target], b),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SimilarityScore > ranked[j].SimilarityScore
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Recommend picks the best breed for p, explains the choice and lists the
// breeds most similar to it.
func Recommend(p UserPreferences, catalog []Breed) (*RecommendationResult, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := ValidatePreferences(p); err != nil {
		return nil, err
	}

	best, score := BestMatch(p, catalog)

	return &RecommendationResult{
		BestMatch:          catalog[best],
		CompatibilityScore: score,
		MatchReasons:       GenerateMatchReasons(p, catalog[best]),
		SimilarBreeds:      SimilarTo(catalog, best, SimilarLimit),
	}, nil
}

func absDiff(a, b int) float64 {
	return math.Abs(float64(a) - float64(b))
}

// clamp maps a raw score onto [0,100]. NaN counts as no match at all.
func clamp(score float64) int {
	switch {
	case math.IsNaN(score), score <= 0:
		return 0
	case score >= maxScore:
		return maxScore
	default:
		return int(math.Round(score))
	}
}
