package predictor

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/scoring"
)

var ErrBreedNotResolved = errors.New("predicted breed is not in the catalog")

// Resolve turns a remote prediction into a RecommendationResult against the
// local catalog. Compatibility and reasons are always computed locally.
func Resolve(resp *RecommendResponse, prefs scoring.UserPreferences, breeds []scoring.Breed) (*scoring.RecommendationResult, error) {
	if len(breeds) == 0 {
		return nil, scoring.ErrEmptyCatalog
	}
	if resp == nil || len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("%w: no predictions", ErrBreedNotResolved)
	}

	name := resp.Predictions[0].Breed
	idx, err := catalog.FindByName(breeds, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBreedNotResolved, name)
	}
	best := breeds[idx]

	similar := make([]scoring.SimilarBreed, 0, len(resp.SimilarBreeds))
	for _, s := range resp.SimilarBreeds {
		if strings.EqualFold(strings.TrimSpace(s.Breed), best.Name) {
			continue
		}
		b := scoring.Breed{Name: strings.TrimSpace(s.Breed)}
		if i, err := catalog.FindByName(breeds, s.Breed); err == nil {
			b = breeds[i]
		}
		similar = append(similar, scoring.SimilarBreed{
			Breed:           b,
			SimilarityScore: similarityPercent(s.Similarity),
		})
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})
	if len(similar) > scoring.SimilarLimit {
		similar = similar[:scoring.SimilarLimit]
	}

	return &scoring.RecommendationResult{
		BestMatch:          best,
		CompatibilityScore: scoring.ComputeCompatibility(prefs, best),
		MatchReasons:       scoring.GenerateMatchReasons(prefs, best),
		SimilarBreeds:      similar,
	}, nil
}

// similarityPercent maps the API's [0,1] similarity onto [0,100].
func similarityPercent(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 100
	}
	return int(math.Round(v * 100))
}
