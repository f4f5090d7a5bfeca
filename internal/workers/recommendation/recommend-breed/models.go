package recommendbreed

import (
	"context"
	"time"

	"dogmatch-workers/internal/predictor"
	"dogmatch-workers/internal/scoring"
)

type Input struct {
	Preferences scoring.UserPreferences `json:"preferences"`
	UserID      string                  `json:"userId,omitempty"`
	SkipCache   bool                    `json:"skipCache,omitempty"`
}

type Output struct {
	RequestID      string                        `json:"requestId"`
	Recommendation *scoring.RecommendationResult `json:"recommendation"`
	Source         string                        `json:"recommendationSource"`
	CacheHit       bool                          `json:"cacheHit"`
	GeneratedAt    string                        `json:"generatedAt"`
}

// cachedResult is what the result cache stores per preference set.
type cachedResult struct {
	Recommendation *scoring.RecommendationResult `json:"recommendation"`
	Source         string                        `json:"source"`
	CatalogVersion string                        `json:"catalogVersion"`
}

// Predictor is the part of predictor.Client the worker uses.
type Predictor interface {
	Recommend(ctx context.Context, prefs scoring.UserPreferences) (*predictor.RecommendResponse, error)
}

// ResultCache is satisfied by *database.RedisClient.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
