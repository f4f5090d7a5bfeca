package searchbreeds

import (
	"context"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/scoring"
)

type Input struct {
	Query      string     `json:"query,omitempty"`
	Filters    Filters    `json:"filters"`
	Pagination Pagination `json:"pagination"`
}

// Filters carries enum values as free text; they are parsed
// case-insensitively before the search runs.
type Filters struct {
	Size             string   `json:"size,omitempty"`
	BreedGroup       string   `json:"breedGroup,omitempty"`
	Shedding         string   `json:"shedding,omitempty"`
	HealthRisk       string   `json:"healthRisk,omitempty"`
	GoodWithChildren *bool    `json:"goodWithChildren,omitempty"`
	MaxExerciseHours *float64 `json:"maxExerciseHours,omitempty"`
	MinIntelligence  int      `json:"minIntelligence,omitempty"`
	SortBy           string   `json:"sortBy,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Breeds    []scoring.Breed `json:"breeds"`
	TotalHits int             `json:"totalHits"`
	MaxScore  float64         `json:"maxScore"`
	Took      int             `json:"took"` // milliseconds
}

// Searcher is satisfied by *catalog.SearchIndex.
type Searcher interface {
	Search(ctx context.Context, text string, filters catalog.SearchFilters, from, size int) (*catalog.SearchResult, error)
	Index() string
}
