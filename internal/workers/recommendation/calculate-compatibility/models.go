package calculatecompatibility

import "dogmatch-workers/internal/scoring"

// Input names the breed to score, either by catalog name or inline. An
// inline breed wins when both are present.
type Input struct {
	Preferences scoring.UserPreferences `json:"preferences"`
	BreedName   string                  `json:"breedName,omitempty"`
	Breed       *scoring.Breed          `json:"breed,omitempty"`
}

type Output struct {
	Breed              scoring.Breed `json:"breed"`
	CompatibilityScore int           `json:"compatibilityScore"`
	MatchReasons       []string      `json:"matchReasons"`
	ScoredAt           string        `json:"scoredAt"`
}
