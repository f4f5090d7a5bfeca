package findsimilarbreeds

import "dogmatch-workers/internal/scoring"

type Input struct {
	BreedName string `json:"breedName"`
	// Limit of zero means the configured default.
	Limit int `json:"limit,omitempty"`
}

type Output struct {
	Breed         scoring.Breed          `json:"breed"`
	SimilarBreeds []scoring.SimilarBreed `json:"similarBreeds"`
	Count         int                    `json:"count"`
}
