package predictor

import (
	"dogmatch-workers/internal/scoring"
)

// Values sent for Life Span and Average Weight when the user left them
// unset. The prediction API requires both.
const (
	DefaultLifeSpan      = 12
	DefaultAverageWeight = 20.0
)

// RecommendRequest is the body of POST /api/recommend. The API keys its
// features by the column names of its training data.
type RecommendRequest struct {
	Size               string  `json:"Size"`
	ExerciseHours      float64 `json:"Exercise Requirements (hrs/day)"`
	GoodWithChildren   string  `json:"Good with Children"`
	Intelligence       int     `json:"Intelligence Rating (1-10)"`
	TrainingDifficulty int     `json:"Training Difficulty (1-10)"`
	Shedding           string  `json:"Shedding Level"`
	HealthRisk         string  `json:"Health Issues Risk"`
	Type               string  `json:"Type"`
	Friendliness       int     `json:"Friendly Rating (1-10)"`
	LifeSpan           int     `json:"Life Span"`
	AverageWeight      float64 `json:"Average Weight (kg)"`
}

// NewRecommendRequest converts preferences into the API's vocabulary.
func NewRecommendRequest(p scoring.UserPreferences) RecommendRequest {
	req := RecommendRequest{
		Size:               string(p.Size),
		ExerciseHours:      p.ExerciseHours,
		GoodWithChildren:   "No",
		Intelligence:       p.Intelligence,
		TrainingDifficulty: p.TrainingDifficulty,
		Shedding:           string(p.Shedding),
		HealthRisk:         string(p.HealthRisk),
		Type:               string(p.BreedGroup),
		Friendliness:       p.Friendliness,
		LifeSpan:           p.LifeExpectancy,
		AverageWeight:      p.AverageWeight,
	}
	if p.GoodWithChildren {
		req.GoodWithChildren = "Yes"
	}
	if p.HealthRisk == scoring.HealthRiskMedium {
		req.HealthRisk = "Moderate"
	}
	if req.LifeSpan == 0 {
		req.LifeSpan = DefaultLifeSpan
	}
	if req.AverageWeight == 0 {
		req.AverageWeight = DefaultAverageWeight
	}
	return req
}

type Prediction struct {
	Breed string  `json:"breed"`
	Score float64 `json:"score"`
}

type SimilarPrediction struct {
	Breed      string  `json:"breed"`
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"`
}

// RecommendResponse is the body returned by POST /api/recommend.
type RecommendResponse struct {
	APIVersion    string              `json:"api_version"`
	Timestamp     string              `json:"timestamp,omitempty"`
	Predictions   []Prediction        `json:"predictions"`
	SimilarBreeds []SimilarPrediction `json:"similar_breeds"`
	UserProfile   map[string]float64  `json:"user_profile,omitempty"`
}

type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Message     string `json:"message,omitempty"`
}

type ModelInfo struct {
	ModelType             string `json:"model_type"`
	SimilarityModelType   string `json:"similarity_model_type"`
	NumFeatures           int    `json:"n_features"`
	NumBreeds             int    `json:"n_breeds"`
	SupportsProbabilities bool   `json:"supports_probabilities"`
	FeatureEngineering    bool   `json:"feature_engineering"`
	HybridSystem          bool   `json:"hybrid_system"`
}

type modelInfoResponse struct {
	Model      ModelInfo `json:"model"`
	APIVersion string    `json:"api_version"`
}

type breedsResponse struct {
	Breeds      []string `json:"breeds"`
	TotalBreeds int      `json:"total_breeds"`
	APIVersion  string   `json:"api_version"`
}

// FeatureInfo describes the inputs the model accepts.
type FeatureInfo struct {
	Features struct {
		Categorical []string `json:"categorical"`
		Numeric     []string `json:"numeric"`
		Total       int      `json:"total"`
	} `json:"features"`
	CategoricalValues map[string][]string `json:"categorical_values"`
	APIVersion        string              `json:"api_version"`
}
