// Package scoring ranks dog breeds against a user's stated preferences.
//
// Everything here is pure: no I/O, no shared state. Callers supply the
// preferences and the breed catalog and get a fresh RecommendationResult.
package scoring

import (
	"fmt"
	"strings"
)

type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
	SizeGiant  Size = "Giant"
)

type Shedding string

const (
	SheddingLow      Shedding = "Low"
	SheddingModerate Shedding = "Moderate"
	SheddingHigh     Shedding = "High"
)

type HealthRisk string

const (
	HealthRiskLow    HealthRisk = "Low"
	HealthRiskMedium HealthRisk = "Medium"
	HealthRiskHigh   HealthRisk = "High"
)

type BreedGroup string

const (
	GroupHerding     BreedGroup = "Herding"
	GroupSporting    BreedGroup = "Sporting"
	GroupWorking     BreedGroup = "Working"
	GroupHound       BreedGroup = "Hound"
	GroupTerrier     BreedGroup = "Terrier"
	GroupToy         BreedGroup = "Toy"
	GroupNonSporting BreedGroup = "Non-Sporting"
)

var (
	Sizes       = []Size{SizeSmall, SizeMedium, SizeLarge, SizeGiant}
	SheddingLvs = []Shedding{SheddingLow, SheddingModerate, SheddingHigh}
	HealthRisks = []HealthRisk{HealthRiskLow, HealthRiskMedium, HealthRiskHigh}
	BreedGroups = []BreedGroup{GroupHerding, GroupSporting, GroupWorking, GroupHound, GroupTerrier, GroupToy, GroupNonSporting}
)

// ParseSize matches case-insensitively.
func ParseSize(s string) (Size, error) {
	for _, v := range Sizes {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}

func ParseShedding(s string) (Shedding, error) {
	for _, v := range SheddingLvs {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown shedding level %q", s)
}

// ParseHealthRisk also accepts "Moderate", which the prediction service
// uses for the middle risk level.
func ParseHealthRisk(s string) (HealthRisk, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "Moderate") {
		return HealthRiskMedium, nil
	}
	for _, v := range HealthRisks {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown health risk %q", s)
}

func ParseBreedGroup(s string) (BreedGroup, error) {
	s = strings.TrimSpace(s)
	for _, v := range BreedGroups {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	if strings.EqualFold(s, "NonSporting") || strings.EqualFold(s, "Non Sporting") {
		return GroupNonSporting, nil
	}
	return "", fmt.Errorf("unknown breed group %q", s)
}

// Breed is a catalog entry. Name identifies it within a catalog; the
// descriptive fields are carried through untouched.
type Breed struct {
	ID                 string     `json:"id,omitempty"`
	Name               string     `json:"name" validate:"required"`
	Size               Size       `json:"size" validate:"required,oneof=Small Medium Large Giant"`
	ExerciseNeeds      float64    `json:"exerciseNeeds" validate:"gte=0,lte=4"`
	GoodWithChildren   bool       `json:"goodWithChildren"`
	Intelligence       int        `json:"intelligence" validate:"gte=1,lte=10"`
	TrainingDifficulty int        `json:"trainingDifficulty" validate:"gte=1,lte=10"`
	Shedding           Shedding   `json:"shedding" validate:"required,oneof=Low Moderate High"`
	HealthRisk         HealthRisk `json:"healthRisk" validate:"required,oneof=Low Medium High"`
	BreedGroup         BreedGroup `json:"breedGroup" validate:"required,oneof=Herding Sporting Working Hound Terrier Toy Non-Sporting"`
	Friendliness       int        `json:"friendliness" validate:"gte=1,lte=10"`
	LifeExpectancy     int        `json:"lifeExpectancy" validate:"omitempty,gte=1,lte=30"`
	AverageWeight      float64    `json:"averageWeight" validate:"omitempty,gt=0,lte=150"`

	Description string   `json:"description,omitempty"`
	Temperament []string `json:"temperament,omitempty"`
	Care        []string `json:"care,omitempty"`
	History     string   `json:"history,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// UserPreferences holds the desired value of every comparable breed trait.
type UserPreferences struct {
	Size               Size       `json:"size" validate:"required,oneof=Small Medium Large Giant"`
	ExerciseHours      float64    `json:"exerciseHours" validate:"gte=0,lte=4"`
	GoodWithChildren   bool       `json:"goodWithChildren"`
	Intelligence       int        `json:"intelligence" validate:"gte=1,lte=10"`
	TrainingDifficulty int        `json:"trainingDifficulty" validate:"gte=1,lte=10"`
	Shedding           Shedding   `json:"shedding" validate:"required,oneof=Low Moderate High"`
	HealthRisk         HealthRisk `json:"healthRisk" validate:"required,oneof=Low Medium High"`
	BreedGroup         BreedGroup `json:"breedGroup" validate:"required,oneof=Herding Sporting Working Hound Terrier Toy Non-Sporting"`
	Friendliness       int        `json:"friendliness" validate:"gte=1,lte=10"`
	LifeExpectancy     int        `json:"lifeExpectancy,omitempty" validate:"omitempty,gte=1,lte=30"`
	AverageWeight      float64    `json:"averageWeight,omitempty" validate:"omitempty,gt=0,lte=150"`
}

type SimilarBreed struct {
	Breed           Breed `json:"breed"`
	SimilarityScore int   `json:"similarityScore"`
}

type RecommendationResult struct {
	BestMatch          Breed          `json:"breed"`
	CompatibilityScore int            `json:"compatibilityScore"`
	MatchReasons       []string       `json:"matchReasons"`
	SimilarBreeds      []SimilarBreed `json:"similarBreeds"`
}
