package catalog

import "dogmatch-workers/internal/scoring"

// FixtureBreeds is the built-in catalog used when no store is configured.
func FixtureBreeds() []scoring.Breed {
	return []scoring.Breed{
		{
			ID: "golden-retriever", Name: "Golden Retriever",
			Size: scoring.SizeLarge, ExerciseNeeds: 2, GoodWithChildren: true,
			Intelligence: 9, TrainingDifficulty: 3, Shedding: scoring.SheddingHigh,
			HealthRisk: scoring.HealthRiskMedium, BreedGroup: scoring.GroupSporting,
			Friendliness: 10, LifeExpectancy: 11, AverageWeight: 30,
			Description: "Friendly, devoted family dog that loves water and retrieving.",
			Temperament: []string{"Friendly", "Intelligent", "Devoted"},
			Care:        []string{"Daily exercise", "Brushing several times a week"},
			Images:      []string{"/dog_breeds_img/golden.jpg"},
		},
		{
			ID: "labrador-retriever", Name: "Labrador Retriever",
			Size: scoring.SizeLarge, ExerciseNeeds: 2, GoodWithChildren: true,
			Intelligence: 8, TrainingDifficulty: 3, Shedding: scoring.SheddingHigh,
			HealthRisk: scoring.HealthRiskMedium, BreedGroup: scoring.GroupSporting,
			Friendliness: 10, LifeExpectancy: 12, AverageWeight: 32,
			Description: "Outgoing, even-tempered retriever and one of the most popular family dogs.",
			Temperament: []string{"Outgoing", "Gentle", "Agreeable"},
			Care:        []string{"Daily exercise", "Weekly brushing"},
			Images:      []string{"/dog_breeds_img/labrador.jpg"},
		},
		{
			ID: "border-collie", Name: "Border Collie",
			Size: scoring.SizeMedium, ExerciseNeeds: 3, GoodWithChildren: true,
			Intelligence: 10, TrainingDifficulty: 2, Shedding: scoring.SheddingModerate,
			HealthRisk: scoring.HealthRiskLow, BreedGroup: scoring.GroupHerding,
			Friendliness: 7, LifeExpectancy: 13, AverageWeight: 18,
			Description: "Tireless herder with exceptional intelligence and focus.",
			Temperament: []string{"Energetic", "Intelligent", "Alert"},
			Care:        []string{"Mental stimulation", "Long daily exercise"},
		},
		{
			ID: "german-shepherd", Name: "German Shepherd",
			Size: scoring.SizeLarge, ExerciseNeeds: 2.5, GoodWithChildren: true,
			Intelligence: 9, TrainingDifficulty: 4, Shedding: scoring.SheddingHigh,
			HealthRisk: scoring.HealthRiskHigh, BreedGroup: scoring.GroupHerding,
			Friendliness: 6, LifeExpectancy: 11, AverageWeight: 34,
			Description: "Confident, courageous working dog used in police and service roles.",
			Temperament: []string{"Confident", "Loyal", "Courageous"},
			Care:        []string{"Daily exercise", "Frequent brushing"},
		},
		{
			ID: "poodle", Name: "Poodle",
			Size: scoring.SizeMedium, ExerciseNeeds: 1.5, GoodWithChildren: true,
			Intelligence: 10, TrainingDifficulty: 2, Shedding: scoring.SheddingLow,
			HealthRisk: scoring.HealthRiskMedium, BreedGroup: scoring.GroupNonSporting,
			Friendliness: 8, LifeExpectancy: 14, AverageWeight: 22,
			Description: "Proud, athletic and very trainable, with a low-shedding coat.",
			Temperament: []string{"Intelligent", "Active", "Proud"},
			Care:        []string{"Regular grooming", "Moderate exercise"},
		},
		{
			ID: "beagle", Name: "Beagle",
			Size: scoring.SizeSmall, ExerciseNeeds: 1.5, GoodWithChildren: true,
			Intelligence: 6, TrainingDifficulty: 6, Shedding: scoring.SheddingModerate,
			HealthRisk: scoring.HealthRiskLow, BreedGroup: scoring.GroupHound,
			Friendliness: 9, LifeExpectancy: 13, AverageWeight: 10,
			Description: "Merry scent hound, curious and happy in a pack.",
			Temperament: []string{"Curious", "Merry", "Friendly"},
			Care:        []string{"Secure yard", "Daily walks"},
		},
		{
			ID: "bulldog", Name: "Bulldog",
			Size: scoring.SizeMedium, ExerciseNeeds: 0.5, GoodWithChildren: true,
			Intelligence: 4, TrainingDifficulty: 7, Shedding: scoring.SheddingModerate,
			HealthRisk: scoring.HealthRiskHigh, BreedGroup: scoring.GroupNonSporting,
			Friendliness: 8, LifeExpectancy: 9, AverageWeight: 23,
			Description: "Calm, courageous companion that prefers short walks.",
			Temperament: []string{"Docile", "Willful", "Friendly"},
			Care:        []string{"Heat sensitivity", "Skin fold cleaning"},
		},
		{
			ID: "siberian-husky", Name: "Siberian Husky",
			Size: scoring.SizeLarge, ExerciseNeeds: 3, GoodWithChildren: true,
			Intelligence: 6, TrainingDifficulty: 8, Shedding: scoring.SheddingHigh,
			HealthRisk: scoring.HealthRiskLow, BreedGroup: scoring.GroupWorking,
			Friendliness: 8, LifeExpectancy: 13, AverageWeight: 23,
			Description: "Sled dog with great endurance and an independent streak.",
			Temperament: []string{"Outgoing", "Mischievous", "Loyal"},
			Care:        []string{"Vigorous exercise", "Seasonal coat blowing"},
		},
		{
			ID: "chihuahua", Name: "Chihuahua",
			Size: scoring.SizeSmall, ExerciseNeeds: 0.5, GoodWithChildren: false,
			Intelligence: 5, TrainingDifficulty: 6, Shedding: scoring.SheddingLow,
			HealthRisk: scoring.HealthRiskMedium, BreedGroup: scoring.GroupToy,
			Friendliness: 5, LifeExpectancy: 16, AverageWeight: 2.5,
			Description: "Tiny, alert companion with a big personality.",
			Temperament: []string{"Charming", "Graceful", "Sassy"},
			Care:        []string{"Protection from cold", "Dental care"},
		},
		{
			ID: "jack-russell-terrier", Name: "Jack Russell Terrier",
			Size: scoring.SizeSmall, ExerciseNeeds: 2, GoodWithChildren: false,
			Intelligence: 7, TrainingDifficulty: 7, Shedding: scoring.SheddingModerate,
			HealthRisk: scoring.HealthRiskLow, BreedGroup: scoring.GroupTerrier,
			Friendliness: 6, LifeExpectancy: 14, AverageWeight: 6,
			Description: "Fearless, energetic terrier bred for fox hunting.",
			Temperament: []string{"Energetic", "Fearless", "Vocal"},
			Care:        []string{"High activity", "Firm training"},
		},
		{
			ID: "great-dane", Name: "Great Dane",
			Size: scoring.SizeGiant, ExerciseNeeds: 1.5, GoodWithChildren: true,
			Intelligence: 6, TrainingDifficulty: 5, Shedding: scoring.SheddingModerate,
			HealthRisk: scoring.HealthRiskHigh, BreedGroup: scoring.GroupWorking,
			Friendliness: 8, LifeExpectancy: 8, AverageWeight: 65,
			Description: "Gentle giant, patient and dependable with family.",
			Temperament: []string{"Friendly", "Patient", "Dependable"},
			Care:        []string{"Space", "Joint care"},
		},
		{
			ID: "newfoundland", Name: "Newfoundland",
			Size: scoring.SizeGiant, ExerciseNeeds: 1, GoodWithChildren: true,
			Intelligence: 7, TrainingDifficulty: 4, Shedding: scoring.SheddingHigh,
			HealthRisk: scoring.HealthRiskMedium, BreedGroup: scoring.GroupWorking,
			Friendliness: 10, LifeExpectancy: 10, AverageWeight: 60,
			Description: "Sweet-natured water rescue dog famous for patience with children.",
			Temperament: []string{"Sweet", "Patient", "Devoted"},
			Care:        []string{"Heavy grooming", "Drool management"},
		},
	}
}
