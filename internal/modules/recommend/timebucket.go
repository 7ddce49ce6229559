package recommend

import "github.com/limmud-app/core/internal/models"

// TimeBucket is one minute-range policy row: which source types are eligible
// for a session of this length and how demanding the material may be.
type TimeBucket struct {
	MaxMinutes    int // inclusive upper bound; the last bucket is open-ended
	AllowedTypes  []models.SourceType
	MaxDifficulty models.DifficultyLevel
	Focus         string
}

var timeBuckets = []TimeBucket{
	{
		MaxMinutes:    10,
		AllowedTypes:  []models.SourceType{models.SourceTypePracticalHalacha, models.SourceTypeTextStudy},
		MaxDifficulty: models.DifficultyBeginner,
		Focus:         "quick_insights",
	},
	{
		MaxMinutes:    20,
		AllowedTypes:  []models.SourceType{models.SourceTypeTextStudy, models.SourceTypePhilosophical},
		MaxDifficulty: models.DifficultyIntermediate,
		Focus:         "standard_study",
	},
	{
		MaxMinutes:    30,
		AllowedTypes:  []models.SourceType{models.SourceTypeTextStudy, models.SourceTypePhilosophical, models.SourceTypeHistorical},
		MaxDifficulty: models.DifficultyIntermediate,
		Focus:         "complex_topics",
	},
	{
		MaxMinutes:    45,
		AllowedTypes:  []models.SourceType{models.SourceTypePhilosophical, models.SourceTypeMystical, models.SourceTypeHistorical},
		MaxDifficulty: models.DifficultyAdvanced,
		Focus:         "comprehensive_study",
	},
	{
		MaxMinutes:    0,
		AllowedTypes:  []models.SourceType{models.SourceTypeMystical, models.SourceTypePhilosophical, models.SourceTypeHistorical},
		MaxDifficulty: models.DifficultyAdvanced,
		Focus:         "deep_analysis",
	},
}

// BucketFor returns the policy bucket for a session length in minutes.
func BucketFor(minutes int) TimeBucket {
	for _, b := range timeBuckets[:len(timeBuckets)-1] {
		if minutes <= b.MaxMinutes {
			return b
		}
	}
	return timeBuckets[len(timeBuckets)-1]
}

// Allows reports whether the bucket admits the given source type.
func (b TimeBucket) Allows(t models.SourceType) bool {
	for _, allowed := range b.AllowedTypes {
		if t == allowed {
			return true
		}
	}
	return false
}
