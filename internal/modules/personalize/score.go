package personalize

import (
	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/pkg/normalize"
)

// Hand-tuned linear weights. Relative tie-breaking depends on these exact
// magnitudes; do not normalize.
const (
	weightTopic          = 2.0
	weightTime           = 1.5
	weightDifficulty     = 3.0
	weightCompletionRate = 2.0
	weightOptimalTime    = 1.0
)

// Score rates one candidate against the user's pattern for a given request time.
func Score(src models.SourceModel, timeSelected int, pattern LearningPattern) float64 {
	topic := normalize.Topic(src.Category)

	score := weightTopic * float64(pattern.PreferredTopics[topic])
	score += weightTime * float64(pattern.TimePreferences[src.EstimatedTime])
	if src.DifficultyLevel == pattern.DifficultyProgression {
		score += weightDifficulty
	}
	score += weightCompletionRate * pattern.CompletionRates[topic]
	for _, t := range pattern.OptimalStudyTimes {
		if t == timeSelected {
			score += weightOptimalTime
			break
		}
	}
	return score
}

// Candidates applies the relaxed personalization filter: exact category
// equality (no substring matching), time-window containment, language match,
// and difficulty no harder than the user's current progression tier.
func Candidates(catalog []models.SourceModel, topic string, timeSelected int, lang string, exclude map[string]bool, pattern LearningPattern) []models.SourceModel {
	want := normalize.Topic(topic)
	maxWeight := pattern.DifficultyProgression.Weight()

	var out []models.SourceModel
	for _, src := range catalog {
		if !src.Published || !src.Usable() || exclude[src.ID] {
			continue
		}
		if normalize.Topic(src.Category) != want {
			continue
		}
		if timeSelected < src.EffectiveMinTime() || timeSelected > src.EffectiveMaxTime() {
			continue
		}
		if !src.MatchesLanguage(lang) {
			continue
		}
		if src.DifficultyLevel.Weight() > maxWeight {
			continue
		}
		out = append(out, src)
	}
	return out
}

// Best returns the highest-scoring candidate, earlier catalog order winning
// ties. Returns nil when candidates is empty.
func Best(candidates []models.SourceModel, timeSelected int, pattern LearningPattern) *models.SourceModel {
	var best *models.SourceModel
	bestScore := -1.0
	for i := range candidates {
		s := Score(candidates[i], timeSelected, pattern)
		if s > bestScore {
			best = &candidates[i]
			bestScore = s
		}
	}
	return best
}
