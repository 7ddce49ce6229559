package personalize

import (
	"testing"

	"github.com/limmud-app/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreWeights(t *testing.T) {
	pattern := LearningPattern{
		PreferredTopics:       map[string]int{"halacha": 4},
		TimePreferences:       map[int]int{15: 2},
		DifficultyProgression: models.DifficultyIntermediate,
		CompletionRates:       map[string]float64{"halacha": 0.5},
		OptimalStudyTimes:     []int{15, 30},
	}
	src := models.SourceModel{
		Category:        "Halacha",
		EstimatedTime:   15,
		DifficultyLevel: models.DifficultyIntermediate,
	}

	// 2*4 + 1.5*2 + 3 + 2*0.5 + 1 = 16
	assert.InDelta(t, 16, Score(src, 15, pattern), 1e-9)

	// Requested time outside optimal list drops the +1.
	assert.InDelta(t, 15, Score(src, 20, pattern), 1e-9)

	// Difficulty mismatch drops the +3 on top of the lost +1.
	src.DifficultyLevel = models.DifficultyBeginner
	assert.InDelta(t, 12, Score(src, 20, pattern), 1e-9)

	// Same mismatch at an optimal time keeps the +1.
	assert.InDelta(t, 13, Score(src, 15, pattern), 1e-9)
}

func TestCandidatesFilter(t *testing.T) {
	pattern := LearningPattern{DifficultyProgression: models.DifficultyIntermediate}
	catalog := []models.SourceModel{
		published("a", "Halacha", 15, models.DifficultyBeginner),
		published("b", "Halacha", 15, models.DifficultyAdvanced),  // too hard
		published("c", "Mussar", 15, models.DifficultyBeginner),   // wrong category
		published("d", "Halacha", 45, models.DifficultyBeginner),  // time window miss
		unpublished("e", "Halacha", 15, models.DifficultyBeginner),
		published("f", "Halacha", 15, models.DifficultyIntermediate),
	}

	got := Candidates(catalog, "halacha", 15, "en", map[string]bool{}, pattern)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "f", got[1].ID)

	// Exclusion set respected.
	got = Candidates(catalog, "halacha", 15, "en", map[string]bool{"a": true}, pattern)
	require.Len(t, got, 1)
	assert.Equal(t, "f", got[0].ID)
}

func TestCandidatesNoSubstringMatch(t *testing.T) {
	pattern := LearningPattern{DifficultyProgression: models.DifficultyBeginner}
	catalog := []models.SourceModel{published("a", "Halacha Basics", 15, models.DifficultyBeginner)}

	// The relaxed tier requires category equality, not containment.
	assert.Empty(t, Candidates(catalog, "halacha", 15, "en", nil, pattern))
}

func TestBestPrefersHigherScoreThenOrder(t *testing.T) {
	pattern := LearningPattern{
		PreferredTopics:       map[string]int{"halacha": 1},
		TimePreferences:       map[int]int{},
		DifficultyProgression: models.DifficultyBeginner,
		CompletionRates:       map[string]float64{},
	}
	a := published("a", "Mussar", 15, models.DifficultyBeginner)
	b := published("b", "Halacha", 15, models.DifficultyBeginner)
	c := published("c", "Halacha", 15, models.DifficultyBeginner)

	best := Best([]models.SourceModel{a, b, c}, 15, pattern)
	require.NotNil(t, best)
	// b and c tie; earlier catalog order wins.
	assert.Equal(t, "b", best.ID)

	assert.Nil(t, Best(nil, 15, pattern))
}

func published(id, category string, minutes int, level models.DifficultyLevel) models.SourceModel {
	s := models.SourceModel{
		Title:            "Source " + id,
		ReflectionPrompt: "What stands out?",
		Category:         category,
		DifficultyLevel:  level,
		EstimatedTime:    minutes,
		Published:        true,
	}
	s.ID = id
	return s
}

func unpublished(id, category string, minutes int, level models.DifficultyLevel) models.SourceModel {
	s := published(id, category, minutes, level)
	s.Published = false
	return s
}
