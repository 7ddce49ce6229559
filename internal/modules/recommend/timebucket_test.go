package recommend

import (
	"testing"

	"github.com/limmud-app/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBucketFor(t *testing.T) {
	cases := []struct {
		minutes string
		in      int
		focus   string
		maxDiff models.DifficultyLevel
	}{
		{"five", 5, "quick_insights", models.DifficultyBeginner},
		{"ten", 10, "quick_insights", models.DifficultyBeginner},
		{"eleven", 11, "standard_study", models.DifficultyIntermediate},
		{"twenty", 20, "standard_study", models.DifficultyIntermediate},
		{"thirty", 30, "complex_topics", models.DifficultyIntermediate},
		{"fortyfive", 45, "comprehensive_study", models.DifficultyAdvanced},
		{"sixty", 60, "deep_analysis", models.DifficultyAdvanced},
		{"ninety", 90, "deep_analysis", models.DifficultyAdvanced},
	}
	for _, tc := range cases {
		b := BucketFor(tc.in)
		assert.Equal(t, tc.focus, b.Focus, tc.minutes)
		assert.Equal(t, tc.maxDiff, b.MaxDifficulty, tc.minutes)
	}
}

func TestBucketAllows(t *testing.T) {
	short := BucketFor(10)
	assert.True(t, short.Allows(models.SourceTypePracticalHalacha))
	assert.True(t, short.Allows(models.SourceTypeTextStudy))
	assert.False(t, short.Allows(models.SourceTypeMystical))

	long := BucketFor(60)
	assert.True(t, long.Allows(models.SourceTypeMystical))
	assert.False(t, long.Allows(models.SourceTypePracticalHalacha))
}
