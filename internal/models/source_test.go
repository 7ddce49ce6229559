package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEffectiveTimeBoundsDefaults(t *testing.T) {
	s := SourceModel{EstimatedTime: 20}

	assert.Equal(t, 15, s.EffectiveMinTime())
	assert.Equal(t, 25, s.EffectiveMaxTime())
}

func TestEffectiveMinTimeFloorsAtOne(t *testing.T) {
	s := SourceModel{EstimatedTime: 3}

	assert.Equal(t, 1, s.EffectiveMinTime())
}

func TestExplicitTimeBoundsWin(t *testing.T) {
	s := SourceModel{EstimatedTime: 20, MinTime: intPtr(10), MaxTime: intPtr(40)}

	assert.Equal(t, 10, s.EffectiveMinTime())
	assert.Equal(t, 40, s.EffectiveMaxTime())
}

func TestMatchesLanguage(t *testing.T) {
	assert.True(t, SourceModel{}.MatchesLanguage("en"))
	assert.True(t, SourceModel{LanguagePreference: "both"}.MatchesLanguage("he"))
	assert.True(t, SourceModel{LanguagePreference: "he"}.MatchesLanguage("he"))
	assert.True(t, SourceModel{LanguagePreference: "He"}.MatchesLanguage(" HE "))
	assert.False(t, SourceModel{LanguagePreference: "he"}.MatchesLanguage("en"))
}

func TestUsableRequiresCoreFields(t *testing.T) {
	full := SourceModel{
		Title:            "Pirkei Avot 1:1",
		ReflectionPrompt: "What does receiving Torah mean here?",
		Category:         "ethics",
		EstimatedTime:    15,
	}
	assert.True(t, full.Usable())

	noTitle := full
	noTitle.Title = "  "
	assert.False(t, noTitle.Usable())

	noPrompt := full
	noPrompt.ReflectionPrompt = ""
	assert.False(t, noPrompt.Usable())

	noCategory := full
	noCategory.Category = ""
	assert.False(t, noCategory.Usable())

	noTime := full
	noTime.EstimatedTime = 0
	assert.False(t, noTime.Usable())
}

func TestDifficultyWeightOrdering(t *testing.T) {
	assert.Equal(t, 1, DifficultyBeginner.Weight())
	assert.Equal(t, 2, DifficultyIntermediate.Weight())
	assert.Equal(t, 3, DifficultyAdvanced.Weight())
	assert.Equal(t, 1, DifficultyLevel("unknown").Weight())
}
