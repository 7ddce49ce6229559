package personalize

import (
	"testing"
	"time"

	"github.com/limmud-app/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionAt(day time.Time, topic string, minutes int, completed bool) models.StudySessionModel {
	s := models.StudySessionModel{
		Topic:        topic,
		TimeSelected: minutes,
		Completed:    completed,
	}
	s.CreatedAt = day
	return s
}

func nSessions(n int, topic string, minutes int, completed bool) []models.StudySessionModel {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]models.StudySessionModel, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sessionAt(base.AddDate(0, 0, -i), topic, minutes, completed))
	}
	return out
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	p := Analyze(nil, nil)
	assert.Equal(t, models.DifficultyBeginner, p.DifficultyProgression)
	assert.Zero(t, p.TotalSessions)
	assert.Zero(t, p.CurrentStreak)
	assert.Empty(t, p.OptimalStudyTimes)
}

func TestAnalyzeDifficultyGates(t *testing.T) {
	// 10 completed sessions is not yet intermediate; the gate is strictly >10.
	p := Analyze(nSessions(10, "halacha", 15, true), nil)
	assert.Equal(t, models.DifficultyBeginner, p.DifficultyProgression)

	p = Analyze(nSessions(11, "halacha", 15, true), nil)
	assert.Equal(t, models.DifficultyIntermediate, p.DifficultyProgression)

	// 26 completed but only 15 reflections: still intermediate.
	refl := make([]models.ReflectionModel, 15)
	p = Analyze(nSessions(26, "halacha", 15, true), refl)
	assert.Equal(t, models.DifficultyIntermediate, p.DifficultyProgression)

	refl = make([]models.ReflectionModel, 16)
	p = Analyze(nSessions(26, "halacha", 15, true), refl)
	assert.Equal(t, models.DifficultyAdvanced, p.DifficultyProgression)
}

func TestAnalyzeCompletionRates(t *testing.T) {
	sessions := append(nSessions(3, "Halacha", 15, true), nSessions(1, "halacha", 15, false)...)
	p := Analyze(sessions, nil)
	require.Contains(t, p.CompletionRates, "halacha")
	assert.InDelta(t, 0.75, p.CompletionRates["halacha"], 1e-9)
}

func TestAnalyzeOptimalStudyTimes(t *testing.T) {
	var sessions []models.StudySessionModel
	sessions = append(sessions, nSessions(5, "t", 15, true)...)
	sessions = append(sessions, nSessions(3, "t", 30, true)...)
	sessions = append(sessions, nSessions(2, "t", 10, true)...)
	sessions = append(sessions, nSessions(1, "t", 45, true)...)
	p := Analyze(sessions, nil)
	assert.Equal(t, []int{15, 30, 10}, p.OptimalStudyTimes)
}

func TestStreaks(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	// Days -0, -1, -2 form the current run; -5..-8 is an older, longer run.
	sessions := []models.StudySessionModel{
		sessionAt(day(0), "t", 15, true),
		sessionAt(day(0).Add(-2*time.Hour), "t", 15, true), // same day twice
		sessionAt(day(-1), "t", 15, true),
		sessionAt(day(-2), "t", 15, true),
		sessionAt(day(-5), "t", 15, true),
		sessionAt(day(-6), "t", 15, true),
		sessionAt(day(-7), "t", 15, true),
		sessionAt(day(-8), "t", 15, true),
	}
	p := Analyze(sessions, nil)
	assert.Equal(t, 3, p.CurrentStreak)
	assert.Equal(t, 4, p.LongestStreak)
}

func TestGrowthRate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	var sessions []models.StudySessionModel
	for i := 0; i < 6; i++ { // recent 7-day window
		sessions = append(sessions, sessionAt(now.AddDate(0, 0, -1), "t", 15, true))
	}
	for i := 0; i < 4; i++ { // prior 7-day window
		sessions = append(sessions, sessionAt(now.AddDate(0, 0, -10), "t", 15, true))
	}
	assert.InDelta(t, 50, GrowthRate(sessions, 7, now), 1e-9)

	// Prior window empty: defined as 100 when recent is non-empty, else 0.
	recentOnly := []models.StudySessionModel{sessionAt(now.AddDate(0, 0, -2), "t", 15, true)}
	assert.Equal(t, 100.0, GrowthRate(recentOnly, 7, now))
	assert.Equal(t, 0.0, GrowthRate(nil, 7, now))
}

func TestConsistencyScore(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30.0, ConsistencyScore(nSessions(3, "t", 15, true), now))

	// 15 distinct days in the last 30.
	var sessions []models.StudySessionModel
	for i := 0; i < 15; i++ {
		sessions = append(sessions, sessionAt(now.AddDate(0, 0, -i), "t", 15, true))
	}
	assert.InDelta(t, 50, ConsistencyScore(sessions, now), 1e-9)
}
