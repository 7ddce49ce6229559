// Package personalize derives per-user preference weights from session and
// reflection history. Everything here is a pure projection: patterns are
// recomputed in full on each call and hold no state of their own.
package personalize

import (
	"sort"
	"time"

	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/pkg/normalize"
)

// Thresholds for difficulty progression. Raw lifetime counts, no decay: a
// long-inactive power user stays advanced.
const (
	intermediateSessionGate = 10
	advancedSessionGate     = 25
	advancedReflectionGate  = 15
)

const optimalTimesLimit = 3

// LearningPattern is the recomputed-on-demand projection of a user's history.
type LearningPattern struct {
	PreferredTopics       map[string]int         `json:"preferred_topics"`
	TimePreferences       map[int]int            `json:"time_preferences"`
	DifficultyProgression models.DifficultyLevel `json:"difficulty_progression"`
	CompletionRates       map[string]float64     `json:"completion_rates"`
	OptimalStudyTimes     []int                  `json:"optimal_study_times"`
	CurrentStreak         int                    `json:"current_streak"`
	LongestStreak         int                    `json:"longest_streak"`
	TotalSessions         int                    `json:"total_sessions"`
	CompletedSessions     int                    `json:"completed_sessions"`
	ReflectionCount       int                    `json:"reflection_count"`
}

// Analyze rebuilds the full learning pattern from history.
func Analyze(sessions []models.StudySessionModel, reflections []models.ReflectionModel) LearningPattern {
	p := LearningPattern{
		PreferredTopics:       map[string]int{},
		TimePreferences:       map[int]int{},
		DifficultyProgression: models.DifficultyBeginner,
		CompletionRates:       map[string]float64{},
		OptimalStudyTimes:     []int{},
		TotalSessions:         len(sessions),
		ReflectionCount:       len(reflections),
	}

	topicTotals := map[string]int{}
	topicCompleted := map[string]int{}
	for _, s := range sessions {
		topic := normalize.Topic(s.Topic)
		if topic != "" {
			p.PreferredTopics[topic]++
			topicTotals[topic]++
		}
		if s.TimeSelected > 0 {
			p.TimePreferences[s.TimeSelected]++
		}
		if s.Completed {
			p.CompletedSessions++
			if topic != "" {
				topicCompleted[topic]++
			}
		}
	}

	for topic, total := range topicTotals {
		p.CompletionRates[topic] = float64(topicCompleted[topic]) / float64(total)
	}

	if p.CompletedSessions > advancedSessionGate && p.ReflectionCount > advancedReflectionGate {
		p.DifficultyProgression = models.DifficultyAdvanced
	} else if p.CompletedSessions > intermediateSessionGate {
		p.DifficultyProgression = models.DifficultyIntermediate
	}

	p.OptimalStudyTimes = topStudyTimes(p.TimePreferences, optimalTimesLimit)
	p.CurrentStreak, p.LongestStreak = streaks(sessions)

	return p
}

// topStudyTimes returns the n most frequent time selections, sorted by
// descending frequency, ties by the smaller time first for stability.
func topStudyTimes(prefs map[int]int, n int) []int {
	times := make([]int, 0, len(prefs))
	for t := range prefs {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool {
		if prefs[times[i]] != prefs[times[j]] {
			return prefs[times[i]] > prefs[times[j]]
		}
		return times[i] < times[j]
	})
	if len(times) > n {
		times = times[:n]
	}
	return times
}

// streaks walks unique calendar days newest-first. The current streak counts
// consecutive days back from the most recent session day, breaking at the
// first gap; the longest streak is the maximum such run over all history.
func streaks(sessions []models.StudySessionModel) (current, longest int) {
	if len(sessions) == 0 {
		return 0, 0
	}

	seen := map[string]time.Time{}
	for _, s := range sessions {
		day := s.CreatedAt.Truncate(24 * time.Hour)
		seen[day.Format("2006-01-02")] = day
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	current = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			current++
			continue
		}
		break
	}

	longest = 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

// GrowthRate is the percentage change in session count between the most
// recent windowDays window and the window immediately preceding it. A prior
// window with zero sessions yields 100 when the recent window is non-empty,
// else 0.
func GrowthRate(sessions []models.StudySessionModel, windowDays int, now time.Time) float64 {
	recentStart := now.AddDate(0, 0, -windowDays)
	priorStart := now.AddDate(0, 0, -2*windowDays)

	var recent, prior int
	for _, s := range sessions {
		switch {
		case s.CreatedAt.After(recentStart):
			recent++
		case s.CreatedAt.After(priorStart):
			prior++
		}
	}

	if prior == 0 {
		if recent > 0 {
			return 100
		}
		return 0
	}
	return float64(recent-prior) / float64(prior) * 100
}

// ConsistencyScore is sessions*10 for users with fewer than 7 sessions;
// otherwise the share of the last 30 calendar days with at least one
// session, as a percentage capped at 100.
func ConsistencyScore(sessions []models.StudySessionModel, now time.Time) float64 {
	if len(sessions) < 7 {
		return float64(len(sessions)) * 10
	}

	cutoff := now.AddDate(0, 0, -30)
	days := map[string]struct{}{}
	for _, s := range sessions {
		if s.CreatedAt.After(cutoff) {
			days[s.CreatedAt.Format("2006-01-02")] = struct{}{}
		}
	}
	score := float64(len(days)) / 30 * 100
	if score > 100 {
		score = 100
	}
	return score
}
