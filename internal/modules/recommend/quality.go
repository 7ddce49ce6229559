package recommend

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/limmud-app/core/internal/models"
)

// CanonicalDomain is the only host accepted for source links.
const CanonicalDomain = "sefaria.org"

const qualityWarnThreshold = 60

// Assessment is the advisory completeness report for one source. It never
// blocks selection; callers surface the warnings alongside the pick.
type Assessment struct {
	Score    int      `json:"score"`
	Warnings []string `json:"warnings,omitempty"`
}

// QualityGate computes structural completeness scores, memoized per source id.
// The cache is owned by the caller: construct one per engine (or per test) and
// Clear it when the catalog changes.
type QualityGate struct {
	cache *gocache.Cache
}

func NewQualityGate() *QualityGate {
	return &QualityGate{cache: gocache.New(30*time.Minute, 10*time.Minute)}
}

// Assess runs the six structural checks and returns the 0-100 score with
// advisory warnings for each failed check.
func (g *QualityGate) Assess(src models.SourceModel) Assessment {
	if src.ID != "" {
		if cached, ok := g.cache.Get(src.ID); ok {
			return cached.(Assessment)
		}
	}

	checks := []struct {
		ok      bool
		warning string
	}{
		{HasCanonicalLink(src.SefariaLink), "source link missing or not on " + CanonicalDomain},
		{src.TitleHe != "" && src.TextExcerptHe != "", "Hebrew title or excerpt missing"},
		{src.ReflectionPrompt != "" && src.ReflectionPromptHe != "", "reflection prompt missing in one language"},
		{src.EstimatedTime > 0 && src.EffectiveMinTime() <= src.EffectiveMaxTime(), "invalid time range"},
		{src.DifficultyLevel != "", "difficulty level not assigned"},
		{strings.TrimSpace(src.TextExcerpt) != "", "text excerpt missing"},
	}

	passed := 0
	var warnings []string
	for _, c := range checks {
		if c.ok {
			passed++
		} else {
			warnings = append(warnings, c.warning)
		}
	}

	a := Assessment{Score: passed * 100 / len(checks), Warnings: warnings}
	if a.Score < qualityWarnThreshold {
		a.Warnings = append(a.Warnings, fmt.Sprintf("quality score %d below threshold", a.Score))
	}
	if src.ID != "" {
		g.cache.Set(src.ID, a, gocache.DefaultExpiration)
	}
	return a
}

// Clear drops all memoized assessments.
func (g *QualityGate) Clear() {
	g.cache.Flush()
}

// HasCanonicalLink reports whether the link points at the canonical text
// source. No reachability check: host containment only.
func HasCanonicalLink(link string) bool {
	return strings.Contains(link, CanonicalDomain)
}

// meetsQualityBar is the tier-1 hard predicate: reflection prompts present in
// both languages and a canonical source link. Distinct from Assess, which is
// advisory only.
func meetsQualityBar(src models.SourceModel) bool {
	return strings.TrimSpace(src.ReflectionPrompt) != "" &&
		strings.TrimSpace(src.ReflectionPromptHe) != "" &&
		HasCanonicalLink(src.SefariaLink)
}
