// Package recommend implements the tiered source-recommendation engine:
// primary smart filter, personalization relaxation, random fallback, external
// generation, then exhaustion. Each tier runs only when the previous one
// produced zero candidates.
package recommend

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/modules/personalize"
	"github.com/limmud-app/core/internal/pkg/normalize"
)

// Tier labels reported with each result.
const (
	TierPrimary      = "primary"
	TierPersonalized = "personalized"
	TierRandom       = "random"
	TierGenerated    = "generated"
)

// Request is the ephemeral recommendation input.
type Request struct {
	Time     int
	Topic    string
	Language string
	// Exclude holds source ids already shown this session.
	Exclude map[string]bool
}

// Result is one definitive pick plus advisory metadata.
type Result struct {
	Source   *models.SourceModel `json:"source"`
	Tier     string              `json:"tier"`
	Quality  Assessment          `json:"quality"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Generator synthesizes a new source when the catalog is exhausted.
type Generator interface {
	Generate(ctx context.Context, minutes int, topic, language string) (*models.SourceModel, error)
}

// Engine selects sources from a read-only catalog snapshot. A call is a pure
// function of (catalog, request, pattern) apart from the injected randomness.
type Engine struct {
	quality   *QualityGate
	generator Generator
	rng       *rand.Rand
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator wires the external generation fallback (tier 4).
func WithGenerator(g Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithRand injects a seeded randomness source so the random tier is
// deterministic in tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		quality: NewQualityGate(),
		logger:  logger.Named("RecommendEngine"),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Quality exposes the engine's caller-owned quality gate.
func (e *Engine) Quality() *QualityGate { return e.quality }

// Recommend walks the tiers in order and returns one pick, or nil on
// exhaustion. Exhaustion is the designed terminal state, not an error.
func (e *Engine) Recommend(ctx context.Context, catalog []models.SourceModel, req Request, pattern personalize.LearningPattern) (*Result, error) {
	if req.Exclude == nil {
		req.Exclude = map[string]bool{}
	}

	if src := e.primary(catalog, req, pattern); src != nil {
		return e.result(src, TierPrimary, nil), nil
	}

	candidates := personalize.Candidates(catalog, req.Topic, req.Time, req.Language, req.Exclude, pattern)
	if best := personalize.Best(candidates, req.Time, pattern); best != nil {
		return e.result(best, TierPersonalized, nil), nil
	}

	pool := e.fallbackPool(catalog, req.Exclude)
	if len(pool) > 0 {
		src := &pool[e.intn(len(pool))]
		return e.result(src, TierRandom, []string{
			"no source matched your topic and time; this is an imperfect match",
		}), nil
	}

	// The catalog itself has nothing left to offer. Generation is attempted
	// only now, never while any published source remains unseen.
	if e.generator != nil {
		src, err := e.generator.Generate(ctx, req.Time, req.Topic, req.Language)
		if err != nil {
			// Boundary failure: log and treat the tier as unavailable.
			e.logger.Warn("generation fallback unavailable", zap.Error(err), zap.String("topic", req.Topic))
			return nil, nil
		}
		if src != nil {
			return e.result(src, TierGenerated, nil), nil
		}
	}

	return nil, nil
}

// primary runs the tier-1 smart filter and picks the best survivor by
// personalization score, earlier catalog order winning ties.
func (e *Engine) primary(catalog []models.SourceModel, req Request, pattern personalize.LearningPattern) *models.SourceModel {
	bucket := BucketFor(req.Time)

	var best *models.SourceModel
	bestScore := -1.0
	for i := range catalog {
		src := &catalog[i]
		if !src.Published || !src.Usable() || req.Exclude[src.ID] {
			continue
		}
		if !topicMatches(*src, req.Topic) {
			continue
		}
		if req.Time < src.EffectiveMinTime() || req.Time > src.EffectiveMaxTime() {
			continue
		}
		if !bucket.Allows(src.SourceType) {
			continue
		}
		if src.DifficultyLevel.Weight() > bucket.MaxDifficulty.Weight() {
			continue
		}
		if !src.MatchesLanguage(req.Language) {
			continue
		}
		if !meetsQualityBar(*src) {
			continue
		}
		if score := personalize.Score(*src, req.Time, pattern); score > bestScore {
			best = src
			bestScore = score
		}
	}
	return best
}

// fallbackPool is the tier-3 candidate set: every published, usable,
// non-excluded source regardless of topic, time, or type.
func (e *Engine) fallbackPool(catalog []models.SourceModel, exclude map[string]bool) []models.SourceModel {
	var pool []models.SourceModel
	for _, src := range catalog {
		if src.Published && src.Usable() && !exclude[src.ID] {
			pool = append(pool, src)
		}
	}
	return pool
}

func (e *Engine) result(src *models.SourceModel, tier string, warnings []string) *Result {
	assessment := e.quality.Assess(*src)
	return &Result{
		Source:   src,
		Tier:     tier,
		Quality:  assessment,
		Warnings: append(warnings, assessment.Warnings...),
	}
}

func (e *Engine) intn(n int) int {
	if e.rng != nil {
		return e.rng.Intn(n)
	}
	return rand.Intn(n)
}

// topicMatches compares the request topic against category and subcategory:
// exact or substring containment in either direction after normalization.
func topicMatches(src models.SourceModel, topic string) bool {
	return normalize.TopicsMatch(src.Category, topic) || normalize.TopicsMatch(src.Subcategory, topic)
}
