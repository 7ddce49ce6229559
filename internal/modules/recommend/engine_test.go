package recommend

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/modules/personalize"
)

func eligibleSource(id, category string, minutes int) models.SourceModel {
	s := models.SourceModel{
		Title:              "Source " + id,
		TitleHe:            "מקור " + id,
		TextExcerpt:        "A passage worth sitting with for a while.",
		TextExcerptHe:      "קטע ששווה לשבת איתו.",
		ReflectionPrompt:   "What speaks to you here?",
		ReflectionPromptHe: "מה מדבר אליך כאן?",
		Category:           category,
		DifficultyLevel:    models.DifficultyIntermediate,
		SourceType:         models.SourceTypeTextStudy,
		EstimatedTime:      minutes,
		SefariaLink:        "https://www.sefaria.org/Berakhot.2a",
		LanguagePreference: "both",
		Published:          true,
	}
	s.ID = id
	return s
}

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewEngine(zap.NewNop(), opts...)
}

type stubGenerator struct {
	src   *models.SourceModel
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, minutes int, topic, language string) (*models.SourceModel, error) {
	g.calls++
	return g.src, g.err
}

func halachaCatalog() []models.SourceModel {
	var catalog []models.SourceModel
	for _, id := range []string{"h1", "h2", "h3", "h4", "h5"} {
		catalog = append(catalog, eligibleSource(id, "Halacha", 15))
	}
	return catalog
}

func TestRecommendEndToEnd(t *testing.T) {
	e := newTestEngine()
	catalog := halachaCatalog()
	req := Request{Time: 15, Topic: "Halacha", Language: "en"}

	res, err := e.Recommend(context.Background(), catalog, req, personalize.LearningPattern{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, TierPrimary, res.Tier)
	assert.Contains(t, []string{"h1", "h2", "h3", "h4", "h5"}, res.Source.ID)
}

func TestTierMonotonicity(t *testing.T) {
	// When tier 1 has candidates, the pick must come from tier 1's set even
	// though a personalization-tier candidate also exists.
	e := newTestEngine()
	offTopic := eligibleSource("off", "Mussar", 15)
	catalog := append(halachaCatalog(), offTopic)

	pattern := personalize.LearningPattern{
		PreferredTopics:       map[string]int{"mussar": 50},
		TimePreferences:       map[int]int{},
		CompletionRates:       map[string]float64{},
		DifficultyProgression: models.DifficultyIntermediate,
	}
	res, err := e.Recommend(context.Background(), catalog, Request{Time: 15, Topic: "Halacha", Language: "en"}, pattern)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, TierPrimary, res.Tier)
	assert.NotEqual(t, "off", res.Source.ID)
}

func TestExclusionRespected(t *testing.T) {
	e := newTestEngine()
	catalog := halachaCatalog()
	exclude := map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true}

	res, err := e.Recommend(context.Background(), catalog, Request{Time: 15, Topic: "Halacha", Language: "en", Exclude: exclude}, personalize.LearningPattern{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "h5", res.Source.ID)
}

func TestTimeBucketConformance(t *testing.T) {
	e := newTestEngine()
	catalog := []models.SourceModel{
		eligibleSource("short", "Halacha", 5),
		eligibleSource("fit", "Halacha", 15),
		eligibleSource("long", "Halacha", 40),
	}
	res, err := e.Recommend(context.Background(), catalog, Request{Time: 15, Topic: "Halacha", Language: "en"}, personalize.LearningPattern{})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, TierPrimary, res.Tier)
	assert.LessOrEqual(t, res.Source.EffectiveMinTime(), 15)
	assert.GreaterOrEqual(t, res.Source.EffectiveMaxTime(), 15)
}

func TestPersonalizedTierWhenPrimaryEmpty(t *testing.T) {
	e := newTestEngine()
	// Missing Hebrew prompt fails the tier-1 quality bar but survives the
	// relaxed personalization filter.
	src := eligibleSource("p1", "Halacha", 15)
	src.ReflectionPromptHe = ""

	pattern := personalize.LearningPattern{
		PreferredTopics:       map[string]int{"halacha": 3},
		TimePreferences:       map[int]int{},
		CompletionRates:       map[string]float64{},
		DifficultyProgression: models.DifficultyIntermediate,
	}
	res, err := e.Recommend(context.Background(), []models.SourceModel{src}, Request{Time: 15, Topic: "Halacha", Language: "en"}, pattern)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, TierPersonalized, res.Tier)
}

func TestRandomFallbackCarriesWarning(t *testing.T) {
	e := newTestEngine()
	// Topic mismatch everywhere, difficulty above the relaxed tier.
	src := eligibleSource("r1", "Kabbalah", 15)
	src.DifficultyLevel = models.DifficultyAdvanced
	src.SourceType = models.SourceTypeMystical

	res, err := e.Recommend(context.Background(), []models.SourceModel{src}, Request{Time: 15, Topic: "Halacha", Language: "en"}, personalize.LearningPattern{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, TierRandom, res.Tier)
	assert.Equal(t, "r1", res.Source.ID)
	assert.NotEmpty(t, res.Warnings)
}

func TestGenerationOnlyWhenCatalogExhausted(t *testing.T) {
	generated := eligibleSource("gen", "Halacha", 15)
	generated.AIGenerated = true
	gen := &stubGenerator{src: &generated}
	e := newTestEngine(WithGenerator(gen))

	// A published source remains unseen: generation must not run.
	res, err := e.Recommend(context.Background(), halachaCatalog()[:1], Request{Time: 15, Topic: "Mussar", Language: "en"}, personalize.LearningPattern{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, TierRandom, res.Tier)
	assert.Zero(t, gen.calls)

	// Empty pool: generation runs.
	res, err = e.Recommend(context.Background(), nil, Request{Time: 15, Topic: "Halacha", Language: "en"}, personalize.LearningPattern{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, TierGenerated, res.Tier)
	assert.True(t, res.Source.AIGenerated)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerationFailureMeansExhaustion(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	e := newTestEngine(WithGenerator(gen))

	res, err := e.Recommend(context.Background(), nil, Request{Time: 15, Topic: "Halacha", Language: "en"}, personalize.LearningPattern{})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSkipConvergence(t *testing.T) {
	e := newTestEngine()
	catalog := halachaCatalog()
	exclude := map[string]bool{}

	seen := map[string]bool{}
	for i := 0; i < len(catalog); i++ {
		res, err := e.Recommend(context.Background(), catalog, Request{Time: 15, Topic: "Halacha", Language: "en", Exclude: exclude}, personalize.LearningPattern{})
		require.NoError(t, err)
		require.NotNil(t, res, "pick %d", i)
		require.False(t, seen[res.Source.ID], "source %s repeated", res.Source.ID)
		seen[res.Source.ID] = true
		exclude[res.Source.ID] = true
	}

	res, err := e.Recommend(context.Background(), catalog, Request{Time: 15, Topic: "Halacha", Language: "en", Exclude: exclude}, personalize.LearningPattern{})
	require.NoError(t, err)
	assert.Nil(t, res, "exhausted catalog must yield nil within N skips")
}

func TestUnpublishedNeverRecommended(t *testing.T) {
	e := newTestEngine()
	src := eligibleSource("u1", "Halacha", 15)
	src.Published = false

	res, err := e.Recommend(context.Background(), []models.SourceModel{src}, Request{Time: 15, Topic: "Halacha", Language: "en"}, personalize.LearningPattern{})
	require.NoError(t, err)
	assert.Nil(t, res)
}
