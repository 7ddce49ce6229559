// Package generate synthesizes study sources with an AI provider when the
// catalog has nothing left to offer for a request.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/limmud-app/core/internal/config"
	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/modules/recommend"
	"github.com/limmud-app/core/internal/modules/webhookparser"
)

// ErrNoProvider means no enabled AI provider is configured.
var ErrNoProvider = errors.New("generate: no enabled AI provider configured")

const defaultTimeout = 30 * time.Second

type Service struct {
	cfg    appcfg.AIConfig
	logger *zap.Logger
}

func NewService(cfg appcfg.AIConfig, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, logger: logger.Named("generate")}
}

// Generate asks the provider for one source proposal and parses it into a
// catalog row. The row is not persisted here; callers decide whether it is
// worth keeping. Satisfies the recommendation engine's generation fallback.
func (s *Service) Generate(ctx context.Context, minutes int, topic, language string) (*models.SourceModel, error) {
	provider := s.cfg.SelectProvider()
	if provider == nil {
		return nil, ErrNoProvider
	}

	timeout := defaultTimeout
	if s.cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(s.cfg.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	systemPrompt, prompt := buildSourcePrompt(minutes, topic, language)
	raw, err := callAI(ctx, provider, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate source: %w", err)
	}

	parsed, err := webhookparser.Parse(webhookparser.Input{
		RawText:       raw,
		Language:      language,
		Topic:         topic,
		RequestedTime: minutes,
	})
	if err != nil {
		return nil, fmt.Errorf("parse generated source: %w", err)
	}

	src := s.toSource(parsed, minutes, topic, language)
	s.logger.Info("generated source",
		zap.String("topic", topic),
		zap.Int("minutes", minutes),
		zap.String("title", src.Title),
		zap.Bool("has_link", src.SefariaLink != ""))
	return src, nil
}

// toSource maps a parsed response onto a catalog row shaped to the request:
// the source type and difficulty follow the time-bucket policy so the result
// is consistent with what the catalog would have offered.
func (s *Service) toSource(parsed *webhookparser.ParsedSource, minutes int, topic, language string) *models.SourceModel {
	bucket := recommend.BucketFor(minutes)

	estimated := parsed.EstimatedTime
	if estimated <= 0 {
		estimated = minutes
	}

	src := &models.SourceModel{
		Title:              parsed.Title,
		TitleHe:            parsed.TitleHe,
		TextExcerpt:        parsed.TextExcerpt,
		TextExcerptHe:      parsed.TextExcerptHe,
		ReflectionPrompt:   parsed.ReflectionPrompt,
		ReflectionPromptHe: parsed.ReflectionPromptHe,
		Category:           strings.TrimSpace(topic),
		DifficultyLevel:    bucket.MaxDifficulty,
		SourceType:         bucket.AllowedTypes[0],
		EstimatedTime:      estimated,
		SefariaLink:        parsed.SefariaLink,
		Commentaries:       models.StringArray(parsed.Commentaries),
		LanguagePreference: languagePreference(language),
		AIGenerated:        true,
	}
	if parsed.SourceRange != "" {
		src.StartRef, src.EndRef = splitRange(parsed.SourceRange)
	}
	return src
}

func languagePreference(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "he":
		return "he"
	case "en":
		return "en"
	default:
		return "both"
	}
}

// splitRange breaks "Genesis 1:1 to Genesis 1:2" or "Genesis 1:1-5" into
// endpoint refs. A range with no recognizable separator becomes the start ref.
func splitRange(r string) (start, end string) {
	for _, sep := range []string{" to ", " עד ", "-"} {
		if i := strings.Index(r, sep); i > 0 {
			return strings.TrimSpace(r[:i]), strings.TrimSpace(r[i+len(sep):])
		}
	}
	return strings.TrimSpace(r), ""
}
