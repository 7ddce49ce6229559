// Package catalog owns the persisted library of study sources.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/pkg/pagination"
	"github.com/limmud-app/core/internal/pkg/response"
)

type CreateSourceDTO struct {
	Title              string   `json:"title" binding:"required"`
	TitleHe            string   `json:"title_he"`
	TextExcerpt        string   `json:"text_excerpt"`
	TextExcerptHe      string   `json:"text_excerpt_he"`
	ReflectionPrompt   string   `json:"reflection_prompt" binding:"required"`
	ReflectionPromptHe string   `json:"reflection_prompt_he"`
	Category           string   `json:"category" binding:"required"`
	Subcategory        string   `json:"subcategory"`
	DifficultyLevel    string   `json:"difficulty_level"`
	SourceType         string   `json:"source_type"`
	EstimatedTime      int      `json:"estimated_time" binding:"required,min=1"`
	MinTime            *int     `json:"min_time"`
	MaxTime            *int     `json:"max_time"`
	StartRef           string   `json:"start_ref"`
	EndRef             string   `json:"end_ref"`
	SefariaLink        string   `json:"sefaria_link"`
	Commentaries       []string `json:"commentaries"`
	LearningObjectives []string `json:"learning_objectives"`
	Prerequisites      []string `json:"prerequisites"`
	LanguagePreference string   `json:"language_preference"`
	Published          bool     `json:"published"`
}

type UpdateSourceDTO struct {
	Title              *string   `json:"title"`
	TitleHe            *string   `json:"title_he"`
	TextExcerpt        *string   `json:"text_excerpt"`
	TextExcerptHe      *string   `json:"text_excerpt_he"`
	ReflectionPrompt   *string   `json:"reflection_prompt"`
	ReflectionPromptHe *string   `json:"reflection_prompt_he"`
	Category           *string   `json:"category"`
	Subcategory        *string   `json:"subcategory"`
	DifficultyLevel    *string   `json:"difficulty_level"`
	SourceType         *string   `json:"source_type"`
	EstimatedTime      *int      `json:"estimated_time"`
	MinTime            *int      `json:"min_time"`
	MaxTime            *int      `json:"max_time"`
	StartRef           *string   `json:"start_ref"`
	EndRef             *string   `json:"end_ref"`
	SefariaLink        *string   `json:"sefaria_link"`
	Commentaries       *[]string `json:"commentaries"`
	LearningObjectives *[]string `json:"learning_objectives"`
	Prerequisites      *[]string `json:"prerequisites"`
	LanguagePreference *string   `json:"language_preference"`
	Published          *bool     `json:"published"`
}

// ListFilter narrows the admin source listing.
type ListFilter struct {
	Category   string
	Difficulty string
	Published  *bool
}

type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger.Named("catalog")}
}

func (s *Service) List(q pagination.Query, filter ListFilter) ([]models.SourceModel, response.Pagination, error) {
	query := s.db.Model(&models.SourceModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	query = query.Order("created_at DESC")

	var sources []models.SourceModel
	page, err := pagination.Paginate(query, q, &sources)
	return sources, page, err
}

func (s *Service) GetByID(id string) (*models.SourceModel, error) {
	var src models.SourceModel
	if err := s.db.First(&src, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &src, nil
}

func (s *Service) Create(dto *CreateSourceDTO) (*models.SourceModel, error) {
	src := models.SourceModel{
		Title:              dto.Title,
		TitleHe:            dto.TitleHe,
		TextExcerpt:        dto.TextExcerpt,
		TextExcerptHe:      dto.TextExcerptHe,
		ReflectionPrompt:   dto.ReflectionPrompt,
		ReflectionPromptHe: dto.ReflectionPromptHe,
		Category:           dto.Category,
		Subcategory:        dto.Subcategory,
		EstimatedTime:      dto.EstimatedTime,
		MinTime:            dto.MinTime,
		MaxTime:            dto.MaxTime,
		StartRef:           dto.StartRef,
		EndRef:             dto.EndRef,
		SefariaLink:        dto.SefariaLink,
		Commentaries:       models.StringArray(dto.Commentaries),
		LearningObjectives: models.StringArray(dto.LearningObjectives),
		Prerequisites:      models.StringArray(dto.Prerequisites),
		LanguagePreference: dto.LanguagePreference,
		Published:          dto.Published,
	}
	if dto.DifficultyLevel != "" {
		src.DifficultyLevel = models.DifficultyLevel(dto.DifficultyLevel)
	}
	if dto.SourceType != "" {
		src.SourceType = models.SourceType(dto.SourceType)
	}
	return &src, s.db.Create(&src).Error
}

func (s *Service) Update(id string, dto *UpdateSourceDTO) (*models.SourceModel, error) {
	src, err := s.GetByID(id)
	if err != nil || src == nil {
		return src, err
	}

	updates := map[string]interface{}{}
	setStr := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setStr("title", dto.Title)
	setStr("title_he", dto.TitleHe)
	setStr("text_excerpt", dto.TextExcerpt)
	setStr("text_excerpt_he", dto.TextExcerptHe)
	setStr("reflection_prompt", dto.ReflectionPrompt)
	setStr("reflection_prompt_he", dto.ReflectionPromptHe)
	setStr("category", dto.Category)
	setStr("subcategory", dto.Subcategory)
	setStr("difficulty_level", dto.DifficultyLevel)
	setStr("source_type", dto.SourceType)
	setStr("start_ref", dto.StartRef)
	setStr("end_ref", dto.EndRef)
	setStr("sefaria_link", dto.SefariaLink)
	setStr("language_preference", dto.LanguagePreference)
	if dto.EstimatedTime != nil {
		updates["estimated_time"] = *dto.EstimatedTime
	}
	if dto.MinTime != nil {
		updates["min_time"] = *dto.MinTime
	}
	if dto.MaxTime != nil {
		updates["max_time"] = *dto.MaxTime
	}
	if dto.Commentaries != nil {
		updates["commentaries"] = models.StringArray(*dto.Commentaries)
	}
	if dto.LearningObjectives != nil {
		updates["learning_objectives"] = models.StringArray(*dto.LearningObjectives)
	}
	if dto.Prerequisites != nil {
		updates["prerequisites"] = models.StringArray(*dto.Prerequisites)
	}
	if dto.Published != nil {
		updates["published"] = *dto.Published
	}
	return src, s.db.Model(src).Updates(updates).Error
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.SourceModel{}, "id = ?", id).Error
}

// FetchPublished loads the published candidate pool for recommendation.
// Rows missing required fields are filtered out rather than surfaced as errors.
func (s *Service) FetchPublished() ([]models.SourceModel, error) {
	var rows []models.SourceModel
	if err := s.db.Where("published = ?", true).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	usable := rows[:0]
	for _, r := range rows {
		if r.Usable() {
			usable = append(usable, r)
		}
	}
	return usable, nil
}

// SaveGenerated persists an AI-generated source. It stays unpublished until
// a user keeps it; the purge job reclaims the ones nobody kept.
func (s *Service) SaveGenerated(src *models.SourceModel) error {
	if src == nil {
		return errors.New("nil source")
	}
	if !src.AIGenerated {
		return errors.New("source is not AI generated")
	}
	src.Published = false
	return s.db.Create(src).Error
}

// KeepGenerated marks a generated source as saved by publishing it.
func (s *Service) KeepGenerated(id string) (*models.SourceModel, error) {
	src, err := s.GetByID(id)
	if err != nil || src == nil {
		return src, err
	}
	if !src.AIGenerated {
		return nil, fmt.Errorf("source %s is not AI generated", id)
	}
	return src, s.db.Model(src).Update("published", true).Error
}

// PurgeUnsavedGenerated deletes AI-generated sources that stayed unpublished
// longer than the retention window. Returns the number of rows removed.
func (s *Service) PurgeUnsavedGenerated(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.db.WithContext(ctx).
		Where("ai_generated = ? AND published = ? AND created_at < ?", true, false, cutoff).
		Delete(&models.SourceModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.logger.Info("purged unsaved generated sources", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

// SweepLinks probes a batch of stored links and clears the ones that are
// gone upstream. Each probe gets its own short deadline.
func (s *Service) SweepLinks(ctx context.Context, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 25
	}
	var rows []models.SourceModel
	err := s.db.WithContext(ctx).
		Where("sefaria_link <> ''").
		Order("updated_at ASC").
		Limit(batchSize).
		Find(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		alive, err := probeLink(ctx, row.SefariaLink)
		if err != nil {
			s.logger.Warn("link probe failed",
				zap.String("source_id", row.ID),
				zap.String("link", row.SefariaLink),
				zap.Error(err))
			continue
		}
		if alive {
			s.db.Model(&row).Update("updated_at", time.Now())
			continue
		}
		s.logger.Warn("clearing dead link",
			zap.String("source_id", row.ID),
			zap.String("link", row.SefariaLink))
		if err := s.db.Model(&row).Update("sefaria_link", "").Error; err != nil {
			return err
		}
	}
	return nil
}

const linkProbeTimeout = 5 * time.Second

// probeLink reports whether the link still resolves. Only a definitive 404 or
// 410 counts as dead; transient failures return an error instead.
func probeLink(ctx context.Context, link string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, linkProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, strings.TrimSpace(link), nil)
	if err != nil {
		return false, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		return false, nil
	default:
		return true, nil
	}
}
