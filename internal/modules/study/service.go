// Package study records sessions and reflections and exposes the derived
// learning pattern.
package study

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/limmud-app/core/internal/models"
	"github.com/limmud-app/core/internal/modules/personalize"
)

type CreateSessionDTO struct {
	UserID       string `json:"user_id" binding:"required"`
	SourceID     string `json:"source_id"`
	Topic        string `json:"topic"`
	TimeSelected int    `json:"time_selected" binding:"required,min=1"`
	Language     string `json:"language"`
}

type CreateReflectionDTO struct {
	UserID   string `json:"user_id" binding:"required"`
	SourceID string `json:"source_id"`
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
}

// Insights is the consolidated progress view for one user.
type Insights struct {
	Pattern          personalize.LearningPattern `json:"pattern"`
	GrowthRate       float64                     `json:"growth_rate"`
	ConsistencyScore float64                     `json:"consistency_score"`
}

const growthWindowDays = 30

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CreateSession(dto *CreateSessionDTO) (*models.StudySessionModel, error) {
	session := models.StudySessionModel{
		UserID:       dto.UserID,
		SourceID:     dto.SourceID,
		Topic:        dto.Topic,
		TimeSelected: dto.TimeSelected,
		Language:     dto.Language,
	}
	return &session, s.db.Create(&session).Error
}

// CompleteSession marks a session finished. Completing an already completed
// session keeps the original completion time.
func (s *Service) CompleteSession(id string) (*models.StudySessionModel, error) {
	var session models.StudySessionModel
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.Completed {
		return &session, nil
	}

	now := time.Now()
	session.Completed = true
	session.CompletedAt = &now
	return &session, s.db.Model(&session).Updates(map[string]interface{}{
		"completed":    true,
		"completed_at": now,
	}).Error
}

func (s *Service) CreateReflection(dto *CreateReflectionDTO) (*models.ReflectionModel, error) {
	reflection := models.ReflectionModel{
		UserID:   dto.UserID,
		SourceID: dto.SourceID,
		Text:     dto.Text,
		Language: dto.Language,
	}
	return &reflection, s.db.Create(&reflection).Error
}

// History loads a user's full session and reflection history, newest first.
func (s *Service) History(userID string) ([]models.StudySessionModel, []models.ReflectionModel, error) {
	var sessions []models.StudySessionModel
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, nil, err
	}
	var reflections []models.ReflectionModel
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reflections).Error; err != nil {
		return nil, nil, err
	}
	return sessions, reflections, nil
}

// Pattern recomputes the user's learning pattern from scratch.
func (s *Service) Pattern(userID string) (personalize.LearningPattern, error) {
	sessions, reflections, err := s.History(userID)
	if err != nil {
		return personalize.LearningPattern{}, err
	}
	return personalize.Analyze(sessions, reflections), nil
}

// UserInsights bundles the pattern with growth and consistency metrics.
func (s *Service) UserInsights(userID string) (*Insights, error) {
	sessions, reflections, err := s.History(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Insights{
		Pattern:          personalize.Analyze(sessions, reflections),
		GrowthRate:       personalize.GrowthRate(sessions, growthWindowDays, now),
		ConsistencyScore: personalize.ConsistencyScore(sessions, now),
	}, nil
}
