package models

import "time"

// StudySessionModel records one study sitting: what was learned, for how long,
// and whether the user finished it.
type StudySessionModel struct {
	Base
	UserID       string     `json:"user_id"       gorm:"index;not null"`
	SourceID     string     `json:"source_id"     gorm:"index"`
	Topic        string     `json:"topic"`
	TimeSelected int        `json:"time_selected"`
	Language     string     `json:"language"      gorm:"type:varchar(8)"`
	Completed    bool       `json:"completed"     gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func (StudySessionModel) TableName() string { return "study_sessions" }

// ReflectionModel is a free-form reflection a user wrote after studying a source.
type ReflectionModel struct {
	Base
	UserID   string `json:"user_id"   gorm:"index;not null"`
	SourceID string `json:"source_id" gorm:"index"`
	Text     string `json:"text"      gorm:"type:longtext"`
	Language string `json:"language"  gorm:"type:varchar(8)"`
}

func (ReflectionModel) TableName() string { return "reflections" }
