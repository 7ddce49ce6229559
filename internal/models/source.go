package models

import "strings"

// DifficultyLevel classifies how demanding a source is.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// Weight maps difficulty to its ordinal used by the time-bucket policy.
// Unknown values weigh as beginner so they are never over-qualified.
func (d DifficultyLevel) Weight() int {
	switch d {
	case DifficultyAdvanced:
		return 3
	case DifficultyIntermediate:
		return 2
	default:
		return 1
	}
}

// SourceType classifies the study mode of a source.
type SourceType string

const (
	SourceTypeTextStudy        SourceType = "text_study"
	SourceTypePracticalHalacha SourceType = "practical_halacha"
	SourceTypePhilosophical    SourceType = "philosophical"
	SourceTypeHistorical       SourceType = "historical"
	SourceTypeMystical         SourceType = "mystical"
)

const timeBoundSlack = 5

// SourceModel is a single citable study text with bilingual metadata.
type SourceModel struct {
	Base
	Title              string `json:"title"                gorm:"not null"`
	TitleHe            string `json:"title_he"`
	TextExcerpt        string `json:"text_excerpt"         gorm:"type:longtext"`
	TextExcerptHe      string `json:"text_excerpt_he"      gorm:"type:longtext"`
	ReflectionPrompt   string `json:"reflection_prompt"    gorm:"type:longtext"`
	ReflectionPromptHe string `json:"reflection_prompt_he" gorm:"type:longtext"`

	Category        string          `json:"category"         gorm:"index;not null"`
	Subcategory     string          `json:"subcategory"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level" gorm:"type:varchar(16);default:beginner"`
	SourceType      SourceType      `json:"source_type"      gorm:"type:varchar(32);default:text_study"`

	EstimatedTime int  `json:"estimated_time" gorm:"not null"`
	MinTime       *int `json:"min_time,omitempty"`
	MaxTime       *int `json:"max_time,omitempty"`

	StartRef           string      `json:"start_ref"`
	EndRef             string      `json:"end_ref"`
	SefariaLink        string      `json:"sefaria_link"`
	Commentaries       StringArray `json:"commentaries"        gorm:"type:json;serializer:json"`
	LearningObjectives StringArray `json:"learning_objectives" gorm:"type:json;serializer:json"`
	Prerequisites      StringArray `json:"prerequisites"       gorm:"type:json;serializer:json"`

	// "en", "he", or "both". Empty is treated as "both".
	LanguagePreference string `json:"language_preference" gorm:"type:varchar(8);default:both"`

	Published   bool `json:"published"    gorm:"default:false;index"`
	AIGenerated bool `json:"ai_generated" gorm:"default:false"`
}

func (SourceModel) TableName() string { return "sources" }

// EffectiveMinTime returns min_time, defaulting to estimated_time-5 (floored at 1).
func (s SourceModel) EffectiveMinTime() int {
	if s.MinTime != nil {
		return *s.MinTime
	}
	min := s.EstimatedTime - timeBoundSlack
	if min < 1 {
		min = 1
	}
	return min
}

// EffectiveMaxTime returns max_time, defaulting to estimated_time+5.
func (s SourceModel) EffectiveMaxTime() int {
	if s.MaxTime != nil {
		return *s.MaxTime
	}
	return s.EstimatedTime + timeBoundSlack
}

// MatchesLanguage reports whether the source can be shown in the requested language.
func (s SourceModel) MatchesLanguage(lang string) bool {
	pref := strings.TrimSpace(strings.ToLower(s.LanguagePreference))
	return pref == "" || pref == "both" || pref == strings.ToLower(strings.TrimSpace(lang))
}

// Usable reports whether the row carries every required field.
// Rows failing this are silently absent from recommendation, never an error.
func (s SourceModel) Usable() bool {
	return strings.TrimSpace(s.Title) != "" &&
		strings.TrimSpace(s.ReflectionPrompt) != "" &&
		strings.TrimSpace(s.Category) != "" &&
		s.EstimatedTime > 0
}
