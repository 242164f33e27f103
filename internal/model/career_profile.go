package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PersonalInfo struct {
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Headline string `json:"headline,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Website  string `json:"website,omitempty"`
}

type WorkEntry struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type Goals struct {
	ShortTerm string `json:"short_term,omitempty"`
	LongTerm  string `json:"long_term,omitempty"`
}

// CareerProfile is the per-user output of scoring. Derived fields are
// replaced on each newer completed attempt; the editable sections belong to
// the user and are never touched by scoring.
type CareerProfile struct {
	ID     uint      `gorm:"primarykey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// Derived.
	AttemptID         uint                                   `json:"attempt_id" gorm:"not null"`
	HollandCode       string                                 `json:"holland_code" gorm:"size:3"`
	PersonalityLabel  string                                 `json:"personality_label" gorm:"size:100"`
	CompetencyScores  datatypes.JSONType[map[string]float64] `json:"competency_scores"`
	CareerSuggestions datatypes.JSONSlice[string]            `json:"career_suggestions"`
	DevelopmentAreas  datatypes.JSONSlice[string]            `json:"development_areas"`
	AnalysisNote      string                                 `json:"analysis_note" gorm:"type:text"`
	Confidence        float64                                `json:"confidence"`
	GeneratedAt       time.Time                              `json:"generated_at"`

	// Editable.
	PersonalInfo           datatypes.JSONType[PersonalInfo] `json:"personal_info"`
	WorkHistory            datatypes.JSONSlice[WorkEntry]   `json:"work_history"`
	Goals                  datatypes.JSONType[Goals]        `json:"goals"`
	WorkValues             datatypes.JSONSlice[string]      `json:"work_values"`
	EnvironmentPreferences datatypes.JSONSlice[string]      `json:"environment_preferences"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
