package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/model"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type QuestionResponse struct {
	ID             uint                  `json:"id"`
	Text           string                `json:"text"`
	Type           model.QuestionType    `json:"type"`
	Category       model.Category        `json:"category"`
	Subcategory    *string               `json:"subcategory,omitempty"`
	Dimension      *model.Dimension      `json:"dimension,omitempty"`
	CompetencyArea *string               `json:"competency_area,omitempty"`
	Options        model.QuestionOptions `json:"options"`
	OrderIndex     int                   `json:"order_index"`
	Active         bool                  `json:"active"`
}

type ProfileResponse struct {
	UserID            uuid.UUID          `json:"user_id"`
	AttemptID         uint               `json:"attempt_id"`
	HollandCode       string             `json:"holland_code"`
	PersonalityLabel  string             `json:"personality_label"`
	CompetencyScores  map[string]float64 `json:"competency_scores"`
	CompetencyPercent map[string]float64 `json:"competency_percent"`
	CareerSuggestions []string           `json:"career_suggestions"`
	DevelopmentAreas  []string           `json:"development_areas"`
	AnalysisNote      string             `json:"analysis_note"`
	Confidence        float64            `json:"confidence"`
	GeneratedAt       time.Time          `json:"generated_at"`

	PersonalInfo           model.PersonalInfo `json:"personal_info"`
	WorkHistory            []model.WorkEntry  `json:"work_history"`
	Goals                  model.Goals        `json:"goals"`
	WorkValues             []string           `json:"work_values"`
	EnvironmentPreferences []string           `json:"environment_preferences"`
	UpdatedAt              time.Time          `json:"updated_at"`
}
