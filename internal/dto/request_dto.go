package dto

import (
	"encoding/json"

	"github.com/lshigami/Compass/internal/model"
)

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecordAnswerRequest carries one answer. Value is decoded against Type, so
// its JSON shape depends on the question type.
type RecordAnswerRequest struct {
	Type  model.QuestionType `json:"type" binding:"required"`
	Value json.RawMessage    `json:"value" swaggertype:"object"`
}

type WorkEntryRequest struct {
	Company     string `json:"company" binding:"required,max=255"`
	Role        string `json:"role" binding:"required,max=255"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// UpdateProfileRequest replaces the editable sections of a profile. Omitted
// sections are left unchanged.
type UpdateProfileRequest struct {
	PersonalInfo           *model.PersonalInfo `json:"personal_info"`
	WorkHistory            *[]WorkEntryRequest `json:"work_history" binding:"omitempty,dive"`
	Goals                  *model.Goals        `json:"goals"`
	WorkValues             *[]string           `json:"work_values" binding:"omitempty,dive,max=100"`
	EnvironmentPreferences *[]string           `json:"environment_preferences" binding:"omitempty,dive,max=100"`
}
