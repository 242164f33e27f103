package dto

import (
	"time"

	"github.com/lshigami/Compass/internal/model"
)

type StartAttemptResponse struct {
	AttemptID   uint   `json:"attempt_id"`
	Resumed     bool   `json:"resumed"`
	Progress    int    `json:"progress"`
	QuestionIDs []uint `json:"question_ids"`
}

type RecordAnswerResponse struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

type AttemptSummary struct {
	ID             uint                `json:"id"`
	TotalQuestions int                 `json:"total_questions"`
	AnsweredCount  int                 `json:"answered_count"`
	Status         model.AttemptStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
}

// AnswersResponse maps question IDs to the recorded values.
type AnswersResponse map[uint]model.AnswerValue

// ResultResponse is a read-only scoring of one completed attempt.
type ResultResponse struct {
	AttemptID         uint               `json:"attempt_id"`
	HollandCode       string             `json:"holland_code"`
	PersonalityLabel  string             `json:"personality_label"`
	DimensionTally    map[string]int     `json:"dimension_tally"`
	CompetencyScores  map[string]float64 `json:"competency_scores"`
	CareerSuggestions []string           `json:"career_suggestions"`
	DevelopmentAreas  []string           `json:"development_areas"`
	AnalysisNote      string             `json:"analysis_note"`
	Confidence        float64            `json:"confidence"`
	AnsweredCount     int                `json:"answered_count"`
	GeneratedAt       time.Time          `json:"generated_at"`
}
