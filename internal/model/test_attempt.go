package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptStatusStarted    AttemptStatus = "started"
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusCompleted  AttemptStatus = "completed"
)

// TestAttempt is one user's run through the question catalog. The partial
// unique index keeps at most one non-completed attempt per user.
//
// QuestionIDs freezes the active catalog at creation: TotalQuestions is its
// length, and catalog changes made later never move the finish line.
type TestAttempt struct {
	ID             uint                      `gorm:"primarykey" json:"id"`
	UserID         uuid.UUID                 `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_one_open_attempt_per_user,where:status <> 'completed'"`
	TotalQuestions int                       `json:"total_questions" gorm:"not null"`
	QuestionIDs    datatypes.JSONSlice[uint] `json:"question_ids"`
	AnsweredCount  int                       `json:"answered_count" gorm:"not null;default:0"`
	Status         AttemptStatus             `json:"status" gorm:"size:20;not null;default:'started'"`
	CompletedAt    *time.Time                `json:"completed_at,omitempty"`
	Answers        []Answer                  `json:"answers,omitempty" gorm:"foreignKey:TestAttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	DeletedAt      gorm.DeletedAt            `gorm:"index" json:"-"`
}

func (a *TestAttempt) IsTerminal() bool {
	return a.Status == AttemptStatusCompleted
}

// Includes reports whether the question belongs to the attempt's frozen set.
func (a *TestAttempt) Includes(questionID uint) bool {
	for _, id := range a.QuestionIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// Advance applies a fresh answered count and moves the attempt through its
// lifecycle. It reports whether this call completed the attempt.
func (a *TestAttempt) Advance(answered int, now time.Time) bool {
	if a.IsTerminal() {
		return false
	}
	if answered > a.AnsweredCount {
		a.AnsweredCount = answered
	}
	if a.AnsweredCount >= a.TotalQuestions {
		a.AnsweredCount = a.TotalQuestions
		a.Status = AttemptStatusCompleted
		completedAt := now
		a.CompletedAt = &completedAt
		return true
	}
	a.Status = AttemptStatusInProgress
	return false
}
