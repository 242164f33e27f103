package model

import (
	"time"

	"gorm.io/datatypes"
)

// Answer is keyed by (TestAttemptID, QuestionID); re-answering overwrites.
type Answer struct {
	ID            uint                            `gorm:"primarykey" json:"id"`
	TestAttemptID uint                            `json:"test_attempt_id" gorm:"not null;uniqueIndex:idx_answer_attempt_question"`
	QuestionID    uint                            `json:"question_id" gorm:"not null;uniqueIndex:idx_answer_attempt_question;index"`
	Question      Question                        `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Value         datatypes.JSONType[AnswerValue] `json:"value"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `json:"updated_at"`
}
