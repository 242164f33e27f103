package repository

import (
	"context"

	"github.com/lshigami/Compass/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert stores the answer keyed by (attempt, question); an existing
	// answer for the pair is overwritten.
	Upsert(ctx context.Context, answer *model.Answer) error
	CountByAttempt(ctx context.Context, attemptID uint) (int64, error)
	FindByAttempt(ctx context.Context, attemptID uint) ([]model.Answer, error)
	WithTx(tx *gorm.DB) AnswerRepository
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Upsert(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "test_attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Omit("Question").Create(answer).Error
}

func (r *answerRepository) CountByAttempt(ctx context.Context, attemptID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("test_attempt_id = ?", attemptID).
		Distinct("question_id").
		Count(&count).Error
	return count, err
}

func (r *answerRepository) FindByAttempt(ctx context.Context, attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.WithContext(ctx).Where("test_attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error
	return answers, err
}
