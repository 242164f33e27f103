package repository

import (
	"context"

	"github.com/lshigami/Compass/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Question, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	CountActive(ctx context.Context) (int64, error)
	// FindActiveIDs returns the IDs of active questions in presentation order.
	FindActiveIDs(ctx context.Context) ([]uint, error)
	// UpsertByOrderIndex inserts questions or refreshes the existing ones
	// occupying the same order index. The active flag of existing rows is
	// only overwritten when reactivate is set.
	UpsertByOrderIndex(ctx context.Context, questions []model.Question, reactivate bool) error
	Deactivate(ctx context.Context, id uint) (bool, error)
	WithTx(tx *gorm.DB) QuestionRepository
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll(ctx context.Context, activeOnly bool) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("order_index ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Question{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

func (r *questionRepository) FindActiveIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("active = ?", true).
		Order("order_index ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *questionRepository) UpsertByOrderIndex(ctx context.Context, questions []model.Question, reactivate bool) error {
	if len(questions) == 0 {
		return nil
	}
	columns := []string{"text", "type", "category", "subcategory", "dimension", "competency_area", "options", "updated_at"}
	if reactivate {
		columns = append(columns, "active")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_index"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&questions).Error
}

func (r *questionRepository) Deactivate(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).Update("active", false)
	return result.RowsAffected > 0, result.Error
}
