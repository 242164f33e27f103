package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestAttemptRepository interface {
	Create(ctx context.Context, attempt *model.TestAttempt) error
	Update(ctx context.Context, attempt *model.TestAttempt) error
	FindByID(ctx context.Context, id uint) (*model.TestAttempt, error)
	FindByIDForUser(ctx context.Context, id uint, userID uuid.UUID) (*model.TestAttempt, error)
	// LockByIDForUser is FindByIDForUser holding a row lock until the
	// surrounding transaction ends. Only meaningful through WithTx.
	LockByIDForUser(ctx context.Context, id uint, userID uuid.UUID) (*model.TestAttempt, error)
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.TestAttempt, error)
	FindLatestCompletedByUser(ctx context.Context, userID uuid.UUID) (*model.TestAttempt, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.TestAttempt, error)
	WithTx(tx *gorm.DB) TestAttemptRepository
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) WithTx(tx *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: tx}
}

func (r *testAttemptRepository) Create(ctx context.Context, attempt *model.TestAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

// Update writes the progress columns only, so answers loaded on the
// attempt are never re-saved through the association.
func (r *testAttemptRepository) Update(ctx context.Context, attempt *model.TestAttempt) error {
	return r.db.WithContext(ctx).Model(attempt).
		Select("answered_count", "status", "completed_at", "updated_at").
		Updates(attempt).Error
}

func (r *testAttemptRepository) FindByID(ctx context.Context, id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByIDForUser(ctx context.Context, id uint, userID uuid.UUID) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) LockByIDForUser(ctx context.Context, id uint, userID uuid.UUID) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []model.AttemptStatus{model.AttemptStatusStarted, model.AttemptStatusInProgress}).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindLatestCompletedByUser(ctx context.Context, userID uuid.UUID) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.AttemptStatusCompleted).
		Order("completed_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&attempts).Error
	return attempts, err
}
