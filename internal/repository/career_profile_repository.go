package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/model"
	"gorm.io/gorm"
)

type CareerProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.CareerProfile, error)
	// Save creates the profile when it has no ID yet and updates every
	// column otherwise.
	Save(ctx context.Context, profile *model.CareerProfile) error
}

type careerProfileRepository struct {
	db *gorm.DB
}

func NewCareerProfileRepository(db *gorm.DB) CareerProfileRepository {
	return &careerProfileRepository{db: db}
}

func (r *careerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.CareerProfile, error) {
	var profile model.CareerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *careerProfileRepository) Save(ctx context.Context, profile *model.CareerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
