package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review. A second review by the same user for the same
// course violates the unique index and comes back as gorm.ErrDuplicatedKey.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListByCourse lists a course's reviews newest-first with reviewer profiles.
func (r *reviewRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
