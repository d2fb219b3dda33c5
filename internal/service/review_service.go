package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/errors"
	"edustore/internal/model"
	"edustore/internal/repository"
)

// ReviewService handles course reviews. A review requires an access
// grant and each user gets one review per course.
type ReviewService interface {
	Add(ctx context.Context, userID, courseID uuid.UUID, rating int, comment string) (*model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	accessRepo repository.AccessRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, accessRepo repository.AccessRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		accessRepo: accessRepo,
	}
}

// Add creates a review for the course on behalf of an access holder.
func (s *reviewService) Add(ctx context.Context, userID, courseID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.ErrInvalidRating
	}

	hasAccess, err := s.accessRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	if !hasAccess {
		return nil, errors.ErrAccessRequired
	}

	review := &model.Review{
		CourseID: courseID,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}
