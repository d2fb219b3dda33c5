package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"edustore/internal/errors"
	"edustore/internal/model"
)

func TestReviewService_Add(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	tests := []struct {
		name          string
		rating        int
		setupMock     func(*MockReviewRepository, *MockAccessRepository)
		expectedError error
	}{
		{
			name:   "successful review",
			rating: 5,
			setupMock: func(mReview *MockReviewRepository, mAccess *MockAccessRepository) {
				mAccess.On("Exists", mock.Anything, userID, courseID).Return(true, nil)
				mReview.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "rating below range",
			rating:        0,
			setupMock:     func(mReview *MockReviewRepository, mAccess *MockAccessRepository) {},
			expectedError: errors.ErrInvalidRating,
		},
		{
			name:          "rating above range",
			rating:        6,
			setupMock:     func(mReview *MockReviewRepository, mAccess *MockAccessRepository) {},
			expectedError: errors.ErrInvalidRating,
		},
		{
			name:   "no access grant",
			rating: 4,
			setupMock: func(mReview *MockReviewRepository, mAccess *MockAccessRepository) {
				mAccess.On("Exists", mock.Anything, userID, courseID).Return(false, nil)
			},
			expectedError: errors.ErrAccessRequired,
		},
		{
			name:   "second review for same course",
			rating: 3,
			setupMock: func(mReview *MockReviewRepository, mAccess *MockAccessRepository) {
				mAccess.On("Exists", mock.Anything, userID, courseID).Return(true, nil)
				mReview.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrDuplicateReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockAccess := new(MockAccessRepository)
			tt.setupMock(mockReviews, mockAccess)

			service := NewReviewService(mockReviews, mockAccess)
			review, err := service.Add(context.Background(), userID, courseID, tt.rating, "great course")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
				assert.Equal(t, userID, review.UserID)
				assert.Equal(t, courseID, review.CourseID)
				assert.Equal(t, tt.rating, review.Rating)
			}

			mockReviews.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}

func TestReviewService_Add_ModelPreservesComment(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	mockReviews := new(MockReviewRepository)
	mockAccess := new(MockAccessRepository)
	mockAccess.On("Exists", mock.Anything, userID, courseID).Return(true, nil)
	mockReviews.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.Comment == "clear explanations"
	})).Return(nil)

	service := NewReviewService(mockReviews, mockAccess)
	review, err := service.Add(context.Background(), userID, courseID, 4, "clear explanations")

	assert.NoError(t, err)
	assert.Equal(t, "clear explanations", review.Comment)
	mockReviews.AssertExpectations(t)
}
