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

func TestCustomerService_List(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockAccess := new(MockAccessRepository)
	mockProfiles.On("ListCustomers", mock.Anything, "ali").Return([]model.Profile{
		{Email: "ali@example.com", FullName: "Ali Hassan", Role: model.RoleCustomer},
	}, nil)

	service := NewCustomerService(mockProfiles, mockAccess)
	customers, err := service.List(context.Background(), "ali")

	assert.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, "ali@example.com", customers[0].Email)
	mockProfiles.AssertExpectations(t)
}

func TestCustomerService_Details(t *testing.T) {
	customerID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockProfileRepository, *MockAccessRepository)
		expectedError error
	}{
		{
			name: "customer with granted courses",
			setupMock: func(mProfiles *MockProfileRepository, mAccess *MockAccessRepository) {
				mProfiles.On("FindByID", mock.Anything, customerID).Return(&model.Profile{
					ID:    customerID,
					Email: "ali@example.com",
					Role:  model.RoleCustomer,
				}, nil)
				mAccess.On("ListGrantedCourses", mock.Anything, customerID).Return([]model.Course{
					{Title: "Algebra I"},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name: "customer not found",
			setupMock: func(mProfiles *MockProfileRepository, mAccess *MockAccessRepository) {
				mProfiles.On("FindByID", mock.Anything, customerID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProfiles := new(MockProfileRepository)
			mockAccess := new(MockAccessRepository)
			tt.setupMock(mockProfiles, mockAccess)

			service := NewCustomerService(mockProfiles, mockAccess)
			profile, courses, err := service.Details(context.Background(), customerID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, profile)
				assert.Nil(t, courses)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, customerID, profile.ID)
				assert.Len(t, courses, 1)
			}

			mockProfiles.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}
