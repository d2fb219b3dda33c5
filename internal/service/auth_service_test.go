package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edustore/internal/auth"
	"edustore/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		fullName      string
		setupMock     func(*MockProfileRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			email:    "test@example.com",
			password: "password123",
			fullName: "Test User",
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "profile already exists",
			email:    "existing@example.com",
			password: "password123",
			fullName: "Existing User",
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.Profile{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProfileRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			profile, err := service.Register(context.Background(), tt.email, tt.password, tt.fullName)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, profile)
				assert.Equal(t, tt.email, profile.Email)
				assert.Equal(t, tt.fullName, profile.FullName)
				assert.NotEmpty(t, profile.PasswordHash)
				// Self-registration can only ever produce a customer.
				assert.Equal(t, model.RoleCustomer, profile.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockProfileRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mRepo *MockProfileRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.Profile{
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleCustomer,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "test@example.com", model.RoleCustomer, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "invalid credentials - profile not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockProfileRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMock: func(mRepo *MockProfileRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.Profile{
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProfileRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, profile, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, profile)
				assert.Equal(t, tt.email, profile.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	mockTokenStore := new(MockTokenStore)

	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, jwtService, mockTokenStore)

	t.Run("malformed token", func(t *testing.T) {
		err := service.Logout(context.Background(), "not-a-token")
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}
