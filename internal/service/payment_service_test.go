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

func TestPaymentService_Submit(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockPaymentRepository, *MockCourseRepository)
		expectedError error
	}{
		{
			name: "successful submission",
			setupMock: func(mPay *MockPaymentRepository, mCourse *MockCourseRepository) {
				mCourse.On("Exists", mock.Anything, courseID).Return(true, nil)
				mPay.On("FindOpen", mock.Anything, userID, courseID).Return(nil, gorm.ErrRecordNotFound)
				mPay.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "course not found",
			setupMock: func(mPay *MockPaymentRepository, mCourse *MockCourseRepository) {
				mCourse.On("Exists", mock.Anything, courseID).Return(false, nil)
			},
			expectedError: errors.ErrCourseNotFound,
		},
		{
			name: "open payment already on file",
			setupMock: func(mPay *MockPaymentRepository, mCourse *MockCourseRepository) {
				mCourse.On("Exists", mock.Anything, courseID).Return(true, nil)
				mPay.On("FindOpen", mock.Anything, userID, courseID).Return(&model.Payment{
					UserID:   userID,
					CourseID: courseID,
					Status:   model.PaymentStatusPending,
				}, nil)
			},
			expectedError: errors.ErrPaymentAlreadySubmitted,
		},
		{
			name: "concurrent submission loses insert race",
			setupMock: func(mPay *MockPaymentRepository, mCourse *MockCourseRepository) {
				mCourse.On("Exists", mock.Anything, courseID).Return(true, nil)
				mPay.On("FindOpen", mock.Anything, userID, courseID).Return(nil, gorm.ErrRecordNotFound)
				mPay.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrPaymentAlreadySubmitted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayments := new(MockPaymentRepository)
			mockAccess := new(MockAccessRepository)
			mockCourses := new(MockCourseRepository)
			tt.setupMock(mockPayments, mockCourses)

			service := NewPaymentService(mockPayments, mockAccess, mockCourses)
			payment, err := service.Submit(context.Background(), userID, courseID, "TXN-1234")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, payment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, payment)
				assert.Equal(t, userID, payment.UserID)
				assert.Equal(t, courseID, payment.CourseID)
				assert.Equal(t, "TXN-1234", payment.TransactionID)
				assert.Equal(t, model.PaymentStatusPending, payment.Status)
			}

			mockPayments.AssertExpectations(t)
			mockCourses.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Verify(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	paymentID := uuid.New()
	adminID := uuid.New()

	pendingPayment := func() *model.Payment {
		return &model.Payment{
			ID:       paymentID,
			UserID:   userID,
			CourseID: courseID,
			Status:   model.PaymentStatusPending,
		}
	}

	tests := []struct {
		name          string
		setupMock     func(*MockPaymentRepository, *MockAccessRepository)
		expectedError error
	}{
		{
			name: "successful verification grants access",
			setupMock: func(mPay *MockPaymentRepository, mAccess *MockAccessRepository) {
				mPay.On("FindByID", mock.Anything, paymentID).Return(pendingPayment(), nil)
				mPay.On("WithTransaction", mock.Anything).Return(nil)
				mPay.On("UpdateStatusIfPending", mock.Anything, paymentID, model.PaymentStatusVerified, adminID, mock.Anything).Return(true, nil)
				mAccess.On("Create", mock.Anything, mock.MatchedBy(func(g *model.CourseAccess) bool {
					return g.UserID == userID && g.CourseID == courseID
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "payment not found",
			setupMock: func(mPay *MockPaymentRepository, mAccess *MockAccessRepository) {
				mPay.On("FindByID", mock.Anything, paymentID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrPaymentNotFound,
		},
		{
			name: "payment already decided",
			setupMock: func(mPay *MockPaymentRepository, mAccess *MockAccessRepository) {
				decided := pendingPayment()
				decided.Status = model.PaymentStatusVerified
				mPay.On("FindByID", mock.Anything, paymentID).Return(decided, nil)
				mPay.On("WithTransaction", mock.Anything).Return(nil)
				mPay.On("UpdateStatusIfPending", mock.Anything, paymentID, model.PaymentStatusVerified, adminID, mock.Anything).Return(false, nil)
			},
			expectedError: errors.ErrInvalidTransition,
		},
		{
			name: "existing grant is tolerated",
			setupMock: func(mPay *MockPaymentRepository, mAccess *MockAccessRepository) {
				mPay.On("FindByID", mock.Anything, paymentID).Return(pendingPayment(), nil)
				mPay.On("WithTransaction", mock.Anything).Return(nil)
				mPay.On("UpdateStatusIfPending", mock.Anything, paymentID, model.PaymentStatusVerified, adminID, mock.Anything).Return(true, nil)
				mAccess.On("Create", mock.Anything, mock.AnythingOfType("*model.CourseAccess")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAccess := new(MockAccessRepository)
			mockPayments := &MockPaymentRepository{grants: mockAccess}
			mockCourses := new(MockCourseRepository)
			tt.setupMock(mockPayments, mockAccess)

			service := NewPaymentService(mockPayments, mockAccess, mockCourses)
			payment, err := service.Verify(context.Background(), paymentID, adminID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, payment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, payment)
				assert.Equal(t, model.PaymentStatusVerified, payment.Status)
				assert.NotNil(t, payment.VerifiedAt)
				assert.NotNil(t, payment.VerifiedBy)
				assert.Equal(t, adminID, *payment.VerifiedBy)
			}

			mockPayments.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Reject(t *testing.T) {
	paymentID := uuid.New()
	adminID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockPaymentRepository)
		expectedError error
	}{
		{
			name: "successful rejection",
			setupMock: func(mPay *MockPaymentRepository) {
				mPay.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
					ID:     paymentID,
					Status: model.PaymentStatusPending,
				}, nil)
				mPay.On("UpdateStatusIfPending", mock.Anything, paymentID, model.PaymentStatusRejected, adminID, mock.Anything).Return(true, nil)
			},
			expectedError: nil,
		},
		{
			name: "payment not found",
			setupMock: func(mPay *MockPaymentRepository) {
				mPay.On("FindByID", mock.Anything, paymentID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrPaymentNotFound,
		},
		{
			name: "payment already decided",
			setupMock: func(mPay *MockPaymentRepository) {
				mPay.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
					ID:     paymentID,
					Status: model.PaymentStatusRejected,
				}, nil)
				mPay.On("UpdateStatusIfPending", mock.Anything, paymentID, model.PaymentStatusRejected, adminID, mock.Anything).Return(false, nil)
			},
			expectedError: errors.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayments := new(MockPaymentRepository)
			mockAccess := new(MockAccessRepository)
			mockCourses := new(MockCourseRepository)
			tt.setupMock(mockPayments)

			service := NewPaymentService(mockPayments, mockAccess, mockCourses)
			payment, err := service.Reject(context.Background(), paymentID, adminID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, payment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, payment)
				assert.Equal(t, model.PaymentStatusRejected, payment.Status)
			}

			mockPayments.AssertExpectations(t)
			// A rejection never touches the grants table.
			mockAccess.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// TestPaymentService_PurchaseFlow walks the whole happy path: a claim is
// submitted, an admin verifies it, and the customer ends up with access.
func TestPaymentService_PurchaseFlow(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	adminID := uuid.New()

	mockAccess := new(MockAccessRepository)
	mockPayments := &MockPaymentRepository{grants: mockAccess}
	mockCourses := new(MockCourseRepository)

	mockCourses.On("Exists", mock.Anything, courseID).Return(true, nil)
	mockPayments.On("FindOpen", mock.Anything, userID, courseID).Return(nil, gorm.ErrRecordNotFound)
	mockPayments.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Payment).ID = uuid.New()
	}).Return(nil)

	service := NewPaymentService(mockPayments, mockAccess, mockCourses)

	payment, err := service.Submit(context.Background(), userID, courseID, "TXN123")
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)

	mockPayments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
	mockPayments.On("WithTransaction", mock.Anything).Return(nil)
	mockPayments.On("UpdateStatusIfPending", mock.Anything, payment.ID, model.PaymentStatusVerified, adminID, mock.Anything).Return(true, nil)
	mockAccess.On("Create", mock.Anything, mock.MatchedBy(func(g *model.CourseAccess) bool {
		return g.UserID == userID && g.CourseID == courseID
	})).Return(nil).Once()

	verified, err := service.Verify(context.Background(), payment.ID, adminID)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusVerified, verified.Status)

	mockAccess.On("Exists", mock.Anything, userID, courseID).Return(true, nil)

	hasAccess, err := service.HasAccess(context.Background(), userID, courseID)
	assert.NoError(t, err)
	assert.True(t, hasAccess)

	mockPayments.AssertExpectations(t)
	mockAccess.AssertExpectations(t)
	// Exactly one grant was written for the whole flow.
	mockAccess.AssertNumberOfCalls(t, "Create", 1)
}

func TestPaymentService_HasAccess(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	mockPayments := new(MockPaymentRepository)
	mockAccess := new(MockAccessRepository)
	mockCourses := new(MockCourseRepository)
	mockAccess.On("Exists", mock.Anything, userID, courseID).Return(true, nil)

	service := NewPaymentService(mockPayments, mockAccess, mockCourses)
	hasAccess, err := service.HasAccess(context.Background(), userID, courseID)

	assert.NoError(t, err)
	assert.True(t, hasAccess)
	mockAccess.AssertExpectations(t)
}
