package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edustore/internal/auth"
	"edustore/internal/model"
	"edustore/internal/repository"
)

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListCustomers(ctx context.Context, search string) ([]model.Profile, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

// MockCourseRepository is a mock implementation of CourseRepository.
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) CreateImages(ctx context.Context, images []model.CourseImage) error {
	args := m.Called(ctx, images)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) UpdateWithImages(ctx context.Context, course *model.Course, images []model.CourseImage) error {
	args := m.Called(ctx, course, images)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAccessRepository is a mock implementation of AccessRepository.
type MockAccessRepository struct {
	mock.Mock
}

func (m *MockAccessRepository) Create(ctx context.Context, grant *model.CourseAccess) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockAccessRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRepository) ListGrantedCourses(ctx context.Context, userID uuid.UUID) ([]model.Course, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
// grants is handed to transactional callbacks as the access repository,
// so a test wires decision expectations onto both mocks up front.
type MockPaymentRepository struct {
	mock.Mock
	grants repository.AccessRepository
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindOpen(ctx context.Context, userID, courseID uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPending(ctx context.Context) ([]model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.PaymentStatus, verifiedBy uuid.UUID, verifiedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, verifiedBy, verifiedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, payments repository.PaymentRepository, grants repository.AccessRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m, m.grants)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Get(2).(model.Role), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

var _ auth.TokenStoreInterface = (*MockTokenStore)(nil)
