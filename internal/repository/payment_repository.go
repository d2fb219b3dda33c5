package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/model"
)

// PaymentRepository defines payment persistence operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	FindOpen(ctx context.Context, userID, courseID uuid.UUID) (*model.Payment, error)
	ListPending(ctx context.Context) ([]model.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)
	// UpdateStatusIfPending atomically moves a payment out of pending.
	// It reports false when the payment was not pending anymore, which
	// is how a concurrent second verify loses the race.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.PaymentStatus, verifiedBy uuid.UUID, verifiedAt time.Time) (bool, error)
	// WithTransaction runs fn with payment and grant repositories bound
	// to one database transaction, so the verify status flip and the
	// grant insert commit or roll back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, payments PaymentRepository, grants AccessRepository) error) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment record.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByID finds a payment by ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindOpen finds a pending or verified payment for the user and course.
func (r *paymentRepository) FindOpen(ctx context.Context, userID, courseID uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Where("status IN ?", []model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusVerified}).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPending lists pending payments newest-first, each joined to the
// payer profile and the course.
func (r *paymentRepository) ListPending(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("status = ?", model.PaymentStatusPending).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByUser lists the user's payments newest-first with course details.
func (r *paymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatusIfPending performs the conditional status write.
func (r *paymentRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status model.PaymentStatus, verifiedBy uuid.UUID, verifiedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"verified_at": verifiedAt,
			"verified_by": verifiedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// WithTransaction executes fn within a database transaction.
func (r *paymentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, payments PaymentRepository, grants AccessRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &paymentRepository{db: tx}, &accessRepository{db: tx})
	})
}
