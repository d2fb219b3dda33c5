package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/errors"
	"edustore/internal/model"
	"edustore/internal/repository"
)

// PaymentService handles the payment ledger and the verification workflow.
//
// A payment passes through pending exactly once: verify and reject both
// run a conditional update that only fires while the payment is still
// pending, so a repeated decision (or a concurrent one) reports
// ErrInvalidTransition instead of silently rewriting a terminal state.
type PaymentService interface {
	Submit(ctx context.Context, userID, courseID uuid.UUID, transactionID string) (*model.Payment, error)
	ListPending(ctx context.Context) ([]model.Payment, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)
	Verify(ctx context.Context, paymentID, adminID uuid.UUID) (*model.Payment, error)
	Reject(ctx context.Context, paymentID, adminID uuid.UUID) (*model.Payment, error)
	HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	accessRepo  repository.AccessRepository
	courseRepo  repository.CourseRepository
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	accessRepo repository.AccessRepository,
	courseRepo repository.CourseRepository,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		accessRepo:  accessRepo,
		courseRepo:  courseRepo,
	}
}

// Submit records a new pending payment claim for the course.
func (s *paymentService) Submit(ctx context.Context, userID, courseID uuid.UUID, transactionID string) (*model.Payment, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return nil, errors.ErrCourseNotFound
	}

	// Pre-check for an open payment. The partial unique index below is
	// what actually holds under concurrent submissions; this read just
	// gives the common case a friendly answer without an insert attempt.
	existing, err := s.paymentRepo.FindOpen(ctx, userID, courseID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check open payment: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrPaymentAlreadySubmitted
	}

	payment := &model.Payment{
		UserID:        userID,
		CourseID:      courseID,
		TransactionID: transactionID,
		Status:        model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if err == gorm.ErrDuplicatedKey {
			// Lost the race against a concurrent submission.
			return nil, errors.ErrPaymentAlreadySubmitted
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return payment, nil
}

// ListPending returns all pending payments for the admin review queue.
func (s *paymentService) ListPending(ctx context.Context) ([]model.Payment, error) {
	return s.paymentRepo.ListPending(ctx)
}

// ListMine returns the caller's own payment history.
func (s *paymentService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// Verify confirms a pending payment and grants course access. The status
// flip and the grant insert share one transaction: a verified payment
// without a matching grant can never be observed.
func (s *paymentService) Verify(ctx context.Context, paymentID, adminID uuid.UUID) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}

	now := time.Now().UTC()
	err = s.paymentRepo.WithTransaction(ctx, func(ctx context.Context, payments repository.PaymentRepository, grants repository.AccessRepository) error {
		updated, err := payments.UpdateStatusIfPending(ctx, paymentID, model.PaymentStatusVerified, adminID, now)
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		if !updated {
			return errors.ErrInvalidTransition
		}

		grant := &model.CourseAccess{
			UserID:    payment.UserID,
			CourseID:  payment.CourseID,
			GrantedBy: &adminID,
		}
		if err := grants.Create(ctx, grant); err != nil {
			if err == gorm.ErrDuplicatedKey {
				// Grant already on file; nothing more to do.
				return nil
			}
			return fmt.Errorf("grant access: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment.Status = model.PaymentStatusVerified
	payment.VerifiedAt = &now
	payment.VerifiedBy = &adminID
	return payment, nil
}

// Reject declines a pending payment. No access side effect.
func (s *paymentService) Reject(ctx context.Context, paymentID, adminID uuid.UUID) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}

	now := time.Now().UTC()
	updated, err := s.paymentRepo.UpdateStatusIfPending(ctx, paymentID, model.PaymentStatusRejected, adminID, now)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if !updated {
		return nil, errors.ErrInvalidTransition
	}

	payment.Status = model.PaymentStatusRejected
	payment.VerifiedAt = &now
	payment.VerifiedBy = &adminID
	return payment, nil
}

// HasAccess reports whether the user holds a grant for the course.
func (s *paymentService) HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	return s.accessRepo.Exists(ctx, userID, courseID)
}
