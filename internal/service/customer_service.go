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

// CustomerService backs the admin customer directory.
type CustomerService interface {
	List(ctx context.Context, search string) ([]model.Profile, error)
	Details(ctx context.Context, id uuid.UUID) (*model.Profile, []model.Course, error)
}

type customerService struct {
	profileRepo repository.ProfileRepository
	accessRepo  repository.AccessRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(profileRepo repository.ProfileRepository, accessRepo repository.AccessRepository) CustomerService {
	return &customerService{
		profileRepo: profileRepo,
		accessRepo:  accessRepo,
	}
}

// List returns customer profiles, optionally filtered by name or email.
func (s *customerService) List(ctx context.Context, search string) ([]model.Profile, error) {
	return s.profileRepo.ListCustomers(ctx, search)
}

// Details returns a customer's profile together with the courses they
// hold access grants for.
func (s *customerService) Details(ctx context.Context, id uuid.UUID) (*model.Profile, []model.Course, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrCustomerNotFound
		}
		return nil, nil, fmt.Errorf("load customer: %w", err)
	}

	courses, err := s.accessRepo.ListGrantedCourses(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load customer courses: %w", err)
	}

	return profile, courses, nil
}
