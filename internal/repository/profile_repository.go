package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/model"
)

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	ListCustomers(ctx context.Context, search string) ([]model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new profile.
func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindByID finds a profile by ID.
func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail finds a profile by email.
func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListCustomers lists customer profiles newest-first, optionally filtered
// by a case-insensitive match on full name or email.
func (r *profileRepository) ListCustomers(ctx context.Context, search string) ([]model.Profile, error) {
	q := r.db.WithContext(ctx).
		Where("role = ?", model.RoleCustomer).
		Order("created_at DESC")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var profiles []model.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
