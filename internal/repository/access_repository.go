package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/model"
)

// AccessRepository defines course access grant persistence operations.
// Grants are insert-only; nothing ever mutates or removes one except a
// cascading course delete.
type AccessRepository interface {
	Create(ctx context.Context, grant *model.CourseAccess) error
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	ListGrantedCourses(ctx context.Context, userID uuid.UUID) ([]model.Course, error)
}

type accessRepository struct {
	db *gorm.DB
}

// NewAccessRepository creates a new access repository.
func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

// Create inserts an access grant. The unique index on (user_id, course_id)
// makes a repeated insert fail with gorm.ErrDuplicatedKey.
func (r *accessRepository) Create(ctx context.Context, grant *model.CourseAccess) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

// Exists reports whether a grant row exists for the user and course.
func (r *accessRepository) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CourseAccess{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListGrantedCourses loads the courses the user holds grants for, with
// their ordered galleries.
func (r *accessRepository) ListGrantedCourses(ctx context.Context, userID uuid.UUID) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN course_accesses ON course_accesses.course_id = courses.id").
		Where("course_accesses.user_id = ?", userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("course_accesses.granted_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
