package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edustore/internal/model"
)

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	CreateImages(ctx context.Context, images []model.CourseImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	UpdateWithImages(ctx context.Context, course *model.Course, images []model.CourseImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create creates a new course row. Images are inserted separately so the
// caller controls how an image failure affects the overall result.
func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Omit("Images", "Reviews", "Uploader").Create(course).Error
}

// CreateImages inserts gallery rows for a course.
func (r *courseRepository) CreateImages(ctx context.Context, images []model.CourseImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

// FindByID loads a course with its ordered gallery, reviews joined to
// reviewer profiles, and the uploader profile.
func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.User").
		Preload("Uploader").
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// List loads all courses with their ordered galleries, newest first.
func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// UpdateWithImages replaces the course's scalar fields and its entire
// gallery in one transaction, so a failure mid-replace never leaves the
// course without images.
func (r *courseRepository) UpdateWithImages(ctx context.Context, course *model.Course, images []model.CourseImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Course{}).
			Where("id = ?", course.ID).
			Updates(map[string]interface{}{
				"title":         course.Title,
				"slug":          course.Slug,
				"description":   course.Description,
				"youtube_url":   course.YoutubeURL,
				"thumbnail_url": course.ThumbnailURL,
				"price":         course.Price,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("course_id = ?", course.ID).Delete(&model.CourseImage{}).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a course. Images, payments, grants, and reviews go with
// it through the ON DELETE CASCADE constraints.
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Course{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Exists reports whether a course row exists.
func (r *courseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
