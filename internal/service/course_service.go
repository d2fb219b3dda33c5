package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edustore/internal/cache"
	"edustore/internal/errors"
	"edustore/internal/model"
	"edustore/internal/repository"
)

const (
	courseCacheTTL     = 5 * time.Minute
	courseListCacheKey = "courses:list"
)

// CourseInput carries the fields an admin supplies when creating or
// updating a course. Images is the ordered list of gallery URLs; its
// positions become sort_order.
type CourseInput struct {
	Title        string
	Description  string
	YoutubeURL   string
	ThumbnailURL string
	Price        decimal.Decimal
	Images       []string
}

// CourseService handles catalog operations.
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Course, error)
	Create(ctx context.Context, adminID uuid.UUID, input CourseInput) (*model.Course, error)
	Update(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListGranted(ctx context.Context, userID uuid.UUID) ([]model.Course, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	accessRepo repository.AccessRepository
	cache      *cache.Client
}

// NewCourseService creates a new course service.
func NewCourseService(courseRepo repository.CourseRepository, accessRepo repository.AccessRepository, cache *cache.Client) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		accessRepo: accessRepo,
		cache:      cache,
	}
}

func (s *courseService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("course:%s", id.String())
}

func validateCourseInput(input CourseInput) error {
	if input.Title == "" {
		return errors.ErrTitleRequired
	}
	if input.YoutubeURL == "" {
		return errors.ErrVideoURLRequired
	}
	if input.Price.IsNegative() {
		return errors.ErrNegativePrice
	}
	return nil
}

func imageRows(courseID uuid.UUID, urls []string) []model.CourseImage {
	images := make([]model.CourseImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, model.CourseImage{
			CourseID:  courseID,
			ImageURL:  url,
			SortOrder: i,
		})
	}
	return images
}

// List returns all courses with their galleries, newest first, with caching.
func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	if data, _ := s.cache.Get(ctx, courseListCacheKey); data != nil {
		var cached []model.Course
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(courses); err == nil {
		_ = s.cache.Set(ctx, courseListCacheKey, payload, courseCacheTTL)
	}

	return courses, nil
}

// Get returns a single course with gallery, reviews, and uploader.
func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Course
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCourseNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(course); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, courseCacheTTL)
	}

	return course, nil
}

// Create inserts a new course and its gallery. A gallery insert failure
// is logged but does not fail the creation; the course itself is already
// on file and the admin can re-submit images through an update.
func (s *courseService) Create(ctx context.Context, adminID uuid.UUID, input CourseInput) (*model.Course, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:        input.Title,
		Slug:         slug.Make(input.Title),
		Description:  input.Description,
		YoutubeURL:   input.YoutubeURL,
		ThumbnailURL: input.ThumbnailURL,
		Price:        input.Price,
		UploadedBy:   adminID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	if len(input.Images) > 0 {
		images := imageRows(course.ID, input.Images)
		if err := s.courseRepo.CreateImages(ctx, images); err != nil {
			log.Printf("course %s: insert gallery images: %v", course.ID, err)
		} else {
			course.Images = images
		}
	}

	_ = s.cache.Delete(ctx, courseListCacheKey)

	return course, nil
}

// Update replaces the course's scalar fields and its entire gallery.
func (s *courseService) Update(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error) {
	if err := validateCourseInput(input); err != nil {
		return nil, err
	}

	course := &model.Course{
		ID:           id,
		Title:        input.Title,
		Slug:         slug.Make(input.Title),
		Description:  input.Description,
		YoutubeURL:   input.YoutubeURL,
		ThumbnailURL: input.ThumbnailURL,
		Price:        input.Price,
	}
	images := imageRows(id, input.Images)

	if err := s.courseRepo.UpdateWithImages(ctx, course, images); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}

	course.Images = images
	_ = s.cache.Delete(ctx, courseListCacheKey, s.cacheKey(id))

	return course, nil
}

// Delete removes a course and everything hanging off it.
func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCourseNotFound
		}
		return fmt.Errorf("delete course: %w", err)
	}

	_ = s.cache.Delete(ctx, courseListCacheKey, s.cacheKey(id))

	return nil
}

// ListGranted returns the courses the user may watch.
func (s *courseService) ListGranted(ctx context.Context, userID uuid.UUID) ([]model.Course, error) {
	return s.accessRepo.ListGrantedCourses(ctx, userID)
}
