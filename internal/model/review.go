package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a rating and optional comment left by a user who holds
// access to the course. One review per user and course, enforced by
// the unique index; reviews are create-only.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:uuid;not null;index;uniqueIndex:uniq_user_course_review"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:uniq_user_course_review"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
