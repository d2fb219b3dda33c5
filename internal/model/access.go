package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseAccess records that a user may watch a course's video content.
// A row is created only when an administrator verifies a payment and is
// never mutated or deleted by any exposed operation. Existence of the
// row is the sole authorization signal for playback and for reviews.
type CourseAccess struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:uniq_user_course_access"`
	CourseID  uuid.UUID  `json:"course_id" gorm:"type:uuid;not null;index;uniqueIndex:uniq_user_course_access"`
	GrantedAt time.Time  `json:"granted_at" gorm:"autoCreateTime"`
	GrantedBy *uuid.UUID `json:"granted_by,omitempty" gorm:"type:uuid"`

	// Relations
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (a *CourseAccess) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
