package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Course represents a video course offered in the catalog.
type Course struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Slug         string          `json:"slug" gorm:"size:255;not null;index"`
	Description  string          `json:"description" gorm:"type:text"`
	YoutubeURL   string          `json:"youtube_url" gorm:"size:512;not null"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty" gorm:"size:512"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	UploadedBy   uuid.UUID       `json:"uploaded_by" gorm:"type:uuid;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Images   []CourseImage `json:"images,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Reviews  []Review      `json:"reviews,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Uploader *Profile      `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CourseImage is one entry of a course's ordered image gallery.
// The whole set is replaced on course update; sort_order is the
// position of the image within the submitted list.
type CourseImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:512;not null"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (ci *CourseImage) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
