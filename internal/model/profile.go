package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents the role of a profile.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Profile represents a registered user of the storefront.
// The role is assigned at creation time and is never mutable
// through any exposed operation; admins are created by the seed tool.
type Profile struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName     string    `json:"full_name" gorm:"size:255;not null;index"`
	AvatarURL    string    `json:"avatar_url,omitempty" gorm:"size:512"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
