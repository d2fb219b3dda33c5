package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus represents the status of a payment claim.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Payment represents a bank-transfer payment claim submitted by a
// customer for a course. The transaction id is free text supplied by
// the payer; it is confirmed by an administrator, never by a gateway.
//
// The partial unique index keeps at most one open (pending or
// verified) payment per user and course; a concurrent duplicate
// submission fails the insert instead of slipping past the pre-check.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:uniq_open_payment,where:status IN ('pending','verified')"`
	CourseID      uuid.UUID     `json:"course_id" gorm:"type:uuid;not null;index;uniqueIndex:uniq_open_payment"`
	TransactionID string        `json:"transaction_id" gorm:"size:255;not null"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time     `json:"created_at"`
	VerifiedAt    *time.Time    `json:"verified_at,omitempty"`
	VerifiedBy    *uuid.UUID    `json:"verified_by,omitempty" gorm:"type:uuid"`

	// Relations
	User   Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Course Course  `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
