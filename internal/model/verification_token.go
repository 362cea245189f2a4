package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenPurpose discriminates what a verification token may be used for.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// VerificationToken is a single-use, expiring token tied to one user and
// one purpose. At most one unconsumed token per user per purpose is kept
// live; issuing a new one supersedes the old.
type VerificationToken struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	Token     string       `json:"-" gorm:"uniqueIndex;size:128;not null"` // Never expose in JSON
	UserID    uuid.UUID    `json:"user_id" gorm:"type:char(36);not null;index"`
	Purpose   TokenPurpose `json:"purpose" gorm:"size:50;not null;index"`
	ExpiresAt time.Time    `json:"expires_at" gorm:"not null"`
	Used      bool         `json:"used" gorm:"default:false"`
	CreatedAt time.Time    `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *VerificationToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
