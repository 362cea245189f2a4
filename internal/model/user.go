package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an authenticated user account.
type User struct {
	ID              uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email           string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName       string     `json:"first_name" gorm:"size:255;not null"`
	LastName        string     `json:"last_name" gorm:"size:255;not null"`
	Role            Role       `json:"role" gorm:"size:50;not null;default:'user';index"`
	IsEmailVerified bool       `json:"is_email_verified" gorm:"default:false"`
	IsActive        bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
