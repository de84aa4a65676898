package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is an account on the JustFitness platform.
//
// PasswordHash never crosses the service boundary: it is hidden from JSON and
// additionally blanked before a user value is returned to any caller. The
// soft-delete column defines which accounts are "active": a deleted row can
// neither log in nor block its email address for new registrations.
type User struct {
	ID           int64          `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex:uniq_users_email,where:deleted_at IS NULL;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Name         string         `json:"name" gorm:"not null"`
	Phone        string         `json:"phone,omitempty"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
