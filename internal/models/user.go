package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admins authenticate with Bearer tokens and manage the catalog
// and order statuses; regular users authenticate with session cookies.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or administrator account.
type User struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName     string `json:"first_name" gorm:"type:varchar(100)" validate:"required,alpha,min=3,max=100"`
	LastName      string `json:"last_name" gorm:"type:varchar(100)" validate:"required,alpha,min=3,max=100"`
	Email         string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password      string `gorm:"type:varchar(255)" validate:"required,min=8,max=72"` // No json tag for security
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role" gorm:"type:varchar(20);default:user"`
	Disabled      bool   `json:"disabled"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Session is an opaque login session referenced by the session_id cookie.
type Session struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	SessionID string    `json:"session_id" gorm:"uniqueIndex;type:varchar(64)"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// EmailVerification holds the bcrypt hash of a registration OTP. At most one
// record exists per user; resending replaces it.
type EmailVerification struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"uniqueIndex;type:varchar(36)"`
	OTPHash   string    `gorm:"type:varchar(255)"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordReset holds the bcrypt hash of a password-reset OTP.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"uniqueIndex;type:varchar(36)"`
	OTPHash   string    `gorm:"type:varchar(255)"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
