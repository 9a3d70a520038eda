package repositories

import "belanja/internal/models"

// EmailVerificationRepository stores per-user email verification OTP records.
// Replace discards any previous record for the user, matching the resend flow.
type EmailVerificationRepository interface {
	Replace(record *models.EmailVerification) error
	GetByUserID(userID string) (*models.EmailVerification, error)
	DeleteByUserID(userID string) error
}

// PasswordResetRepository stores per-user password reset OTP records.
type PasswordResetRepository interface {
	Replace(record *models.PasswordReset) error
	GetByUserID(userID string) (*models.PasswordReset, error)
	DeleteByUserID(userID string) error
}
