package repositories

import (
	"fmt"

	"belanja/internal/models"

	"gorm.io/gorm"
)

// GORMEmailVerificationRepository is a GORM implementation of
// EmailVerificationRepository.
type GORMEmailVerificationRepository struct {
	db *gorm.DB
}

// NewGORMEmailVerificationRepository creates a new instance of
// GORMEmailVerificationRepository.
func NewGORMEmailVerificationRepository(db *gorm.DB) *GORMEmailVerificationRepository {
	return &GORMEmailVerificationRepository{
		db: db,
	}
}

// Replace deletes any existing record for the user and stores the new one.
func (r *GORMEmailVerificationRepository) Replace(record *models.EmailVerification) error {
	if err := r.db.Delete(&models.EmailVerification{}, "user_id = ?", record.UserID).Error; err != nil {
		return fmt.Errorf("failed to replace email verification record: %w", err)
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create email verification record: %w", err)
	}
	return nil
}

// GetByUserID retrieves the verification record for a user.
func (r *GORMEmailVerificationRepository) GetByUserID(userID string) (*models.EmailVerification, error) {
	var record models.EmailVerification
	if err := r.db.First(&record, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("email verification record for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get email verification record: %w", err)
	}
	return &record, nil
}

// DeleteByUserID removes the verification record for a user.
func (r *GORMEmailVerificationRepository) DeleteByUserID(userID string) error {
	if err := r.db.Delete(&models.EmailVerification{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete email verification record: %w", err)
	}
	return nil
}

// GORMPasswordResetRepository is a GORM implementation of
// PasswordResetRepository.
type GORMPasswordResetRepository struct {
	db *gorm.DB
}

// NewGORMPasswordResetRepository creates a new instance of
// GORMPasswordResetRepository.
func NewGORMPasswordResetRepository(db *gorm.DB) *GORMPasswordResetRepository {
	return &GORMPasswordResetRepository{
		db: db,
	}
}

// Replace deletes any existing record for the user and stores the new one.
func (r *GORMPasswordResetRepository) Replace(record *models.PasswordReset) error {
	if err := r.db.Delete(&models.PasswordReset{}, "user_id = ?", record.UserID).Error; err != nil {
		return fmt.Errorf("failed to replace password reset record: %w", err)
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create password reset record: %w", err)
	}
	return nil
}

// GetByUserID retrieves the password reset record for a user.
func (r *GORMPasswordResetRepository) GetByUserID(userID string) (*models.PasswordReset, error) {
	var record models.PasswordReset
	if err := r.db.First(&record, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("password reset record for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get password reset record: %w", err)
	}
	return &record, nil
}

// DeleteByUserID removes the password reset record for a user.
func (r *GORMPasswordResetRepository) DeleteByUserID(userID string) error {
	if err := r.db.Delete(&models.PasswordReset{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete password reset record: %w", err)
	}
	return nil
}
