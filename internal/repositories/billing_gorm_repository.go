package repositories

import (
	"fmt"

	"belanja/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBillingRepository is a GORM implementation of BillingRepository.
type GORMBillingRepository struct {
	db *gorm.DB
}

// NewGORMBillingRepository creates a new instance of GORMBillingRepository.
func NewGORMBillingRepository(db *gorm.DB) *GORMBillingRepository {
	return &GORMBillingRepository{
		db: db,
	}
}

// GetByUser retrieves the saved billing record for a user.
func (r *GORMBillingRepository) GetByUser(userID string) (*models.BillingInformation, error) {
	var record models.BillingInformation
	if err := r.db.First(&record, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("billing information for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get billing information for user %s: %w", userID, err)
	}
	return &record, nil
}

// Upsert creates the user's billing record or overwrites the existing one.
func (r *GORMBillingRepository) Upsert(record *models.BillingInformation) error {
	var existing models.BillingInformation
	err := r.db.First(&existing, "user_id = ?", record.UserID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up billing information for user %s: %w", record.UserID, err)
		}
		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		if err := r.db.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create billing information: %w", err)
		}
		return nil
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	columns := []string{
		"recipient_first_name", "recipient_last_name", "recipient_mobile_number",
		"address_street", "address_city", "address_state", "address_country",
	}
	if err := r.db.Model(&existing).Select(columns).Updates(record).Error; err != nil {
		return fmt.Errorf("failed to update billing information: %w", err)
	}
	return nil
}
