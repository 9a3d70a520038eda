package repositories

import "belanja/internal/models"

// BillingRepository defines the interface for saved billing information. Each
// user has at most one record; Upsert replaces it in place.
type BillingRepository interface {
	GetByUser(userID string) (*models.BillingInformation, error)
	Upsert(record *models.BillingInformation) error
}
