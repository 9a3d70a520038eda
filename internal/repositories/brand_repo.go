package repositories

import (
	"belanja/internal/models"
	"belanja/pkg/pagination"
)

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	GetAll(p pagination.Params) ([]models.Brand, int64, error)
	GetByID(id string) (*models.Brand, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
	Delete(id string) error
	Restore(id string) error
}
