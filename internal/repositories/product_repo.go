package repositories

import (
	"belanja/internal/models"
	"belanja/pkg/pagination"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	AvailableOnly bool // exclude archived products
	BrandID       string
	Category      string
	Featured      *bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter, p pagination.Params) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	// GetByIDUnscoped also returns soft-deleted products, so checkout
	// validation can distinguish a deleted product from a missing one.
	GetByIDUnscoped(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Restore(id string) error
	// DecrementStock atomically subtracts quantity when at least that much
	// stock remains, re-deriving is_archived in the same statement. Returns
	// false when the guard fails.
	DecrementStock(id string, quantity int) (bool, error)
	// IncrementStock adds quantity back to stock, re-deriving is_archived.
	IncrementStock(id string, quantity int) error
}
