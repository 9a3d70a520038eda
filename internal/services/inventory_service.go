package services

import (
	"fmt"

	"belanja/internal/repositories"
)

// InventoryService is the stock ledger: the only capability through which
// order flows mutate product stock. The archived flag is derived from the
// stock count inside the repository's conditional updates, so it can never
// disagree with the stock a reservation or release leaves behind.
type InventoryService struct {
	productRepo repositories.ProductRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(productRepo repositories.ProductRepository) *InventoryService {
	return &InventoryService{
		productRepo: productRepo,
	}
}

// Reserve decrements a product's stock by quantity. It fails when the product
// is soft-deleted or archived, and when fewer than quantity units remain. The
// decrement itself is a single conditional write, so two concurrent
// reservations can never take the same units.
func (s *InventoryService) Reserve(productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("reservation quantity must be at least 1, got %d", quantity)
	}

	product, err := s.productRepo.GetByIDUnscoped(productID)
	if err != nil {
		return err
	}
	if product.DeletedAt.Valid {
		return fmt.Errorf("product %s: %w", product.Name, ErrProductDeleted)
	}
	if product.IsArchived || product.Stock == 0 {
		return fmt.Errorf("product %s: %w", product.Name, ErrProductUnavailable)
	}

	ok, err := s.productRepo.DecrementStock(productID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %s (requested: %d): %w", product.Name, quantity, ErrInsufficientStock)
	}
	return nil
}

// Release returns quantity units to a product's stock, used when an order is
// cancelled or a partial reservation is compensated. Archived status is
// re-derived: stock rising above zero clears it.
func (s *InventoryService) Release(productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("release quantity must be at least 1, got %d", quantity)
	}
	return s.productRepo.IncrementStock(productID, quantity)
}
