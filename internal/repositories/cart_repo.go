package repositories

import "belanja/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetItem(userID, productID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
	ClearUser(userID string) error
}
