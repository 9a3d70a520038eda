package repositories

import (
	"time"

	"belanja/internal/models"
	"belanja/pkg/pagination"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID    string
	Status    models.OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderRepository defines the interface for order data access. Orders are
// never deleted, so the interface deliberately has no Delete.
type OrderRepository interface {
	GetAll(filter OrderFilter, p pagination.Params) ([]models.Order, int64, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
}
