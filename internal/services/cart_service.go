package services

import (
	"fmt"

	"belanja/internal/models"
	"belanja/internal/repositories"

	"github.com/google/uuid"
)

// CartService handles business logic for shopping carts. Cart lines are
// long-lived references: availability is checked when a line is touched, and
// re-checked from scratch at checkout.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart retrieves all cart lines for a user.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUser(userID)
}

// AddItem adds a product to the user's cart with quantity 1. Adding a product
// that is already in the cart is a conflict; the client should increment the
// existing line instead.
func (s *CartService) AddItem(userID, productID string) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Available() {
		return nil, fmt.Errorf("product %s: %w", product.Name, ErrProductUnavailable)
	}

	if _, err := s.cartRepo.GetItem(userID, productID); err == nil {
		return nil, fmt.Errorf("product %s: %w", product.Name, ErrCartConflict)
	}

	item := &models.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	item.Product = product
	return item, nil
}

// IncrementItem raises a cart line's quantity by one, bounded by the
// product's current stock.
func (s *CartService) IncrementItem(userID, productID string) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if item.Quantity+1 > product.Stock {
		return nil, fmt.Errorf("product %s (stock: %d): %w", product.Name, product.Stock, ErrCartLimit)
	}

	item.Quantity++
	if err := s.cartRepo.UpdateQuantity(item.ID, item.Quantity); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// DecrementItem lowers a cart line's quantity by one. Decrementing a line at
// quantity 1 removes it; the returned item is nil in that case.
func (s *CartService) DecrementItem(userID, productID string) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return nil, err
	}

	if item.Quantity <= 1 {
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity--
	if err := s.cartRepo.UpdateQuantity(item.ID, item.Quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a single cart line.
func (s *CartService) RemoveItem(userID, productID string) error {
	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

// Clear deletes every cart line for the user.
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.ClearUser(userID)
}

// Summarize totals the cart against live catalog prices, so the amount always
// reflects current pricing rather than whatever the prices were when lines
// were added. Lines whose product has been soft-deleted are skipped.
func (s *CartService) Summarize(userID string) (*models.CartSummary, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.CartSummary{}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		summary.TotalItems += item.Quantity
		summary.TotalAmount += item.Product.Price * float64(item.Quantity)
	}
	return summary, nil
}
