package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/pkg/pagination"
	"belanja/pkg/rabbitmq"

	"github.com/google/uuid"
)

// PlaceOrderInput carries the checkout request for a user.
type PlaceOrderInput struct {
	// UseSavedBilling resolves billing from the user's saved record.
	UseSavedBilling bool
	// Billing is the freshly supplied billing payload, used when
	// UseSavedBilling is false.
	Billing *models.OrderBilling
	// SaveBilling persists the resolved billing as the user's saved record.
	SaveBilling bool
}

// OrderService handles order placement, cancellation and status management.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	billingRepo repositories.BillingRepository
	inventory   *InventoryService
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	billingRepo repositories.BillingRepository,
	inventory *InventoryService,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		billingRepo: billingRepo,
		inventory:   inventory,
		publisher:   publisher,
	}
}

// PlaceOrder turns the user's cart into a pending order.
//
// Every cart line is re-validated against the live catalog before anything is
// written: lines can go stale between add-to-cart and checkout, so cart-time
// state is never trusted. Stock is then reserved line by line through the
// inventory ledger's conditional decrement; if any reservation fails, the
// ones already taken are released again, so a failed placement leaves stock
// for all lines unchanged. Only after every line is reserved is the order
// created and the cart cleared.
func (s *OrderService) PlaceOrder(userID string, input PlaceOrderInput) (*models.Order, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var orderItems []models.OrderItem
	var totalPrice float64
	for _, item := range items {
		product, err := s.productRepo.GetByIDUnscoped(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.DeletedAt.Valid {
			return nil, fmt.Errorf("product %s: %w", product.Name, ErrProductDeleted)
		}
		if product.IsArchived || product.Stock == 0 {
			return nil, fmt.Errorf("product %s: %w", product.Name, ErrProductUnavailable)
		}
		if item.Quantity > product.Stock {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, item.Quantity, product.Stock, ErrInsufficientStock)
		}

		// The price observed here is the one billed; it is not re-fetched
		// later, so validation and pricing cannot disagree.
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		totalPrice += product.Price * float64(item.Quantity)
	}

	billing, err := s.resolveBilling(userID, input)
	if err != nil {
		return nil, err
	}

	var reserved []models.OrderItem
	for _, line := range orderItems {
		if err := s.inventory.Reserve(line.ProductID, line.Quantity); err != nil {
			s.releaseReserved(reserved)
			return nil, err
		}
		reserved = append(reserved, line)
	}

	order := &models.Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		Items:      orderItems,
		Billing:    *billing,
		Status:     models.StatusPending,
		TotalPrice: totalPrice,
	}
	if err := s.orderRepo.Create(order); err != nil {
		s.releaseReserved(reserved)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.ClearUser(userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after order %s: %v", userID, order.ID, err)
	}

	if input.SaveBilling {
		record := &models.BillingInformation{
			UserID:    userID,
			Recipient: billing.Recipient,
			Address:   billing.Address,
		}
		if err := s.billingRepo.Upsert(record); err != nil {
			log.Printf("Warning: failed to save billing information for user %s: %v", userID, err)
		}
	}

	s.publishOrderEvent("order.created", order)
	return order, nil
}

// resolveBilling picks the billing snapshot for a placement: the user's saved
// record when requested, otherwise the supplied payload.
func (s *OrderService) resolveBilling(userID string, input PlaceOrderInput) (*models.OrderBilling, error) {
	if input.UseSavedBilling {
		record, err := s.billingRepo.GetByUser(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrBillingNotFound
			}
			return nil, err
		}
		return &models.OrderBilling{
			Recipient: record.Recipient,
			Address:   record.Address,
		}, nil
	}

	if input.Billing == nil {
		return nil, fmt.Errorf("billing information was not supplied")
	}
	return input.Billing, nil
}

// releaseReserved compensates reservations already taken when a later step of
// placement fails.
func (s *OrderService) releaseReserved(lines []models.OrderItem) {
	for _, line := range lines {
		if err := s.inventory.Release(line.ProductID, line.Quantity); err != nil {
			log.Printf("Warning: failed to release %d units of product %s: %v", line.Quantity, line.ProductID, err)
		}
	}
}

// CancelOrder cancels one of the user's own orders. Orders belonging to other
// users are reported as missing rather than forbidden.
func (s *OrderService) CancelOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, repositories.ErrNotFound)
	}
	return s.cancel(order)
}

// cancel performs the transition into cancelled: eligibility check, status
// write, then stock release for every line (the inverse of the reservation
// performed at placement).
func (s *OrderService) cancel(order *models.Order) (*models.Order, error) {
	if order.Status == models.StatusCancelled {
		return nil, fmt.Errorf("order %s: %w", order.ID, ErrAlreadyCancelled)
	}
	if !models.CanCancel(order.Status) {
		return nil, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidTransition)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, models.StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", order.ID, err)
	}
	order.Status = models.StatusCancelled

	for _, line := range order.Items {
		if err := s.inventory.Release(line.ProductID, line.Quantity); err != nil {
			log.Printf("Warning: failed to restock product %s after cancelling order %s: %v", line.ProductID, order.ID, err)
		}
	}

	s.publishOrderEvent("order.cancelled", order)
	return order, nil
}

// UpdateOrderStatus is the administrative transition path. Any strictly
// forward move in the lifecycle is accepted; setting cancelled follows the
// same eligibility and restock rules as a user cancellation.
func (s *OrderService) UpdateOrderStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid order status %q: %w", status, ErrInvalidTransition)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if status == models.StatusCancelled {
		return s.cancel(order)
	}

	if !models.CanAdvance(order.Status, status) {
		return nil, fmt.Errorf("cannot move order %s from %s to %s: %w", orderID, order.Status, status, ErrInvalidTransition)
	}
	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}
	order.Status = status
	return order, nil
}

// GetAllOrders retrieves a page of orders matching the filter (admin view).
func (s *OrderService) GetAllOrders(filter repositories.OrderFilter, p pagination.Params) ([]models.Order, int64, error) {
	return s.orderRepo.GetAll(filter, p)
}

// GetUserOrders retrieves a page of the user's own orders.
func (s *OrderService) GetUserOrders(userID string, p pagination.Params) ([]models.Order, int64, error) {
	return s.orderRepo.GetAll(repositories.OrderFilter{UserID: userID}, p)
}

// GetOrderByID retrieves a single order (admin view).
func (s *OrderService) GetOrderByID(orderID string) (*models.Order, error) {
	return s.orderRepo.GetByID(orderID)
}

// GetUserOrderByID retrieves one of the user's own orders.
func (s *OrderService) GetUserOrderByID(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, repositories.ErrNotFound)
	}
	return order, nil
}

// publishOrderEvent emits an order lifecycle event. Publishing is
// best-effort: the order is already persisted, so a broker failure is logged
// and never surfaced to the caller.
func (s *OrderService) publishOrderEvent(event string, order *models.Order) {
	if s.publisher == nil {
		return
	}

	message := map[string]interface{}{
		"event":       event,
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"status":      order.Status,
		"total_price": order.TotalPrice,
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", event, order.ID, err)
		return
	}
	if err := s.publisher.Publish("", rabbitmq.OrderQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
