package handlers

import (
	"log"
	"time"

	"belanja/internal/middleware"
	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"
	"belanja/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user-facing order routes. The router is
// expected to carry the session middleware; placement additionally requires
// a verified email.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", middleware.VerifiedEmailRequired(), h.HandlePlaceOrder)
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetMyOrderByID)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// RegisterAdminRoutes registers the back-office order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetAllOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

type placeOrderRequest struct {
	UseSavedBillingInformation bool                 `json:"use_saved_billing_information"`
	BillingInformation         *models.OrderBilling `json:"billing_information"`
	SaveBillingInformation     bool                 `json:"save_billing_information"`
}

// HandlePlaceOrder turns the user's cart into a pending order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if !req.UseSavedBillingInformation {
		if req.BillingInformation == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Billing information is required unless use_saved_billing_information is set",
			})
		}
		if err := h.validate.Struct(req.BillingInformation); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
	}

	order, err := h.service.PlaceOrder(userID, services.PlaceOrderInput{
		UseSavedBilling: req.UseSavedBillingInformation,
		Billing:         req.BillingInformation,
		SaveBilling:     req.SaveBillingInformation,
	})
	if err != nil {
		log.Printf("Error placing order for user %s: %v", userID, err)
		return fail(c, err, "Could not place order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders lists the user's own orders.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	p := paginationParams(c)

	orders, total, err := h.service.GetUserOrders(userID, p)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return fail(c, err, "Could not retrieve orders")
	}
	return c.JSON(fiber.Map{
		"data":       orders,
		"pagination": pagination.NewMeta(total, p),
	})
}

// HandleGetMyOrderByID retrieves one of the user's own orders.
func (h *OrderHandler) HandleGetMyOrderByID(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	orderID := c.Params("id")

	order, err := h.service.GetUserOrderByID(userID, orderID)
	if err != nil {
		log.Printf("Error getting order %s for user %s: %v", orderID, userID, err)
		return fail(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels one of the user's own orders, returning the
// ordered quantities to stock.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	orderID := c.Params("id")

	order, err := h.service.CancelOrder(userID, orderID)
	if err != nil {
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return fail(c, err, "Could not cancel order")
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled successfully",
		"data":    order,
	})
}

// HandleGetAllOrders lists orders for the back office, filterable by status
// and creation date range.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	filter := repositories.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown order status filter",
		})
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "start_date must be an RFC 3339 timestamp",
			})
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "end_date must be an RFC 3339 timestamp",
			})
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "start_date must be before or equal to end_date",
		})
	}

	p := paginationParams(c)
	orders, total, err := h.service.GetAllOrders(filter, p)
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return fail(c, err, "Could not retrieve orders")
	}
	return c.JSON(fiber.Map{
		"data":       orders,
		"pagination": pagination.NewMeta(total, p),
	})
}

// HandleGetOrderByID retrieves a single order for the back office.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return fail(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order forward through its lifecycle, or
// cancels it under the cancellation rules.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return fail(c, err, "Could not update order status")
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"data":    order,
	})
}
