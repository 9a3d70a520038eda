package handlers

import (
	"log"

	"belanja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. The router is
// expected to carry the session middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/summary", h.HandleGetSummary)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId/increment", h.HandleIncrementItem)
	cartRoutes.Patch("/items/:productId/decrement", h.HandleDecrementItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the user's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	items, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return fail(c, err, "Could not retrieve cart")
	}
	return c.JSON(items)
}

// HandleGetSummary returns the cart's item count and monetary total, priced
// against the live catalog.
func (h *CartHandler) HandleGetSummary(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	summary, err := h.service.Summarize(userID)
	if err != nil {
		log.Printf("Error summarizing cart for user %s: %v", userID, err)
		return fail(c, err, "Could not summarize cart")
	}
	return c.JSON(summary)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// HandleAddItem adds a product to the cart with quantity 1.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req addItemRequest
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

	item, err := h.service.AddItem(userID, req.ProductID)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return fail(c, err, "Could not add product to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleIncrementItem raises a cart line's quantity by one.
func (h *CartHandler) HandleIncrementItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productId")

	item, err := h.service.IncrementItem(userID, productID)
	if err != nil {
		log.Printf("Error incrementing product %s in cart: %v", productID, err)
		return fail(c, err, "Could not update cart")
	}
	return c.JSON(item)
}

// HandleDecrementItem lowers a cart line's quantity by one; reaching zero
// removes the line.
func (h *CartHandler) HandleDecrementItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productId")

	item, err := h.service.DecrementItem(userID, productID)
	if err != nil {
		log.Printf("Error decrementing product %s in cart: %v", productID, err)
		return fail(c, err, "Could not update cart")
	}
	if item == nil {
		return c.JSON(fiber.Map{"message": "Item removed from cart"})
	}
	return c.JSON(item)
}

// HandleRemoveItem deletes a single cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	productID := c.Params("productId")

	if err := h.service.RemoveItem(userID, productID); err != nil {
		log.Printf("Error removing product %s from cart: %v", productID, err)
		return fail(c, err, "Could not remove item from cart")
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart deletes every cart line for the user.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	if err := h.service.Clear(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return fail(c, err, "Could not clear cart")
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
