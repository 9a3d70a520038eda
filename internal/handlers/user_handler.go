package handlers

import (
	"log"

	"belanja/internal/models"
	"belanja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the authenticated user's profile and
// saved billing information.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The router is
// expected to carry the session middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users/me")
	userRoutes.Get("/", h.HandleGetProfile)
	userRoutes.Get("/billing", h.HandleGetBilling)
	userRoutes.Put("/billing", h.HandleSaveBilling)
}

// HandleGetProfile returns the authenticated user's account.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		return fail(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

// HandleGetBilling returns the user's saved billing record.
func (h *UserHandler) HandleGetBilling(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	record, err := h.userService.GetBillingInformation(userID)
	if err != nil {
		log.Printf("Error getting billing information for user %s: %v", userID, err)
		return fail(c, err, "Could not retrieve billing information")
	}
	return c.JSON(record)
}

type billingRequest struct {
	Recipient models.Recipient `json:"recipient" validate:"required"`
	Address   models.Address   `json:"address" validate:"required"`
}

// HandleSaveBilling creates or replaces the user's saved billing record.
func (h *UserHandler) HandleSaveBilling(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req billingRequest
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

	record, err := h.userService.SaveBillingInformation(userID, req.Recipient, req.Address)
	if err != nil {
		log.Printf("Error saving billing information for user %s: %v", userID, err)
		return fail(c, err, "Could not save billing information")
	}
	return c.JSON(fiber.Map{
		"message": "Billing information saved successfully",
		"data":    record,
	})
}
