package handlers

import (
	"errors"

	"belanja/internal/repositories"
	"belanja/internal/services"
	"belanja/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service error kinds onto HTTP status codes. Anything
// unclassified is treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrBillingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrProductDeleted):
		return fiber.StatusGone
	case errors.Is(err, services.ErrCartConflict),
		errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrEmailInUse):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrCartLimit),
		errors.Is(err, services.ErrEmailAlreadyVerified),
		errors.Is(err, services.ErrIncorrectOTP),
		errors.Is(err, services.ErrOTPExpired):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSessionInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAccountDisabled),
		errors.Is(err, services.ErrEmailNotVerified),
		errors.Is(err, services.ErrNotAdmin):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// fail renders a service error with its mapped status code. Internal errors
// hide the underlying detail behind fallbackMessage.
func fail(c *fiber.Ctx, err error, fallbackMessage string) error {
	status := statusForError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = fallbackMessage
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// paginationParams reads the shared paging and sorting query parameters.
func paginationParams(c *fiber.Ctx) pagination.Params {
	return pagination.Params{
		Page:      c.QueryInt("page"),
		Limit:     c.QueryInt("limit"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}
