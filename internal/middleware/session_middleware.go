package middleware

import (
	"belanja/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the opaque session ID.
const SessionCookie = "session_id"

// SessionAuth is a Fiber middleware that authenticates requests by the
// session cookie and stores the user in the request context.
func SessionAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(SessionCookie)
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No active session found",
			})
		}

		user, err := authService.ValidateSession(sessionID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		c.Locals("user_id", user.ID)
		c.Locals("email_verified", user.EmailVerified)
		return c.Next()
	}
}

// VerifiedEmailRequired gates checkout endpoints on a verified email address.
// It must run after SessionAuth.
func VerifiedEmailRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		verified, _ := c.Locals("email_verified").(bool)
		if !verified {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Email address has not been verified",
			})
		}
		return c.Next()
	}
}
