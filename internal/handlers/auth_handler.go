package handlers

import (
	"fmt"
	"log"
	"time"

	"belanja/internal/middleware"
	"belanja/internal/models"
	"belanja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Post("/verify-email", h.HandleVerifyEmail)
	authRoutes.Post("/resend-otp", h.HandleResendOTP)
	authRoutes.Post("/password-reset/request", h.HandleRequestPasswordReset)
	authRoutes.Post("/password-reset/complete", h.HandleCompletePasswordReset)
	authRoutes.Post("/admin/login", h.HandleAdminLogin)
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,alpha,min=3,max=100"`
	LastName  string `json:"last_name" validate:"required,alpha,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// HandleRegister handles new user registration. A verification OTP is sent to
// the supplied address, and the response carries the session cookie.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
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

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	session, err := h.authService.RegisterUser(user)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return fail(c, err, "Could not register user")
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Account created successfully. Email verification OTP has been sent to %s", user.Email),
		"data":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and sets the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
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

	user, session, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error logging in user: %v", err)
		return fail(c, err, "Could not log in")
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Login successful",
		"data":    user,
	})
}

// HandleLogout ends the current session and clears the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sessionID := c.Cookies(middleware.SessionCookie)
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No active session found",
		})
	}

	if err := h.authService.LogoutUser(sessionID); err != nil {
		log.Printf("Error logging out: %v", err)
		return fail(c, err, "Could not log out")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// HandleVerifyEmail completes email verification with an OTP.
func (h *AuthHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
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

	if err := h.authService.VerifyEmail(req.Email, req.OTP); err != nil {
		log.Printf("Error verifying email: %v", err)
		return fail(c, err, "Could not verify email")
	}
	return c.JSON(fiber.Map{"message": "Email verified successfully"})
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleResendOTP issues a fresh email verification OTP.
func (h *AuthHandler) HandleResendOTP(c *fiber.Ctx) error {
	var req emailRequest
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

	if err := h.authService.ResendOTP(req.Email); err != nil {
		log.Printf("Error resending OTP: %v", err)
		return fail(c, err, "Could not resend OTP")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Email verification OTP has been resent to %s", req.Email),
	})
}

// HandleRequestPasswordReset issues a password reset OTP.
func (h *AuthHandler) HandleRequestPasswordReset(c *fiber.Ctx) error {
	var req emailRequest
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

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		log.Printf("Error requesting password reset: %v", err)
		return fail(c, err, "Could not request password reset")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Password reset OTP has been sent to %s", req.Email),
	})
}

type passwordResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// HandleCompletePasswordReset sets a new password after OTP verification.
func (h *AuthHandler) HandleCompletePasswordReset(c *fiber.Ctx) error {
	var req passwordResetRequest
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

	if err := h.authService.CompletePasswordReset(req.Email, req.OTP, req.NewPassword); err != nil {
		log.Printf("Error completing password reset: %v", err)
		return fail(c, err, "Could not reset password")
	}
	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

// HandleAdminLogin authenticates an administrator and returns a Bearer token.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var req loginRequest
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

	token, err := h.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		log.Printf("Error logging in admin: %v", err)
		return fail(c, err, "Could not log in")
	}
	return c.JSON(fiber.Map{"token": token})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, session *models.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.SessionID,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
	})
}
