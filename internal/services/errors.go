package services

import "errors"

// Error kinds surfaced by the cart and order flows. Services wrap these with
// fmt.Errorf("...: %w", kind) to add context; handlers classify with
// errors.Is and map each kind to an HTTP status code.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product is unavailable")
	ErrProductDeleted     = errors.New("product no longer exists")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrBillingNotFound    = errors.New("no saved billing information")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrAlreadyCancelled   = errors.New("order has already been cancelled")
	ErrCartConflict       = errors.New("product is already in the cart")
	ErrCartLimit          = errors.New("quantity exceeds available stock")
)

// Error kinds surfaced by the account flows.
var (
	ErrEmailInUse           = errors.New("email is already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrSessionInvalid       = errors.New("session is invalid or has expired")
	ErrEmailNotVerified     = errors.New("email has not been verified")
	ErrEmailAlreadyVerified = errors.New("email has already been verified")
	ErrIncorrectOTP         = errors.New("incorrect OTP")
	ErrOTPExpired           = errors.New("OTP record does not exist or has expired")
	ErrNotAdmin             = errors.New("account does not have administrator access")
)
