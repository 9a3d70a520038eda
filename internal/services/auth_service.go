package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for accounts, sessions, email
// verification and password resets. Regular users authenticate with opaque
// session cookies; administrators use short-lived HS256 Bearer tokens.
type AuthService struct {
	userRepo     repositories.UserRepository
	sessionRepo  repositories.SessionRepository
	emailOTPRepo repositories.EmailVerificationRepository
	resetRepo    repositories.PasswordResetRepository
	publisher    EventPublisher
	jwtSecret    []byte
	sessionDurat time.Duration // Duration for which a session is valid
	otpDurat     time.Duration // Duration for which an OTP is valid
	tokenDurat   time.Duration // Duration for which an admin JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	emailOTPRepo repositories.EmailVerificationRepository,
	resetRepo repositories.PasswordResetRepository,
	publisher EventPublisher,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		emailOTPRepo: emailOTPRepo,
		resetRepo:    resetRepo,
		publisher:    publisher,
		jwtSecret:    []byte(jwtSecret),
		sessionDurat: 24 * time.Hour,
		otpDurat:     10 * time.Minute,
		tokenDurat:   24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashes their password, sends an email
// verification OTP, and opens a session for them.
func (s *AuthService) RegisterUser(user *models.User) (*models.Session, error) {
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return nil, fmt.Errorf("email '%s': %w", user.Email, ErrEmailInUse)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = models.RoleUser

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.issueEmailOTP(user); err != nil {
		// The account exists; the user can request a resend.
		log.Printf("Warning: failed to issue verification OTP for %s: %v", user.Email, err)
	}

	return s.createSession(user.ID)
}

// LoginUser authenticates a user by email and password and opens a session.
func (s *AuthService) LoginUser(email, password string) (*models.User, *models.Session, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, nil, ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// LogoutUser ends a session. Logging out an already-ended session succeeds.
func (s *AuthService) LogoutUser(sessionID string) error {
	return s.sessionRepo.Delete(sessionID)
}

// ValidateSession resolves a session cookie value to its user, removing the
// session when it has expired.
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if session.Expired() {
		if err := s.sessionRepo.Delete(sessionID); err != nil {
			log.Printf("Warning: failed to delete expired session: %v", err)
		}
		return nil, ErrSessionInvalid
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if user.Disabled {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// VerifyEmail completes email verification with the OTP sent at registration.
func (s *AuthService) VerifyEmail(email, otp string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return fmt.Errorf("user %s: %w", email, ErrEmailAlreadyVerified)
	}

	record, err := s.emailOTPRepo.GetByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOTPExpired
		}
		return err
	}
	if time.Now().After(record.ExpiresAt) {
		return ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.OTPHash), []byte(otp)); err != nil {
		return ErrIncorrectOTP
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to mark email as verified: %w", err)
	}
	if err := s.emailOTPRepo.DeleteByUserID(user.ID); err != nil {
		log.Printf("Warning: failed to delete verification record for %s: %v", email, err)
	}
	return nil
}

// ResendOTP issues a fresh email verification OTP, replacing any previous one.
func (s *AuthService) ResendOTP(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return fmt.Errorf("user %s: %w", email, ErrEmailAlreadyVerified)
	}
	return s.issueEmailOTP(user)
}

// RequestPasswordReset issues a password reset OTP to a verified account.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if !user.EmailVerified {
		return fmt.Errorf("user %s: %w", email, ErrEmailNotVerified)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	record := &models.PasswordReset{
		UserID:    user.ID,
		OTPHash:   string(hash),
		ExpiresAt: time.Now().Add(s.otpDurat),
	}
	if err := s.resetRepo.Replace(record); err != nil {
		return err
	}

	s.publishEmail(user.Email, "Password Reset", fmt.Sprintf("Use this OTP to reset your password; %s", otp))
	return nil
}

// CompletePasswordReset sets a new password after checking the reset OTP.
func (s *AuthService) CompletePasswordReset(email, otp, newPassword string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if !user.EmailVerified {
		return fmt.Errorf("user %s: %w", email, ErrEmailNotVerified)
	}

	record, err := s.resetRepo.GetByUserID(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOTPExpired
		}
		return err
	}
	if time.Now().After(record.ExpiresAt) {
		return ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.OTPHash), []byte(otp)); err != nil {
		return ErrIncorrectOTP
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.resetRepo.DeleteByUserID(user.ID); err != nil {
		log.Printf("Warning: failed to delete password reset record for %s: %v", email, err)
	}
	return nil
}

// LoginAdmin authenticates an administrator and returns a Bearer token for
// the back-office endpoints.
func (s *AuthService) LoginAdmin(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if user.Role != models.RoleAdmin {
		return "", ErrNotAdmin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateAdminToken parses and validates an admin Bearer token, returning
// the claims if valid.
func (s *AuthService) ValidateAdminToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if role, _ := claims["role"].(string); role != models.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return claims, nil
}

// createSession opens a 24h session for a user.
func (s *AuthService) createSession(userID string) (*models.Session, error) {
	session := &models.Session{
		UserID:    userID,
		SessionID: uuid.New().String(),
		ExpiresAt: time.Now().Add(s.sessionDurat),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// issueEmailOTP generates, stores and dispatches an email verification OTP.
func (s *AuthService) issueEmailOTP(user *models.User) error {
	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	record := &models.EmailVerification{
		UserID:    user.ID,
		OTPHash:   string(hash),
		ExpiresAt: time.Now().Add(s.otpDurat),
	}
	if err := s.emailOTPRepo.Replace(record); err != nil {
		return err
	}

	s.publishEmail(user.Email, "Email Verification", fmt.Sprintf("Use this OTP to complete your registration; %s", otp))
	return nil
}

// publishEmail hands an outbound mail job to the email queue. Delivery itself
// is the mail worker's concern; a broker failure here is logged only.
func (s *AuthService) publishEmail(recipient, subject, body string) {
	if s.publisher == nil {
		log.Println("Message publisher is not initialized. Skipping email publication.")
		return
	}

	message := map[string]string{
		"recipient": recipient,
		"subject":   subject,
		"body":      body,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal email message for %s: %v", recipient, err)
		return
	}
	if err := s.publisher.Publish("", rabbitmq.EmailQueue, payload); err != nil {
		log.Printf("Warning: failed to publish email message for %s: %v", recipient, err)
	}
}

// generateOTP produces a 6-digit one-time password.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
