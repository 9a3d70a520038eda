package services_test

import (
	"testing"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthServiceForTest() (*services.AuthService, *MockUserRepository, *MockSessionRepository, *MockEmailVerificationRepository, *MockPasswordResetRepository) {
	mockUserRepo := new(MockUserRepository)
	mockSessionRepo := new(MockSessionRepository)
	mockEmailOTPRepo := new(MockEmailVerificationRepository)
	mockResetRepo := new(MockPasswordResetRepository)
	authService := services.NewAuthService(mockUserRepo, mockSessionRepo, mockEmailOTPRepo, mockResetRepo, nil, testJWTSecret)
	return authService, mockUserRepo, mockSessionRepo, mockEmailOTPRepo, mockResetRepo
}

func TestAuthService_RegisterUser(t *testing.T) {
	authService, mockUserRepo, mockSessionRepo, mockEmailOTPRepo, _ := newAuthServiceForTest()

	user := &models.User{
		ID:        "user-123",
		FirstName: "Budi",
		LastName:  "Santoso",
		Email:     "budi@example.com",
		Password:  "password123",
	}

	mockUserRepo.On("GetByEmail", user.Email).Return(nil, repositories.ErrNotFound).Once()
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockEmailOTPRepo.On("Replace", mock.AnythingOfType("*models.EmailVerification")).Return(nil).Once()
	mockSessionRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	session, err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, models.RoleUser, user.Role)
	// The stored password must be a bcrypt hash, never the plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockUserRepo.AssertExpectations(t)
	mockSessionRepo.AssertExpectations(t)
	mockEmailOTPRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_EmailInUse(t *testing.T) {
	authService, mockUserRepo, _, _, _ := newAuthServiceForTest()

	existing := &models.User{ID: "user-1", Email: "budi@example.com"}
	mockUserRepo.On("GetByEmail", "budi@example.com").Return(existing, nil).Once()

	_, err := authService.RegisterUser(&models.User{Email: "budi@example.com", Password: "password123"})
	assert.ErrorIs(t, err, services.ErrEmailInUse)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_LoginUser(t *testing.T) {
	authService, mockUserRepo, mockSessionRepo, _, _ := newAuthServiceForTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "budi@example.com", Password: string(hashed)}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockSessionRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	loggedIn, session, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	mockSessionRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser_WrongPassword(t *testing.T) {
	authService, mockUserRepo, mockSessionRepo, _, _ := newAuthServiceForTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "budi@example.com", Password: string(hashed)}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	_, _, err := authService.LoginUser(user.Email, "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockSessionRepo.AssertNotCalled(t, "Create")

	// An unknown email yields the same error as a wrong password.
	mockUserRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, _, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginUser_DisabledAccount(t *testing.T) {
	authService, mockUserRepo, _, _, _ := newAuthServiceForTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "budi@example.com", Password: string(hashed), Disabled: true}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	_, _, err := authService.LoginUser(user.Email, "password123")
	assert.ErrorIs(t, err, services.ErrAccountDisabled)
}

func TestAuthService_ValidateSession(t *testing.T) {
	authService, mockUserRepo, mockSessionRepo, _, _ := newAuthServiceForTest()

	session := &models.Session{UserID: "user-123", SessionID: "sess-1", ExpiresAt: time.Now().Add(time.Hour)}
	user := &models.User{ID: "user-123", Email: "budi@example.com"}

	mockSessionRepo.On("GetBySessionID", "sess-1").Return(session, nil).Once()
	mockUserRepo.On("GetByID", "user-123").Return(user, nil).Once()

	resolved, err := authService.ValidateSession("sess-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", resolved.ID)
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	authService, _, mockSessionRepo, _, _ := newAuthServiceForTest()

	stale := &models.Session{UserID: "user-123", SessionID: "sess-1", ExpiresAt: time.Now().Add(-time.Minute)}

	mockSessionRepo.On("GetBySessionID", "sess-1").Return(stale, nil).Once()
	// Expired sessions are removed on discovery.
	mockSessionRepo.On("Delete", "sess-1").Return(nil).Once()

	_, err := authService.ValidateSession("sess-1")
	assert.ErrorIs(t, err, services.ErrSessionInvalid)
	mockSessionRepo.AssertExpectations(t)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	authService, mockUserRepo, _, mockEmailOTPRepo, _ := newAuthServiceForTest()

	user := &models.User{ID: "user-123", Email: "budi@example.com"}
	otpHash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	record := &models.EmailVerification{UserID: user.ID, OTPHash: string(otpHash), ExpiresAt: time.Now().Add(10 * time.Minute)}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockEmailOTPRepo.On("GetByUserID", user.ID).Return(record, nil).Once()
	mockUserRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockEmailOTPRepo.On("DeleteByUserID", user.ID).Return(nil).Once()

	err := authService.VerifyEmail(user.Email, "123456")
	assert.NoError(t, err)
	assert.True(t, user.EmailVerified)
	mockEmailOTPRepo.AssertExpectations(t)
}

func TestAuthService_VerifyEmail_WrongOTP(t *testing.T) {
	authService, mockUserRepo, _, mockEmailOTPRepo, _ := newAuthServiceForTest()

	user := &models.User{ID: "user-123", Email: "budi@example.com"}
	otpHash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	record := &models.EmailVerification{UserID: user.ID, OTPHash: string(otpHash), ExpiresAt: time.Now().Add(10 * time.Minute)}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockEmailOTPRepo.On("GetByUserID", user.ID).Return(record, nil).Once()

	err := authService.VerifyEmail(user.Email, "654321")
	assert.ErrorIs(t, err, services.ErrIncorrectOTP)
	assert.False(t, user.EmailVerified)
	mockUserRepo.AssertNotCalled(t, "Update")
}

func TestAuthService_VerifyEmail_ExpiredOTP(t *testing.T) {
	authService, mockUserRepo, _, mockEmailOTPRepo, _ := newAuthServiceForTest()

	user := &models.User{ID: "user-123", Email: "budi@example.com"}
	otpHash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	record := &models.EmailVerification{UserID: user.ID, OTPHash: string(otpHash), ExpiresAt: time.Now().Add(-time.Minute)}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockEmailOTPRepo.On("GetByUserID", user.ID).Return(record, nil).Once()

	err := authService.VerifyEmail(user.Email, "123456")
	assert.ErrorIs(t, err, services.ErrOTPExpired)
}

func TestAuthService_VerifyEmail_AlreadyVerified(t *testing.T) {
	authService, mockUserRepo, _, mockEmailOTPRepo, _ := newAuthServiceForTest()

	user := &models.User{ID: "user-123", Email: "budi@example.com", EmailVerified: true}
	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	err := authService.VerifyEmail(user.Email, "123456")
	assert.ErrorIs(t, err, services.ErrEmailAlreadyVerified)
	mockEmailOTPRepo.AssertNotCalled(t, "GetByUserID")
}

func TestAuthService_RequestPasswordReset_UnverifiedEmail(t *testing.T) {
	authService, mockUserRepo, _, _, mockResetRepo := newAuthServiceForTest()

	user := &models.User{ID: "user-123", Email: "budi@example.com", EmailVerified: false}
	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	err := authService.RequestPasswordReset(user.Email)
	assert.ErrorIs(t, err, services.ErrEmailNotVerified)
	mockResetRepo.AssertNotCalled(t, "Replace")
}

func TestAuthService_CompletePasswordReset(t *testing.T) {
	authService, mockUserRepo, _, _, mockResetRepo := newAuthServiceForTest()

	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "budi@example.com", EmailVerified: true, Password: string(oldHash)}
	otpHash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	record := &models.PasswordReset{UserID: user.ID, OTPHash: string(otpHash), ExpiresAt: time.Now().Add(10 * time.Minute)}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockResetRepo.On("GetByUserID", user.ID).Return(record, nil).Once()
	mockUserRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockResetRepo.On("DeleteByUserID", user.ID).Return(nil).Once()

	err := authService.CompletePasswordReset(user.Email, "123456", "new-password-123")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-password-123")))
	mockResetRepo.AssertExpectations(t)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	authService, mockUserRepo, _, _, _ := newAuthServiceForTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	admin := &models.User{ID: "admin-1", Email: "admin@example.com", Password: string(hashed), Role: models.RoleAdmin}

	mockUserRepo.On("GetByEmail", admin.Email).Return(admin, nil).Once()

	tokenString, err := authService.LoginAdmin(admin.Email, "admin-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	// The token round-trips through validation.
	claims, err := authService.ValidateAdminToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "admin-1", claims["user_id"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestAuthService_LoginAdmin_NotAdmin(t *testing.T) {
	authService, mockUserRepo, _, _, _ := newAuthServiceForTest()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "budi@example.com", Password: string(hashed), Role: models.RoleUser}

	mockUserRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	_, err := authService.LoginAdmin(user.Email, "password123")
	assert.ErrorIs(t, err, services.ErrNotAdmin)
}

func TestAuthService_ValidateAdminToken_Rejections(t *testing.T) {
	authService, _, _, _, _ := newAuthServiceForTest()

	_, err := authService.ValidateAdminToken("not-a-token")
	assert.Error(t, err)

	// A structurally valid token signed with another secret is rejected.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "admin-1",
		"role":    models.RoleAdmin,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("another_secret"))
	_, err = authService.ValidateAdminToken(forgedString)
	assert.Error(t, err)

	// A valid user token does not grant admin access.
	userToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"role":    models.RoleUser,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	userTokenString, _ := userToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateAdminToken(userTokenString)
	assert.ErrorIs(t, err, services.ErrNotAdmin)
}
