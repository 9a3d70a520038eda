package services

import (
	"errors"

	"belanja/internal/models"
	"belanja/internal/repositories"
)

// UserService handles profile and saved billing information.
type UserService struct {
	userRepo    repositories.UserRepository
	billingRepo repositories.BillingRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, billingRepo repositories.BillingRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		billingRepo: billingRepo,
	}
}

// GetProfile retrieves a user by ID.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetBillingInformation retrieves the user's saved billing record.
func (s *UserService) GetBillingInformation(userID string) (*models.BillingInformation, error) {
	record, err := s.billingRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBillingNotFound
		}
		return nil, err
	}
	return record, nil
}

// SaveBillingInformation creates or replaces the user's saved billing record.
func (s *UserService) SaveBillingInformation(userID string, recipient models.Recipient, address models.Address) (*models.BillingInformation, error) {
	record := &models.BillingInformation{
		UserID:    userID,
		Recipient: recipient,
		Address:   address,
	}
	if err := s.billingRepo.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}
