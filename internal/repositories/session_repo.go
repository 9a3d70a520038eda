package repositories

import "belanja/internal/models"

// SessionRepository defines the interface for session data access.
type SessionRepository interface {
	Create(session *models.Session) error
	GetBySessionID(sessionID string) (*models.Session, error)
	Delete(sessionID string) error
}
