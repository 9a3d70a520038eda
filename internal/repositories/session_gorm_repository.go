package repositories

import (
	"fmt"

	"belanja/internal/models"

	"gorm.io/gorm"
)

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{
		db: db,
	}
}

// Create persists a new session.
func (r *GORMSessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetBySessionID retrieves a session by its opaque identifier.
func (r *GORMSessionRepository) GetBySessionID(sessionID string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "session_id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Delete removes a session. Deleting a session that no longer exists is not
// an error; logout is idempotent.
func (r *GORMSessionRepository) Delete(sessionID string) error {
	if err := r.db.Delete(&models.Session{}, "session_id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
