package models_test

import (
	"testing"
	"time"

	"belanja/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	live := models.Session{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.Expired())

	expired := models.Session{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, expired.Expired())
}
