package models_test

import (
	"testing"

	"belanja/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	valid := []models.OrderStatus{
		models.StatusPending,
		models.StatusProcessing,
		models.StatusInTransit,
		models.StatusPartiallyShipped,
		models.StatusOutForDelivery,
		models.StatusShipped,
		models.StatusDelivered,
		models.StatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, models.ValidStatus(s), "expected %q to be a valid status", s)
	}

	assert.False(t, models.ValidStatus("refunded"))
	assert.False(t, models.ValidStatus(""))
	assert.False(t, models.ValidStatus("Pending")) // statuses are case-sensitive
}

func TestCanAdvance(t *testing.T) {
	testCases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"single step forward", models.StatusPending, models.StatusProcessing, true},
		{"skipping intermediate states", models.StatusPending, models.StatusShipped, true},
		{"all the way to delivered", models.StatusProcessing, models.StatusDelivered, true},
		{"same status", models.StatusProcessing, models.StatusProcessing, false},
		{"backwards", models.StatusShipped, models.StatusProcessing, false},
		{"delivered is terminal", models.StatusDelivered, models.StatusShipped, false},
		{"cancelled is not a forward move", models.StatusPending, models.StatusCancelled, false},
		{"cannot leave cancelled", models.StatusCancelled, models.StatusProcessing, false},
		{"unknown target", models.StatusPending, "refunded", false},
		{"unknown source", "refunded", models.StatusShipped, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, models.CanAdvance(tc.from, tc.to))
		})
	}
}

func TestCanCancel(t *testing.T) {
	assert.True(t, models.CanCancel(models.StatusPending))
	assert.True(t, models.CanCancel(models.StatusProcessing))

	// Fulfilment has started, cancellation is refused.
	assert.False(t, models.CanCancel(models.StatusInTransit))
	assert.False(t, models.CanCancel(models.StatusPartiallyShipped))
	assert.False(t, models.CanCancel(models.StatusOutForDelivery))
	assert.False(t, models.CanCancel(models.StatusShipped))
	assert.False(t, models.CanCancel(models.StatusDelivered))
	assert.False(t, models.CanCancel(models.StatusCancelled))
}
