package model

import (
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, st)

	st, err = ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, st)

	_, err = ParseOrderStatus("lost")
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusDelivered, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestShipmentStatus(t *testing.T) {
	st, err := ParseShipmentStatus("")
	require.NoError(t, err)
	assert.Equal(t, ShipmentStatusInTransit, st)
	assert.True(t, st.Active())

	assert.True(t, ShipmentStatusInTransit.CanTransitionTo(ShipmentStatusCancelled))
	assert.False(t, ShipmentStatusCancelled.CanTransitionTo(ShipmentStatusInTransit))
	assert.False(t, ShipmentStatusCancelled.Active())

	_, err = ParseShipmentStatus("pending")
	assert.True(t, apperror.IsValidation(err))
}
