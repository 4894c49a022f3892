package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderConfirmed, OrderShipped, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderConfirmed, OrderDelivered, false},
		{OrderConfirmed, OrderPending, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderDelivered, OrderDelivered, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderConfirmed.Terminal())
	assert.False(t, OrderShipped.Terminal())
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	got, ok := ParseOrderStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, OrderConfirmed, got)

	_, ok = ParseOrderStatus("returned")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("")
	assert.False(t, ok)

	_, ok = ParseOrderStatus("Confirmed")
	assert.False(t, ok)
}
