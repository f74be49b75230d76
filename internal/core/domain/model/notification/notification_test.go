package notification_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	target := kernel.NewUUID()

	n, err := notification.New(kernel.NewUUID(), notification.OrderStatusChangedPayload{
		OrderID: "o-1", From: "packing", To: "shipped", TrackingNumber: "TRK-9",
	}, &target, "")

	require.NoError(t, err)
	assert.Equal(t, notification.OrderStatusChanged, n.Type())
	assert.Equal(t, "Order status updated", n.Title())
	assert.Equal(t, "Your order is now shipped (tracking number TRK-9)", n.Message())
	assert.False(t, n.IsBroadcast())
	assert.False(t, n.Read())

	_, err = notification.New(kernel.NewUUID(), nil, nil, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNotification_MarkReadIsMonotonic(t *testing.T) {
	n, err := notification.New(kernel.NewUUID(), notification.AnnouncementPayload{Headline: "Diwali", Body: "Closed on Monday"}, nil, "Pune")
	require.NoError(t, err)
	first := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, n.MarkRead(first))
	assert.False(t, n.MarkRead(first.Add(time.Hour)))

	assert.True(t, n.Read())
	assert.Equal(t, first, *n.ReadAt())
	assert.Equal(t, "Pune", n.Location())
}

func TestDecodePayload_RestoresConcreteType(t *testing.T) {
	stored := []byte(`{"order_id":"o-1","points":20,"balance":540}`)

	p, err := notification.DecodePayload(notification.LoyaltyPointsEarned, stored)

	require.NoError(t, err)
	earned, ok := p.(notification.LoyaltyPointsEarnedPayload)
	require.True(t, ok)
	assert.Equal(t, 20, earned.Points)
	assert.Equal(t, "You earned 20 points. Your balance is 540", p.Message())
}

func TestDecodePayload_Errors(t *testing.T) {
	_, err := notification.DecodePayload("courier_assigned", []byte(`{}`))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = notification.DecodePayload(notification.NewOrder, []byte(`{"item_count":"three"}`))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
