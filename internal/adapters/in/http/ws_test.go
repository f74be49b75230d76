package http

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/adapters/out/changefeed"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHub(changefeed.NewRegistry(logger), services.NewNotificationRouter(), logger)
}

func notificationEvent(t *testing.T, payload notification.Payload, target *kernel.UUID, location string) changefeed.Event {
	t.Helper()
	n, err := notification.New(kernel.NewUUID(), payload, target, location)
	require.NoError(t, err)
	e, ok, err := changefeed.EventFor(n, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	return e
}

func TestHubMessage_Notifications(t *testing.T) {
	hub := newTestHub()
	pune, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleFranchise, "Pune")
	require.NoError(t, err)
	mumbai, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleFranchise, "Mumbai")
	require.NoError(t, err)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, "")
	require.NoError(t, err)

	confirmed := notificationEvent(t, notification.OrderConfirmedPayload{
		OrderID: kernel.NewUUID().String(), DeliveryFee: "120.00", TotalAmount: "1120.00",
	}, &pune.ID, "")
	announcement := notificationEvent(t, notification.AnnouncementPayload{
		Headline: "Diwali hours", Body: "Dispatch closes at noon",
	}, nil, "Pune")

	msg, ok := hub.message(pune, confirmed)
	require.True(t, ok)
	assert.Equal(t, "notification", msg.Type)
	assert.Equal(t, confirmed.ID, msg.ID)

	_, ok = hub.message(mumbai, confirmed)
	assert.False(t, ok)

	_, ok = hub.message(pune, announcement)
	assert.True(t, ok)
	_, ok = hub.message(mumbai, announcement)
	assert.False(t, ok)
	_, ok = hub.message(admin, announcement)
	assert.True(t, ok)
}

func TestHubMessage_OrderEvents(t *testing.T) {
	hub := newTestHub()
	member, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleFranchise, "Pune")
	require.NoError(t, err)
	other, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleFranchise, "Pune")
	require.NoError(t, err)
	owner, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleOwner, "")
	require.NoError(t, err)

	e := changefeed.Event{
		Topic: changefeed.Topic{Entity: changefeed.EntityOrder, Scope: member.ID.String()},
		ID:    kernel.NewUUID().String(),
		Data:  []byte(`{"status":"confirmed"}`),
		At:    time.Now(),
	}

	msg, ok := hub.message(member, e)
	require.True(t, ok)
	assert.Equal(t, "order", msg.Type)

	_, ok = hub.message(other, e)
	assert.False(t, ok)
	_, ok = hub.message(owner, e)
	assert.True(t, ok)

	_, ok = hub.message(owner, changefeed.Event{Topic: changefeed.All(changefeed.EntityPacking)})
	assert.False(t, ok)
}

func TestOrderTopic(t *testing.T) {
	member, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleFranchise, "Pune")
	require.NoError(t, err)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, "")
	require.NoError(t, err)

	assert.Equal(t, member.ID.String(), orderTopic(member).Scope)
	assert.Equal(t, changefeed.All(changefeed.EntityOrder), orderTopic(admin))
}
