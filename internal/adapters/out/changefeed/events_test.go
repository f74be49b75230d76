package changefeed_test

import (
	"testing"
	"time"

	"ordering/internal/adapters/out/changefeed"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFor_Order(t *testing.T) {
	address, err := kernel.NewAddress("12 MG Road", "", "Pune", "411001", "")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Assam CTC 1kg", 2, kernel.MustMoney("450"))
	require.NoError(t, err)
	memberID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), memberID, "Chai Point", []order.Item{item}, address, 0, false)
	require.NoError(t, err)

	e, ok, err := changefeed.EventFor(o, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, changefeed.EntityOrder, e.Topic.Entity)
	assert.Equal(t, memberID.String(), e.Topic.Scope)
	assert.Equal(t, o.ID().String(), e.ID)
	assert.JSONEq(t, `{"member_id":"`+memberID.String()+`","status":"pending","total_amount":"900.00","version":0}`, string(e.Data))
}

func TestEventFor_NotificationRoundTripsForRouting(t *testing.T) {
	target := kernel.NewUUID()
	n, err := notification.New(kernel.NewUUID(), notification.OrderCancelledPayload{
		OrderID: "o-1", CancelledBy: "admin", Reason: "out of stock",
	}, &target, "")
	require.NoError(t, err)

	e, ok, err := changefeed.EventFor(n, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, target.String(), e.Topic.Scope)

	restored, err := e.Notification()
	require.NoError(t, err)
	assert.Equal(t, n.ID(), restored.ID())
	assert.Equal(t, notification.OrderCancelled, restored.Type())
	require.NotNil(t, restored.TargetUserID())
	assert.Equal(t, target, *restored.TargetUserID())
	assert.Equal(t, n.Message(), restored.Message())
}

func TestEventFor_BroadcastNotificationHasWildcardScope(t *testing.T) {
	n, err := notification.New(kernel.NewUUID(), notification.AnnouncementPayload{Headline: "h", Body: "b"}, nil, "Pune")
	require.NoError(t, err)

	e, ok, err := changefeed.EventFor(n, time.Now())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, e.Topic.Scope)

	restored, err := e.Notification()
	require.NoError(t, err)
	assert.Equal(t, "Pune", restored.Location())
	assert.Nil(t, restored.TargetUserID())
}

func TestEventFor_UnobservedAggregates(t *testing.T) {
	m, err := member.NewMember(kernel.NewUUID(), "Chai Point", "Pune")
	require.NoError(t, err)
	_, ok, err := changefeed.EventFor(m, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	account, err := loyalty.NewAccount(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	e, ok, err := changefeed.EventFor(account, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, changefeed.EntityLoyalty, e.Topic.Entity)
}

func TestEvent_NotificationRejectsOtherEntities(t *testing.T) {
	_, err := changefeed.Event{Topic: changefeed.All(changefeed.EntityOrder)}.Notification()
	require.Error(t, err)
}
