package services_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(t *testing.T, role kernel.Role, location string) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, location)
	require.NoError(t, err)
	return a
}

func note(t *testing.T, p notification.Payload, target *kernel.UUID, location string) *notification.Notification {
	t.Helper()
	n, err := notification.New(kernel.NewUUID(), p, target, location)
	require.NoError(t, err)
	return n
}

func TestNotificationRouter_Visible(t *testing.T) {
	router := services.NewNotificationRouter()
	owner := actor(t, kernel.RoleOwner, "")
	admin := actor(t, kernel.RoleAdmin, "")
	member := actor(t, kernel.RoleFranchise, "Pune")
	otherMember := actor(t, kernel.RoleFranchise, "Mumbai")

	newOrder := note(t, notification.NewOrderPayload{OrderID: "o-1"}, nil, "")
	confirmedForMember := note(t, notification.OrderConfirmedPayload{OrderID: "o-1"}, &member.ID, "")
	puneAnnouncement := note(t, notification.AnnouncementPayload{Headline: "Pune only"}, nil, "Pune")
	globalAnnouncement := note(t, notification.AnnouncementPayload{Headline: "Everyone"}, nil, "")

	tests := []struct {
		name   string
		viewer kernel.Actor
		n      *notification.Notification
		want   bool
	}{
		{"owner_sees_broadcast", owner, newOrder, true},
		{"owner_sees_targeted_at_others", owner, confirmedForMember, true},
		{"admin_sees_broadcast", admin, newOrder, true},
		{"admin_does_not_see_targeted_at_member", admin, confirmedForMember, false},
		{"member_sees_own", member, confirmedForMember, true},
		{"member_does_not_see_others", otherMember, confirmedForMember, false},
		{"member_does_not_see_staff_broadcast", member, newOrder, false},
		{"member_sees_own_location_announcement", member, puneAnnouncement, true},
		{"member_does_not_see_other_location", otherMember, puneAnnouncement, false},
		{"member_sees_global_announcement", otherMember, globalAnnouncement, true},
		{"admin_sees_location_announcement", admin, puneAnnouncement, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, router.Visible(tt.viewer, tt.n))
		})
	}
}

func TestNotificationRouter_FilterNeverLeaksToFranchise(t *testing.T) {
	router := services.NewNotificationRouter()
	member := actor(t, kernel.RoleFranchise, "Pune")
	stranger := kernel.NewUUID()

	var all []*notification.Notification
	for _, target := range []*kernel.UUID{nil, &member.ID, &stranger} {
		all = append(all,
			note(t, notification.NewOrderPayload{}, target, ""),
			note(t, notification.OrderStatusChangedPayload{To: "paid"}, target, ""),
			note(t, notification.PaymentReceivedPayload{}, target, ""),
			note(t, notification.AnnouncementPayload{Headline: "h"}, target, "Mumbai"),
		)
	}

	visible := router.Filter(member, all)

	require.NotEmpty(t, visible)
	for _, n := range visible {
		require.NotNil(t, n.TargetUserID(), "only targeted notifications survive here")
		assert.True(t, n.TargetUserID().IsEqual(member.ID))
	}
}

func TestNotificationRouter_Scope(t *testing.T) {
	router := services.NewNotificationRouter()

	ownerScope := router.Scope(actor(t, kernel.RoleOwner, ""))
	assert.True(t, ownerScope.All)

	adminScope := router.Scope(actor(t, kernel.RoleAdmin, ""))
	assert.False(t, adminScope.All)
	assert.False(t, adminScope.LocationScoped)
	assert.ElementsMatch(t, notification.AllTypes(), adminScope.BroadcastTypes)

	member := actor(t, kernel.RoleFranchise, "Pune")
	memberScope := router.Scope(member)
	assert.False(t, memberScope.All)
	assert.True(t, memberScope.LocationScoped)
	assert.Equal(t, "Pune", memberScope.Location)
	assert.True(t, memberScope.ViewerID.IsEqual(member.ID))
	assert.Equal(t, []notification.Type{notification.Announcement}, memberScope.BroadcastTypes)
	assert.Contains(t, memberScope.OwnTypes, notification.OrderStatusChanged)
	assert.NotContains(t, memberScope.OwnTypes, notification.NewOrder)

	systemScope := router.Scope(kernel.SystemActor())
	assert.False(t, systemScope.All)
	assert.Empty(t, systemScope.OwnTypes)
}
