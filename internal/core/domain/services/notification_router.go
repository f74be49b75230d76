package services

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
)

// visibility is a bit set of what a role sees for one notification type.
type visibility uint8

const (
	// seeOwn admits notifications targeted at the viewer.
	seeOwn visibility = 1 << iota
	// seeBroadcast admits untargeted notifications.
	seeBroadcast
	// seeOthers admits notifications targeted at other users.
	seeOthers
)

// NotificationScope is the storage-level form of a viewer's routing rules. Repositories
// translate it into a query filter.
type NotificationScope struct {
	// All disables filtering.
	All            bool
	ViewerID       kernel.UUID
	OwnTypes       []notification.Type
	BroadcastTypes []notification.Type
	// LocationScoped restricts broadcasts to those without a location or with Location.
	LocationScoped bool
	Location       string
}

// NotificationRouter decides which notifications a viewer may observe. The same table
// drives the query filter (Scope) and the second check before delivery (Visible).
type NotificationRouter struct {
	table          map[kernel.Role]map[notification.Type]visibility
	locationScoped map[kernel.Role]bool
}

// NewNotificationRouter builds the routing table:
//   - owners see everything
//   - admins see broadcasts and notifications targeted at themselves
//   - franchise members see notifications targeted at themselves and announcements for
//     their location or for everyone
func NewNotificationRouter() NotificationRouter {
	table := map[kernel.Role]map[notification.Type]visibility{
		kernel.RoleOwner:     {},
		kernel.RoleAdmin:     {},
		kernel.RoleFranchise: {},
	}
	for _, t := range notification.AllTypes() {
		table[kernel.RoleOwner][t] = seeOwn | seeBroadcast | seeOthers
		table[kernel.RoleAdmin][t] = seeOwn | seeBroadcast
	}
	for _, t := range []notification.Type{
		notification.OrderConfirmed,
		notification.OrderStatusChanged,
		notification.OrderCancelled,
		notification.LoyaltyPointsEarned,
		notification.LoyaltyGiftClaimed,
	} {
		table[kernel.RoleFranchise][t] |= seeOwn
	}
	table[kernel.RoleFranchise][notification.Announcement] |= seeBroadcast

	return NotificationRouter{
		table:          table,
		locationScoped: map[kernel.Role]bool{kernel.RoleFranchise: true},
	}
}

// Visible reports whether viewer may observe n.
func (r NotificationRouter) Visible(viewer kernel.Actor, n *notification.Notification) bool {
	rule := r.table[viewer.Role][n.Type()]
	if rule&seeOthers != 0 {
		return true
	}
	if target := n.TargetUserID(); target != nil {
		return rule&seeOwn != 0 && target.IsEqual(viewer.ID)
	}
	if rule&seeBroadcast == 0 {
		return false
	}
	if r.locationScoped[viewer.Role] && n.Location() != "" {
		return n.Location() == viewer.Location
	}
	return true
}

// Filter keeps the notifications viewer may observe, preserving order.
func (r NotificationRouter) Filter(viewer kernel.Actor, list []*notification.Notification) []*notification.Notification {
	visible := make([]*notification.Notification, 0, len(list))
	for _, n := range list {
		if r.Visible(viewer, n) {
			visible = append(visible, n)
		}
	}
	return visible
}

// Scope returns the query filter equivalent to Visible for viewer.
func (r NotificationRouter) Scope(viewer kernel.Actor) NotificationScope {
	scope := NotificationScope{
		All:            true,
		ViewerID:       viewer.ID,
		LocationScoped: r.locationScoped[viewer.Role],
		Location:       viewer.Location,
	}
	rules := r.table[viewer.Role]
	for _, t := range notification.AllTypes() {
		rule := rules[t]
		if rule&seeOthers == 0 {
			scope.All = false
		}
		if rule&seeOwn != 0 {
			scope.OwnTypes = append(scope.OwnTypes, t)
		}
		if rule&seeBroadcast != 0 {
			scope.BroadcastTypes = append(scope.BroadcastTypes, t)
		}
	}
	return scope
}
