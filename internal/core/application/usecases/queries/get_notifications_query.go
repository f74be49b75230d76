package queries

import (
	"encoding/json"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery lists the notifications a viewer may observe, newest first.
type GetNotificationsQuery struct {
	viewer     kernel.Actor
	unreadOnly bool
	limit      int

	guard guard.ConstructorGuard
}

func NewGetNotificationsQuery(viewer kernel.Actor, unreadOnly bool, limit int) (GetNotificationsQuery, error) {
	if limit == 0 {
		limit = DefaultPageSize
	}
	var limitErr error
	if limit < 1 || limit > MaxPageSize {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	}
	if err := errors.Join(viewer.Validate(), limitErr); err != nil {
		return GetNotificationsQuery{}, err
	}
	return GetNotificationsQuery{
		viewer:     viewer,
		unreadOnly: unreadOnly,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

func (q GetNotificationsQuery) Viewer() kernel.Actor { return q.viewer }
func (q GetNotificationsQuery) UnreadOnly() bool     { return q.unreadOnly }
func (q GetNotificationsQuery) Limit() int           { return q.limit }

// NotificationView is the notification record exposed to clients.
type NotificationView struct {
	ID           kernel.UUID
	Type         notification.Type
	Title        string
	Message      string
	TargetUserID *kernel.UUID
	Location     string
	Data         json.RawMessage
	Read         bool
	ReadAt       *time.Time
	CreatedAt    time.Time
}

// NewNotificationView renders a notification for clients. The websocket hub uses it
// for pushed notifications too.
func NewNotificationView(n *notification.Notification) (NotificationView, error) {
	data, err := notification.EncodePayload(n.Payload())
	if err != nil {
		return NotificationView{}, err
	}
	return NotificationView{
		ID:           n.ID(),
		Type:         n.Type(),
		Title:        n.Title(),
		Message:      n.Message(),
		TargetUserID: n.TargetUserID(),
		Location:     n.Location(),
		Data:         data,
		Read:         n.Read(),
		ReadAt:       n.ReadAt(),
		CreatedAt:    n.CreatedAt(),
	}, nil
}
