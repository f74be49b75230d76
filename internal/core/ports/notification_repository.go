package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
)

// NotificationRepository stores notifications.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// MarkRead persists the read flag of a targeted notification. Already read rows are
	// left untouched so the first read time wins.
	MarkRead(ctx context.Context, n *notification.Notification) error

	// MarkReadBy stores a per-viewer read receipt for a broadcast. The first receipt wins.
	MarkReadBy(ctx context.Context, n *notification.Notification, viewerID kernel.UUID, at time.Time) error
}
