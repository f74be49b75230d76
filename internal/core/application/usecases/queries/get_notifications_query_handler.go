package queries

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNotificationsQueryHandler filters twice: the viewer's routing scope becomes the
// WHERE clause, and every decoded row is checked against the router again. Broadcasts
// take their read state from the viewer's own receipt in notification_reads.
type GetNotificationsQueryHandler struct {
	db     *gorm.DB
	router services.NotificationRouter
}

func NewGetNotificationsQueryHandler(db *gorm.DB, router services.NotificationRouter) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db, router: router}
}

func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, scopeArgs, ok := scopeFilter(h.router.Scope(query.Viewer()))
	if !ok {
		return []NotificationView{}, nil
	}
	args := append([]any{query.Viewer().ID.UUID()}, scopeArgs...)
	if query.UnreadOnly() {
		where = append(where,
			"((n.target_user_id IS NULL AND r.read_at IS NULL) OR (n.target_user_id IS NOT NULL AND n.is_read = ?))")
		args = append(args, false)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT n.id, n.type, n.target_user_id, n.location, n.data, n.is_read, n.read_at,
			r.read_at, n.created_at
		FROM notifications n
		LEFT JOIN notification_reads r ON r.notification_id = n.id AND r.viewer_id = ?`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY n.created_at DESC, n.id LIMIT ?")
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*notification.Notification, 0)
	for rows.Next() {
		n, scanErr := scanNotification(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		list = append(list, n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	visible := h.router.Filter(query.Viewer(), list)
	views := make([]NotificationView, 0, len(visible))
	for _, n := range visible {
		view, viewErr := NewNotificationView(n)
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}
	return views, nil
}

// scopeFilter translates a routing scope to SQL. ok is false when the viewer can see
// nothing at all.
func scopeFilter(scope services.NotificationScope) (where []string, args []any, ok bool) {
	if scope.All {
		return nil, nil, true
	}

	var branches []string
	if len(scope.OwnTypes) > 0 {
		branches = append(branches, "(n.target_user_id = ? AND n.type IN ?)")
		args = append(args, scope.ViewerID.UUID(), typeNames(scope.OwnTypes))
	}
	if len(scope.BroadcastTypes) > 0 {
		branch := "(n.target_user_id IS NULL AND n.type IN ?"
		args = append(args, typeNames(scope.BroadcastTypes))
		if scope.LocationScoped {
			branch += " AND (n.location IS NULL OR n.location = '' OR n.location = ?)"
			args = append(args, scope.Location)
		}
		branches = append(branches, branch+")")
	}
	if len(branches) == 0 {
		return nil, nil, false
	}
	return []string{"(" + strings.Join(branches, " OR ") + ")"}, args, true
}

func typeNames(types []notification.Type) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

func scanNotification(row rowScanner) (*notification.Notification, error) {
	var (
		id        uuid.UUID
		typ       string
		target    uuid.NullUUID
		location  sql.NullString
		data      []byte
		read      bool
		readAt    sql.NullTime
		receiptAt sql.NullTime
		createdAt sql.NullTime
	)
	if err := row.Scan(&id, &typ, &target, &location, &data, &read, &readAt, &receiptAt, &createdAt); err != nil {
		return nil, err
	}
	if !target.Valid {
		read, readAt = receiptAt.Valid, receiptAt
	}

	nid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	var targetID *kernel.UUID
	if target.Valid {
		t, targetErr := kernel.UUIDFromBytes(target.UUID[:])
		if targetErr != nil {
			return nil, targetErr
		}
		targetID = &t
	}
	payload, err := notification.DecodePayload(notification.Type(typ), data)
	if err != nil {
		return nil, err
	}
	var readAtPtr *time.Time
	if readAt.Valid {
		at := readAt.Time.UTC()
		readAtPtr = &at
	}
	return notification.Restore(nid, payload, targetID, location.String, read, readAtPtr, createdAt.Time.UTC())
}
