package queries

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns order headers without lines, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if memberID := query.MemberID(); memberID != nil {
		where = append(where, "member_id = ?")
		args = append(args, memberID.UUID())
	}
	if query.Status() != order.Unknown {
		where = append(where, "status = ?")
		args = append(args, query.Status().String())
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + orderColumns + " FROM orders")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id LIMIT ? OFFSET ?")
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, view)
	}
	return orders, rows.Err()
}
