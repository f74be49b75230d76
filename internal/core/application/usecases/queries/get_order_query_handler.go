package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its lines in placement order and its audit trail
// oldest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().UUID()).Row()
	view, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}
	if !canViewOrder(query.Viewer(), view.MemberID) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if view.Items, err = loadOrderItems(ctx, h.db, view.ID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	history, err := h.history(ctx, view.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	return GetOrderQueryResponse{Order: view, History: history}, nil
}

func (h GetOrderQueryHandler) history(ctx context.Context, orderID kernel.UUID) ([]StatusChangeView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT from_status, to_status, actor_id, actor_role, note, created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.UUID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeView, 0)
	for rows.Next() {
		var (
			change  StatusChangeView
			from    sql.NullString
			note    sql.NullString
			actorID uuid.UUID
		)
		if err = rows.Scan(&from, &change.To, &actorID, &change.ActorRole, &note, &change.At); err != nil {
			return nil, err
		}
		if change.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		change.From = from.String
		change.Note = note.String
		change.At = change.At.UTC()
		history = append(history, change)
	}
	return history, rows.Err()
}
