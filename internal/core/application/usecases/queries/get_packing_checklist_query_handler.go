package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPackingChecklistQueryHandler struct {
	db *gorm.DB
}

func NewGetPackingChecklistQueryHandler(db *gorm.DB) GetPackingChecklistQueryHandler {
	return GetPackingChecklistQueryHandler{db: db}
}

func (h GetPackingChecklistQueryHandler) Handle(ctx context.Context, query GetPackingChecklistQuery) (PackingChecklistView, error) {
	if err := query.Validate(); err != nil {
		return PackingChecklistView{}, err
	}
	db := h.db.WithContext(ctx)

	var (
		memberID uuid.UUID
		status   string
		lines    int
	)
	err := db.Raw(`
		SELECT o.member_id, o.status, (SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().UUID()).Row().Scan(&memberID, &status, &lines)
	if errors.Is(err, sql.ErrNoRows) {
		return PackingChecklistView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return PackingChecklistView{}, err
	}
	owner, err := kernel.UUIDFromBytes(memberID[:])
	if err != nil {
		return PackingChecklistView{}, err
	}
	if !canViewOrder(query.Viewer(), owner) {
		return PackingChecklistView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	view := PackingChecklistView{OrderID: query.OrderID(), Entries: []PackingEntryView{}}
	if view.OrderStatus, err = order.ParseStatus(status); err != nil {
		return PackingChecklistView{}, err
	}

	rows, err := db.Raw(`
		SELECT id, item_id, item_name, quantity, packed, packed_by, packed_at
		FROM packing_entries
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().UUID()).Rows()
	if err != nil {
		return PackingChecklistView{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry      PackingEntryView
			id, itemID uuid.UUID
			packedBy   uuid.NullUUID
			packedAt   sql.NullTime
		)
		if err = rows.Scan(&id, &itemID, &entry.ItemName, &entry.Quantity, &entry.Packed, &packedBy, &packedAt); err != nil {
			return PackingChecklistView{}, err
		}
		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return PackingChecklistView{}, err
		}
		if entry.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return PackingChecklistView{}, err
		}
		if entry.PackedBy, err = optionalUUID(packedBy); err != nil {
			return PackingChecklistView{}, err
		}
		if packedAt.Valid {
			at := packedAt.Time.UTC()
			entry.PackedAt = &at
		}
		if entry.Packed {
			view.Packed++
		}
		view.Entries = append(view.Entries, entry)
	}
	if err = rows.Err(); err != nil {
		return PackingChecklistView{}, err
	}

	view.Total = len(view.Entries)
	view.AllPacked = view.Total > 0 && view.Total == lines && view.Packed == view.Total
	return view, nil
}
