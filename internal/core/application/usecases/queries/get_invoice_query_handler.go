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

type GetInvoiceQueryHandler struct {
	db *gorm.DB
}

func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db}
}

// Handle returns the invoice if it has not expired and the viewer may read it: admin
// copies are staff only, franchise copies are also readable by the ordering member.
func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}
	notFound := errs.NewObjectNotFoundError("invoice", query.InvoiceID().String())

	var (
		view               InvoiceView
		id, orderID, owner uuid.UUID
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT i.id, i.order_id, o.member_id, i.for_admin, i.content_type, i.content, i.created_at, i.expires_at
		FROM invoices i
		JOIN orders o ON o.id = i.order_id
		WHERE i.id = ? AND i.expires_at > ?
	`, query.InvoiceID().UUID(), query.Now()).Row().Scan(
		&id, &orderID, &owner, &view.ForAdmin, &view.ContentType, &view.Content, &view.CreatedAt, &view.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return InvoiceView{}, notFound
	}
	if err != nil {
		return InvoiceView{}, err
	}

	memberID, err := kernel.UUIDFromBytes(owner[:])
	if err != nil {
		return InvoiceView{}, err
	}
	viewer := query.Viewer()
	if view.ForAdmin && !viewer.Role.IsStaff() {
		return InvoiceView{}, notFound
	}
	if !canViewOrder(viewer, memberID) {
		return InvoiceView{}, notFound
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return InvoiceView{}, err
	}
	if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return InvoiceView{}, err
	}
	view.CreatedAt = view.CreatedAt.UTC()
	view.ExpiresAt = view.ExpiresAt.UTC()
	return view, nil
}
