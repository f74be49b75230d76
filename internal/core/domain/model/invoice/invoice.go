// Package invoice holds rendered invoice documents and their retention rules.
package invoice

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

const (
	// FranchiseRetention is how long an invoice generated for a franchisee stays retrievable.
	FranchiseRetention = 30 * 24 * time.Hour
	// AdminRetention applies to invoices generated for the admin back office.
	AdminRetention = 16 * 24 * time.Hour
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

// Invoice is a rendered document for a finalized order.
type Invoice struct {
	id            kernel.UUID
	orderID       kernel.UUID
	forAdmin      bool
	contentType   string
	content       []byte
	createdAt     time.Time
	expiresAt     time.Time
	isConstructed bool
}

// NewInvoice stamps the document with createdAt and the audience's retention.
func NewInvoice(id, orderID kernel.UUID, forAdmin bool, contentType string, content []byte, createdAt time.Time) (*Invoice, error) {
	retention := FranchiseRetention
	if forAdmin {
		retention = AdminRetention
	}
	return RestoreInvoice(id, orderID, forAdmin, contentType, content, createdAt, createdAt.Add(retention))
}

func RestoreInvoice(
	id, orderID kernel.UUID,
	forAdmin bool,
	contentType string,
	content []byte,
	createdAt, expiresAt time.Time,
) (*Invoice, error) {
	var contentErr error
	if len(content) == 0 {
		contentErr = errs.NewValueIsRequiredError("content")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), contentErr); err != nil {
		return nil, err
	}

	return &Invoice{
		id:            id,
		orderID:       orderID,
		forAdmin:      forAdmin,
		contentType:   contentType,
		content:       content,
		createdAt:     createdAt.UTC(),
		expiresAt:     expiresAt.UTC(),
		isConstructed: true,
	}, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID      { return i.id }
func (i *Invoice) OrderID() kernel.UUID { return i.orderID }
func (i *Invoice) ForAdmin() bool       { return i.forAdmin }
func (i *Invoice) ContentType() string  { return i.contentType }
func (i *Invoice) Content() []byte      { return i.content }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) ExpiresAt() time.Time { return i.expiresAt }

func (i *Invoice) IsExpired(now time.Time) bool {
	return !now.Before(i.expiresAt)
}
