package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
)

// GetInvoiceQuery downloads a stored invoice. Expired invoices are not found even
// before the purge job removes them.
type GetInvoiceQuery struct {
	invoiceID kernel.UUID
	viewer    kernel.Actor
	now       time.Time

	guard guard.ConstructorGuard
}

func NewGetInvoiceQuery(invoiceID kernel.UUID, viewer kernel.Actor, now time.Time) (GetInvoiceQuery, error) {
	if err := errors.Join(invoiceID.Validate(), viewer.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{invoiceID: invoiceID, viewer: viewer, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

func (q GetInvoiceQuery) InvoiceID() kernel.UUID { return q.invoiceID }
func (q GetInvoiceQuery) Viewer() kernel.Actor   { return q.viewer }
func (q GetInvoiceQuery) Now() time.Time         { return q.now }

type InvoiceView struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	ForAdmin    bool
	ContentType string
	Content     []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
