package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
)

// InvoiceRepository stores rendered invoices until they expire.
type InvoiceRepository interface {
	Add(ctx context.Context, inv *invoice.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// DeleteExpired removes invoices whose expiry is not after now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
