package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
)

// GatewayOrder is a checkout opened at the payment gateway.
type GatewayOrder struct {
	ID       string
	Amount   kernel.Money
	Currency string
}

// PaymentGateway opens checkouts at the external payment provider. Calls are bounded
// by the context and never retried.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount kernel.Money, receipt string) (GatewayOrder, error)

	// KeyID is the public key handed to the client-side checkout SDK.
	KeyID() string
}

// InvoiceDocument is the data rendered on an invoice.
type InvoiceDocument struct {
	Order    *order.Order
	Payment  *payment.Record
	ForAdmin bool
	IssuedAt time.Time
}

// InvoiceRenderer turns an InvoiceDocument into a downloadable file.
type InvoiceRenderer interface {
	Render(ctx context.Context, doc InvoiceDocument) (contentType string, content []byte, err error)
}
