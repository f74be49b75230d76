package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
)

// PaymentRepository stores gateway payment records.
type PaymentRepository interface {
	Add(ctx context.Context, record *payment.Record) error
	Update(ctx context.Context, record *payment.Record) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Record, error)
	ListPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Record, error)
	GetCompletedForOrder(ctx context.Context, orderID kernel.UUID) (*payment.Record, error)
}
