package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates, their lines
// and their status history.
type OrderRepository interface {
	// Add persists a new order with its lines and pending status history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order if its stored version still matches the aggregate's.
	// A concurrent writer makes Update fail with a VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines and locks the order row for the rest of the
	// transaction.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountOutstanding counts the member's orders in confirmed or payment_pending,
	// ignoring excludeID.
	CountOutstanding(ctx context.Context, memberID kernel.UUID, excludeID *kernel.UUID) (int64, error)

	// ListStale returns up to limit orders in status whose last update is before cutoff.
	ListStale(ctx context.Context, status order.Status, cutoff time.Time, limit int) ([]*order.Order, error)
}
