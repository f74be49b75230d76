package loyalty

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Transaction is an append-only ledger row. Points are positive for credits and
// negative for debits.
type Transaction struct {
	ID          kernel.UUID
	AccountID   kernel.UUID
	Points      int
	Kind        TransactionKind
	Description string
	OrderID     *kernel.UUID
	CreatedAt   time.Time
}
