package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/packing"
)

// PackingRepository stores checklist entries. Storage guarantees one entry per
// (order, item).
type PackingRepository interface {
	// AddEntries inserts the entries, silently skipping any (order, item) pair that
	// already exists, and returns how many rows were created. Concurrent callers for the
	// same order together create each entry exactly once.
	AddEntries(ctx context.Context, entries []*packing.Entry) (int64, error)

	// GetChecklistForUpdate returns every entry of the order (possibly none) and locks
	// the entries for the rest of the transaction. Shipping and toggling serialize on
	// these locks.
	GetChecklistForUpdate(ctx context.Context, orderID kernel.UUID) (*packing.Checklist, error)

	// UpdateEntry writes the packed state of an entry.
	UpdateEntry(ctx context.Context, entry *packing.Entry) error
}
