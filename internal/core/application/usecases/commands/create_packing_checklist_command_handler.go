package commands

import (
	"context"

	"ordering/internal/core/domain/model/packing"
)

// CreatePackingChecklistCommandHandler relies on storage uniqueness of (order, item):
// entries that already exist are skipped, never duplicated.
type CreatePackingChecklistCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreatePackingChecklistCommandHandler(uowFactory OrderUoWFactory) CreatePackingChecklistCommandHandler {
	return CreatePackingChecklistCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of entries created by this call.
func (h CreatePackingChecklistCommandHandler) Handle(ctx context.Context, cmd CreatePackingChecklistCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}

	entries, err := packing.EntriesFor(o)
	if err != nil {
		return 0, err
	}
	created, err := uow.PackingRepository().AddEntries(ctx, entries)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return created, nil
}
