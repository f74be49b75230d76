package commands

import (
	"context"
)

type PurgeExpiredInvoicesCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

func NewPurgeExpiredInvoicesCommandHandler(uowFactory InvoiceUoWFactory) PurgeExpiredInvoicesCommandHandler {
	return PurgeExpiredInvoicesCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of deleted invoices.
func (h PurgeExpiredInvoicesCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredInvoicesCommand) (int64, error) {
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

	deleted, err := uow.InvoiceRepository().DeleteExpired(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}
