package commands

import (
	"context"
)

// CancelOrderCommandHandler cancels an order and releases what it holds: loyalty
// points are refunded, a free-delivery gift becomes usable again and open checkouts
// expire.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = cancelOrder(ctx, uow, o, cmd.Actor(), cmd.Override(), cmd.Reason()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
