package commands

import (
	"context"

	"ordering/internal/core/domain/services"
)

type StartPackingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewStartPackingCommandHandler(uowFactory OrderUoWFactory) StartPackingCommandHandler {
	return StartPackingCommandHandler{uowFactory: uowFactory}
}

func (h StartPackingCommandHandler) Handle(ctx context.Context, cmd StartPackingCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	from := o.Status()
	if err = o.StartPacking(cmd.Actor()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = notifier(ctx, uow.NotificationRepository())(services.OrderStatusNotification(o, from)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
