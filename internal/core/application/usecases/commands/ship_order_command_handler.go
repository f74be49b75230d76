package commands

import (
	"context"

	"ordering/internal/core/domain/services"
)

// ShipOrderCommandHandler ships an order once every checklist entry is packed. The
// order row and the checklist entries stay locked until commit, so a concurrent toggle
// cannot un-pack an entry between the check and the transition.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{uowFactory: uowFactory}
}

func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
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

	checklist, err := uow.PackingRepository().GetChecklistForUpdate(ctx, o.ID())
	if err != nil {
		return err
	}

	from := o.Status()
	if err = o.Ship(cmd.Actor(), cmd.TrackingNumber(), checklist.AllPacked(len(o.Items()))); err != nil {
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
