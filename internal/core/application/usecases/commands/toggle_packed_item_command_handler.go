package commands

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// PackingProgress reports the checklist state after a toggle.
type PackingProgress struct {
	Packed    int
	Total     int
	AllPacked bool
}

// TogglePackedItemCommandHandler updates one checklist entry.
//
// Packing is only possible for paid and packing orders; the first toggle on a paid
// order starts packing. Staff are notified once, when the last entry becomes packed.
type TogglePackedItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTogglePackedItemCommandHandler(uowFactory OrderUoWFactory) TogglePackedItemCommandHandler {
	return TogglePackedItemCommandHandler{uowFactory: uowFactory}
}

func (h TogglePackedItemCommandHandler) Handle(ctx context.Context, cmd TogglePackedItemCommand) (PackingProgress, error) {
	if err := cmd.Validate(); err != nil {
		return PackingProgress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PackingProgress{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return PackingProgress{}, err
	}

	notify := notifier(ctx, uow.NotificationRepository())
	switch o.Status() {
	case order.Packing:
	case order.Paid:
		if err = o.StartPacking(cmd.Actor()); err != nil {
			return PackingProgress{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return PackingProgress{}, err
		}
		if err = notify(services.OrderStatusNotification(o, order.Paid)); err != nil {
			return PackingProgress{}, err
		}
	default:
		return PackingProgress{}, errs.NewConflictErrorWithCause("toggle packing entry",
			fmt.Errorf("order is %s", o.Status()))
	}

	packingRepo := uow.PackingRepository()
	checklist, err := packingRepo.GetChecklistForUpdate(ctx, o.ID())
	if err != nil {
		return PackingProgress{}, err
	}
	wasPacked := checklist.AllPacked(len(o.Items()))

	entry, err := checklist.Entry(cmd.ItemID())
	if err != nil {
		return PackingProgress{}, err
	}
	if err = entry.Toggle(cmd.Actor(), cmd.Packed(), time.Now()); err != nil {
		return PackingProgress{}, err
	}
	if err = packingRepo.UpdateEntry(ctx, entry); err != nil {
		return PackingProgress{}, err
	}

	progress := PackingProgress{AllPacked: checklist.AllPacked(len(o.Items()))}
	progress.Packed, progress.Total = checklist.Progress()
	if progress.AllPacked && !wasPacked {
		if err = notify(services.PackingCompletedNotification(o)); err != nil {
			return PackingProgress{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return PackingProgress{}, err
	}
	return progress, nil
}
