package commands

import (
	"context"

	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// ConfirmOrderCommandHandler lets staff price delivery and confirm a pending order.
// A member holds at most one confirmed or payment_pending order, so confirming a second
// one fails with a ConflictError.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	if err = o.Confirm(cmd.Actor(), cmd.DeliveryFee(), cmd.Notes()); err != nil {
		return err
	}

	id := o.ID()
	outstanding, err := orderRepo.CountOutstanding(ctx, o.MemberID(), &id)
	if err != nil {
		return err
	}
	if outstanding > 0 {
		return errs.NewConflictErrorWithCause("confirm order "+id.String(), ErrOutstandingOrderExists)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = notifier(ctx, uow.NotificationRepository())(services.OrderConfirmedNotification(o)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
