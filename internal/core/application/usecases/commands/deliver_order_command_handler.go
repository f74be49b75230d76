package commands

import (
	"context"

	"ordering/internal/core/domain/services"
)

// DeliverOrderCommandHandler confirms delivery and credits loyalty points.
//
// Accrual happens in the same transaction as the transition: either the order is
// delivered and the points are credited, or neither happens.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccrualPolicy
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory, policy services.AccrualPolicy) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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
	if err = o.Deliver(cmd.Actor()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	notify := notifier(ctx, uow.NotificationRepository())
	if err = notify(services.OrderStatusNotification(o, from)); err != nil {
		return err
	}

	if points, ok := h.policy.Evaluate(o); ok {
		ledger := uow.LoyaltyRepository()
		account, err := ledger.GetOrCreateForUpdate(ctx, o.MemberID())
		if err != nil {
			return err
		}
		if _, err = account.Accrue(points, o.ID(), "Earned on order "+o.ID().String()); err != nil {
			return err
		}
		if err = ledger.Save(ctx, account); err != nil {
			return err
		}
		if err = notify(services.PointsEarnedNotification(o, account, points)); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
