package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// notifier returns a function that stores a freshly built notification, so call sites
// can pass a builder's (notification, error) result straight through.
func notifier(
	ctx context.Context,
	repo ports.NotificationRepository,
) func(*notification.Notification, error) error {
	return func(n *notification.Notification, err error) error {
		if err != nil {
			return err
		}
		return repo.Add(ctx, n)
	}
}

// cancelOrder cancels o and undoes everything the order holds: redeemed points are
// refunded, a consumed free-delivery gift is released and open checkouts are expired.
// It must run inside the caller's transaction.
func cancelOrder(
	ctx context.Context,
	uow OrderUoW,
	o *order.Order,
	actor kernel.Actor,
	override bool,
	reason string,
) error {
	if err := o.Cancel(actor, override, reason); err != nil {
		return err
	}
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if points := o.LoyaltyPointsUsed(); points > 0 {
		ledger := uow.LoyaltyRepository()
		account, err := ledger.GetOrCreateForUpdate(ctx, o.MemberID())
		if err != nil {
			return err
		}
		if _, err = account.RefundOrder(points, o.ID()); err != nil {
			return err
		}
		if err = ledger.Save(ctx, account); err != nil {
			return err
		}
	}

	if o.LoyaltyGiftClaimed() {
		ledger := uow.LoyaltyRepository()
		gift, err := ledger.FindGiftUsedOnOrder(ctx, o.ID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
		case err != nil:
			return err
		case gift.Release(o.ID()):
			if err = ledger.UpdateGift(ctx, gift); err != nil {
				return err
			}
		}
	}

	payments := uow.PaymentRepository()
	records, err := payments.ListPendingForOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	for _, record := range records {
		if !record.Expire() {
			continue
		}
		if err = payments.Update(ctx, record); err != nil {
			return err
		}
	}

	return notifier(ctx, uow.NotificationRepository())(services.OrderCancelledNotification(o, actor, reason))
}
