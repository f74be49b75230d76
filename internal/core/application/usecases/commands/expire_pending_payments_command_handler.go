package commands

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ExpirePendingPaymentsCommandHandler cancels stale checkouts on behalf of the system.
// Each order is cancelled in its own transaction; a failing order does not stop the
// batch and its error is returned joined with the others.
type ExpirePendingPaymentsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpirePendingPaymentsCommandHandler(uowFactory OrderUoWFactory) ExpirePendingPaymentsCommandHandler {
	return ExpirePendingPaymentsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of cancelled orders.
func (h ExpirePendingPaymentsCommandHandler) Handle(ctx context.Context, cmd ExpirePendingPaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stale, err := h.uowFactory.Create().OrderRepository().ListStale(ctx, order.PaymentPending, cmd.Cutoff(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	var (
		expired int
		errList []error
	)
	for _, candidate := range stale {
		if err = ctx.Err(); err != nil {
			errList = append(errList, err)
			break
		}
		done, err := h.expire(ctx, candidate.ID(), cmd)
		if err != nil {
			errList = append(errList, fmt.Errorf("expire order %s: %w", candidate.ID(), err))
			continue
		}
		if done {
			expired++
		}
	}
	return expired, errors.Join(errList...)
}

func (h ExpirePendingPaymentsCommandHandler) expire(ctx context.Context, id kernel.UUID, cmd ExpirePendingPaymentsCommand) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		return false, err
	}
	// Paid or re-checked-out in the meantime.
	if o.Status() != order.PaymentPending || o.UpdatedAt().After(cmd.Cutoff()) {
		return false, nil
	}

	reason := fmt.Sprintf("payment not completed within %s", cmd.TTL())
	if err = cancelOrder(ctx, uow, o, kernel.SystemActor(), false, reason); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
