package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
)

// CheckoutSession is what the client-side checkout SDK needs to collect the payment.
type CheckoutSession struct {
	OrderID        kernel.UUID
	GatewayOrderID string
	Amount         kernel.Money
	Currency       string
	KeyID          string
}

// InitiateCheckoutCommandHandler opens a checkout at the payment gateway.
//
// The gateway call happens outside of the database transaction so a slow gateway never
// holds row locks. The order is re-read and re-checked inside the transaction before it
// moves to payment_pending together with a pending PaymentRecord.
type InitiateCheckoutCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

func NewInitiateCheckoutCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
) (InitiateCheckoutCommandHandler, error) {
	if gateway == nil {
		return InitiateCheckoutCommandHandler{}, fmt.Errorf("payment gateway is required")
	}
	return InitiateCheckoutCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}, nil
}

func (h InitiateCheckoutCommandHandler) Handle(ctx context.Context, cmd InitiateCheckoutCommand) (CheckoutSession, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutSession{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return CheckoutSession{}, err
	}
	if err = o.ValidateBeginPayment(cmd.Actor()); err != nil {
		return CheckoutSession{}, err
	}

	gatewayOrder, err := h.gateway.CreateOrder(ctx, o.TotalAmount(), o.ID().String())
	if err != nil {
		return CheckoutSession{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return CheckoutSession{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err = orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return CheckoutSession{}, err
	}
	if err = o.BeginPayment(cmd.Actor()); err != nil {
		return CheckoutSession{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return CheckoutSession{}, err
	}

	record, err := payment.NewRecord(kernel.NewUUID(), o.ID(), gatewayOrder.ID, o.TotalAmount())
	if err != nil {
		return CheckoutSession{}, err
	}
	if err = uow.PaymentRepository().Add(ctx, record); err != nil {
		return CheckoutSession{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutSession{}, err
	}

	return CheckoutSession{
		OrderID:        o.ID(),
		GatewayOrderID: gatewayOrder.ID,
		Amount:         o.TotalAmount(),
		Currency:       gatewayOrder.Currency,
		KeyID:          h.gateway.KeyID(),
	}, nil
}
