package commands

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// VerifyPaymentCommandHandler completes a checkout reported by the payment gateway.
//
// The signature is checked before anything is read: a forged callback fails with a
// VerificationFailedError and never reaches the database. A verified callback must also
// match the pending PaymentRecord it names (order and amount). Replaying a callback that
// already completed the record is a no-op.
type VerifyPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	verifier   services.SignatureVerifier
}

func NewVerifyPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	verifier services.SignatureVerifier,
) VerifyPaymentCommandHandler {
	return VerifyPaymentCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
	}
}

func (h VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	callback := cmd.Callback()
	if err := h.verifier.Verify(callback); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payments := uow.PaymentRepository()
	record, err := payments.GetByGatewayOrderID(ctx, callback.GatewayOrderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewVerificationFailedErrorWithCause("payment callback",
			fmt.Errorf("unknown gateway order %q", callback.GatewayOrderID))
	}
	if err != nil {
		return err
	}

	if !record.OrderID().IsEqual(callback.OrderID) || !record.Amount().Equal(callback.Amount) {
		return errs.NewVerificationFailedErrorWithCause("payment callback",
			errors.New("order or amount does not match the checkout"))
	}
	if record.IsCompletedWith(callback.PaymentID) {
		return nil
	}

	if err = record.Complete(callback.PaymentID, callback.Signature); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, record.OrderID())
	if err != nil {
		return err
	}
	from := o.Status()
	if err = o.MarkPaid(kernel.SystemActor(), callback.PaymentID); err != nil {
		return err
	}

	if err = payments.Update(ctx, record); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	notify := notifier(ctx, uow.NotificationRepository())
	if err = notify(services.PaymentReceivedNotification(o, record)); err != nil {
		return err
	}
	if err = notify(services.OrderStatusNotification(o, from)); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
