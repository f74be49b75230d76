package commands

import (
	"errors"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/guard"
)

var ErrVerifyPaymentCommandIsNotConstructed = errors.New(
	"VerifyPaymentCommand must be created via NewVerifyPaymentCommand constructor",
)

// VerifyPaymentCommand carries a payment gateway callback.
type VerifyPaymentCommand struct { //nolint:recvcheck //using for validation
	callback payment.Callback

	guard guard.ConstructorGuard
}

// NewVerifyPaymentCommand expects a callback built with payment.NewCallback.
func NewVerifyPaymentCommand(callback payment.Callback) (VerifyPaymentCommand, error) {
	if err := callback.OrderID.Validate(); err != nil {
		return VerifyPaymentCommand{}, err
	}
	return VerifyPaymentCommand{
		callback: callback,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPaymentCommandIsNotConstructed)
}

func (c VerifyPaymentCommand) Callback() payment.Callback { return c.callback }
