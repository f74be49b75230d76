package payment

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Callback is the gateway's report of a completed checkout.
type Callback struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
	OrderID        kernel.UUID
	Amount         kernel.Money
}

// NewCallback trims and checks that every field is present.
func NewCallback(gatewayOrderID, paymentID, signature string, orderID kernel.UUID, amount kernel.Money) (Callback, error) {
	c := Callback{
		GatewayOrderID: strings.TrimSpace(gatewayOrderID),
		PaymentID:      strings.TrimSpace(paymentID),
		Signature:      strings.TrimSpace(signature),
		OrderID:        orderID,
		Amount:         amount,
	}

	var errList []error
	if c.GatewayOrderID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("gatewayOrderID"))
	}
	if c.PaymentID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("paymentID"))
	}
	if c.Signature == "" {
		errList = append(errList, errs.NewValueIsRequiredError("signature"))
	}
	errList = append(errList, orderID.Validate(), amount.Validate())
	if err := errors.Join(errList...); err != nil {
		return Callback{}, err
	}
	return c, nil
}
