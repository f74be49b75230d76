package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// InitiateCheckout handles POST /api/v1/orders/{orderId}/checkout.
func (s *Server) InitiateCheckout(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewInitiateCheckoutCommand(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	session, err := s.h.InitiateCheckout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, checkoutJSON{
		GatewayOrderID: session.GatewayOrderID,
		Amount:         session.Amount.String(),
		Currency:       session.Currency,
		KeyID:          session.KeyID,
	})
}

// VerifyPayment handles POST /api/v1/payments/callback. Any verification failure is
// answered with 400 and verified=false; nothing is changed in that case.
func (s *Server) VerifyPayment(c echo.Context) error {
	var req paymentCallbackRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rejected := func(err error) error {
		s.logger.WarnContext(c.Request().Context(), "payment callback rejected",
			"gateway_order_id", req.GatewayOrderID, "error", err)
		return c.JSON(http.StatusBadRequest, verificationResponse{Verified: false, Message: err.Error()})
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return rejected(err)
	}
	amount, err := kernel.MoneyFromString(req.Amount)
	if err != nil {
		return rejected(err)
	}
	callback, err := payment.NewCallback(req.GatewayOrderID, req.PaymentID, req.Signature, orderID, amount)
	if err != nil {
		return rejected(err)
	}
	cmd, err := commands.NewVerifyPaymentCommand(callback)
	if err != nil {
		return rejected(err)
	}

	err = s.h.VerifyPayment.Handle(c.Request().Context(), cmd)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, verificationResponse{Verified: true})
	case errors.Is(err, errs.ErrVerificationFailed), errs.IsValidation(err):
		return rejected(err)
	default:
		return s.fail(c, err)
	}
}
