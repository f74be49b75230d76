package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand renders an invoice for a paid order. Admin invoices are
// kept for a shorter period and only staff may request them.
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	orderID   kernel.UUID
	actor     kernel.Actor
	forAdmin  bool

	guard guard.ConstructorGuard
}

func NewGenerateInvoiceCommand(
	invoiceID, orderID kernel.UUID,
	actor kernel.Actor,
	forAdmin bool,
) (GenerateInvoiceCommand, error) {
	if err := errors.Join(invoiceID.Validate(), orderID.Validate(), actor.Validate()); err != nil {
		return GenerateInvoiceCommand{}, err
	}
	if forAdmin && !actor.Role.IsStaff() {
		return GenerateInvoiceCommand{}, errs.NewForbiddenError("generate admin invoice")
	}
	return GenerateInvoiceCommand{
		invoiceID: invoiceID,
		orderID:   orderID,
		actor:     actor,
		forAdmin:  forAdmin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

func (c GenerateInvoiceCommand) InvoiceID() kernel.UUID { return c.invoiceID }
func (c GenerateInvoiceCommand) OrderID() kernel.UUID   { return c.orderID }
func (c GenerateInvoiceCommand) Actor() kernel.Actor    { return c.actor }
func (c GenerateInvoiceCommand) ForAdmin() bool         { return c.forAdmin }
