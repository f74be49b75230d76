package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// GenerateInvoiceCommandHandler renders and stores an invoice.
//
// Returns:
//   - ForbiddenError if a member asks for another member's order
//   - ConflictError if the order is not paid yet or has no completed payment
type GenerateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	renderer   ports.InvoiceRenderer
}

func NewGenerateInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	renderer ports.InvoiceRenderer,
) (GenerateInvoiceCommandHandler, error) {
	if renderer == nil {
		return GenerateInvoiceCommandHandler{}, errors.New("invoice renderer is required")
	}
	return GenerateInvoiceCommandHandler{uowFactory: uowFactory, renderer: renderer}, nil
}

func (h GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if actor := cmd.Actor(); actor.Role == kernel.RoleFranchise && !actor.Owns(o.MemberID()) {
		return nil, errs.NewForbiddenError("generate invoice for order " + o.ID().String())
	}
	if !o.Status().IsFinalized() {
		return nil, errs.NewConflictErrorWithCause("generate invoice for order "+o.ID().String(),
			fmt.Errorf("order is %s", o.Status()))
	}

	record, err := uow.PaymentRepository().GetCompletedForOrder(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewConflictErrorWithCause("generate invoice for order "+o.ID().String(),
			errors.New("no completed payment"))
	}
	if err != nil {
		return nil, err
	}

	issuedAt := time.Now().UTC()
	contentType, content, err := h.renderer.Render(ctx, ports.InvoiceDocument{
		Order:    o,
		Payment:  record,
		ForAdmin: cmd.ForAdmin(),
		IssuedAt: issuedAt,
	})
	if err != nil {
		return nil, err
	}

	inv, err := invoice.NewInvoice(cmd.InvoiceID(), o.ID(), cmd.ForAdmin(), contentType, content, issuedAt)
	if err != nil {
		return nil, err
	}
	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}
