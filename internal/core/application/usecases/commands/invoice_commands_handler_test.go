package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoiceCommandHandler_Handle_FranchiseInvoice(t *testing.T) {
	ctx := t.Context()
	a := newActors(t)
	uow := NewMockUoW()
	uow.ExpectTx(true)

	o := newStoredOrder(t, a.memberID, storedOrderOpts{status: order.Paid, fee: money("50")})
	record, err := payment.RestoreRecord(kernel.NewUUID(), o.ID(), "order_Gw1", "pay_1", "sig",
		o.TotalAmount(), payment.Completed, time.Now())
	require.NoError(t, err)

	uow.Orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
	uow.Payments.On("GetCompletedForOrder", mock.Anything, o.ID()).Return(record, nil)
	uow.Invoices.On("Add", mock.Anything, mock.AnythingOfType("*invoice.Invoice")).Return(nil)

	renderer := &MockInvoiceRenderer{}
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(doc ports.InvoiceDocument) bool {
		return doc.Order == o && doc.Payment == record && !doc.ForAdmin
	})).Return("text/html; charset=utf-8", []byte("<html>invoice</html>"), nil)

	handler, err := commands.NewGenerateInvoiceCommandHandler(invoiceUoWFactory{&MockUoWFactory{uow: uow}}, renderer)
	require.NoError(t, err)
	cmd, err := commands.NewGenerateInvoiceCommand(kernel.NewUUID(), o.ID(), a.member, false)
	require.NoError(t, err)

	inv, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, invoice.FranchiseRetention, inv.ExpiresAt().Sub(inv.CreatedAt()))
	assert.Equal(t, "text/html; charset=utf-8", inv.ContentType())
	renderer.AssertExpectations(t)
	uow.AssertAll(t)
}

func TestGenerateInvoiceCommandHandler_Handle_UnpaidOrderConflicts(t *testing.T) {
	ctx := t.Context()
	a := newActors(t)
	uow := NewMockUoW()
	uow.ExpectTx(false)

	o := newStoredOrder(t, a.memberID, storedOrderOpts{status: order.PaymentPending, fee: money("50")})
	uow.Orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

	handler, err := commands.NewGenerateInvoiceCommandHandler(invoiceUoWFactory{&MockUoWFactory{uow: uow}}, &MockInvoiceRenderer{})
	require.NoError(t, err)
	cmd, err := commands.NewGenerateInvoiceCommand(kernel.NewUUID(), o.ID(), a.admin, true)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestNewGenerateInvoiceCommand_AdminInvoiceNeedsStaff(t *testing.T) {
	a := newActors(t)
	_, err := commands.NewGenerateInvoiceCommand(kernel.NewUUID(), kernel.NewUUID(), a.member, true)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestPurgeExpiredInvoicesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	uow.ExpectTx(true)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uow.Invoices.On("DeleteExpired", mock.Anything, now).Return(int64(4), nil)

	handler := commands.NewPurgeExpiredInvoicesCommandHandler(invoiceUoWFactory{&MockUoWFactory{uow: uow}})
	deleted, err := handler.Handle(ctx, commands.NewPurgeExpiredInvoicesCommand(now))
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
