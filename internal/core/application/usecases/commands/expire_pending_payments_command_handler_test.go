package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpirePendingPaymentsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	a := newActors(t)
	uow := NewMockUoW()
	uow.ExpectTx(true)

	stale := newStoredOrder(t, a.memberID, storedOrderOpts{status: order.PaymentPending, fee: money("0"), createdAgo: 50 * time.Hour})
	// Re-checked-out after the listing: no longer stale.
	refreshed := newStoredOrder(t, kernel.NewUUID(), storedOrderOpts{status: order.PaymentPending, fee: money("0")})
	record, err := payment.NewRecord(kernel.NewUUID(), stale.ID(), "order_Gw3", stale.TotalAmount())
	require.NoError(t, err)

	uow.Orders.On("ListStale", mock.Anything, order.PaymentPending, mock.Anything, commands.DefaultExpiryBatch).
		Return([]*order.Order{stale, refreshed}, nil)
	uow.Orders.On("Get", mock.Anything, stale.ID()).Return(stale, nil)
	uow.Orders.On("Get", mock.Anything, refreshed.ID()).Return(refreshed, nil)
	uow.Orders.On("Update", mock.Anything, stale).Return(nil)
	uow.Payments.On("ListPendingForOrder", mock.Anything, stale.ID()).Return([]*payment.Record{record}, nil)
	uow.Payments.On("Update", mock.Anything, record).Return(nil)
	uow.Notifications.On("Add", mock.Anything, mock.Anything).Return(nil)

	cmd, err := commands.NewExpirePendingPaymentsCommand(time.Now(), 48*time.Hour, 0)
	require.NoError(t, err)

	handler := commands.NewExpirePendingPaymentsCommandHandler(orderUoWFactory{&MockUoWFactory{uow: uow}})
	expired, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, expired)
	assert.Equal(t, order.Cancelled, stale.Status())
	assert.Equal(t, order.PaymentPending, refreshed.Status())
	assert.Equal(t, payment.Expired, record.Status())

	changes := stale.StatusChanges()
	require.NotEmpty(t, changes)
	assert.Equal(t, kernel.RoleSystem, changes[len(changes)-1].ActorRole)
	assert.Contains(t, changes[len(changes)-1].Note, "48h0m0s")
	uow.Orders.AssertNotCalled(t, "Update", mock.Anything, refreshed)
}

func TestNewExpirePendingPaymentsCommand_RejectsNonPositiveTTL(t *testing.T) {
	_, err := commands.NewExpirePendingPaymentsCommand(time.Now(), 0, 10)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
