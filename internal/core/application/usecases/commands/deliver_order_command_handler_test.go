package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeliverOrderCommandHandler_Handle_CreditsPointsAtThreshold(t *testing.T) {
	ctx := t.Context()
	a := newActors(t)
	uow := NewMockUoW()
	uow.ExpectTx(true)

	// 2 x 2400 + 200 delivery = 5000 before discount.
	o := newStoredOrder(t, a.memberID, storedOrderOpts{status: order.Shipped, fee: money("200"), unitPrice: "2400", points: 100})
	account, err := loyalty.RestoreAccount(kernel.NewUUID(), a.memberID, 40, 0, 1)
	require.NoError(t, err)

	uow.Orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
	uow.Orders.On("Update", mock.Anything, o).Return(nil)
	uow.Loyalty.On("GetOrCreateForUpdate", mock.Anything, a.memberID).Return(account, nil)
	uow.Loyalty.On("Save", mock.Anything, account).Return(nil)
	uow.Notifications.On("Add", mock.Anything, mock.Anything).Return(nil)

	cmd, err := commands.NewDeliverOrderCommand(o.ID(), a.member)
	require.NoError(t, err)

	handler := commands.NewDeliverOrderCommandHandler(orderUoWFactory{&MockUoWFactory{uow: uow}}, services.NewAccrualPolicy())
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, 60, account.Balance())
	assert.Equal(t, 60, account.TotalEarned())
	pending := account.PendingTransactions()
	require.Len(t, pending, 1)
	assert.Equal(t, services.AccrualPoints, pending[0].Points)
	assert.Equal(t, loyalty.Accrual, pending[0].Kind)

	added := uow.Notifications.Added()
	require.Len(t, added, 2)
	assert.Equal(t, notification.LoyaltyPointsEarned, added[1].Type())
	uow.AssertAll(t)
}

func TestDeliverOrderCommandHandler_Handle_BelowThresholdEarnsNothing(t *testing.T) {
	ctx := t.Context()
	a := newActors(t)
	uow := NewMockUoW()
	uow.ExpectTx(true)

	o := newStoredOrder(t, a.memberID, storedOrderOpts{status: order.Shipped, fee: money("199.99"), unitPrice: "2400"})
	uow.Orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
	uow.Orders.On("Update", mock.Anything, o).Return(nil)
	uow.Notifications.On("Add", mock.Anything, mock.Anything).Return(nil)

	cmd, err := commands.NewDeliverOrderCommand(o.ID(), a.admin)
	require.NoError(t, err)

	handler := commands.NewDeliverOrderCommandHandler(orderUoWFactory{&MockUoWFactory{uow: uow}}, services.NewAccrualPolicy())
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, order.Delivered, o.Status())
	uow.Loyalty.AssertNotCalled(t, "GetOrCreateForUpdate", mock.Anything, mock.Anything)
	assert.Len(t, uow.Notifications.Added(), 1)
}
