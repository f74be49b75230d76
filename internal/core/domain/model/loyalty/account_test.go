package loyalty_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, earned, redeemed int) *loyalty.Account {
	t.Helper()
	a, err := loyalty.RestoreAccount(kernel.NewUUID(), kernel.NewUUID(), earned, redeemed, 1)
	require.NoError(t, err)
	return a
}

func assertLedgerIdentity(t *testing.T, a *loyalty.Account) {
	t.Helper()
	assert.Equal(t, a.TotalEarned()-a.TotalRedeemed(), a.Balance())
	assert.GreaterOrEqual(t, a.Balance(), 0)
}

func TestAccount_ClaimGift(t *testing.T) {
	t.Run("debits_and_creates_gift_atomically", func(t *testing.T) {
		a := newAccount(t, 520, 0)

		gift, tx, err := a.ClaimGift(loyalty.TeaCups)

		require.NoError(t, err)
		assert.Equal(t, 20, a.Balance())
		assert.Equal(t, 500, a.TotalRedeemed())
		assert.Equal(t, -500, tx.Points)
		assert.Equal(t, loyalty.Redemption, tx.Kind)
		assert.Equal(t, "Claimed gift: tea cups", tx.Description)
		assert.Nil(t, tx.OrderID)
		assert.Equal(t, loyalty.GiftCost, gift.PointsUsed())
		assert.Len(t, a.PendingTransactions(), 1)
		assert.Len(t, a.PendingGifts(), 1)
		assertLedgerIdentity(t, a)
	})

	t.Run("insufficient_balance_changes_nothing", func(t *testing.T) {
		a := newAccount(t, 499, 0)

		_, _, err := a.ClaimGift(loyalty.FreeDelivery)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 499, a.Balance())
		assert.Empty(t, a.PendingTransactions())
		assert.Empty(t, a.PendingGifts())
	})

	t.Run("unknown_gift_type", func(t *testing.T) {
		a := newAccount(t, 1000, 0)

		_, _, err := a.ClaimGift(loyalty.UnknownGift)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAccount_OrderDiscountAndRefund(t *testing.T) {
	a := newAccount(t, 300, 0)
	orderID := kernel.NewUUID()

	tx, err := a.RedeemForOrder(200, orderID)
	require.NoError(t, err)
	assert.Equal(t, -200, tx.Points)
	assert.Equal(t, 100, a.Balance())

	_, err = a.RedeemForOrder(101, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrConflict)

	tx, err = a.RefundOrder(200, orderID)
	require.NoError(t, err)
	assert.Equal(t, 200, tx.Points)
	assert.Equal(t, loyalty.Refund, tx.Kind)
	assert.Equal(t, 300, a.Balance())
	assert.Equal(t, 0, a.TotalRedeemed())

	_, err = a.RefundOrder(1, orderID)
	require.ErrorIs(t, err, errs.ErrConflict)
	assertLedgerIdentity(t, a)
}

func TestAccount_Accrue(t *testing.T) {
	a, err := loyalty.NewAccount(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	orderID := kernel.NewUUID()

	tx, err := a.Accrue(20, orderID, "Delivered order")

	require.NoError(t, err)
	assert.Equal(t, 20, tx.Points)
	assert.True(t, tx.OrderID.IsEqual(orderID))
	assert.Equal(t, 20, a.TotalEarned())

	_, err = a.Accrue(0, orderID, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	a.MarkPersisted(2)
	assert.Empty(t, a.PendingTransactions())
	assert.Equal(t, 2, a.Version())
}

func TestRestoreAccount_RejectsNegativeBalance(t *testing.T) {
	_, err := loyalty.RestoreAccount(kernel.NewUUID(), kernel.NewUUID(), 100, 101, 0)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGift_ApplyTo(t *testing.T) {
	orderID := kernel.NewUUID()
	gift, err := loyalty.RestoreGift(kernel.NewUUID(), kernel.NewUUID(), loyalty.FreeDelivery, 500, nil, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, gift.ApplyTo(orderID))
	require.ErrorIs(t, gift.ApplyTo(kernel.NewUUID()), errs.ErrConflict)

	assert.False(t, gift.Release(kernel.NewUUID()))
	assert.True(t, gift.Release(orderID))
	assert.Nil(t, gift.UsedOnOrderID())

	cups, err := loyalty.RestoreGift(kernel.NewUUID(), kernel.NewUUID(), loyalty.TeaCups, 500, nil, gift.CreatedAt())
	require.NoError(t, err)
	require.ErrorIs(t, cups.ApplyTo(orderID), errs.ErrValueIsInvalid)
}

func TestParseGiftType(t *testing.T) {
	g, err := loyalty.ParseGiftType("free_delivery")
	require.NoError(t, err)
	assert.Equal(t, loyalty.FreeDelivery, g)

	_, err = loyalty.ParseGiftType("mug")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
