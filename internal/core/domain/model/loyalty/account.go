package loyalty

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

// Account is the loyalty ledger of one member.
//
// Invariants:
//   - balance = totalEarned − totalRedeemed, and balance ≥ 0
//   - every balance change appends exactly one Transaction
//   - a gift claim debits GiftCost and creates the Gift in the same mutation
//
// Mutations are collected as pending transactions and gifts that the repository writes
// together with the new balance. The version token detects concurrent writers.
type Account struct {
	id            kernel.UUID
	memberID      kernel.UUID
	totalEarned   int
	totalRedeemed int
	version       int

	pendingTransactions []*Transaction
	pendingGifts        []*Gift

	isConstructed bool
}

// NewAccount opens an empty ledger. Accounts are created lazily on first use.
func NewAccount(id, memberID kernel.UUID) (*Account, error) {
	return RestoreAccount(id, memberID, 0, 0, 0)
}

// RestoreAccount rebuilds a ledger from stored totals.
func RestoreAccount(id, memberID kernel.UUID, totalEarned, totalRedeemed, version int) (*Account, error) {
	if err := errors.Join(id.Validate(), memberID.Validate()); err != nil {
		return nil, err
	}
	if totalEarned < 0 || totalRedeemed < 0 || totalRedeemed > totalEarned {
		return nil, errs.NewValueIsInvalidErrorWithCause("loyaltyAccount",
			fmt.Errorf("earned %d and redeemed %d give a negative balance", totalEarned, totalRedeemed))
	}

	return &Account{
		id:            id,
		memberID:      memberID,
		totalEarned:   totalEarned,
		totalRedeemed: totalRedeemed,
		version:       version,
		isConstructed: true,
	}, nil
}

func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

func (a *Account) ID() kernel.UUID       { return a.id }
func (a *Account) MemberID() kernel.UUID { return a.memberID }
func (a *Account) TotalEarned() int      { return a.totalEarned }
func (a *Account) TotalRedeemed() int    { return a.totalRedeemed }
func (a *Account) Version() int          { return a.version }

func (a *Account) Balance() int {
	return a.totalEarned - a.totalRedeemed
}

// Accrue credits points earned by a delivered order.
func (a *Account) Accrue(points int, orderID kernel.UUID, description string) (*Transaction, error) {
	return a.apply(points, Accrual, description, &orderID)
}

// RedeemForOrder debits points spent as an order discount.
func (a *Account) RedeemForOrder(points int, orderID kernel.UUID) (*Transaction, error) {
	return a.apply(points, OrderDiscount, "Discount on order "+orderID.String(), &orderID)
}

// RefundOrder returns the discount points of a cancelled order.
func (a *Account) RefundOrder(points int, orderID kernel.UUID) (*Transaction, error) {
	return a.apply(points, Refund, "Refund for cancelled order "+orderID.String(), &orderID)
}

// ClaimGift debits GiftCost points and creates the gift. Nothing changes when the
// balance is insufficient.
func (a *Account) ClaimGift(giftType GiftType) (*Gift, *Transaction, error) {
	if err := giftType.Validate(); err != nil {
		return nil, nil, err
	}

	tx, err := a.apply(GiftCost, Redemption, "Claimed gift: "+giftType.Label(), nil)
	if err != nil {
		return nil, nil, err
	}

	gift := &Gift{
		id:            kernel.NewUUID(),
		accountID:     a.id,
		giftType:      giftType,
		pointsUsed:    GiftCost,
		createdAt:     tx.CreatedAt,
		isConstructed: true,
	}
	a.pendingGifts = append(a.pendingGifts, gift)
	return gift, tx, nil
}

// PendingTransactions returns ledger rows not yet persisted.
func (a *Account) PendingTransactions() []*Transaction {
	return append([]*Transaction(nil), a.pendingTransactions...)
}

// PendingGifts returns gifts not yet persisted.
func (a *Account) PendingGifts() []*Gift {
	return append([]*Gift(nil), a.pendingGifts...)
}

// MarkPersisted is called by the repository after the account row, transactions and
// gifts were written.
func (a *Account) MarkPersisted(version int) {
	a.pendingTransactions = nil
	a.pendingGifts = nil
	a.version = version
}

func (a *Account) apply(points int, kind TransactionKind, description string, orderID *kernel.UUID) (*Transaction, error) {
	if points <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("points", points, 1, "unbounded")
	}

	signed := points
	switch kind {
	case Accrual:
		a.totalEarned += points
	case Refund:
		if points > a.totalRedeemed {
			return nil, errs.NewConflictErrorWithCause("loyalty refund",
				fmt.Errorf("refund of %d exceeds %d redeemed points", points, a.totalRedeemed))
		}
		a.totalRedeemed -= points
	default:
		if points > a.Balance() {
			return nil, errs.NewConflictErrorWithCause("loyalty balance",
				fmt.Errorf("balance %d is below %d", a.Balance(), points))
		}
		a.totalRedeemed += points
		signed = -points
	}

	tx := &Transaction{
		ID:          kernel.NewUUID(),
		AccountID:   a.id,
		Points:      signed,
		Kind:        kind,
		Description: description,
		OrderID:     orderID,
		CreatedAt:   time.Now().UTC(),
	}
	a.pendingTransactions = append(a.pendingTransactions, tx)
	return tx, nil
}
