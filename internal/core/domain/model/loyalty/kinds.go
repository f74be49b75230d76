package loyalty

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// GiftType is a reward that can be claimed for GiftCost points.
type GiftType int

const (
	UnknownGift GiftType = iota
	// FreeDelivery zeroes the delivery fee of one later order.
	FreeDelivery
	TeaCups
)

var giftTypeNames = map[GiftType]string{
	FreeDelivery: "free_delivery",
	TeaCups:      "tea_cups",
}

func ParseGiftType(s string) (GiftType, error) {
	for g, name := range giftTypeNames {
		if name == s {
			return g, nil
		}
	}
	return UnknownGift, errs.NewValueIsInvalidErrorWithCause("giftType", fmt.Errorf("%q is not a gift type", s))
}

func (g GiftType) String() string {
	if name, ok := giftTypeNames[g]; ok {
		return name
	}
	return "unknown"
}

func (g GiftType) Validate() error {
	if _, ok := giftTypeNames[g]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("giftType", fmt.Errorf("%d is not a gift type", g))
	}
	return nil
}

// Label is the human-readable gift name used in ledger descriptions.
func (g GiftType) Label() string {
	switch g {
	case FreeDelivery:
		return "free delivery"
	case TeaCups:
		return "tea cups"
	default:
		return "unknown gift"
	}
}

// TransactionKind classifies ledger rows. Each (order, kind) pair appears at most once.
type TransactionKind int

const (
	UnknownKind TransactionKind = iota
	// Accrual credits points for a delivered order.
	Accrual
	// Redemption debits points for a claimed gift.
	Redemption
	// OrderDiscount debits points spent as a discount on an order.
	OrderDiscount
	// Refund credits back an OrderDiscount of a cancelled order.
	Refund
)

var kindNames = map[TransactionKind]string{
	Accrual:       "accrual",
	Redemption:    "redemption",
	OrderDiscount: "order_discount",
	Refund:        "refund",
}

func ParseTransactionKind(s string) (TransactionKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a transaction kind", s))
}

func (k TransactionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsCredit reports whether rows of this kind add points.
func (k TransactionKind) IsCredit() bool {
	return k == Accrual || k == Refund
}
