package loyalty

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// GiftCost is the number of points debited for every gift.
const GiftCost = 500

var ErrGiftIsNotConstructed = errors.New("Gift must be created via Account.ClaimGift or RestoreGift")

// Gift is a claimed reward. Free-delivery gifts are consumed by one order.
type Gift struct {
	id            kernel.UUID
	accountID     kernel.UUID
	giftType      GiftType
	pointsUsed    int
	usedOnOrderID *kernel.UUID
	createdAt     time.Time
	isConstructed bool
}

func RestoreGift(
	id, accountID kernel.UUID,
	giftType GiftType,
	pointsUsed int,
	usedOnOrderID *kernel.UUID,
	createdAt time.Time,
) (*Gift, error) {
	if err := errors.Join(id.Validate(), accountID.Validate(), giftType.Validate()); err != nil {
		return nil, err
	}
	return &Gift{
		id:            id,
		accountID:     accountID,
		giftType:      giftType,
		pointsUsed:    pointsUsed,
		usedOnOrderID: usedOnOrderID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (g *Gift) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGiftIsNotConstructed
	}
	return nil
}

func (g *Gift) ID() kernel.UUID             { return g.id }
func (g *Gift) AccountID() kernel.UUID      { return g.accountID }
func (g *Gift) Type() GiftType              { return g.giftType }
func (g *Gift) PointsUsed() int             { return g.pointsUsed }
func (g *Gift) UsedOnOrderID() *kernel.UUID { return g.usedOnOrderID }
func (g *Gift) CreatedAt() time.Time        { return g.createdAt }

// ApplyTo consumes a free-delivery gift for orderID.
func (g *Gift) ApplyTo(orderID kernel.UUID) error {
	if g.giftType != FreeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("gift",
			fmt.Errorf("%s gifts cannot be applied to orders", g.giftType))
	}
	if g.usedOnOrderID != nil {
		return errs.NewConflictErrorWithCause("gift "+g.id.String(),
			fmt.Errorf("already used on order %s", g.usedOnOrderID))
	}
	g.usedOnOrderID = &orderID
	return nil
}

// Release frees a gift consumed by a cancelled order. It reports whether anything changed.
func (g *Gift) Release(orderID kernel.UUID) bool {
	if g.usedOnOrderID == nil || !g.usedOnOrderID.IsEqual(orderID) {
		return false
	}
	g.usedOnOrderID = nil
	return true
}
