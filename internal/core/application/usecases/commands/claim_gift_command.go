package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrClaimGiftCommandIsNotConstructed = errors.New(
	"ClaimGiftCommand must be created via NewClaimGiftCommand constructor",
)

// ClaimGiftCommand exchanges loyalty.GiftCost points for a gift.
type ClaimGiftCommand struct { //nolint:recvcheck //using for validation
	memberID kernel.UUID
	actor    kernel.Actor
	giftType loyalty.GiftType

	guard guard.ConstructorGuard
}

// NewClaimGiftCommand lets members claim for themselves and staff claim on a member's
// behalf.
func NewClaimGiftCommand(memberID kernel.UUID, actor kernel.Actor, giftType loyalty.GiftType) (ClaimGiftCommand, error) {
	if err := errors.Join(memberID.Validate(), actor.Validate(), giftType.Validate()); err != nil {
		return ClaimGiftCommand{}, err
	}
	if !actor.Role.IsStaff() && !actor.Owns(memberID) {
		return ClaimGiftCommand{}, errs.NewForbiddenError("claim a gift for another member")
	}
	return ClaimGiftCommand{
		memberID: memberID,
		actor:    actor,
		giftType: giftType,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimGiftCommand) Validate() error {
	return c.guard.Validate(ErrClaimGiftCommandIsNotConstructed)
}

func (c ClaimGiftCommand) MemberID() kernel.UUID      { return c.memberID }
func (c ClaimGiftCommand) Actor() kernel.Actor        { return c.actor }
func (c ClaimGiftCommand) GiftType() loyalty.GiftType { return c.giftType }
