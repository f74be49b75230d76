package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
)

// ClaimedGift describes a successful claim.
type ClaimedGift struct {
	GiftID  kernel.UUID
	Balance int
}

// ClaimGiftCommandHandler debits the ledger and creates the gift atomically. The
// account row stays locked until commit, so concurrent claims of one member run one
// after the other and the balance never goes negative.
type ClaimGiftCommandHandler struct {
	uowFactory LoyaltyUoWFactory
}

func NewClaimGiftCommandHandler(uowFactory LoyaltyUoWFactory) ClaimGiftCommandHandler {
	return ClaimGiftCommandHandler{uowFactory: uowFactory}
}

// Handle returns a ConflictError when the balance is below the gift cost.
func (h ClaimGiftCommandHandler) Handle(ctx context.Context, cmd ClaimGiftCommand) (ClaimedGift, error) {
	if err := cmd.Validate(); err != nil {
		return ClaimedGift{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ClaimedGift{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MemberRepository().Get(ctx, cmd.MemberID())
	if err != nil {
		return ClaimedGift{}, err
	}

	ledger := uow.LoyaltyRepository()
	account, err := ledger.GetOrCreateForUpdate(ctx, m.ID())
	if err != nil {
		return ClaimedGift{}, err
	}

	gift, _, err := account.ClaimGift(cmd.GiftType())
	if err != nil {
		return ClaimedGift{}, err
	}
	if err = ledger.Save(ctx, account); err != nil {
		return ClaimedGift{}, err
	}

	if err = notifier(ctx, uow.NotificationRepository())(services.GiftClaimedNotification(m, account, gift)); err != nil {
		return ClaimedGift{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ClaimedGift{}, err
	}
	return ClaimedGift{GiftID: gift.ID(), Balance: account.Balance()}, nil
}
