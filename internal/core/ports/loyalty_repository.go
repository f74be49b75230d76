package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
)

// LoyaltyRepository stores ledgers. Mutations of one account are a critical section:
// GetOrCreateForUpdate locks the account row for the rest of the transaction and Save
// rejects stale versions.
type LoyaltyRepository interface {
	// GetOrCreateForUpdate returns the member's account, creating an empty one on first
	// use, and locks it until the transaction ends.
	GetOrCreateForUpdate(ctx context.Context, memberID kernel.UUID) (*loyalty.Account, error)

	// Save writes the balances together with the pending transactions and gifts.
	Save(ctx context.Context, account *loyalty.Account) error

	// FindUnusedGift returns the oldest unused gift of the type.
	FindUnusedGift(ctx context.Context, accountID kernel.UUID, giftType loyalty.GiftType) (*loyalty.Gift, error)

	// FindGiftUsedOnOrder returns the gift consumed by orderID.
	FindGiftUsedOnOrder(ctx context.Context, orderID kernel.UUID) (*loyalty.Gift, error)

	UpdateGift(ctx context.Context, gift *loyalty.Gift) error
}
