// Package loyaltyrepo persists loyalty ledgers: the account row with its running
// totals, the append-only transactions and the claimed gifts.
package loyaltyrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"

	"github.com/google/uuid"
)

type AccountDTO struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	MemberID       uuid.UUID `gorm:"type:char(36);not null;uniqueIndex"`
	TotalEarned    int       `gorm:"not null;default:0"`
	TotalRedeemed  int       `gorm:"not null;default:0"`
	CurrentBalance int       `gorm:"not null;default:0"`
	Version        int       `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (AccountDTO) TableName() string {
	return "loyalty_accounts"
}

// TransactionDTO rows are never updated. (order_id, kind) is unique so an order is
// credited, discounted or refunded at most once.
type TransactionDTO struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	AccountID   uuid.UUID  `gorm:"type:char(36);not null;index"`
	Points      int        `gorm:"not null"`
	Kind        string     `gorm:"size:32;not null;uniqueIndex:idx_loyalty_transactions_order_kind"`
	Description string     `gorm:"size:255"`
	OrderID     *uuid.UUID `gorm:"type:char(36);uniqueIndex:idx_loyalty_transactions_order_kind"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;index"`
}

func (TransactionDTO) TableName() string {
	return "loyalty_transactions"
}

type GiftDTO struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey"`
	AccountID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	GiftType      string     `gorm:"size:32;not null"`
	PointsUsed    int        `gorm:"not null"`
	UsedOnOrderID *uuid.UUID `gorm:"type:char(36);index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time
}

func (GiftDTO) TableName() string {
	return "loyalty_gifts"
}

func accountToDomain(dto AccountDTO) (*loyalty.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	memberID, err := kernel.UUIDFromBytes(dto.MemberID[:])
	if err != nil {
		return nil, err
	}
	return loyalty.RestoreAccount(id, memberID, dto.TotalEarned, dto.TotalRedeemed, dto.Version)
}

func transactionFromDomain(tx *loyalty.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID.UUID(),
		AccountID:   tx.AccountID.UUID(),
		Points:      tx.Points,
		Kind:        tx.Kind.String(),
		Description: tx.Description,
		OrderID:     kernel.OptionalUUID(tx.OrderID),
		CreatedAt:   tx.CreatedAt,
	}
}

func giftFromDomain(g *loyalty.Gift) GiftDTO {
	return GiftDTO{
		ID:            g.ID().UUID(),
		AccountID:     g.AccountID().UUID(),
		GiftType:      g.Type().String(),
		PointsUsed:    g.PointsUsed(),
		UsedOnOrderID: kernel.OptionalUUID(g.UsedOnOrderID()),
		CreatedAt:     g.CreatedAt(),
	}
}

func giftToDomain(dto GiftDTO) (*loyalty.Gift, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}
	giftType, err := loyalty.ParseGiftType(dto.GiftType)
	if err != nil {
		return nil, err
	}
	usedOn, err := kernel.OptionalUUIDFromBytes(dto.UsedOnOrderID)
	if err != nil {
		return nil, err
	}
	return loyalty.RestoreGift(id, accountID, giftType, dto.PointsUsed, usedOn, dto.CreatedAt.UTC())
}
