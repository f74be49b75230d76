package loyaltyrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormLoyaltyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLoyaltyRepository(db *gorm.DB, tracker aggregateTracker) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{db: db, tracker: tracker}
}

// GetOrCreateForUpdate returns the member's account, creating an empty one on first
// use, and holds its row lock until the transaction ends. Every balance mutation goes
// through this lock, which serializes writers of one account.
func (r *GormLoyaltyRepository) GetOrCreateForUpdate(ctx context.Context, memberID kernel.UUID) (*loyalty.Account, error) {
	if err := memberID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	now := time.Now().UTC()
	fresh := AccountDTO{
		ID:        kernel.NewUUID().UUID(),
		MemberID:  memberID.UUID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		DoNothing: true,
	}).Create(&fresh).Error
	if err != nil {
		return nil, err
	}

	var dto AccountDTO
	err = db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "member_id = ?", memberID.UUID()).Error
	if err != nil {
		return nil, err
	}
	return accountToDomain(dto)
}

// Save writes the new totals with an optimistic version check and appends the
// account's pending transactions and gifts.
func (r *GormLoyaltyRepository) Save(ctx context.Context, account *loyalty.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	next := account.Version() + 1
	result := db.Model(&AccountDTO{}).
		Where("id = ? AND version = ?", account.ID().UUID(), account.Version()).
		Updates(map[string]any{
			"total_earned":    account.TotalEarned(),
			"total_redeemed":  account.TotalRedeemed(),
			"current_balance": account.Balance(),
			"version":         next,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("loyalty account " + account.ID().String())
	}

	if pending := account.PendingTransactions(); len(pending) > 0 {
		rows := make([]TransactionDTO, 0, len(pending))
		for _, tx := range pending {
			rows = append(rows, transactionFromDomain(tx))
		}
		if err := db.Create(&rows).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.NewConflictErrorWithCause("loyalty transaction", err)
			}
			return err
		}
	}
	if pending := account.PendingGifts(); len(pending) > 0 {
		rows := make([]GiftDTO, 0, len(pending))
		for _, g := range pending {
			rows = append(rows, giftFromDomain(g))
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}

	account.MarkPersisted(next)
	r.tracker.TrackAggregate(account.ID(), account)
	return nil
}

// FindUnusedGift returns the oldest unused gift of giftType.
func (r *GormLoyaltyRepository) FindUnusedGift(ctx context.Context, accountID kernel.UUID, giftType loyalty.GiftType) (*loyalty.Gift, error) {
	if err := errors.Join(accountID.Validate(), giftType.Validate()); err != nil {
		return nil, err
	}

	var dto GiftDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("account_id = ? AND gift_type = ? AND used_on_order_id IS NULL", accountID.UUID(), giftType.String()).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("unused gift", giftType.String())
		}
		return nil, err
	}
	return giftToDomain(dto)
}

func (r *GormLoyaltyRepository) FindGiftUsedOnOrder(ctx context.Context, orderID kernel.UUID) (*loyalty.Gift, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto GiftDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "used_on_order_id = ?", orderID.UUID()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("gift used on order", orderID.String())
		}
		return nil, err
	}
	return giftToDomain(dto)
}

func (r *GormLoyaltyRepository) UpdateGift(ctx context.Context, gift *loyalty.Gift) error {
	if err := gift.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&GiftDTO{}).
		Where("id = ?", gift.ID().UUID()).
		Updates(map[string]any{
			"used_on_order_id": kernel.OptionalUUID(gift.UsedOnOrderID()),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gift", gift.ID().String())
	}
	return nil
}
