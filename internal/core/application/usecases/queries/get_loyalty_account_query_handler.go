package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLoyaltyAccountQueryHandler struct {
	db *gorm.DB
}

func NewGetLoyaltyAccountQueryHandler(db *gorm.DB) GetLoyaltyAccountQueryHandler {
	return GetLoyaltyAccountQueryHandler{db: db}
}

func (h GetLoyaltyAccountQueryHandler) Handle(ctx context.Context, query GetLoyaltyAccountQuery) (LoyaltyAccountView, error) {
	if err := query.Validate(); err != nil {
		return LoyaltyAccountView{}, err
	}

	view := LoyaltyAccountView{
		MemberID:     query.MemberID(),
		Transactions: []LoyaltyTransactionView{},
		Gifts:        []LoyaltyGiftView{},
	}

	var accountID uuid.UUID
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, total_earned, total_redeemed, current_balance
		FROM loyalty_accounts
		WHERE member_id = ?
	`, query.MemberID().UUID()).Row().Scan(&accountID, &view.TotalEarned, &view.TotalRedeemed, &view.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return view, nil
	}
	if err != nil {
		return LoyaltyAccountView{}, err
	}

	if view.Transactions, err = h.transactions(ctx, accountID, query.Limit()); err != nil {
		return LoyaltyAccountView{}, err
	}
	if view.Gifts, err = h.gifts(ctx, accountID); err != nil {
		return LoyaltyAccountView{}, err
	}
	return view, nil
}

func (h GetLoyaltyAccountQueryHandler) transactions(ctx context.Context, accountID uuid.UUID, limit int) ([]LoyaltyTransactionView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, points, kind, description, order_id, created_at
		FROM loyalty_transactions
		WHERE account_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, accountID, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]LoyaltyTransactionView, 0)
	for rows.Next() {
		var (
			tx          LoyaltyTransactionView
			id          uuid.UUID
			kind        string
			description sql.NullString
			orderID     uuid.NullUUID
		)
		if err = rows.Scan(&id, &tx.Points, &kind, &description, &orderID, &tx.CreatedAt); err != nil {
			return nil, err
		}
		if tx.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if tx.Kind, err = loyalty.ParseTransactionKind(kind); err != nil {
			return nil, err
		}
		if tx.OrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		tx.Description = description.String
		tx.CreatedAt = tx.CreatedAt.UTC()
		list = append(list, tx)
	}
	return list, rows.Err()
}

func (h GetLoyaltyAccountQueryHandler) gifts(ctx context.Context, accountID uuid.UUID) ([]LoyaltyGiftView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, gift_type, points_used, used_on_order_id, created_at
		FROM loyalty_gifts
		WHERE account_id = ?
		ORDER BY created_at DESC, id
	`, accountID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]LoyaltyGiftView, 0)
	for rows.Next() {
		var (
			gift     LoyaltyGiftView
			id       uuid.UUID
			giftType string
			usedOn   uuid.NullUUID
		)
		if err = rows.Scan(&id, &giftType, &gift.PointsUsed, &usedOn, &gift.CreatedAt); err != nil {
			return nil, err
		}
		if gift.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if gift.Type, err = loyalty.ParseGiftType(giftType); err != nil {
			return nil, err
		}
		if gift.UsedOnOrderID, err = optionalUUID(usedOn); err != nil {
			return nil, err
		}
		gift.CreatedAt = gift.CreatedAt.UTC()
		list = append(list, gift)
	}
	return list, rows.Err()
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	u, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &u, nil
}
