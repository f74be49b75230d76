package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetStuckPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewGetStuckPaymentsQueryHandler(db *gorm.DB) GetStuckPaymentsQueryHandler {
	return GetStuckPaymentsQueryHandler{db: db}
}

func (h GetStuckPaymentsQueryHandler) Handle(ctx context.Context, query GetStuckPaymentsQuery) ([]StuckPaymentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.member_id,
			o.franchise_name,
			o.total_amount,
			o.updated_at,
			COALESCE((
				SELECT p.gateway_order_id FROM payment_records p
				WHERE p.order_id = o.id
				ORDER BY p.created_at DESC
				LIMIT 1
			), ''),
			(SELECT COUNT(*) FROM payment_records p WHERE p.order_id = o.id AND p.status = ?)
		FROM orders o
		WHERE o.status = ? AND o.updated_at < ?
		ORDER BY o.updated_at
	`, payment.Pending.String(), order.PaymentPending.String(), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stuck := make([]StuckPaymentView, 0)
	for rows.Next() {
		var (
			view         StuckPaymentView
			id, memberID uuid.UUID
			total        decimal.Decimal
		)
		err = rows.Scan(&id, &memberID, &view.FranchiseName, &total, &view.PendingSince,
			&view.GatewayOrderID, &view.PendingRecords)
		if err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.MemberID, err = kernel.UUIDFromBytes(memberID[:]); err != nil {
			return nil, err
		}
		if view.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		view.PendingSince = view.PendingSince.UTC()
		stuck = append(stuck, view)
	}
	return stuck, rows.Err()
}
