package queries

import (
	"context"
	"database/sql"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderColumns = `
	id, member_id, franchise_name, status,
	shipping_line1, shipping_line2, shipping_city, shipping_postal_code, shipping_phone,
	delivery_fee, total_amount, loyalty_points_used, loyalty_gift_claimed,
	tracking_number, admin_notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderView, error) {
	var (
		v                 OrderView
		id, memberID      uuid.UUID
		status            string
		fee               decimal.NullDecimal
		total             decimal.Decimal
		trackingNumber    sql.NullString
		adminNotes        sql.NullString
		line2, phone      sql.NullString
		line1, city, code string
	)
	err := row.Scan(
		&id, &memberID, &v.FranchiseName, &status,
		&line1, &line2, &city, &code, &phone,
		&fee, &total, &v.LoyaltyPointsUsed, &v.LoyaltyGiftClaimed,
		&trackingNumber, &adminNotes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}

	if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if v.MemberID, err = kernel.UUIDFromBytes(memberID[:]); err != nil {
		return OrderView{}, err
	}
	if v.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	if fee.Valid {
		m, feeErr := kernel.NewMoney(fee.Decimal)
		if feeErr != nil {
			return OrderView{}, feeErr
		}
		v.DeliveryFee = &m
	}
	if v.TotalAmount, err = kernel.NewMoney(total); err != nil {
		return OrderView{}, err
	}
	v.ShippingAddress = AddressView{
		Line1:      line1,
		Line2:      line2.String,
		City:       city,
		PostalCode: code,
		Phone:      phone.String,
	}
	v.TrackingNumber = trackingNumber.String
	v.AdminNotes = adminNotes.String
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return v, nil
}

func loadOrderItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT item_id, name, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.UUID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item             OrderItemView
			itemID           uuid.UUID
			unitPrice, total decimal.Decimal
		)
		if err = rows.Scan(&itemID, &item.Name, &item.Quantity, &unitPrice, &total); err != nil {
			return nil, err
		}
		if item.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		if item.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// canViewOrder applies the read-side ownership rule: franchise viewers only see their
// own orders.
func canViewOrder(viewer kernel.Actor, memberID kernel.UUID) bool {
	return viewer.Role != kernel.RoleFranchise || viewer.Owns(memberID)
}
