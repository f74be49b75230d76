// Package orderrepo maps the order aggregate to the orders, order_items and
// order_status_history tables.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. total_amount is denormalized for read queries.
type OrderDTO struct {
	ID                 uuid.UUID        `gorm:"type:char(36);primaryKey"`
	MemberID           uuid.UUID        `gorm:"type:char(36);index;not null"`
	FranchiseName      string           `gorm:"size:255;not null"`
	Items              []ItemDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress    AddressDTO       `gorm:"embedded;embeddedPrefix:shipping_"`
	DeliveryFee        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalAmount        decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	LoyaltyPointsUsed  int              `gorm:"not null;default:0"`
	LoyaltyGiftClaimed bool             `gorm:"not null;default:false"`
	Status             string           `gorm:"size:32;index;not null"`
	TrackingNumber     string           `gorm:"size:128"`
	AdminNotes         string           `gorm:"type:text"`
	Version            int              `gorm:"not null"`
	CreatedAt          time.Time        `gorm:"autoCreateTime:false;index"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime:false;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Line1      string `gorm:"size:255"`
	Line2      string `gorm:"size:255"`
	City       string `gorm:"size:255"`
	PostalCode string `gorm:"size:32"`
	Phone      string `gorm:"size:32"`
}

// ItemDTO is one immutable order line.
type ItemDTO struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex:idx_order_items_order_item"`
	ItemID     uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex:idx_order_items_order_item"`
	Position   int             `gorm:"not null"`
	Name       string          `gorm:"size:255;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusChangeDTO is an append-only audit row.
type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:char(36);index;not null"`
	FromStatus string    `gorm:"size:32"`
	ToStatus   string    `gorm:"size:32;not null"`
	ActorID    uuid.UUID `gorm:"type:char(36);not null"`
	ActorRole  string    `gorm:"size:16;not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	var fee *decimal.Decimal
	if f := o.DeliveryFee(); f != nil {
		d := f.Decimal()
		fee = &d
	}

	address := o.ShippingAddress()
	dto := OrderDTO{
		ID:            o.ID().UUID(),
		MemberID:      o.MemberID().UUID(),
		FranchiseName: o.FranchiseName(),
		ShippingAddress: AddressDTO{
			Line1:      address.Line1(),
			Line2:      address.Line2(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
			Phone:      address.Phone(),
		},
		DeliveryFee:        fee,
		TotalAmount:        o.TotalAmount().Decimal(),
		LoyaltyPointsUsed:  o.LoyaltyPointsUsed(),
		LoyaltyGiftClaimed: o.LoyaltyGiftClaimed(),
		Status:             o.Status().String(),
		TrackingNumber:     o.TrackingNumber(),
		AdminNotes:         o.AdminNotes(),
		Version:            o.Version(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:    dto.ID,
			ItemID:     item.ItemID().UUID(),
			Position:   i,
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Decimal(),
			TotalPrice: item.TotalPrice().Decimal(),
		})
	}
	return dto
}

func historyFromDomain(o *order.Order) []StatusChangeDTO {
	changes := o.StatusChanges()
	rows := make([]StatusChangeDTO, 0, len(changes))
	for _, c := range changes {
		from := ""
		if c.From != order.Unknown {
			from = c.From.String()
		}
		rows = append(rows, StatusChangeDTO{
			OrderID:    o.ID().UUID(),
			FromStatus: from,
			ToStatus:   c.To.String(),
			ActorID:    c.ActorID.UUID(),
			ActorRole:  c.ActorRole.String(),
			Note:       c.Note,
			CreatedAt:  c.At,
		})
	}
	return rows
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	memberID, err := kernel.UUIDFromBytes(dto.MemberID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(dto.ShippingAddress.Line1, dto.ShippingAddress.Line2,
		dto.ShippingAddress.City, dto.ShippingAddress.PostalCode, dto.ShippingAddress.Phone)
	if err != nil {
		return nil, err
	}

	var fee *kernel.Money
	if dto.DeliveryFee != nil {
		f, feeErr := kernel.NewMoney(*dto.DeliveryFee)
		if feeErr != nil {
			return nil, feeErr
		}
		fee = &f
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(row.ItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(row.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemID, row.Name, row.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                 id,
		MemberID:           memberID,
		FranchiseName:      dto.FranchiseName,
		Items:              items,
		ShippingAddress:    address,
		DeliveryFee:        fee,
		LoyaltyPointsUsed:  dto.LoyaltyPointsUsed,
		LoyaltyGiftClaimed: dto.LoyaltyGiftClaimed,
		Status:             status,
		TrackingNumber:     dto.TrackingNumber,
		AdminNotes:         dto.AdminNotes,
		Version:            dto.Version,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}
