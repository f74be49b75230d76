// Package catalogrepo persists the shared supply catalogue.
package catalogrepo

import (
	"time"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemDTO struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (ItemDTO) TableName() string {
	return "catalog_items"
}

func fromDomain(item *catalog.Item) ItemDTO {
	return ItemDTO{
		ID:        item.ID().UUID(),
		Name:      item.Name(),
		UnitPrice: item.UnitPrice().Decimal(),
		Active:    item.Active(),
	}
}

func toDomain(dto ItemDTO) (*catalog.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreItem(id, dto.Name, price, dto.Active)
}
