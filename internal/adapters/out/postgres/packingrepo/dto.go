// Package packingrepo persists packing checklist entries. The unique (order_id,
// item_id) key makes checklist creation idempotent.
package packingrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

type EntryDTO struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_packing_entries_order_item"`
	ItemID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_packing_entries_order_item"`
	Position  int        `gorm:"not null"`
	ItemName  string     `gorm:"size:255"`
	Quantity  int        `gorm:"not null"`
	Packed    bool       `gorm:"not null;default:false"`
	PackedBy  *uuid.UUID `gorm:"type:char(36)"`
	PackedAt  *time.Time
	CreatedAt time.Time
}

func (EntryDTO) TableName() string {
	return "packing_entries"
}

func fromDomain(e *packing.Entry, position int) EntryDTO {
	return EntryDTO{
		ID:       e.ID().UUID(),
		OrderID:  e.OrderID().UUID(),
		ItemID:   e.ItemID().UUID(),
		Position: position,
		ItemName: e.ItemName(),
		Quantity: e.Quantity(),
		Packed:   e.Packed(),
		PackedBy: kernel.OptionalUUID(e.PackedBy()),
		PackedAt: e.PackedAt(),
	}
}

func toDomain(dto EntryDTO) (*packing.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	packedBy, err := kernel.OptionalUUIDFromBytes(dto.PackedBy)
	if err != nil {
		return nil, err
	}
	var packedAt *time.Time
	if dto.PackedAt != nil {
		at := dto.PackedAt.UTC()
		packedAt = &at
	}
	return packing.RestoreEntry(id, orderID, itemID, dto.ItemName, dto.Quantity, dto.Packed, packedBy, packedAt)
}
