// Package invoicerepo persists rendered invoices until their retention ends.
package invoicerepo

import (
	"time"

	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type InvoiceDTO struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	OrderID     uuid.UUID `gorm:"type:char(36);not null;index"`
	ForAdmin    bool      `gorm:"not null"`
	ContentType string    `gorm:"size:64;not null"`
	Content     []byte    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(i *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:          i.ID().UUID(),
		OrderID:     i.OrderID().UUID(),
		ForAdmin:    i.ForAdmin(),
		ContentType: i.ContentType(),
		Content:     i.Content(),
		CreatedAt:   i.CreatedAt(),
		ExpiresAt:   i.ExpiresAt(),
	}
}

// ToDomain is shared with the invoice read model.
func ToDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return invoice.RestoreInvoice(id, orderID, dto.ForAdmin, dto.ContentType, dto.Content, dto.CreatedAt, dto.ExpiresAt)
}
