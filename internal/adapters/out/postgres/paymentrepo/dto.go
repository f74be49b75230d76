// Package paymentrepo persists gateway payment records.
package paymentrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordDTO struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:char(36);not null;index"`
	GatewayOrderID string          `gorm:"size:128;not null;uniqueIndex"`
	PaymentID      string          `gorm:"size:128"`
	Signature      string          `gorm:"size:128"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"size:16;not null;index"`
	CreatedAt      time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time
}

func (RecordDTO) TableName() string {
	return "payment_records"
}

func fromDomain(r *payment.Record) RecordDTO {
	return RecordDTO{
		ID:             r.ID().UUID(),
		OrderID:        r.OrderID().UUID(),
		GatewayOrderID: r.GatewayOrderID(),
		PaymentID:      r.PaymentID(),
		Signature:      r.Signature(),
		Amount:         r.Amount().Decimal(),
		Status:         r.Status().String(),
		CreatedAt:      r.CreatedAt(),
	}
}

func toDomain(dto RecordDTO) (*payment.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return payment.RestoreRecord(id, orderID, dto.GatewayOrderID, dto.PaymentID, dto.Signature,
		amount, status, dto.CreatedAt.UTC())
}
