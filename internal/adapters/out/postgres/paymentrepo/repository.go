package paymentrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, record *payment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("gateway order "+record.GatewayOrderID(), err)
	}
	return err
}

func (r *GormPaymentRepository) Update(ctx context.Context, record *payment.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("id = ?", record.ID().UUID()).
		Updates(map[string]any{
			"payment_id": record.PaymentID(),
			"signature":  record.Signature(),
			"status":     record.Status().String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment", record.ID().String())
	}
	return nil
}

func (r *GormPaymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Record, error) {
	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", gatewayOrderID)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormPaymentRepository) ListPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Record, error) {
	return r.find(ctx, "order_id = ? AND status = ?", orderID.UUID(), payment.Pending.String())
}

func (r *GormPaymentRepository) GetCompletedForOrder(ctx context.Context, orderID kernel.UUID) (*payment.Record, error) {
	records, err := r.find(ctx, "order_id = ? AND status = ?", orderID.UUID(), payment.Completed.String())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errs.NewObjectNotFoundError("completed payment for order", orderID.String())
	}
	return records[0], nil
}

func (r *GormPaymentRepository) find(ctx context.Context, query string, args ...any) ([]*payment.Record, error) {
	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*payment.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
