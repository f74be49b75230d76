package invoicerepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	dto := fromDomain(inv)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.UUID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}

// DeleteExpired removes invoices whose retention ended at or before now.
func (r *GormInvoiceRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&InvoiceDTO{})
	return result.RowsAffected, result.Error
}
