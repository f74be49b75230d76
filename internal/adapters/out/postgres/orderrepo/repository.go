package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order, its lines and its first audit rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return r.translate(aggregate, err)
	}
	if err := r.appendHistory(db, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns if the stored version still matches.
//
// Returns:
//   - VersionIsInvalidError when another transaction updated the order first
//   - ConflictError when the write would give the member a second outstanding order
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	next := aggregate.Version() + 1
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"delivery_fee":    dto.DeliveryFee,
			"total_amount":    dto.TotalAmount,
			"status":          dto.Status,
			"tracking_number": dto.TrackingNumber,
			"admin_notes":     dto.AdminNotes,
			"version":         next,
			"updated_at":      dto.UpdatedAt,
		})
	if result.Error != nil {
		return r.translate(aggregate, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("order " + aggregate.ID().String())
	}
	if err := r.appendHistory(db, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted(next)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the order with its lines and locks the row for the rest of the
// transaction.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withItems(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", id.UUID()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountOutstanding counts the member's confirmed and payment_pending orders,
// excluding excludeID when given.
func (r *GormOrderRepository) CountOutstanding(ctx context.Context, memberID kernel.UUID, excludeID *kernel.UUID) (int64, error) {
	if err := memberID.Validate(); err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("member_id = ? AND status IN ?", memberID.UUID(),
			[]string{order.Confirmed.String(), order.PaymentPending.String()})
	if excludeID != nil {
		query = query.Where("id <> ?", excludeID.UUID())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListStale returns up to limit orders that have been in status since before cutoff,
// oldest first.
func (r *GormOrderRepository) ListStale(ctx context.Context, status order.Status, cutoff time.Time, limit int) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.withItems(r.db.WithContext(ctx)).
		Where("status = ? AND updated_at < ?", status.String(), cutoff.UTC()).
		Order("updated_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormOrderRepository) appendHistory(db *gorm.DB, aggregate *order.Order) error {
	rows := historyFromDomain(aggregate)
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func (r *GormOrderRepository) translate(aggregate *order.Order, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("order "+aggregate.ID().String(), err)
	}
	return err
}
