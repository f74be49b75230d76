package packingrepo

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/packing"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackingRepository(db *gorm.DB, tracker aggregateTracker) *GormPackingRepository {
	return &GormPackingRepository{db: db, tracker: tracker}
}

// AddEntries inserts the entries that do not exist yet and returns how many were
// created. Concurrent calls for the same order create every entry exactly once.
func (r *GormPackingRepository) AddEntries(ctx context.Context, entries []*packing.Entry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, err
		}
		dtos = append(dtos, fromDomain(e, i))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "item_id"}},
			DoNothing: true,
		}).
		Create(&dtos)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetChecklistForUpdate returns the order's entries in line order and locks them for
// the rest of the transaction. An order without entries yields an empty checklist.
func (r *GormPackingRepository) GetChecklistForUpdate(ctx context.Context, orderID kernel.UUID) (*packing.Checklist, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("order_id = ?", orderID.UUID()).
		Order("position").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*packing.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, e)
	}
	return packing.NewChecklist(orderID, entries), nil
}

func (r *GormPackingRepository) UpdateEntry(ctx context.Context, entry *packing.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("id = ?", entry.ID().UUID()).
		Updates(map[string]any{
			"packed":    entry.Packed(),
			"packed_by": kernel.OptionalUUID(entry.PackedBy()),
			"packed_at": entry.PackedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("packingEntry", entry.ID().String())
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}
