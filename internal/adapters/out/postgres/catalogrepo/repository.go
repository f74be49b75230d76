package catalogrepo

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) Add(ctx context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetMany returns the stored items among ids in no particular order. Unknown ids are
// simply absent from the result.
func (r *GormCatalogRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Item, error) {
	if len(ids) == 0 {
		return []*catalog.Item{}, nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.UUID())
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*catalog.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
