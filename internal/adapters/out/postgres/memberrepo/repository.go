package memberrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormMemberRepository struct {
	db *gorm.DB
}

func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

func (r *GormMemberRepository) Add(ctx context.Context, aggregate *member.Member) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("member "+aggregate.ID().String(), err)
	}
	return err
}

func (r *GormMemberRepository) Update(ctx context.Context, aggregate *member.Member) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MemberDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"franchise_name":           dto.FranchiseName,
		"location":                 dto.Location,
		"status":                   dto.Status,
		"dashboard_access_enabled": dto.DashboardAccessEnabled,
		"updated_at":               time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("member", aggregate.ID().String())
	}
	return nil
}

func (r *GormMemberRepository) Get(ctx context.Context, id kernel.UUID) (*member.Member, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MemberDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.UUID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("member", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
