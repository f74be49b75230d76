// Package memberrepo persists franchise members.
package memberrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"

	"github.com/google/uuid"
)

type MemberDTO struct {
	ID                     uuid.UUID `gorm:"type:char(36);primaryKey"`
	FranchiseName          string    `gorm:"size:255;not null"`
	Location               string    `gorm:"size:128;index"`
	Status                 string    `gorm:"size:16;not null"`
	DashboardAccessEnabled bool      `gorm:"not null;default:false"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (MemberDTO) TableName() string {
	return "members"
}

func fromDomain(m *member.Member) MemberDTO {
	return MemberDTO{
		ID:                     m.ID().UUID(),
		FranchiseName:          m.FranchiseName(),
		Location:               m.Location(),
		Status:                 m.Status().String(),
		DashboardAccessEnabled: m.DashboardAccessEnabled(),
	}
}

func toDomain(dto MemberDTO) (*member.Member, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := member.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return member.RestoreMember(id, dto.FranchiseName, dto.Location, status, dto.DashboardAccessEnabled)
}
