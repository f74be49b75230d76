// Package notificationrepo persists notifications. The typed payload is stored as a
// JSON document in the data column.
package notificationrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationDTO struct {
	ID           uuid.UUID      `gorm:"type:char(36);primaryKey"`
	Type         string         `gorm:"size:64;not null;index"`
	Title        string         `gorm:"size:255;not null"`
	Message      string         `gorm:"type:text"`
	TargetUserID *uuid.UUID     `gorm:"type:char(36);index"`
	Location     string         `gorm:"size:128"`
	Data         datatypes.JSON `gorm:"not null"`
	Read         bool           `gorm:"column:is_read;not null;default:false"`
	ReadAt       *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime:false;index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// ReadDTO is one viewer's read receipt for a broadcast. Targeted notifications keep
// their read state on the notification row.
type ReadDTO struct {
	NotificationID uuid.UUID `gorm:"type:char(36);primaryKey"`
	ViewerID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	ReadAt         time.Time `gorm:"not null"`
}

func (ReadDTO) TableName() string {
	return "notification_reads"
}

func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	data, err := notification.EncodePayload(n.Payload())
	if err != nil {
		return NotificationDTO{}, err
	}
	return NotificationDTO{
		ID:           n.ID().UUID(),
		Type:         string(n.Type()),
		Title:        n.Title(),
		Message:      n.Message(),
		TargetUserID: kernel.OptionalUUID(n.TargetUserID()),
		Location:     n.Location(),
		Data:         datatypes.JSON(data),
		Read:         n.Read(),
		ReadAt:       n.ReadAt(),
		CreatedAt:    n.CreatedAt(),
	}, nil
}

// ToDomain is shared with the notification read model.
func ToDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	target, err := kernel.OptionalUUIDFromBytes(dto.TargetUserID)
	if err != nil {
		return nil, err
	}
	payload, err := notification.DecodePayload(notification.Type(dto.Type), dto.Data)
	if err != nil {
		return nil, err
	}
	var readAt *time.Time
	if dto.ReadAt != nil {
		at := dto.ReadAt.UTC()
		readAt = &at
	}
	return notification.Restore(id, payload, target, dto.Location, dto.Read, readAt, dto.CreatedAt.UTC())
}
