package notificationrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/notification"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{db: db, tracker: tracker}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(n.ID(), n)
	return nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.UUID()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}

// MarkRead persists the read flag of a targeted notification. Rows already read are
// left untouched, so the first read time wins.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.IsBroadcast() {
		return errs.NewValueIsInvalidError("broadcast read state is kept per viewer")
	}
	if !n.Read() {
		return errs.NewValueIsInvalidError("notification is not read")
	}

	return r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND is_read = ?", n.ID().UUID(), false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": n.ReadAt(),
		}).Error
}

// MarkReadBy records that viewerID read the broadcast n. A second receipt for the same
// viewer is ignored, so the first read time wins.
func (r *GormNotificationRepository) MarkReadBy(
	ctx context.Context,
	n *notification.Notification,
	viewerID kernel.UUID,
	at time.Time,
) error {
	if err := errors.Join(n.Validate(), viewerID.Validate()); err != nil {
		return err
	}
	if !n.IsBroadcast() {
		return errs.NewValueIsInvalidError("targeted notification has a single reader")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "viewer_id"}},
			DoNothing: true,
		}).
		Create(&ReadDTO{
			NotificationID: n.ID().UUID(),
			ViewerID:       viewerID.UUID(),
			ReadAt:         at.UTC(),
		}).Error
}
