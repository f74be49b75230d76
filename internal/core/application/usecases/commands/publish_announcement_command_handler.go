package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
)

type PublishAnnouncementCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewPublishAnnouncementCommandHandler(uowFactory NotificationUoWFactory) PublishAnnouncementCommandHandler {
	return PublishAnnouncementCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ID of the stored announcement.
func (h PublishAnnouncementCommandHandler) Handle(ctx context.Context, cmd PublishAnnouncementCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	n, err := services.AnnouncementNotification(cmd.Headline(), cmd.Body(), cmd.Location())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.NotificationRepository().Add(ctx, n); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return n.ID(), nil
}
