package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks a notification read for the viewer.
//
// A targeted notification can only be marked by its recipient: other viewers who may
// see it get a ForbiddenError, everyone else a not found error. A broadcast gets a read
// receipt for the viewer alone, so other viewers still see it unread.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	router     services.NotificationRouter
}

func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	router services.NotificationRouter,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory, router: router}
}

func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}
	viewer := cmd.Viewer()
	visible := h.router.Visible(viewer, n)

	switch {
	case n.IsBroadcast():
		if !visible {
			return errs.NewObjectNotFoundError("notification", cmd.NotificationID().String())
		}
		err = repo.MarkReadBy(ctx, n, viewer.ID, time.Now())
	case !n.TargetUserID().IsEqual(viewer.ID):
		if visible {
			return errs.NewForbiddenError("mark another user's notification read")
		}
		return errs.NewObjectNotFoundError("notification", cmd.NotificationID().String())
	default:
		if !n.MarkRead(time.Now()) {
			return nil
		}
		err = repo.MarkRead(ctx, n)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
