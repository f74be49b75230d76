package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	viewer         kernel.Actor

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(notificationID kernel.UUID, viewer kernel.Actor) (MarkNotificationReadCommand, error) {
	if err := errors.Join(notificationID.Validate(), viewer.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{
		notificationID: notificationID,
		viewer:         viewer,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }
func (c MarkNotificationReadCommand) Viewer() kernel.Actor        { return c.viewer }
