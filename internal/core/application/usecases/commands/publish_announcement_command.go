package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrPublishAnnouncementCommandIsNotConstructed = errors.New(
	"PublishAnnouncementCommand must be created via NewPublishAnnouncementCommand constructor",
)

// PublishAnnouncementCommand broadcasts an owner announcement, optionally to one
// franchise location only.
type PublishAnnouncementCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	headline string
	body     string
	location string

	guard guard.ConstructorGuard
}

func NewPublishAnnouncementCommand(actor kernel.Actor, headline, body, location string) (PublishAnnouncementCommand, error) {
	if err := actor.Validate(); err != nil {
		return PublishAnnouncementCommand{}, err
	}
	if actor.Role != kernel.RoleOwner {
		return PublishAnnouncementCommand{}, errs.NewForbiddenError("publish announcement")
	}

	cmd := PublishAnnouncementCommand{
		actor:    actor,
		headline: strings.TrimSpace(headline),
		body:     strings.TrimSpace(body),
		location: strings.TrimSpace(location),
		guard:    guard.NewConstructorGuard(),
	}
	var errList []error
	if cmd.headline == "" {
		errList = append(errList, errs.NewValueIsRequiredError("headline"))
	}
	if cmd.body == "" {
		errList = append(errList, errs.NewValueIsRequiredError("body"))
	}
	if err := errors.Join(errList...); err != nil {
		return PublishAnnouncementCommand{}, err
	}
	return cmd, nil
}

func (c PublishAnnouncementCommand) Validate() error {
	return c.guard.Validate(ErrPublishAnnouncementCommandIsNotConstructed)
}

func (c PublishAnnouncementCommand) Headline() string { return c.headline }
func (c PublishAnnouncementCommand) Body() string     { return c.body }
func (c PublishAnnouncementCommand) Location() string { return c.location }
