package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrUpdateMemberStatusCommandIsNotConstructed = errors.New(
	"UpdateMemberStatusCommand must be created via NewUpdateMemberStatusCommand constructor",
)

// UpdateMemberStatusCommand changes a member's verification status and dashboard access.
type UpdateMemberStatusCommand struct { //nolint:recvcheck //using for validation
	memberID      kernel.UUID
	actor         kernel.Actor
	status        member.Status
	accessEnabled bool

	guard guard.ConstructorGuard
}

func NewUpdateMemberStatusCommand(
	memberID kernel.UUID,
	actor kernel.Actor,
	status member.Status,
	accessEnabled bool,
) (UpdateMemberStatusCommand, error) {
	if err := errors.Join(memberID.Validate(), actor.Validate(), status.Validate()); err != nil {
		return UpdateMemberStatusCommand{}, err
	}
	if !actor.Role.IsStaff() {
		return UpdateMemberStatusCommand{}, errs.NewForbiddenError("update member status")
	}
	return UpdateMemberStatusCommand{
		memberID:      memberID,
		actor:         actor,
		status:        status,
		accessEnabled: accessEnabled,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMemberStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMemberStatusCommandIsNotConstructed)
}

func (c UpdateMemberStatusCommand) MemberID() kernel.UUID { return c.memberID }
func (c UpdateMemberStatusCommand) Status() member.Status { return c.status }
func (c UpdateMemberStatusCommand) AccessEnabled() bool   { return c.accessEnabled }
