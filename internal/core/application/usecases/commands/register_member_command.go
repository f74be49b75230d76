package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrRegisterMemberCommandIsNotConstructed = errors.New(
	"RegisterMemberCommand must be created via NewRegisterMemberCommand constructor",
)

// RegisterMemberCommand onboards a franchise partner in pending status.
type RegisterMemberCommand struct { //nolint:recvcheck //using for validation
	memberID      kernel.UUID
	franchiseName string
	location      string

	guard guard.ConstructorGuard
}

// NewRegisterMemberCommand leaves name and location checks to member.NewMember.
func NewRegisterMemberCommand(memberID kernel.UUID, franchiseName, location string) (RegisterMemberCommand, error) {
	if err := memberID.Validate(); err != nil {
		return RegisterMemberCommand{}, err
	}
	return RegisterMemberCommand{
		memberID:      memberID,
		franchiseName: franchiseName,
		location:      location,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterMemberCommand) Validate() error {
	return c.guard.Validate(ErrRegisterMemberCommandIsNotConstructed)
}

func (c RegisterMemberCommand) MemberID() kernel.UUID { return c.memberID }
func (c RegisterMemberCommand) FranchiseName() string { return c.franchiseName }
func (c RegisterMemberCommand) Location() string      { return c.location }
