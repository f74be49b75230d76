package commands

import (
	"context"

	"ordering/internal/core/domain/model/member"
)

type RegisterMemberCommandHandler struct {
	uowFactory MemberUoWFactory
}

func NewRegisterMemberCommandHandler(uowFactory MemberUoWFactory) RegisterMemberCommandHandler {
	return RegisterMemberCommandHandler{uowFactory: uowFactory}
}

func (h RegisterMemberCommandHandler) Handle(ctx context.Context, cmd RegisterMemberCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	m, err := member.NewMember(cmd.MemberID(), cmd.FranchiseName(), cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MemberRepository().Add(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
