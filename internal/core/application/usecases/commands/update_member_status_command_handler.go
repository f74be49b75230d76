package commands

import (
	"context"
)

type UpdateMemberStatusCommandHandler struct {
	uowFactory MemberUoWFactory
}

func NewUpdateMemberStatusCommandHandler(uowFactory MemberUoWFactory) UpdateMemberStatusCommandHandler {
	return UpdateMemberStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdateMemberStatusCommandHandler) Handle(ctx context.Context, cmd UpdateMemberStatusCommand) error {
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

	repo := uow.MemberRepository()
	m, err := repo.Get(ctx, cmd.MemberID())
	if err != nil {
		return err
	}
	if err = m.ChangeStatus(cmd.Status(), cmd.AccessEnabled()); err != nil {
		return err
	}
	if err = repo.Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
