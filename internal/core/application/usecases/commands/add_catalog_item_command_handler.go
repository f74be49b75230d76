package commands

import (
	"context"

	"ordering/internal/core/domain/model/catalog"
)

type AddCatalogItemCommandHandler struct {
	uowFactory MemberUoWFactory
}

func NewAddCatalogItemCommandHandler(uowFactory MemberUoWFactory) AddCatalogItemCommandHandler {
	return AddCatalogItemCommandHandler{uowFactory: uowFactory}
}

func (h AddCatalogItemCommandHandler) Handle(ctx context.Context, cmd AddCatalogItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := catalog.NewItem(cmd.ItemID(), cmd.Name(), cmd.UnitPrice())
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

	if err = uow.CatalogRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
