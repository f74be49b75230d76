package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrAddCatalogItemCommandIsNotConstructed = errors.New(
	"AddCatalogItemCommand must be created via NewAddCatalogItemCommand constructor",
)

// AddCatalogItemCommand seeds a supply item into the shared catalogue.
type AddCatalogItemCommand struct { //nolint:recvcheck //using for validation
	itemID    kernel.UUID
	name      string
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

func NewAddCatalogItemCommand(itemID kernel.UUID, name string, unitPrice kernel.Money) (AddCatalogItemCommand, error) {
	if err := errors.Join(itemID.Validate(), unitPrice.Validate()); err != nil {
		return AddCatalogItemCommand{}, err
	}
	return AddCatalogItemCommand{
		itemID:    itemID,
		name:      name,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCatalogItemCommandIsNotConstructed)
}

func (c AddCatalogItemCommand) ItemID() kernel.UUID     { return c.itemID }
func (c AddCatalogItemCommand) Name() string            { return c.name }
func (c AddCatalogItemCommand) UnitPrice() kernel.Money { return c.unitPrice }
