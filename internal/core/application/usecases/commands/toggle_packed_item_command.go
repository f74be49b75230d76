package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrTogglePackedItemCommandIsNotConstructed = errors.New(
	"TogglePackedItemCommand must be created via NewTogglePackedItemCommand constructor",
)

// TogglePackedItemCommand marks one order line packed or unpacked.
type TogglePackedItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	actor   kernel.Actor
	packed  bool

	guard guard.ConstructorGuard
}

func NewTogglePackedItemCommand(orderID, itemID kernel.UUID, actor kernel.Actor, packed bool) (TogglePackedItemCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate(), actor.Validate()); err != nil {
		return TogglePackedItemCommand{}, err
	}
	return TogglePackedItemCommand{
		orderID: orderID,
		itemID:  itemID,
		actor:   actor,
		packed:  packed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TogglePackedItemCommand) Validate() error {
	return c.guard.Validate(ErrTogglePackedItemCommandIsNotConstructed)
}

func (c TogglePackedItemCommand) OrderID() kernel.UUID { return c.orderID }
func (c TogglePackedItemCommand) ItemID() kernel.UUID  { return c.itemID }
func (c TogglePackedItemCommand) Actor() kernel.Actor  { return c.actor }
func (c TogglePackedItemCommand) Packed() bool         { return c.packed }
