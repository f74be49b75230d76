package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrStartPackingCommandIsNotConstructed = errors.New(
	"StartPackingCommand must be created via NewStartPackingCommand constructor",
)

// StartPackingCommand moves a paid order to packing.
type StartPackingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewStartPackingCommand(orderID kernel.UUID, actor kernel.Actor) (StartPackingCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return StartPackingCommand{}, err
	}
	return StartPackingCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c StartPackingCommand) Validate() error {
	return c.guard.Validate(ErrStartPackingCommandIsNotConstructed)
}

func (c StartPackingCommand) OrderID() kernel.UUID { return c.orderID }
func (c StartPackingCommand) Actor() kernel.Actor  { return c.actor }
