package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrInitiateCheckoutCommandIsNotConstructed = errors.New(
	"InitiateCheckoutCommand must be created via NewInitiateCheckoutCommand constructor",
)

// InitiateCheckoutCommand opens a gateway checkout for a confirmed order.
type InitiateCheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewInitiateCheckoutCommand(orderID kernel.UUID, actor kernel.Actor) (InitiateCheckoutCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return InitiateCheckoutCommand{}, err
	}
	return InitiateCheckoutCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c InitiateCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrInitiateCheckoutCommandIsNotConstructed)
}

func (c InitiateCheckoutCommand) OrderID() kernel.UUID { return c.orderID }
func (c InitiateCheckoutCommand) Actor() kernel.Actor  { return c.actor }
