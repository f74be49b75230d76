package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand confirms delivery of a shipped order. Staff or the ordering member
// may confirm.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID kernel.UUID, actor kernel.Actor) (DeliverOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c DeliverOrderCommand) Actor() kernel.Actor  { return c.actor }
