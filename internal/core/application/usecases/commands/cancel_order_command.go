package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order. Orders past pending need override=true, which
// only staff may pass.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    kernel.Actor
	override bool
	reason   string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actor kernel.Actor, override bool, reason string) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		orderID:  orderID,
		actor:    actor,
		override: override && actor.Role.IsStaff(),
		reason:   strings.TrimSpace(reason),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c CancelOrderCommand) Override() bool       { return c.override }
func (c CancelOrderCommand) Reason() string       { return c.reason }
