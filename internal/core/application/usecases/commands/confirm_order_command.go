package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand sets the delivery fee of a pending order and confirms it.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       kernel.Actor
	deliveryFee kernel.Money
	notes       string

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	deliveryFee kernel.Money,
	notes string,
) (ConfirmOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate(), deliveryFee.Validate()); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		orderID:     orderID,
		actor:       actor,
		deliveryFee: deliveryFee,
		notes:       strings.TrimSpace(notes),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c ConfirmOrderCommand) Actor() kernel.Actor       { return c.actor }
func (c ConfirmOrderCommand) DeliveryFee() kernel.Money { return c.deliveryFee }
func (c ConfirmOrderCommand) Notes() string             { return c.notes }
