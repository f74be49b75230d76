package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand hands a fully packed order to the carrier.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	actor          kernel.Actor
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand accepts an empty tracking number for self-delivered orders.
func NewShipOrderCommand(orderID kernel.UUID, actor kernel.Actor, trackingNumber string) (ShipOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return ShipOrderCommand{}, err
	}
	return ShipOrderCommand{
		orderID:        orderID,
		actor:          actor,
		trackingNumber: strings.TrimSpace(trackingNumber),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c ShipOrderCommand) Actor() kernel.Actor    { return c.actor }
func (c ShipOrderCommand) TrackingNumber() string { return c.trackingNumber }
