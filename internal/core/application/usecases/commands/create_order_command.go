package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is a requested catalogue item and quantity. Prices are always taken from
// the catalogue.
type OrderLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// CreateOrderCommand represents a franchise member placing a supply order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), actor, actor.ID,
//	    []OrderLine{{ItemID: teaID, Quantity: 4}}, address, 0, false)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	actor            kernel.Actor
	memberID         kernel.UUID
	lines            []OrderLine
	address          kernel.Address
	pointsToUse      int
	freeDeliveryGift bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Membership, catalogue and ledger
// checks happen in the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	memberID kernel.UUID,
	lines []OrderLine,
	address kernel.Address,
	pointsToUse int,
	freeDeliveryGift bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		freeDeliveryGift: freeDeliveryGift,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor, memberID),
		cmd.setLines(lines),
		cmd.setAddress(address),
		cmd.setPoints(pointsToUse),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) Actor() kernel.Actor     { return c.actor }
func (c CreateOrderCommand) MemberID() kernel.UUID   { return c.memberID }
func (c CreateOrderCommand) Address() kernel.Address { return c.address }
func (c CreateOrderCommand) PointsToUse() int        { return c.pointsToUse }
func (c CreateOrderCommand) FreeDeliveryGift() bool  { return c.freeDeliveryGift }

func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor, memberID kernel.UUID) error {
	if err := errors.Join(actor.Validate(), memberID.Validate()); err != nil {
		return err
	}
	if actor.Role == kernel.RoleFranchise && !actor.Owns(memberID) {
		return errs.NewForbiddenError("place an order for another member")
	}
	c.actor = actor
	c.memberID = memberID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, line := range lines {
		if err := line.ItemID.Validate(); err != nil {
			return err
		}
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPoints(points int) error {
	if points < 0 {
		return errs.NewValueIsOutOfRangeError("loyaltyPointsToUse", points, 0, "subtotal")
	}
	c.pointsToUse = points
	return nil
}
