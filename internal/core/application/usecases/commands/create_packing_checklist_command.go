package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreatePackingChecklistCommandIsNotConstructed = errors.New(
	"CreatePackingChecklistCommand must be created via NewCreatePackingChecklistCommand constructor",
)

// CreatePackingChecklistCommand (re)creates the missing checklist entries of an order.
// Running it any number of times, concurrently or not, leaves exactly one entry per line.
type CreatePackingChecklistCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreatePackingChecklistCommand(orderID kernel.UUID, actor kernel.Actor) (CreatePackingChecklistCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return CreatePackingChecklistCommand{}, err
	}
	if !actor.Role.IsStaff() && actor.Role != kernel.RoleSystem {
		return CreatePackingChecklistCommand{}, errs.NewForbiddenError("create packing checklist")
	}
	return CreatePackingChecklistCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CreatePackingChecklistCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackingChecklistCommandIsNotConstructed)
}

func (c CreatePackingChecklistCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreatePackingChecklistCommand) Actor() kernel.Actor  { return c.actor }
