package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrGetPackingChecklistQueryIsNotConstructed = errors.New(
	"GetPackingChecklistQuery must be created via NewGetPackingChecklistQuery constructor",
)

type GetPackingChecklistQuery struct {
	orderID kernel.UUID
	viewer  kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetPackingChecklistQuery(orderID kernel.UUID, viewer kernel.Actor) (GetPackingChecklistQuery, error) {
	if err := errors.Join(orderID.Validate(), viewer.Validate()); err != nil {
		return GetPackingChecklistQuery{}, err
	}
	return GetPackingChecklistQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPackingChecklistQuery) Validate() error {
	return q.guard.Validate(ErrGetPackingChecklistQueryIsNotConstructed)
}

func (q GetPackingChecklistQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetPackingChecklistQuery) Viewer() kernel.Actor { return q.viewer }

type PackingChecklistView struct {
	OrderID     kernel.UUID
	OrderStatus order.Status
	Entries     []PackingEntryView
	Packed      int
	Total       int
	// AllPacked also requires one entry per order line.
	AllPacked bool
}

type PackingEntryView struct {
	ID       kernel.UUID
	ItemID   kernel.UUID
	ItemName string
	Quantity int
	Packed   bool
	PackedBy *kernel.UUID
	PackedAt *time.Time
}
