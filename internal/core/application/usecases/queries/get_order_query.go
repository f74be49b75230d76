// Package queries contains read operations. Handlers query the database directly with
// SQL shaped for each read model and apply the same visibility rules as the commands.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order with its lines and status history. Franchise viewers
// only see their own orders; any other order is reported as not found.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, viewer)
//	resp, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
//	fmt.Println(resp.Order.Status, len(resp.History))
type GetOrderQuery struct {
	orderID kernel.UUID
	viewer  kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, viewer kernel.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewer.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) Viewer() kernel.Actor { return q.viewer }

// OrderView is the order record exposed to clients.
type OrderView struct {
	ID                 kernel.UUID
	MemberID           kernel.UUID
	FranchiseName      string
	Status             order.Status
	ShippingAddress    AddressView
	DeliveryFee        *kernel.Money
	TotalAmount        kernel.Money
	LoyaltyPointsUsed  int
	LoyaltyGiftClaimed bool
	TrackingNumber     string
	AdminNotes         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Items              []OrderItemView
}

type AddressView struct {
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Phone      string
}

type OrderItemView struct {
	ItemID     kernel.UUID
	Name       string
	Quantity   int
	UnitPrice  kernel.Money
	TotalPrice kernel.Money
}

// StatusChangeView is one audit row. From is empty for the initial pending row.
type StatusChangeView struct {
	From      string
	To        string
	ActorID   kernel.UUID
	ActorRole string
	Note      string
	At        time.Time
}

type GetOrderQueryResponse struct {
	Order   OrderView
	History []StatusChangeView
}
