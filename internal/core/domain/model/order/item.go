package order

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// MaxItemQuantity bounds a single order line.
const MaxItemQuantity = 10000

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("order item must be created via NewItem")

// Item is an immutable order line. Name and unit price are copied from the catalogue
// when the order is placed so later price changes do not alter existing orders.
type Item struct {
	itemID    kernel.UUID
	name      string
	quantity  int
	unitPrice kernel.Money
	guard     guard.ConstructorGuard
}

// NewItem validates a line. Quantity must be between 1 and MaxItemQuantity.
func NewItem(itemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	var nameErr, quantityErr error
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 || quantity > MaxItemQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}

	if err := errors.Join(itemID.Validate(), nameErr, quantityErr, unitPrice.Validate()); err != nil {
		return Item{}, err
	}

	return Item{
		itemID:    itemID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ItemID() kernel.UUID     { return i.itemID }
func (i Item) Name() string            { return i.name }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// TotalPrice is quantity × unit price.
func (i Item) TotalPrice() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}
