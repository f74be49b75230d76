// Package packing tracks the per-item packed state of paid orders.
package packing

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is the checklist row of one order line. There is exactly one entry per
// (order, item) pair; storage enforces it with a unique key.
type Entry struct {
	id            kernel.UUID
	orderID       kernel.UUID
	itemID        kernel.UUID
	itemName      string
	quantity      int
	packed        bool
	packedBy      *kernel.UUID
	packedAt      *time.Time
	isConstructed bool
}

func NewEntry(id, orderID, itemID kernel.UUID, itemName string, quantity int) (*Entry, error) {
	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxItemQuantity)
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), itemID.Validate(), quantityErr); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		itemID:        itemID,
		itemName:      itemName,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

func RestoreEntry(
	id, orderID, itemID kernel.UUID,
	itemName string,
	quantity int,
	packed bool,
	packedBy *kernel.UUID,
	packedAt *time.Time,
) (*Entry, error) {
	e, err := NewEntry(id, orderID, itemID, itemName, quantity)
	if err != nil {
		return nil, err
	}
	e.packed = packed
	e.packedBy = packedBy
	e.packedAt = packedAt
	return e, nil
}

// EntriesFor builds one unpacked entry per line of o.
func EntriesFor(o *order.Order) ([]*Entry, error) {
	items := o.Items()
	entries := make([]*Entry, 0, len(items))
	for _, item := range items {
		e, err := NewEntry(kernel.NewUUID(), o.ID(), item.ItemID(), item.Name(), item.Quantity())
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID        { return e.id }
func (e *Entry) OrderID() kernel.UUID   { return e.orderID }
func (e *Entry) ItemID() kernel.UUID    { return e.itemID }
func (e *Entry) ItemName() string       { return e.itemName }
func (e *Entry) Quantity() int          { return e.quantity }
func (e *Entry) Packed() bool           { return e.packed }
func (e *Entry) PackedBy() *kernel.UUID { return e.packedBy }
func (e *Entry) PackedAt() *time.Time   { return e.packedAt }

// Toggle sets the packed flag. The acting staff member and time are recorded for both
// packing and unpacking.
func (e *Entry) Toggle(actor kernel.Actor, packed bool, at time.Time) error {
	if !actor.Role.IsStaff() {
		return errs.NewForbiddenError("toggle packing entry")
	}
	by := actor.ID
	at = at.UTC()
	e.packed = packed
	e.packedBy = &by
	e.packedAt = &at
	return nil
}
