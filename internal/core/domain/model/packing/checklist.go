package packing

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Checklist is the set of entries of one order.
type Checklist struct {
	orderID kernel.UUID
	entries []*Entry
}

func NewChecklist(orderID kernel.UUID, entries []*Entry) *Checklist {
	return &Checklist{orderID: orderID, entries: entries}
}

func (c *Checklist) OrderID() kernel.UUID { return c.orderID }

func (c *Checklist) Entries() []*Entry {
	entries := make([]*Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Entry returns the entry of itemID.
func (c *Checklist) Entry(itemID kernel.UUID) (*Entry, error) {
	for _, e := range c.entries {
		if e.itemID.IsEqual(itemID) {
			return e, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("packingEntry", itemID.String())
}

// Progress returns the number of packed entries and the total.
func (c *Checklist) Progress() (int, int) {
	packed := 0
	for _, e := range c.entries {
		if e.packed {
			packed++
		}
	}
	return packed, len(c.entries)
}

// AllPacked is the AND over every entry. It is false for an empty checklist and when
// the checklist does not cover all expectedItems lines of the order.
func (c *Checklist) AllPacked(expectedItems int) bool {
	packed, total := c.Progress()
	return total > 0 && total == expectedItems && packed == total
}
