// Package catalog holds the shared supply catalogue that orders are priced against.
package catalog

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a catalogue entry. Order lines copy its name and unit price at ordering time.
type Item struct {
	id            kernel.UUID
	name          string
	unitPrice     kernel.Money
	active        bool
	isConstructed bool
}

func NewItem(id kernel.UUID, name string, unitPrice kernel.Money) (*Item, error) {
	return RestoreItem(id, name, unitPrice, true)
}

func RestoreItem(id kernel.UUID, name string, unitPrice kernel.Money, active bool) (*Item, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(id.Validate(), nameErr, unitPrice.Validate()); err != nil {
		return nil, err
	}

	return &Item{id: id, name: name, unitPrice: unitPrice, active: active, isConstructed: true}, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID         { return i.id }
func (i *Item) Name() string            { return i.name }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) Active() bool            { return i.active }

func (i *Item) Deactivate() {
	i.active = false
}
