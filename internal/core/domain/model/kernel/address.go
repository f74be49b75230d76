package kernel

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const maxAddressFieldLength = 255

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the shipping destination of an order. Line1, City and PostalCode are
// required. Phone is optional contact information for the courier.
type Address struct { //nolint:recvcheck // setters use pointer receivers during construction
	line1      string
	line2      string
	city       string
	postalCode string
	phone      string
	guard      guard.ConstructorGuard
}

// NewAddress trims and validates every component.
func NewAddress(line1, line2, city, postalCode, phone string) (Address, error) {
	a := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setRequired("line1", &a.line1, line1),
		a.setOptional("line2", &a.line2, line2),
		a.setRequired("city", &a.city, city),
		a.setRequired("postalCode", &a.postalCode, postalCode),
		a.setOptional("phone", &a.phone, phone),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Phone() string      { return a.phone }

// String renders the address on a single line, as printed on invoices.
func (a Address) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, fmt.Sprintf("%s %s", a.city, a.postalCode))
	return strings.Join(parts, ", ")
}

func (a *Address) setRequired(name string, field *string, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return a.setOptional(name, field, value)
}

func (a *Address) setOptional(name string, field *string, value string) error {
	value = strings.TrimSpace(value)
	if len(value) > maxAddressFieldLength {
		return errs.NewValueIsOutOfRangeError(name, len(value), 0, maxAddressFieldLength)
	}
	*field = value
	return nil
}
