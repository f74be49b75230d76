package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies members, orders, catalogue items and every other entity in the
// ordering domain. It wraps github.com/google/uuid and is immutable. The zero value
// is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn and hyphenless forms.
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores a UUID from its 16-byte form, as stored by the repositories.
// The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// OptionalUUIDFromBytes restores a nullable identifier column.
func OptionalUUIDFromBytes(b *uuid.UUID) (*UUID, error) {
	if b == nil {
		return nil, nil //nolint:nilnil // absent identifier
	}
	id, err := UUIDFromBytes(b[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalUUID is the inverse of OptionalUUIDFromBytes.
func OptionalUUID(id *UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.UUID()
	return &raw
}

func (u UUID) String() string {
	return u.id.String()
}

// UUID returns the underlying google UUID, used by persistence adapters.
func (u UUID) UUID() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
