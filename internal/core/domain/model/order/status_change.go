package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// StatusChange is one row of an order's audit trail.
type StatusChange struct {
	From      Status
	To        Status
	ActorID   kernel.UUID
	ActorRole kernel.Role
	Note      string
	At        time.Time
}
