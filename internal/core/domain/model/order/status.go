package order

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> PaymentPending ──> Paid ──> Packing ──> Shipped ──> Delivered
//	   │            │   └──────────────────────────^
//	   │            │               │
//	   └────────────┴───────────────┴──> Cancelled
//
// PaymentPending is a holding sub-state of Confirmed entered when checkout starts.
// Delivered and Cancelled are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status. The order waits for an admin to set the delivery fee.
	Pending

	// Confirmed orders have a delivery fee and await payment.
	Confirmed

	// PaymentPending orders have an open gateway checkout.
	PaymentPending

	// Paid orders passed signature verification of the gateway callback.
	Paid

	// Packing orders are being packed against their checklist.
	Packing

	// Shipped orders left the warehouse with every checklist entry packed.
	Shipped

	// Delivered is final; loyalty points are accrued on entering it.
	Delivered

	// Cancelled is final.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:        "pending",
	Confirmed:      "confirmed",
	PaymentPending: "payment_pending",
	Paid:           "paid",
	Packing:        "packing",
	Shipped:        "shipped",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

type transition struct {
	from Status
	to   Status
}

// transitions lists every permitted move together with the roles that own it.
// A move missing from the table is invalid for everyone.
var transitions = map[transition][]kernel.Role{
	{Pending, Confirmed}:             {kernel.RoleAdmin, kernel.RoleOwner},
	{Pending, Cancelled}:             {kernel.RoleFranchise, kernel.RoleAdmin, kernel.RoleOwner, kernel.RoleSystem},
	{Confirmed, PaymentPending}:      {kernel.RoleFranchise, kernel.RoleSystem},
	{PaymentPending, PaymentPending}: {kernel.RoleFranchise, kernel.RoleSystem},
	{Confirmed, Paid}:                {kernel.RoleSystem},
	{PaymentPending, Paid}:           {kernel.RoleSystem},
	{Confirmed, Cancelled}:           {kernel.RoleAdmin, kernel.RoleOwner, kernel.RoleSystem},
	{PaymentPending, Cancelled}:      {kernel.RoleAdmin, kernel.RoleOwner, kernel.RoleSystem},
	{Paid, Packing}:                  {kernel.RoleAdmin, kernel.RoleOwner},
	{Packing, Shipped}:               {kernel.RoleAdmin, kernel.RoleOwner},
	{Shipped, Delivered}:             {kernel.RoleAdmin, kernel.RoleOwner, kernel.RoleFranchise},
}

// ParseStatus maps the persisted or external name of a status back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate checks that s is one of the eight lifecycle states.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, e.g. "payment_pending".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether no further transitions exist.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// IsOutstanding reports whether the order blocks its member from confirming another one.
func (s Status) IsOutstanding() bool {
	return s == Confirmed || s == PaymentPending
}

// IsFinalized reports whether payment was verified and the order was not cancelled.
func (s Status) IsFinalized() bool {
	return s == Paid || s == Packing || s == Shipped || s == Delivered
}

// ValidateTransition checks that role may move an order from s to to.
//
// Returns:
//   - nil if the move is in the transition table for role
//   - ValueIsInvalidError if the move does not exist
//   - ForbiddenError if the move exists but belongs to other roles
func (s Status) ValidateTransition(to Status, role kernel.Role) error {
	roles, ok := transitions[transition{from: s, to: to}]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot move to %s", s, to))
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return errs.NewForbiddenErrorWithCause(fmt.Sprintf("move order from %s to %s", s, to),
		fmt.Errorf("role %s does not own this transition", role))
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, PaymentPending, Paid, Packing, Shipped, Delivered, Cancelled}
}
