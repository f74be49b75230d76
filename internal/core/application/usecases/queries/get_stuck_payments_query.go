package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetStuckPaymentsQueryIsNotConstructed = errors.New(
	"GetStuckPaymentsQuery must be created via NewGetStuckPaymentsQuery constructor",
)

// GetStuckPaymentsQuery lists orders parked in payment_pending for longer than
// olderThan. It backs the operations report and mirrors what the expiry job will
// cancel next.
type GetStuckPaymentsQuery struct {
	olderThan time.Duration
	now       time.Time

	guard guard.ConstructorGuard
}

func NewGetStuckPaymentsQuery(olderThan time.Duration, now time.Time) (GetStuckPaymentsQuery, error) {
	if olderThan < 0 {
		return GetStuckPaymentsQuery{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, 0, "unbounded")
	}
	return GetStuckPaymentsQuery{olderThan: olderThan, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetStuckPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetStuckPaymentsQueryIsNotConstructed)
}

func (q GetStuckPaymentsQuery) Cutoff() time.Time { return q.now.Add(-q.olderThan) }

type StuckPaymentView struct {
	OrderID       kernel.UUID
	MemberID      kernel.UUID
	FranchiseName string
	TotalAmount   kernel.Money
	PendingSince  time.Time
	// GatewayOrderID is the most recent checkout opened for the order.
	GatewayOrderID string
	PendingRecords int
}
