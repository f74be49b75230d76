package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrExpirePendingPaymentsCommandIsNotConstructed = errors.New(
	"ExpirePendingPaymentsCommand must be created via NewExpirePendingPaymentsCommand constructor",
)

// DefaultExpiryBatch bounds how many orders one run cancels.
const DefaultExpiryBatch = 100

// ExpirePendingPaymentsCommand cancels orders parked in payment_pending for longer than ttl.
type ExpirePendingPaymentsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time
	ttl    time.Duration
	limit  int

	guard guard.ConstructorGuard
}

func NewExpirePendingPaymentsCommand(now time.Time, ttl time.Duration, limit int) (ExpirePendingPaymentsCommand, error) {
	if ttl <= 0 {
		return ExpirePendingPaymentsCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, time.Nanosecond, "unbounded")
	}
	if limit <= 0 {
		limit = DefaultExpiryBatch
	}
	return ExpirePendingPaymentsCommand{
		cutoff: now.Add(-ttl),
		ttl:    ttl,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingPaymentsCommandIsNotConstructed)
}

func (c ExpirePendingPaymentsCommand) Cutoff() time.Time  { return c.cutoff }
func (c ExpirePendingPaymentsCommand) TTL() time.Duration { return c.ttl }
func (c ExpirePendingPaymentsCommand) Limit() int         { return c.limit }
