package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/guard"
)

var ErrPurgeExpiredInvoicesCommandIsNotConstructed = errors.New(
	"PurgeExpiredInvoicesCommand must be created via NewPurgeExpiredInvoicesCommand constructor",
)

type PurgeExpiredInvoicesCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewPurgeExpiredInvoicesCommand(now time.Time) PurgeExpiredInvoicesCommand {
	return PurgeExpiredInvoicesCommand{now: now.UTC(), guard: guard.NewConstructorGuard()}
}

func (c PurgeExpiredInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredInvoicesCommandIsNotConstructed)
}

func (c PurgeExpiredInvoicesCommand) Now() time.Time { return c.now }
