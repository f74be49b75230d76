package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per request or command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates written through its
// repositories are published to the change feed only after Commit succeeds.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Repositories bound to the current transaction, or to the database when Begin was
	// not called.
	MemberRepository() MemberRepository
	CatalogRepository() CatalogRepository
	OrderRepository() OrderRepository
	PackingRepository() PackingRepository
	LoyaltyRepository() LoyaltyRepository
	NotificationRepository() NotificationRepository
	PaymentRepository() PaymentRepository
	InvoiceRepository() InvoiceRepository
}
