// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of work,
// load aggregates, let them decide, persist, commit.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	MemberRepoFactory interface {
		MemberRepository() ports.MemberRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PackingRepoFactory interface {
		PackingRepository() ports.PackingRepository
	}

	LoyaltyRepoFactory interface {
		LoyaltyRepository() ports.LoyaltyRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// OrderUoW spans the order lifecycle: an order transition may touch the ledger,
	// the packing checklist, payment records and notifications in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... transition, persist, notify
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		MemberRepoFactory
		CatalogRepoFactory
		OrderRepoFactory
		PackingRepoFactory
		LoyaltyRepoFactory
		NotificationRepoFactory
		PaymentRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LoyaltyUoW manages ledger operations outside of an order transition.
	LoyaltyUoW interface {
		TxManager
		MemberRepoFactory
		LoyaltyRepoFactory
		NotificationRepoFactory
	}

	LoyaltyUoWFactory interface {
		Create() LoyaltyUoW
	}

	// MemberUoW manages member administration and the catalogue.
	MemberUoW interface {
		TxManager
		MemberRepoFactory
		CatalogRepoFactory
	}

	MemberUoWFactory interface {
		Create() MemberUoW
	}

	// NotificationUoW manages notifications that are not a side effect of another
	// aggregate's change.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// InvoiceUoW reads finalized orders and their payments and stores invoices.
	InvoiceUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		InvoiceRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}
)
