// Package postgres wires the gorm repositories into a Unit of Work.
//
// A unit of work owns at most one transaction. Repositories obtained from it run inside
// that transaction when Begin was called and directly against the database otherwise.
// Aggregates written through the order, packing, loyalty and notification repositories
// are tracked, and once Commit succeeds they are published to the change feed:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx) // publishes the order event
//
// Publishing is best effort. A failure is logged and never undoes the commit; clients
// reconcile through the read API.
package postgres

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/adapters/out/changefeed"
	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/invoicerepo"
	"ordering/internal/adapters/out/postgres/loyaltyrepo"
	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/adapters/out/postgres/notificationrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/packingrepo"
	"ordering/internal/adapters/out/postgres/paymentrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands out a fresh unit of work per command.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher changefeed.Publisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory builds the factory. A nil publisher disables the change
// feed.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher changefeed.Publisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork coordinates one gorm transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         changefeed.Publisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}
	uow.trackedAggregates = nil
	return nil
}

// Commit finishes the transaction and then publishes the tracked aggregates.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = nil
	if err != nil {
		return err
	}

	uow.publish(ctx, tracked)
	return nil
}

// Rollback discards the transaction and everything tracked in it. Without an open
// transaction it returns gorm.ErrInvalidTransaction, which the deferred rollback in
// handlers ignores after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

func (uow *GormUnitOfWork) MemberRepository() ports.MemberRepository {
	return memberrepo.NewGormMemberRepository(uow.conn())
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PackingRepository() ports.PackingRepository {
	return packingrepo.NewGormPackingRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) LoyaltyRepository() ports.LoyaltyRepository {
	return loyaltyrepo.NewGormLoyaltyRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return invoicerepo.NewGormInvoiceRepository(uow.conn())
}

// TrackAggregate records an aggregate written by a repository. Writes made outside a
// transaction are published immediately since they are already durable.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	tracked := trackedAggregate{ID: id, Aggregate: aggregate}
	if uow.tx == nil {
		uow.publish(context.Background(), []trackedAggregate{tracked})
		return
	}
	uow.trackedAggregates = append(uow.trackedAggregates, tracked)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context, tracked []trackedAggregate) {
	if uow.publisher == nil || len(tracked) == 0 {
		return
	}

	now := time.Now().UTC()
	events := make([]changefeed.Event, 0, len(tracked))
	for _, t := range tracked {
		event, ok, err := changefeed.EventFor(t.Aggregate, now)
		if err != nil {
			uow.logger.Error("encode change event", "id", t.ID.String(), "error", err)
			continue
		}
		if ok {
			events = append(events, event)
		}
	}
	if len(events) == 0 {
		return
	}

	// The request context may already be cancelled once the handler returns.
	if err := uow.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
		uow.logger.Error("publish change events", "count", len(events), "error", err)
	}
}
