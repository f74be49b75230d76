package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/packingrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/packing"
	"ordering/internal/pkg/errs"
)

// lockWait is how long a blocked writer is given to prove it is really blocked.
const lockWait = 300 * time.Millisecond

type orderUoWs struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f orderUoWs) Create() commands.OrderUoW {
	return f.factory.Create()
}

func (suite *PostgresIntegrationTestSuite) TestConcurrentChecklistCreation_CreatesOneEntryPerItem() {
	ctx := context.Background()
	o := suite.packingOrder(5)
	handler := commands.NewCreatePackingChecklistCommandHandler(orderUoWs{suite.factory})
	cmd, err := commands.NewCreatePackingChecklistCommand(o.ID(), suite.admin)
	suite.Require().NoError(err)

	const callers = 8
	var created atomic.Int64
	results := make(chan error, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var (
				n       int64
				callErr error
			)
			// half the callers bypass the order lock and race on the unique index alone
			if i%2 == 0 {
				n, callErr = handler.Handle(ctx, cmd)
			} else {
				n, callErr = suite.addEntries(ctx, o)
			}
			created.Add(n)
			results <- callErr
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	for err := range results {
		suite.Require().NoError(err)
	}
	suite.Equal(int64(5), created.Load())

	var rows int64
	suite.Require().NoError(suite.pg.DB.Model(&packingrepo.EntryDTO{}).
		Where("order_id = ?", o.ID().UUID()).Count(&rows).Error)
	suite.Equal(int64(5), rows)
}

func (suite *PostgresIntegrationTestSuite) TestShip_HoldsChecklistAgainstConcurrentToggle() {
	ctx := context.Background()
	o := suite.packingOrder(2)
	suite.packAll(ctx, o)

	ship := suite.factory.Create()
	suite.Require().NoError(ship.Begin(ctx))
	defer func() { _ = ship.Rollback(ctx) }()

	locked, err := ship.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	checklist, err := ship.PackingRepository().GetChecklistForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().True(checklist.AllPacked(len(locked.Items())))

	toggle := commands.NewTogglePackedItemCommandHandler(orderUoWs{suite.factory})
	cmd, err := commands.NewTogglePackedItemCommand(o.ID(), o.Items()[0].ItemID(), suite.admin, false)
	suite.Require().NoError(err)
	done := make(chan error, 1)
	go func() {
		_, toggleErr := toggle.Handle(ctx, cmd)
		done <- toggleErr
	}()

	select {
	case err = <-done:
		suite.FailNow("toggle ran inside the shipping transaction", "err=%v", err)
	case <-time.After(lockWait):
	}

	suite.Require().NoError(locked.Ship(suite.admin, "BLR-TRK-1", checklist.AllPacked(len(locked.Items()))))
	suite.Require().NoError(ship.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(ship.Commit(ctx))

	select {
	case err = <-done:
		suite.ErrorIs(err, errs.ErrConflict)
	case <-time.After(10 * time.Second):
		suite.FailNow("toggle never finished")
	}

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, stored.Status())
	final, err := reader.PackingRepository().GetChecklistForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(final.AllPacked(len(stored.Items())))
}

func (suite *PostgresIntegrationTestSuite) TestChecklistLock_BlocksEntryWrites() {
	ctx := context.Background()
	o := suite.packingOrder(1)
	suite.packAll(ctx, o)

	snapshot, err := suite.factory.Create().PackingRepository().GetChecklistForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	entry := snapshot.Entries()[0]
	suite.Require().NoError(entry.Toggle(suite.admin, false, time.Now()))

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	defer func() { _ = holder.Rollback(ctx) }()
	_, err = holder.PackingRepository().GetChecklistForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	var wrote atomic.Bool
	done := make(chan error, 1)
	go func() {
		writer := suite.factory.Create()
		if beginErr := writer.Begin(ctx); beginErr != nil {
			done <- beginErr
			return
		}
		defer func() { _ = writer.Rollback(ctx) }()
		if updateErr := writer.PackingRepository().UpdateEntry(ctx, entry); updateErr != nil {
			done <- updateErr
			return
		}
		wrote.Store(true)
		done <- writer.Commit(ctx)
	}()

	time.Sleep(lockWait)
	suite.False(wrote.Load(), "entry write went through while the checklist was locked")

	suite.Require().NoError(holder.Commit(ctx))
	select {
	case err = <-done:
		suite.NoError(err)
	case <-time.After(10 * time.Second):
		suite.FailNow("entry write never finished")
	}
}

// packingOrder stores a packing order with the given number of lines.
func (suite *PostgresIntegrationTestSuite) packingOrder(lines int) *order.Order {
	ctx := context.Background()
	items := make([]order.Item, 0, lines)
	for i := range lines {
		item, err := order.NewItem(kernel.NewUUID(), fmt.Sprintf("Spice blend %d", i+1), 1, kernel.MustMoney("150"))
		suite.Require().NoError(err)
		items = append(items, item)
	}
	address, err := kernel.NewAddress("7 Residency Road", "", "Bengaluru", "560025", "")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Chai Point", items, address, 0, false)
	suite.Require().NoError(err)

	repo := suite.factory.Create().OrderRepository()
	suite.Require().NoError(repo.Add(ctx, o))
	suite.Require().NoError(o.Confirm(suite.admin, kernel.MustMoney("60"), ""))
	suite.Require().NoError(o.MarkPaid(kernel.SystemActor(), "pay_"+o.ID().String()))
	suite.Require().NoError(o.StartPacking(suite.admin))
	suite.Require().NoError(repo.Update(ctx, o))
	return o
}

// packAll creates the checklist of o and marks every entry packed.
func (suite *PostgresIntegrationTestSuite) packAll(ctx context.Context, o *order.Order) {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	entries, err := packing.EntriesFor(o)
	suite.Require().NoError(err)
	_, err = uow.PackingRepository().AddEntries(ctx, entries)
	suite.Require().NoError(err)
	checklist, err := uow.PackingRepository().GetChecklistForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	for _, e := range checklist.Entries() {
		suite.Require().NoError(e.Toggle(suite.admin, true, time.Now()))
		suite.Require().NoError(uow.PackingRepository().UpdateEntry(ctx, e))
	}
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *PostgresIntegrationTestSuite) addEntries(ctx context.Context, o *order.Order) (int64, error) {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	entries, err := packing.EntriesFor(o)
	if err != nil {
		return 0, err
	}
	created, err := uow.PackingRepository().AddEntries(ctx, entries)
	if err != nil {
		return 0, err
	}
	return created, uow.Commit(ctx)
}
