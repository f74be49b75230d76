package packingrepo_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/packingrepo"
	"ordering/internal/adapters/out/postgres/testdb"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/packing"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackerStub struct {
	mu      sync.Mutex
	tracked []any
}

func (s *trackerStub) TrackAggregate(_ kernel.UUID, aggregate any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked = append(s.tracked, aggregate)
}

func paidOrder(t *testing.T) *order.Order {
	t.Helper()
	tea, err := order.NewItem(kernel.NewUUID(), "Darjeeling 500g", 3, kernel.MustMoney("300"))
	require.NoError(t, err)
	sugar, err := order.NewItem(kernel.NewUUID(), "Sugar sachets", 10, kernel.MustMoney("20"))
	require.NoError(t, err)
	address, err := kernel.NewAddress("4 Park Street", "", "Kolkata", "700016", "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Tea Villa", []order.Item{tea, sugar}, address, 0, false)
	require.NoError(t, err)
	return o
}

func TestAddEntries_SkipsExistingPairs(t *testing.T) {
	ctx := context.Background()
	repo := packingrepo.NewGormPackingRepository(testdb.SQLite(t), &trackerStub{})
	o := paidOrder(t)

	entries, err := packing.EntriesFor(o)
	require.NoError(t, err)
	created, err := repo.AddEntries(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, int64(2), created)

	again, err := packing.EntriesFor(o)
	require.NoError(t, err)
	created, err = repo.AddEntries(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created)

	checklist, err := repo.GetChecklistForUpdate(ctx, o.ID())
	require.NoError(t, err)
	require.Len(t, checklist.Entries(), 2)
	assert.Equal(t, "Darjeeling 500g", checklist.Entries()[0].ItemName())
	assert.Equal(t, 10, checklist.Entries()[1].Quantity())
	assert.Equal(t, entries[0].ID(), checklist.Entries()[0].ID())
}

func TestAddEntries_ConcurrentCallersCreateEachEntryOnce(t *testing.T) {
	ctx := context.Background()
	db := testdb.SQLite(t)
	o := paidOrder(t)

	const workers = 8
	var (
		wg      sync.WaitGroup
		created atomic.Int64
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := packing.EntriesFor(o)
			if !assert.NoError(t, err) {
				return
			}
			n, err := packingrepo.NewGormPackingRepository(db, &trackerStub{}).AddEntries(ctx, entries)
			if assert.NoError(t, err) {
				created.Add(n)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(2), created.Load())
	var rows int64
	require.NoError(t, db.Model(&packingrepo.EntryDTO{}).Where("order_id = ?", o.ID().UUID()).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestGetChecklist_UnknownOrderIsEmpty(t *testing.T) {
	repo := packingrepo.NewGormPackingRepository(testdb.SQLite(t), &trackerStub{})

	checklist, err := repo.GetChecklistForUpdate(context.Background(), kernel.NewUUID())
	require.NoError(t, err)
	assert.Empty(t, checklist.Entries())
	assert.False(t, checklist.AllPacked(2))
}

func TestUpdateEntry(t *testing.T) {
	ctx := context.Background()
	tracker := &trackerStub{}
	repo := packingrepo.NewGormPackingRepository(testdb.SQLite(t), tracker)
	o := paidOrder(t)
	entries, err := packing.EntriesFor(o)
	require.NoError(t, err)
	_, err = repo.AddEntries(ctx, entries)
	require.NoError(t, err)

	staff, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, "")
	require.NoError(t, err)
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	for _, e := range entries {
		require.NoError(t, e.Toggle(staff, true, at))
		require.NoError(t, repo.UpdateEntry(ctx, e))
	}
	assert.Len(t, tracker.tracked, 2)

	checklist, err := repo.GetChecklistForUpdate(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, checklist.AllPacked(len(o.Items())))
	first := checklist.Entries()[0]
	require.NotNil(t, first.PackedBy())
	assert.Equal(t, staff.ID, *first.PackedBy())
	require.NotNil(t, first.PackedAt())
	assert.True(t, at.Equal(*first.PackedAt()))

	t.Run("unknown entry", func(t *testing.T) {
		ghost, ghostErr := packing.NewEntry(kernel.NewUUID(), o.ID(), kernel.NewUUID(), "ghost", 1)
		require.NoError(t, ghostErr)
		assert.ErrorIs(t, repo.UpdateEntry(ctx, ghost), errs.ErrObjectNotFound)
	})
}
