package memberrepo_test

import (
	"context"
	"testing"

	"ordering/internal/adapters/out/postgres/memberrepo"
	"ordering/internal/adapters/out/postgres/testdb"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository(t *testing.T) {
	ctx := context.Background()
	repo := memberrepo.NewGormMemberRepository(testdb.SQLite(t))

	m, err := member.NewMember(kernel.NewUUID(), "Chai Point Baner", "Pune")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, m))

	got, err := repo.Get(ctx, m.ID())
	require.NoError(t, err)
	assert.Equal(t, member.Pending, got.Status())
	assert.False(t, got.DashboardAccessEnabled())
	assert.Equal(t, "Pune", got.Location())

	require.NoError(t, got.ChangeStatus(member.Approved, true))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.Get(ctx, m.ID())
	require.NoError(t, err)
	assert.Equal(t, member.Approved, got.Status())
	assert.True(t, got.DashboardAccessEnabled())
	assert.NoError(t, got.CanPlaceOrders())

	t.Run("missing member", func(t *testing.T) {
		ghost, ghostErr := member.NewMember(kernel.NewUUID(), "Ghost", "Nowhere")
		require.NoError(t, ghostErr)

		assert.ErrorIs(t, repo.Update(ctx, ghost), errs.ErrObjectNotFound)
		_, ghostErr = repo.Get(ctx, ghost.ID())
		assert.ErrorIs(t, ghostErr, errs.ErrObjectNotFound)
	})
}
