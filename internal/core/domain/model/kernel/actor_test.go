package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, name := range []string{"owner", "admin", "franchise", "system"} {
		role, err := kernel.ParseRole(name)

		require.NoError(t, err)
		assert.Equal(t, name, role.String())
	}

	_, err := kernel.ParseRole("courier")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestActor(t *testing.T) {
	memberID := kernel.NewUUID()

	member, err := kernel.NewActor(memberID, kernel.RoleFranchise, "Pune")
	require.NoError(t, err)
	assert.True(t, member.Owns(memberID))
	assert.False(t, member.Owns(kernel.NewUUID()))

	admin, err := kernel.NewActor(memberID, kernel.RoleAdmin, "")
	require.NoError(t, err)
	assert.False(t, admin.Owns(memberID), "only franchise actors own member resources")
	assert.True(t, admin.Role.IsStaff())

	_, err = kernel.NewActor(kernel.UUID{}, kernel.RoleAdmin, "")
	require.Error(t, err)
	_, err = kernel.NewActor(memberID, kernel.RoleUnknown, "")
	require.Error(t, err)

	system := kernel.SystemActor()
	require.NoError(t, system.Validate())
	assert.Equal(t, kernel.RoleSystem, system.Role)
}
