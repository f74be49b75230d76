package kernel_test

import (
	"strings"
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid_address_is_trimmed", func(t *testing.T) {
		a, err := kernel.NewAddress(" 12 MG Road ", "", "Pune", "411001", "+91 98765 43210")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "12 MG Road", a.Line1())
		assert.Equal(t, "12 MG Road, Pune 411001", a.String())
	})

	t.Run("reports_every_missing_field", func(t *testing.T) {
		_, err := kernel.NewAddress("", "", " ", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "line1")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "postalCode")
	})

	t.Run("rejects_oversized_fields", func(t *testing.T) {
		_, err := kernel.NewAddress(strings.Repeat("x", 300), "", "Pune", "411001", "")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var a kernel.Address

		require.ErrorIs(t, a.Validate(), kernel.ErrAddressIsNotConstructed)
	})
}
