package invoice_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/invoice"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice_Retention(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		forAdmin bool
		days     int
	}{
		{name: "franchise", forAdmin: false, days: 30},
		{name: "admin", forAdmin: true, days: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), tt.forAdmin, "text/html", []byte("<html/>"), created)
			require.NoError(t, err)

			expires := created.AddDate(0, 0, tt.days)
			assert.Equal(t, expires, inv.ExpiresAt())
			assert.False(t, inv.IsExpired(expires.Add(-time.Second)))
			assert.True(t, inv.IsExpired(expires))
		})
	}
}

func TestNewInvoice_RequiresContent(t *testing.T) {
	_, err := invoice.NewInvoice(kernel.NewUUID(), kernel.NewUUID(), false, "text/html", nil, time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
