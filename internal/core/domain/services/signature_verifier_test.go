package services_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCallback(t *testing.T, gatewayOrderID, paymentID, signature string) payment.Callback {
	t.Helper()
	c, err := payment.NewCallback(gatewayOrderID, paymentID, signature, kernel.NewUUID(), kernel.MustMoney("1200"))
	require.NoError(t, err)
	return c
}

func TestSignatureVerifier_Verify(t *testing.T) {
	verifier, err := services.NewSignatureVerifier("gateway-secret")
	require.NoError(t, err)
	valid := verifier.Sign("order_N1", "pay_1")

	t.Run("valid_signature", func(t *testing.T) {
		require.NoError(t, verifier.Verify(newCallback(t, "order_N1", "pay_1", valid)))
	})

	t.Run("deterministic_hex_digest", func(t *testing.T) {
		assert.Len(t, valid, 64)
		assert.Equal(t, valid, verifier.Sign("order_N1", "pay_1"))
		assert.NotEqual(t, valid, verifier.Sign("order_N1", "pay_2"))
	})

	tests := []struct {
		name     string
		callback payment.Callback
	}{
		{name: "tampered_payment_id", callback: newCallback(t, "order_N1", "pay_2", valid)},
		{name: "tampered_order_id", callback: newCallback(t, "order_N2", "pay_1", valid)},
		{name: "flipped_digit", callback: newCallback(t, "order_N1", "pay_1", flipLast(valid))},
		{name: "not_hex", callback: newCallback(t, "order_N1", "pay_1", "zz")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, verifier.Verify(tt.callback), errs.ErrVerificationFailed)
		})
	}

	t.Run("other_secret", func(t *testing.T) {
		other, err := services.NewSignatureVerifier("another-secret")
		require.NoError(t, err)

		require.ErrorIs(t, other.Verify(newCallback(t, "order_N1", "pay_1", valid)), errs.ErrVerificationFailed)
	})
}

func TestNewSignatureVerifier_RequiresSecret(t *testing.T) {
	_, err := services.NewSignatureVerifier("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero services.SignatureVerifier
	require.ErrorIs(t, zero.Verify(payment.Callback{Signature: "00"}), errs.ErrVerificationFailed)
}

func flipLast(s string) string {
	last := s[len(s)-1]
	if last == '0' {
		return s[:len(s)-1] + "1"
	}
	return s[:len(s)-1] + "0"
}
