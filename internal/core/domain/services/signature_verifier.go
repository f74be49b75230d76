package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

// SignatureVerifier authenticates payment gateway callbacks.
//
// The gateway signs "{gateway_order_id}|{payment_id}" with HMAC-SHA256 under the shared
// key secret and sends the hex digest. Verification recomputes the digest and compares
// in constant time. A mismatch is a hard failure; callers must not mutate anything
// before Verify returns nil.
type SignatureVerifier struct {
	secret []byte
}

// NewSignatureVerifier requires a non-empty shared secret.
func NewSignatureVerifier(secret string) (SignatureVerifier, error) {
	if secret == "" {
		return SignatureVerifier{}, errs.NewValueIsRequiredError("gateway secret")
	}
	return SignatureVerifier{secret: []byte(secret)}, nil
}

// Sign returns the hex HMAC the gateway would attach for the pair.
func (v SignatureVerifier) Sign(gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the callback signature.
//
// Returns:
//   - nil if the signature matches
//   - VerificationFailedError if the verifier has no secret, the signature is not hex,
//     or the digests differ
func (v SignatureVerifier) Verify(callback payment.Callback) error {
	if len(v.secret) == 0 {
		return errs.NewVerificationFailedErrorWithCause("payment signature", errors.New("verifier has no secret"))
	}

	got, err := hex.DecodeString(callback.Signature)
	if err != nil {
		return errs.NewVerificationFailedErrorWithCause("payment signature", err)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(callback.GatewayOrderID + "|" + callback.PaymentID))
	if !hmac.Equal(mac.Sum(nil), got) {
		return errs.NewVerificationFailedErrorWithCause("payment signature", errors.New("digest mismatch"))
	}
	return nil
}
