// Package payment records gateway checkouts and their verified outcomes.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Status of a payment record. Completed is only reachable after signature verification.
type Status int

const (
	Unknown Status = iota
	Pending
	Completed
	Failed
	Expired
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Completed: "completed",
	Failed:    "failed",
	Expired:   "expired",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a payment status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

// Record tracks one gateway checkout of an order.
type Record struct {
	id             kernel.UUID
	orderID        kernel.UUID
	gatewayOrderID string
	paymentID      string
	signature      string
	amount         kernel.Money
	status         Status
	createdAt      time.Time
	isConstructed  bool
}

// NewRecord opens a pending record for the checkout gatewayOrderID.
func NewRecord(id, orderID kernel.UUID, gatewayOrderID string, amount kernel.Money) (*Record, error) {
	return RestoreRecord(id, orderID, gatewayOrderID, "", "", amount, Pending, time.Now().UTC())
}

func RestoreRecord(
	id, orderID kernel.UUID,
	gatewayOrderID, paymentID, signature string,
	amount kernel.Money,
	status Status,
	createdAt time.Time,
) (*Record, error) {
	var gatewayErr, statusErr error
	if strings.TrimSpace(gatewayOrderID) == "" {
		gatewayErr = errs.NewValueIsRequiredError("gatewayOrderID")
	}
	if _, ok := statusNames[status]; !ok {
		statusErr = errs.NewValueIsInvalidError("paymentStatus")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), gatewayErr, amount.Validate(), statusErr); err != nil {
		return nil, err
	}

	return &Record{
		id:             id,
		orderID:        orderID,
		gatewayOrderID: strings.TrimSpace(gatewayOrderID),
		paymentID:      paymentID,
		signature:      signature,
		amount:         amount,
		status:         status,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID        { return r.id }
func (r *Record) OrderID() kernel.UUID   { return r.orderID }
func (r *Record) GatewayOrderID() string { return r.gatewayOrderID }
func (r *Record) PaymentID() string      { return r.paymentID }
func (r *Record) Signature() string      { return r.signature }
func (r *Record) Amount() kernel.Money   { return r.amount }
func (r *Record) Status() Status         { return r.status }
func (r *Record) CreatedAt() time.Time   { return r.createdAt }

// Complete stores the verified gateway payment. Callers must verify the callback
// signature first.
func (r *Record) Complete(paymentID, signature string) error {
	if r.status != Pending {
		return errs.NewConflictErrorWithCause("payment "+r.gatewayOrderID,
			fmt.Errorf("cannot complete a %s payment", r.status))
	}
	if strings.TrimSpace(paymentID) == "" {
		return errs.NewValueIsRequiredError("paymentID")
	}
	r.paymentID = paymentID
	r.signature = signature
	r.status = Completed
	return nil
}

// IsCompletedWith reports whether the record was already completed by paymentID,
// which makes a repeated gateway callback a no-op.
func (r *Record) IsCompletedWith(paymentID string) bool {
	return r.status == Completed && r.paymentID == paymentID
}

// Expire closes a pending record whose order was cancelled or timed out.
func (r *Record) Expire() bool {
	if r.status != Pending {
		return false
	}
	r.status = Expired
	return true
}
