package member

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the franchise member's verification state.
type Status int

const (
	Unknown Status = iota
	// Pending members registered but were not reviewed yet.
	Pending
	// Approved members are active and may order once dashboard access is enabled.
	Approved
	// Verified members completed document verification.
	Verified
	Rejected
)

var statusNames = map[Status]string{
	Pending:  "pending",
	Approved: "approved",
	Verified: "verified",
	Rejected: "rejected",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("member status", fmt.Errorf("%q is not a member status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("member status", fmt.Errorf("%d is not a member status", s))
	}
	return nil
}

// PermitsOrdering reports whether the status alone allows placing orders.
func (s Status) PermitsOrdering() bool {
	return s == Approved || s == Verified
}
