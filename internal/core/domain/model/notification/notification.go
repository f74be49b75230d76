// Package notification models the in-app notifications fanned out to owners, admins
// and franchise members.
package notification

import (
	"errors"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via New or Restore")

// Notification is addressed either to one user (TargetUserID set) or broadcast to
// every viewer whose routing rules admit its type. A broadcast may be narrowed to a
// franchise location. Read state is monotonic.
type Notification struct {
	id            kernel.UUID
	payload       Payload
	targetUserID  *kernel.UUID
	location      string
	read          bool
	readAt        *time.Time
	createdAt     time.Time
	isConstructed bool
}

func New(id kernel.UUID, payload Payload, targetUserID *kernel.UUID, location string) (*Notification, error) {
	return Restore(id, payload, targetUserID, location, false, nil, time.Now().UTC())
}

func Restore(
	id kernel.UUID,
	payload Payload,
	targetUserID *kernel.UUID,
	location string,
	read bool,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	if err := payload.Type().Validate(); err != nil {
		return nil, err
	}
	if targetUserID != nil {
		if err := targetUserID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Notification{
		id:            id,
		payload:       payload,
		targetUserID:  targetUserID,
		location:      strings.TrimSpace(location),
		read:          read,
		readAt:        readAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID            { return n.id }
func (n *Notification) Type() Type                 { return n.payload.Type() }
func (n *Notification) Title() string              { return n.payload.Title() }
func (n *Notification) Message() string            { return n.payload.Message() }
func (n *Notification) Payload() Payload           { return n.payload }
func (n *Notification) TargetUserID() *kernel.UUID { return n.targetUserID }
func (n *Notification) Location() string           { return n.location }
func (n *Notification) Read() bool                 { return n.read }
func (n *Notification) ReadAt() *time.Time         { return n.readAt }
func (n *Notification) CreatedAt() time.Time       { return n.createdAt }

// IsBroadcast reports whether the notification has no single recipient.
func (n *Notification) IsBroadcast() bool {
	return n.targetUserID == nil
}

// MarkRead flips read to true. Marking an already read notification keeps the first
// read time and reports false.
func (n *Notification) MarkRead(at time.Time) bool {
	if n.read {
		return false
	}
	at = at.UTC()
	n.read = true
	n.readAt = &at
	return true
}
