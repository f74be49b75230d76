package member

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrMemberIsNotConstructed = errors.New("Member must be created via NewMember or RestoreMember")

// Member is a franchise partner allowed to place supply orders.
//
// A member may order only while its status is approved or verified and its dashboard
// access is enabled. Rejecting a member disables dashboard access.
type Member struct {
	id            kernel.UUID
	franchiseName string
	location      string
	status        Status
	accessEnabled bool
	isConstructed bool
}

// NewMember registers a member in Pending status with dashboard access disabled.
func NewMember(id kernel.UUID, franchiseName, location string) (*Member, error) {
	m := &Member{status: Pending, isConstructed: true}

	if err := errors.Join(
		m.setID(id),
		m.setFranchiseName(franchiseName),
		m.setLocation(location),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMember rebuilds a member from storage.
func RestoreMember(id kernel.UUID, franchiseName, location string, status Status, accessEnabled bool) (*Member, error) {
	m := &Member{isConstructed: true}

	if err := errors.Join(
		m.setID(id),
		m.setFranchiseName(franchiseName),
		m.setLocation(location),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	m.status = status
	m.accessEnabled = accessEnabled
	return m, nil
}

func (m *Member) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMemberIsNotConstructed
	}
	return nil
}

func (m *Member) ID() kernel.UUID              { return m.id }
func (m *Member) FranchiseName() string        { return m.franchiseName }
func (m *Member) Location() string             { return m.location }
func (m *Member) Status() Status               { return m.status }
func (m *Member) DashboardAccessEnabled() bool { return m.accessEnabled }

// CanPlaceOrders returns a validation error explaining why the member may not order.
func (m *Member) CanPlaceOrders() error {
	if !m.status.PermitsOrdering() {
		return errs.NewValueIsInvalidErrorWithCause("member",
			fmt.Errorf("status %s does not permit ordering", m.status))
	}
	if !m.accessEnabled {
		return errs.NewValueIsInvalidErrorWithCause("member", errors.New("dashboard access is disabled"))
	}
	return nil
}

// ChangeStatus moves the member to status and applies the requested dashboard access.
// Access can only be enabled for members whose status permits ordering.
func (m *Member) ChangeStatus(status Status, accessEnabled bool) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if accessEnabled && !status.PermitsOrdering() {
		return errs.NewValueIsInvalidErrorWithCause("dashboardAccessEnabled",
			fmt.Errorf("access cannot be enabled for %s members", status))
	}

	m.status = status
	m.accessEnabled = accessEnabled
	return nil
}

func (m *Member) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Member) setFranchiseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("franchiseName")
	}
	m.franchiseName = name
	return nil
}

func (m *Member) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	m.location = location
	return nil
}
