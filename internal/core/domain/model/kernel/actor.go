package kernel

import (
	"ordering/internal/pkg/errs"
)

// Role is the authority an actor holds. The zero value is not a role.
type Role int

const (
	RoleUnknown Role = iota
	RoleOwner
	RoleAdmin
	RoleFranchise
	// RoleSystem is used by gateway callbacks and scheduled jobs.
	RoleSystem
)

var roleNames = map[Role]string{
	RoleOwner:     "owner",
	RoleAdmin:     "admin",
	RoleFranchise: "franchise",
	RoleSystem:    "system",
}

// ParseRole maps an external role name (JWT claim, CLI flag) to a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidError("role " + s)
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// IsStaff reports whether the role administers orders on behalf of the franchisor.
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Actor is whoever performs an operation: an authenticated user or the system.
// Franchise actors act for the member with the same ID.
type Actor struct {
	ID       UUID
	Role     Role
	Location string
}

// NewActor validates identity and role. Location is optional.
func NewActor(id UUID, role Role, location string) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role, Location: location}, nil
}

// systemActorID is the fixed identity recorded for automated transitions.
var systemActorID = UUID{id: [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x4f, 0xff, 0xbf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}}

// SystemActor is the actor for gateway callbacks and cron jobs.
func SystemActor() Actor {
	return Actor{ID: systemActorID, Role: RoleSystem}
}

func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	return a.Role.Validate()
}

// Owns reports whether a franchise actor is the member identified by memberID.
func (a Actor) Owns(memberID UUID) bool {
	return a.Role == RoleFranchise && a.ID.IsEqual(memberID)
}
