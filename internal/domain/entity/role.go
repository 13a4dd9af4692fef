// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// Role represents the type of role a principal can have in the system.
type Role string

const (
	// RoleAdmin indicates back-office staff with full operational access.
	RoleAdmin Role = "ADMIN"
	// RoleAgent indicates a delivery agent handling assigned parcels.
	RoleAgent Role = "AGENT"
	// RoleCustomer indicates a customer who books parcels.
	RoleCustomer Role = "CUSTOMER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleCustomer:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Principal identifies the authenticated actor behind a request.
// The core trusts the principal handed to it by the auth layer and
// performs no credential verification of its own.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsAgent reports whether the principal carries the agent role.
func (p Principal) IsAgent() bool {
	return p.Role == RoleAgent
}

// IsCustomer reports whether the principal carries the customer role.
func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}
