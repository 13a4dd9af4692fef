package entity

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a delivery agent account as the lifecycle engine sees it.
// Account management lives outside the core; the engine only reads agents
// to validate assignments.
type Agent struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role // Must be RoleAgent for the account to accept assignments.
	Active    bool // Inactive agents cannot be assigned parcels.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignable reports whether the agent may be assigned a parcel.
func (a *Agent) Assignable() bool {
	return a != nil && a.Role == RoleAgent && a.Active
}
