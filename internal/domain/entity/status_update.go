package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusUpdate is one immutable entry in a parcel's append-only status log.
// Every accepted transition produces exactly one entry, including the
// initial PENDING entry written atomically with the parcel itself. Entries
// are never edited or deleted.
type StatusUpdate struct {
	ID        uuid.UUID
	ParcelID  uuid.UUID
	Status    ParcelStatus
	Note      string     // Optional free-text note supplied with the transition.
	AgentID   *uuid.UUID // Acting agent; nil for system or admin entries.
	Latitude  *float64   // Optional geocoordinates captured at the transition.
	Longitude *float64
	CreatedAt time.Time
}
