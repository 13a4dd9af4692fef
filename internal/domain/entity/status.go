package entity

// ParcelStatus represents one state in the parcel delivery lifecycle.
//
// The forward graph walked by regular actors:
//
//	PENDING ──> ASSIGNED ──> PICKED_UP ──> IN_TRANSIT ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │            │            │              │                 │
//	   v            v            v              v                 v
//	CANCELLED   CANCELLED     FAILED         FAILED            FAILED
//
// DELIVERED is strictly terminal. FAILED can be reopened to ASSIGNED, but
// only through the admin override path, never via the forward graph.
type ParcelStatus string

const (
	StatusPending        ParcelStatus = "PENDING"
	StatusAssigned       ParcelStatus = "ASSIGNED"
	StatusPickedUp       ParcelStatus = "PICKED_UP"
	StatusInTransit      ParcelStatus = "IN_TRANSIT"
	StatusOutForDelivery ParcelStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ParcelStatus = "DELIVERED"
	StatusFailed         ParcelStatus = "FAILED"
	StatusCancelled      ParcelStatus = "CANCELLED"
)

// forwardTransitions is the primary graph used by non-admin actors.
func forwardTransitions() map[ParcelStatus][]ParcelStatus {
	return map[ParcelStatus][]ParcelStatus{
		StatusPending:        {StatusAssigned, StatusCancelled},
		StatusAssigned:       {StatusPickedUp, StatusCancelled},
		StatusPickedUp:       {StatusInTransit, StatusFailed},
		StatusInTransit:      {StatusOutForDelivery, StatusFailed},
		StatusOutForDelivery: {StatusDelivered, StatusFailed},
	}
}

// String returns the string representation of the ParcelStatus.
func (s ParcelStatus) String() string {
	return string(s)
}

// IsValid checks if the ParcelStatus is a valid value.
func (s ParcelStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may ever leave this status.
// Only DELIVERED is terminal; FAILED and CANCELLED still admit the
// admin override or nothing, but neither freezes the row the way
// DELIVERED does.
func (s ParcelStatus) IsTerminal() bool {
	return s == StatusDelivered
}

// CanTransitionTo reports whether target is reachable from s via the
// forward graph used by regular actors.
func (s ParcelStatus) CanTransitionTo(target ParcelStatus) bool {
	for _, next := range forwardTransitions()[s] {
		if next == target {
			return true
		}
	}

	return false
}

// IsAdminOverride reports whether moving from s to target is the
// retry-dispatch path reserved for admins. CANCELLED is deliberately not
// reopenable.
func (s ParcelStatus) IsAdminOverride(target ParcelStatus) bool {
	return s == StatusFailed && target == StatusAssigned
}

// Deletable reports whether a parcel in this status may still be removed.
// Once a parcel has left the pre-transit states it is part of the
// permanent audit trail.
func (s ParcelStatus) Deletable() bool {
	return s == StatusPending || s == StatusAssigned
}
