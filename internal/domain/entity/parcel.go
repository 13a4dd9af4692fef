package entity

import (
	"time"

	"github.com/google/uuid"
)

// Parcel is the aggregate at the heart of the lifecycle engine. Its
// tracking code and shipping cost are assigned once at creation and are
// immutable afterwards; status is the only mutable business field and
// changes exclusively through guarded transitions.
type Parcel struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the parcel.
	TrackingCode string     // Public, format-constrained code; unique across all parcels.
	Size         ParcelSize // Physical size class.
	Type         ParcelType // Contents classification.
	WeightKg     *float64   // Optional weight in kilograms.
	PaymentType  PaymentType
	CODAmount    *float64 // Collection amount; required iff PaymentType is COD.
	ShippingCost float64  // Computed once at creation, immutable thereafter.
	Status       ParcelStatus

	CustomerID uuid.UUID  // The customer who booked the parcel.
	AgentID    *uuid.UUID // The assigned delivery agent; nil until assignment.

	PickupAddress   *Address // Owned pickup location.
	DeliveryAddress *Address // Owned delivery location, always distinct from pickup.

	PickupDate       *time.Time // Optional scheduled pickup date.
	ExpectedDelivery time.Time  // Derived at creation from the pickup date.
	DeliveredAt      *time.Time // Set exactly when the parcel reaches DELIVERED.

	QRCode []byte // PNG of the public tracking URL; empty when encoding failed.

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssignedTo reports whether the given agent is the parcel's assigned agent.
func (p *Parcel) IsAssignedTo(agentID uuid.UUID) bool {
	return p.AgentID != nil && *p.AgentID == agentID
}

// ExpectedDeliveryFrom derives the promised delivery date: pickup date plus
// four days when a pickup date is scheduled, otherwise five days from now.
func ExpectedDeliveryFrom(pickupDate *time.Time, now time.Time) time.Time {
	if pickupDate != nil {
		return pickupDate.AddDate(0, 0, 4)
	}

	return now.AddDate(0, 0, 5)
}
