// Package usecase declares the application's use case interfaces and the
// request/response DTOs exchanged with the delivery layer.
package usecase

import (
	"context"
	"time"

	"parceltrack/internal/domain/entity"
	"parceltrack/internal/domain/pricing"

	"github.com/google/uuid"
)

// AddressInput carries one address of a booking request.
type AddressInput struct {
	Street       string   `json:"street" validate:"required"`
	City         string   `json:"city" validate:"required"`
	State        string   `json:"state"`
	PostalCode   string   `json:"postal_code"`
	Country      string   `json:"country" validate:"required"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	ContactPhone string   `json:"contact_phone"`
}

// CreateParcelInput is the booking request for a new parcel.
type CreateParcelInput struct {
	Size        string     `json:"size" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	WeightKg    *float64   `json:"weight_kg" validate:"omitempty,gt=0"`
	PaymentType string     `json:"payment_type" validate:"required"`
	CODAmount   *float64   `json:"cod_amount"`
	PickupDate  *time.Time `json:"pickup_date"`

	// CustomerID is honored for admin bookings on behalf of a customer;
	// customer principals always book for themselves.
	CustomerID *uuid.UUID `json:"customer_id"`

	Pickup   AddressInput `json:"pickup" validate:"required"`
	Delivery AddressInput `json:"delivery" validate:"required"`
}

// TransitionInput requests one status transition on a parcel.
type TransitionInput struct {
	Target    string     `json:"target" validate:"required"`
	Note      string     `json:"note"`
	AgentID   *uuid.UUID `json:"agent_id"` // Target agent; required when moving to ASSIGNED.
	Latitude  *float64   `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64   `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// QuoteInput requests a shipping cost breakdown without booking.
type QuoteInput struct {
	Size     string       `json:"size" validate:"required"`
	Type     string       `json:"type" validate:"required"`
	WeightKg *float64     `json:"weight_kg" validate:"omitempty,gt=0"`
	Pickup   AddressInput `json:"pickup" validate:"required"`
	Delivery AddressInput `json:"delivery" validate:"required"`
}

// TrackingResult is the public view of one parcel: the aggregate plus its
// status history, newest entry first.
type TrackingResult struct {
	Parcel  *entity.Parcel
	History []*entity.StatusUpdate
}

// ParcelUsecase defines the parcel lifecycle operations.
type ParcelUsecase interface {
	// CreateParcel books a new parcel: issues a tracking code, computes
	// the immutable shipping cost and atomically persists addresses,
	// parcel and the initial PENDING status entry.
	CreateParcel(ctx context.Context, principal entity.Principal, input *CreateParcelInput) (*entity.Parcel, error)

	// ApplyTransition evaluates the lifecycle guards and, on acceptance,
	// atomically mutates the parcel and appends one status log entry.
	ApplyTransition(ctx context.Context, principal entity.Principal, parcelID uuid.UUID, input *TransitionInput) (*entity.Parcel, error)

	// GetParcel returns one parcel to an actor allowed to see it.
	GetParcel(ctx context.Context, principal entity.Principal, parcelID uuid.UUID) (*entity.Parcel, error)

	// ListParcels returns the parcels visible to the principal: their own
	// bookings for customers, their assignments for agents, recent
	// parcels for admins.
	ListParcels(ctx context.Context, principal entity.Principal) ([]*entity.Parcel, error)

	// DeleteParcel removes a parcel still in a pre-transit state.
	DeleteParcel(ctx context.Context, principal entity.Principal, parcelID uuid.UUID) error

	// TrackParcel resolves a tracking code for public trackers, no
	// authentication required.
	TrackParcel(ctx context.Context, trackingCode string) (*TrackingResult, error)

	// QuoteShipping computes the itemized cost breakdown for a
	// hypothetical booking.
	QuoteShipping(ctx context.Context, input *QuoteInput) (*pricing.Breakdown, error)
}
