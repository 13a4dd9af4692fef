// Package repository defines the persistence interfaces the domain depends on.
package repository

import (
	"context"

	"parceltrack/internal/domain/entity"
	"parceltrack/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by repository implementations.
var (
	// ErrParcelNotFound is returned when a parcel cannot be located.
	ErrParcelNotFound = errors.New("parcel not found")

	// ErrAgentNotFound is returned when an agent cannot be located.
	ErrAgentNotFound = errors.New("agent not found")
)

// ParcelRepository persists parcel aggregates.
type ParcelRepository interface {
	// CreateParcel persists a new parcel. Tracking-code unique violations
	// surface as the domain tracking-code conflict error so the caller can
	// re-issue and retry.
	CreateParcel(ctx context.Context, parcel *entity.Parcel) error

	// FindParcelByID retrieves a parcel with its addresses by ID.
	FindParcelByID(ctx context.Context, id uuid.UUID) (*entity.Parcel, error)

	// FindParcelByIDForUpdate retrieves a parcel and takes a row-level lock
	// so concurrent status transitions on the same parcel serialize. Only
	// meaningful inside a transaction.
	FindParcelByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Parcel, error)

	// FindParcelByTrackingCode retrieves a parcel by its public tracking code.
	FindParcelByTrackingCode(ctx context.Context, code string) (*entity.Parcel, error)

	// UpdateParcelStatus persists the mutable lifecycle fields: status,
	// assigned agent and delivery timestamp.
	UpdateParcelStatus(ctx context.Context, parcel *entity.Parcel) error

	// DeleteParcel removes a parcel and its owned rows.
	DeleteParcel(ctx context.Context, id uuid.UUID) error

	// ListParcelsByCustomer returns the parcels booked by a customer,
	// newest first.
	ListParcelsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Parcel, error)

	// ListParcelsByAgent returns the parcels currently assigned to an
	// agent, newest first.
	ListParcelsByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Parcel, error)

	// ListRecentParcels returns the most recently booked parcels for the
	// admin overview.
	ListRecentParcels(ctx context.Context, limit int) ([]*entity.Parcel, error)
}
