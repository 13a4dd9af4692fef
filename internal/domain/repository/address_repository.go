package repository

import (
	"context"

	"parceltrack/internal/domain/entity"
)

// AddressRepository persists parcel-owned addresses. Addresses are
// immutable once created, so the interface deliberately has no update.
type AddressRepository interface {
	// CreateAddress persists a new address.
	CreateAddress(ctx context.Context, address *entity.Address) error
}
