package repository

import (
	"context"

	"parceltrack/internal/domain/entity"

	"github.com/google/uuid"
)

// StatusUpdateRepository persists the append-only status log. Entries are
// never edited or deleted.
type StatusUpdateRepository interface {
	// CreateStatusUpdate appends one log entry.
	CreateStatusUpdate(ctx context.Context, update *entity.StatusUpdate) error

	// ListStatusUpdatesByParcel returns a parcel's log ordered by
	// timestamp descending for display.
	ListStatusUpdatesByParcel(ctx context.Context, parcelID uuid.UUID) ([]*entity.StatusUpdate, error)
}
