package service

import (
	"context"

	"parceltrack/internal/domain/entity"
)

// NotificationService delivers out-of-band notifications about parcel
// lifecycle changes. Failures are non-fatal to the triggering operation;
// the caller logs and moves on.
type NotificationService interface {
	// NotifyParcelCreated announces a freshly booked parcel.
	NotifyParcelCreated(ctx context.Context, parcel *entity.Parcel) error

	// NotifyStatusChanged announces an accepted status transition.
	NotifyStatusChanged(ctx context.Context, parcel *entity.Parcel, update *entity.StatusUpdate) error
}
