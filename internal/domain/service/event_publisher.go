// Package service declares the domain-facing interfaces for external
// collaborators: QR encoding, event publishing, notifications, tokens.
package service

import (
	"context"
	"time"
)

// StatusEvent is the payload broadcast after a lifecycle change commits.
// It is self-contained so subscribers need no follow-up read.
type StatusEvent struct {
	RequestID    string    `json:"request_id,omitempty"` // For distributed tracing
	ParcelID     string    `json:"parcel_id"`
	TrackingCode string    `json:"tracking_code"`
	Status       string    `json:"status"`
	Note         string    `json:"note,omitempty"`
	AgentID      string    `json:"agent_id,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing status events to a
// message broker, so the single-process fan-out can be replaced by a
// shared transport when multiple instances run.
type EventPublisher interface {
	// PublishStatusEvent publishes one lifecycle event for async consumers.
	PublishStatusEvent(ctx context.Context, event *StatusEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
