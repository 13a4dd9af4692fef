// Package notification delivers out-of-band lifecycle notifications over
// an outbound webhook.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"parceltrack/config"
	"parceltrack/internal/domain/entity"
	"parceltrack/internal/domain/service"

	"github.com/pkg/errors"
)

// webhookService POSTs lifecycle payloads to a configured endpoint. With
// no endpoint configured every call is a logged no-op, so callers never
// need to special-case disabled notifications.
type webhookService struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookService creates the webhook notification service.
func NewWebhookService(cfg *config.Config, logger *slog.Logger) service.NotificationService {
	endpoint := ""
	if cfg.Notification != nil {
		endpoint = cfg.Notification.WebhookEndpoint
	}

	return &webhookService{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// webhookPayload is the wire format sent to the webhook endpoint.
type webhookPayload struct {
	Event        string     `json:"event"`
	ParcelID     string     `json:"parcel_id"`
	TrackingCode string     `json:"tracking_code"`
	Status       string     `json:"status"`
	Note         string     `json:"note,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
}

// NotifyParcelCreated announces a freshly booked parcel.
func (s *webhookService) NotifyParcelCreated(ctx context.Context, parcel *entity.Parcel) error {
	return s.post(ctx, &webhookPayload{
		Event:        "parcel.created",
		ParcelID:     parcel.ID.String(),
		TrackingCode: parcel.TrackingCode,
		Status:       parcel.Status.String(),
		OccurredAt:   parcel.CreatedAt,
	})
}

// NotifyStatusChanged announces an accepted status transition.
func (s *webhookService) NotifyStatusChanged(ctx context.Context, parcel *entity.Parcel, update *entity.StatusUpdate) error {
	return s.post(ctx, &webhookPayload{
		Event:        "parcel.status_changed",
		ParcelID:     parcel.ID.String(),
		TrackingCode: parcel.TrackingCode,
		Status:       update.Status.String(),
		Note:         update.Note,
		OccurredAt:   update.CreatedAt,
		DeliveredAt:  parcel.DeliveredAt,
	})
}

func (s *webhookService) post(ctx context.Context, payload *webhookPayload) error {
	if s.endpoint == "" {
		s.logger.Debug("Webhook endpoint not configured, skipping notification",
			slog.String("event", payload.Event),
			slog.String("tracking_code", payload.TrackingCode),
		)

		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}

	return nil
}
