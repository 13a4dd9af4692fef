package notification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parceltrack/config"
	"parceltrack/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(endpoint string) *webhookService {
	cfg := &config.Config{
		Notification: &config.NotificationConfig{WebhookEndpoint: endpoint},
	}

	return NewWebhookService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).(*webhookService)
}

func TestWebhookService_NotifyParcelCreated(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630123456",
		Status:       entity.StatusPending,
		CreatedAt:    time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}

	svc := newTestService(server.URL)
	require.NoError(t, svc.NotifyParcelCreated(context.Background(), parcel))

	assert.Equal(t, "parcel.created", got.Event)
	assert.Equal(t, parcel.ID.String(), got.ParcelID)
	assert.Equal(t, "PCL20250630123456", got.TrackingCode)
	assert.Equal(t, "PENDING", got.Status)
}

func TestWebhookService_NotifyStatusChanged(t *testing.T) {
	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer server.Close()

	deliveredAt := time.Date(2025, 7, 2, 9, 30, 0, 0, time.UTC)
	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630123456",
		Status:       entity.StatusDelivered,
		DeliveredAt:  &deliveredAt,
	}
	update := &entity.StatusUpdate{
		ID:        uuid.New(),
		ParcelID:  parcel.ID,
		Status:    entity.StatusDelivered,
		Note:      "left with neighbor",
		CreatedAt: deliveredAt,
	}

	svc := newTestService(server.URL)
	require.NoError(t, svc.NotifyStatusChanged(context.Background(), parcel, update))

	assert.Equal(t, "parcel.status_changed", got.Event)
	assert.Equal(t, "DELIVERED", got.Status)
	assert.Equal(t, "left with neighbor", got.Note)
	require.NotNil(t, got.DeliveredAt)
	assert.True(t, got.DeliveredAt.Equal(deliveredAt))
}

func TestWebhookService_NonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	err := svc.NotifyParcelCreated(context.Background(), &entity.Parcel{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookService_UnconfiguredEndpointIsANoOp(t *testing.T) {
	svc := newTestService("")
	require.NoError(t, svc.NotifyParcelCreated(context.Background(), &entity.Parcel{ID: uuid.New()}))
}
