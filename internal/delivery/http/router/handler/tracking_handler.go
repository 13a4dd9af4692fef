package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"parceltrack/internal/delivery/http/response"
	"parceltrack/internal/domain/service"
	"parceltrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const streamHeartbeatInterval = 25 * time.Second

// TrackingHandlerParams holds dependencies for TrackingHandler, injected by Fx.
type TrackingHandlerParams struct {
	fx.In

	ParcelUC    usecase.ParcelUsecase
	Broadcaster service.Broadcaster
	Logger      *slog.Logger
}

// TrackingHandler serves the public, unauthenticated tracking surface.
type TrackingHandler struct {
	parcelUC    usecase.ParcelUsecase
	broadcaster service.Broadcaster
	logger      *slog.Logger
}

// NewTrackingHandler is the constructor for TrackingHandler
func NewTrackingHandler(params TrackingHandlerParams) *TrackingHandler {
	return &TrackingHandler{
		parcelUC:    params.ParcelUC,
		broadcaster: params.Broadcaster,
		logger:      params.Logger,
	}
}

// TrackParcel handles public tracking lookups by tracking code
func (h *TrackingHandler) TrackParcel(c echo.Context) error {
	result, err := h.parcelUC.TrackParcel(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toTrackingResponse(result.Parcel, result.History), "")
}

// StreamParcelEvents streams live status events for one tracking code
// over Server-Sent Events. The subscription joins before the snapshot is
// written, so no transition between lookup and join is lost.
func (h *TrackingHandler) StreamParcelEvents(c echo.Context) error {
	code := c.Param("code")

	sub := h.broadcaster.Join(code)
	defer sub.Close()

	result, err := h.parcelUC.TrackParcel(c.Request().Context(), code)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	if err := writeSSEEvent(resp, "snapshot", toTrackingResponse(result.Parcel, result.History)); err != nil {
		return err
	}

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, open := <-sub.Events():
			if !open {
				return nil
			}
			if err := writeSSEEvent(resp, "status", event); err != nil {
				h.logger.Debug("Tracking stream write failed, closing",
					slog.String("trackingCode", code),
					slog.Any("error", err),
				)

				return nil
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(resp, ": keep-alive\n\n"); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

func writeSSEEvent(resp *echo.Response, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	resp.Flush()

	return nil
}
