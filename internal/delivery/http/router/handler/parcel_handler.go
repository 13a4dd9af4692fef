package handler

import (
	"log/slog"
	"net/http"

	"parceltrack/internal/delivery/http/middleware"
	"parceltrack/internal/delivery/http/response"
	"parceltrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ParcelHandlerParams holds dependencies for ParcelHandler, injected by Fx.
type ParcelHandlerParams struct {
	fx.In

	ParcelUC usecase.ParcelUsecase
	Logger   *slog.Logger
}

// ParcelHandler holds dependencies for parcel lifecycle handlers
type ParcelHandler struct {
	parcelUC usecase.ParcelUsecase
	logger   *slog.Logger
}

// NewParcelHandler is the constructor for ParcelHandler
func NewParcelHandler(params ParcelHandlerParams) *ParcelHandler {
	return &ParcelHandler{
		parcelUC: params.ParcelUC,
		logger:   params.Logger,
	}
}

// CreateParcel handles booking a new parcel
func (h *ParcelHandler) CreateParcel(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid principal in token")
	}

	var req usecase.CreateParcelInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid parcel input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	parcel, err := h.parcelUC.CreateParcel(c.Request().Context(), principal, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toParcelResponse(parcel), "Parcel booked successfully")
}

// ListParcels handles listing the parcels visible to the caller
func (h *ParcelHandler) ListParcels(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid principal in token")
	}

	parcels, err := h.parcelUC.ListParcels(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toParcelListResponse(parcels), "")
}

// GetParcel handles retrieving one parcel by ID
func (h *ParcelHandler) GetParcel(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid principal in token")
	}

	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid parcel ID")
	}

	parcel, err := h.parcelUC.GetParcel(c.Request().Context(), principal, parcelID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toParcelResponse(parcel), "")
}

// ApplyTransition handles a status transition request on a parcel
func (h *ParcelHandler) ApplyTransition(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid principal in token")
	}

	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid parcel ID")
	}

	var req usecase.TransitionInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transition input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	parcel, err := h.parcelUC.ApplyTransition(c.Request().Context(), principal, parcelID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toParcelResponse(parcel), "Parcel status updated successfully")
}

// DeleteParcel handles removing a pre-transit parcel
func (h *ParcelHandler) DeleteParcel(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid principal in token")
	}

	parcelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid parcel ID")
	}

	if err := h.parcelUC.DeleteParcel(c.Request().Context(), principal, parcelID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Parcel deleted"}, "Parcel deleted successfully")
}

// QuoteShipping handles computing a cost breakdown without booking
func (h *ParcelHandler) QuoteShipping(c echo.Context) error {
	var req usecase.QuoteInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quote input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	breakdown, err := h.parcelUC.QuoteShipping(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, breakdown, "")
}
