// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"parceltrack/internal/delivery/http/middleware"
	"parceltrack/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ParcelHandler     *handler.ParcelHandler
	TrackingHandler   *handler.TrackingHandler
	AuthMiddleware    *middleware.AuthMiddleware
	ContextMiddleware *middleware.RequestContextMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	parcelHandler     *handler.ParcelHandler
	trackingHandler   *handler.TrackingHandler
	authMiddleware    *middleware.AuthMiddleware
	contextMiddleware *middleware.RequestContextMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		parcelHandler:     params.ParcelHandler,
		trackingHandler:   params.TrackingHandler,
		authMiddleware:    params.AuthMiddleware,
		contextMiddleware: params.ContextMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.contextMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public tracking surface, no authentication
	trackGroup := e.Group("/track")
	{
		trackGroup.GET("/:code", r.trackingHandler.TrackParcel)
		trackGroup.GET("/:code/stream", r.trackingHandler.StreamParcelEvents)
	}

	// Quoting needs no account either
	e.POST("/parcels/quote", r.parcelHandler.QuoteShipping)

	// Parcel lifecycle routes require authentication
	parcelGroup := e.Group("/parcels")
	parcelGroup.Use(r.authMiddleware.Authenticate)
	{
		parcelGroup.POST("", r.parcelHandler.CreateParcel)
		parcelGroup.GET("", r.parcelHandler.ListParcels)
		parcelGroup.GET("/:id", r.parcelHandler.GetParcel)
		parcelGroup.DELETE("/:id", r.parcelHandler.DeleteParcel)
		parcelGroup.POST("/:id/transitions", r.parcelHandler.ApplyTransition)
	}
}
